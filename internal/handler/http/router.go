package http

import (
	"io"
	"log/slog"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/handler/http/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Dashboard  DashboardHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Filter     FilterHandler
	Cache      CacheHandler
	Events     EventHandler
}

type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
}

func NewRouter(opts RouterOptions, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(middleware.Recover)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/dashboard", h.Dashboard.GetDashboard)

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.Employee.Directory)
			r.Post("/", h.Employee.Create)
			r.Delete("/{employee_id}", h.Employee.Delete)
		})
		r.Get("/departments", h.Employee.Departments)

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/", h.Attendance.Mark)
			r.Route("/today", func(r chi.Router) {
				r.Get("/", h.Attendance.TodayBoard)
				r.Get("/export", h.Attendance.ExportToday)
				r.Post("/{employee_id}", h.Attendance.MarkToday)
			})
			r.Get("/{employee_id}/history", h.Attendance.History)
		})

		r.Route("/filters/{view}", func(r chi.Router) {
			r.Get("/", h.Filter.Get)
			r.Patch("/", h.Filter.Update)
			r.Delete("/", h.Filter.Reset)
		})

		r.Post("/refresh", h.Cache.Refresh)
		r.Get("/cache", h.Cache.Statuses)
		r.Get("/events", h.Events.Stream)
	})
	return r
}

// NewLogger builds the JSON logger in the ECS layout used by httplog.
func NewLogger(w io.Writer, level slog.Level, env, version string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "production")
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-dashboard"),
		slog.String("version", version),
		slog.String("env", env),
	)
}
