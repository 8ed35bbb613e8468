package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hrms-dashboard-go/internal/handler/http"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/cache"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/gateway"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/inflight"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/repository/cached"
	attendanceService "github.com/cmlabs-hris/hrms-dashboard-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/hrms-dashboard-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hrms-dashboard-go/internal/service/employee"
	filterService "github.com/cmlabs-hris/hrms-dashboard-go/internal/service/filter"
)

const version = "v1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := appHTTP.NewLogger(os.Stdout, cfg.SlogLevel(), cfg.App.Env, version)
	slog.SetDefault(logger)

	hub := sse.NewHub()
	store := cache.NewStore(hub, cfg.HRMSAPI.Timeout)
	defer store.Close()

	client := gateway.NewClient(cfg.HRMSAPI)
	employeeRepo := gateway.NewEmployeeRepository(client)
	attendanceRepo := gateway.NewAttendanceRepository(client)
	cacheRepo := cached.NewRepository(store, employeeRepo, attendanceRepo, cfg.HRMSAPI.FanOutLimit, time.Now)

	guard := inflight.New()
	filterSvc := filterService.NewFilterService(cfg.View.DefaultPageSize, time.Now)
	dashboardSvc := dashboardService.NewDashboardService(cacheRepo, filterSvc)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, cacheRepo, filterSvc, guard, hub)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, cacheRepo, filterSvc, guard, hub)

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Logger:         logger,
		LogLevel:       cfg.SlogLevel(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}, appHTTP.Handlers{
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Filter:     appHTTP.NewFilterHandler(filterSvc),
		Cache:      appHTTP.NewCacheHandler(cacheRepo),
		Events:     appHTTP.NewEventHandler(hub, 30*time.Second),
	})

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(store, time.Now, 30*time.Minute).RegisterJobs(scheduler, cfg.Cache.RefreshInterval)
	scheduler.Start()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", srv.Addr, "hrms_api", cfg.HRMSAPI.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down")

	scheduler.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}
