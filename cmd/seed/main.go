package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/config"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/fixtures"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/gateway"
)

// seed loads employees and weekday attendance into the HRMS API. Employees
// that already exist are kept and still get attendance marks.
func main() {
	file := flag.String("file", "", "YAML seed file; the demo roster when empty")
	days := flag.Int("days", 0, "override the number of days to mark, today included")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	seed := fixtures.DefaultSeed()
	if *file != "" {
		if seed, err = fixtures.LoadSeedFile(*file); err != nil {
			slog.Error("Seed file rejected", "error", err)
			os.Exit(1)
		}
	}
	if *days > 0 {
		seed.Days = *days
	}

	client := gateway.NewClient(cfg.HRMSAPI)
	ctx := context.Background()

	var ids []string
	created := 0
	for _, req := range seed.Requests() {
		if err := req.Validate(); err != nil {
			slog.Warn("Skipping invalid employee", "employee_id", req.EmployeeID, "error", err)
			continue
		}
		_, err := client.CreateEmployee(ctx, req.Normalize())
		switch {
		case errors.Is(err, employee.ErrEmployeeIDExists):
			slog.Info("Employee already exists", "employee_id", req.EmployeeID)
		case err != nil:
			slog.Error("Failed to create employee", "employee_id", req.EmployeeID, "error", err)
			os.Exit(1)
		default:
			created++
		}
		ids = append(ids, req.EmployeeID)
	}
	slog.Info("Employees seeded", "created", created, "total", len(ids))

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	marks := fixtures.DemoAttendance(ids, time.Now(), seed.Days, seed.PresentRatio, rng)
	for _, m := range marks {
		if _, err := client.MarkAttendance(ctx, m); err != nil {
			slog.Error("Failed to mark attendance", "employee_id", m.EmployeeID, "date", m.Date, "error", err)
			os.Exit(1)
		}
	}
	slog.Info("Seed completed", "attendance_records", len(marks))
}
