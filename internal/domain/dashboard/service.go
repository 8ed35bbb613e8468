package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard loads employees, summary, today statuses and trend in parallel and derives every widget
	GetDashboard(ctx context.Context, filter DashboardFilter) (*DashboardResponse, error)
}
