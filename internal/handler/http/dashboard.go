package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/handler/http/response"
)

type DashboardHandler interface {
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService: dashboardService,
	}
}

// GetDashboard handles GET /dashboard
// Query params mirror the dashboard widgets: department, search, status,
// page, page_size, bar_period, bar_sort, trend_days.
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	filter := dashboard.DashboardFilter{
		Department: q.String("department"),
		Search:     q.String("search"),
		Status:     q.String("status"),
		Page:       q.Int("page"),
		PageSize:   q.PageSize("page_size"),
		BarPeriod:  q.String("bar_period"),
		BarSort:    q.String("bar_sort"),
		TrendDays:  q.Int("trend_days"),
	}
	if err := q.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	data, err := h.dashboardService.GetDashboard(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, data)
}
