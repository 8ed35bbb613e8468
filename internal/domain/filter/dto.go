package filter

import (
	"strings"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/view"
)

// UpdateFilterRequest changes part of a view's filter state. Nil fields
// are left alone.
type UpdateFilterRequest struct {
	Search     *string `json:"search,omitempty"`
	Department *string `json:"department,omitempty"`
	Status     *string `json:"status,omitempty"`
	Page       *int    `json:"page,omitempty"`
	PageSize   *int    `json:"page_size,omitempty"`
	SortOrder  *string `json:"sort_order,omitempty"`
	ToggleSort bool    `json:"toggle_sort,omitempty"`
	Month      *string `json:"month,omitempty"`
	Year       *string `json:"year,omitempty"`
	BarPeriod  *string `json:"bar_period,omitempty"`
	BarSort    *string `json:"bar_sort,omitempty"`
	TrendDays  *int    `json:"trend_days,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

var statusFilters = []string{view.All, "Present", "Absent", "Not Marked"}

func (r *UpdateFilterRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != nil && !validator.IsInSlice(*r.Status, statusFilters) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(statusFilters, ", "),
		})
	}

	if r.Page != nil && *r.Page < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}

	if r.PageSize != nil && *r.PageSize < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page_size",
			Message: "page_size must not be negative",
		})
	}

	if r.SortOrder != nil && !view.SortOrder(*r.SortOrder).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_order",
			Message: "sort_order must be one of: asc, desc",
		})
	}

	if r.Month != nil {
		if _, ok := validator.IsValidMonth(*r.Month); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be between 1 and 12",
			})
		}
	}

	if r.Year != nil {
		if _, ok := validator.IsValidYear(*r.Year); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "year",
				Message: "year must be in YYYY format",
			})
		}
	}

	if r.BarPeriod != nil && !view.BarPeriod(*r.BarPeriod).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "bar_period",
			Message: "bar_period must be one of: all, top5, top3",
		})
	}

	if r.BarSort != nil && !view.BarSort(*r.BarSort).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "bar_sort",
			Message: "bar_sort must be one of: count-desc, count-asc, name-asc",
		})
	}

	if r.TrendDays != nil && *r.TrendDays != view.TrendWeek && *r.TrendDays != view.TrendFortnight {
		errs = append(errs, validator.ValidationError{
			Field:   "trend_days",
			Message: "trend_days must be 7 or 14",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
