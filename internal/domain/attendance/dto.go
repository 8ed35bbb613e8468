package attendance

import (
	"strings"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/view/paging"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type MarkAttendanceRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     Status `json:"status"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if !r.Status.IsMarkable() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: Present, Absent",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MarkTodayRequest struct {
	Status Status `json:"status"`
}

func (r *MarkTodayRequest) Validate() error {
	if !r.Status.IsMarkable() {
		return validator.ValidationErrors{{
			Field:   "status",
			Message: "status must be one of: Present, Absent",
		}}
	}
	return nil
}

type RecordResponse struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     Status `json:"status"`
}

func (r RecordResponse) ToEntity() Record {
	return Record{EmployeeID: r.EmployeeID, Date: r.Date, Status: r.Status}
}

func NewRecordResponse(rec Record) RecordResponse {
	return RecordResponse{EmployeeID: rec.EmployeeID, Date: rec.Date, Status: rec.Status}
}

type SummaryResponse struct {
	TotalEmployees int `json:"total_employees"`
	PresentToday   int `json:"present_today"`
	AbsentToday    int `json:"absent_today"`
}

func (r SummaryResponse) ToEntity() Summary {
	return Summary{
		TotalEmployees: r.TotalEmployees,
		PresentToday:   r.PresentToday,
		AbsentToday:    r.AbsentToday,
	}
}

// BoardFilter is the query of today's status board. Nil fields keep the
// value already held by the view's filter state.
type BoardFilter struct {
	Search     *string `json:"search,omitempty"`
	Department *string `json:"department,omitempty"`
	Status     *string `json:"status,omitempty"` // all, Present, Absent, Not Marked
	Page       *int    `json:"page,omitempty"`
	PageSize   *int    `json:"page_size,omitempty"`
}

func (f *BoardFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && *f.Status != "all" {
		if _, err := ParseStatus(*f.Status); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: all, Present, Absent, Not Marked",
			})
		}
	}

	if f.Page != nil && *f.Page < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}

	if f.PageSize != nil && *f.PageSize < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page_size",
			Message: "page_size must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type StatusCounts struct {
	All       int `json:"all"`
	Present   int `json:"present"`
	Absent    int `json:"absent"`
	NotMarked int `json:"not_marked"`
}

type BoardRowResponse struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Status     Status `json:"status"`
	// Set while an optimistic mark is waiting for the authoritative refetch.
	Pending bool `json:"pending,omitempty"`
}

type TodayBoardResponse struct {
	Date          string             `json:"date"`
	Counts        StatusCounts       `json:"counts"`
	Departments   []string           `json:"departments"`
	FilteredTotal int                `json:"filtered_total"`
	Rows          []BoardRowResponse `json:"rows"`
	Pagination    paging.Info        `json:"pagination"`
}

// HistoryFilter selects one employee's records for a calendar month.
type HistoryFilter struct {
	EmployeeID string  `json:"-"`
	Month      *string `json:"month,omitempty"` // 1-12 or 01-12
	Year       *string `json:"year,omitempty"`  // YYYY
	Status     *string `json:"status,omitempty"`
	Page       *int    `json:"page,omitempty"`
	PageSize   *int    `json:"page_size,omitempty"`
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if f.Month != nil {
		if _, ok := validator.IsValidMonth(strings.TrimSpace(*f.Month)); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be between 1 and 12",
			})
		}
	}

	if f.Year != nil {
		if _, ok := validator.IsValidYear(strings.TrimSpace(*f.Year)); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "year",
				Message: "year must be in YYYY format",
			})
		}
	}

	if f.Status != nil && *f.Status != "all" {
		if s, err := ParseStatus(*f.Status); err != nil || !s.IsMarkable() {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: all, Present, Absent",
			})
		}
	}

	if f.Page != nil && *f.Page < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}

	if f.PageSize != nil && *f.PageSize < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page_size",
			Message: "page_size must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HistoryResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Department   string `json:"department,omitempty"`
	Month        int    `json:"month"`
	Year         int    `json:"year"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	PresentCount int    `json:"present_count"`
	AbsentCount  int    `json:"absent_count"`
	// Nil when no day in the range is marked.
	AttendancePercent *int             `json:"attendance_percent"`
	YearOptions       []int            `json:"year_options"`
	Records           []RecordResponse `json:"records"`
	Pagination        paging.Info      `json:"pagination"`
}
