package filter

import "github.com/cmlabs-hris/hrms-dashboard-go/internal/view"

// FilterService owns the filter state of every view
type FilterService interface {
	// Get returns the current state of v
	Get(v View) (view.FilterState, error)

	// Update applies req to the state of v and returns the result
	Update(v View, req UpdateFilterRequest) (view.FilterState, error)

	// Preview returns the state Update would produce without storing it
	Preview(v View, req UpdateFilterRequest) (view.FilterState, error)

	// Reset restores the initial state of v
	Reset(v View) (view.FilterState, error)

	// SelectedDepartment is the department chosen in the dashboard header,
	// shared by every widget that follows it
	SelectedDepartment() string
}
