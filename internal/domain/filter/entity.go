package filter

// View names a screen whose filter state the server keeps.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewEmployees View = "employees"
	ViewToday     View = "today"
	ViewHistory   View = "history"
)

func ParseView(s string) (View, error) {
	switch View(s) {
	case ViewDashboard, ViewEmployees, ViewToday, ViewHistory:
		return View(s), nil
	}
	return "", ErrUnknownView
}
