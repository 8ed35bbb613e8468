package view

import (
	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/attendance"
)

var hundred = decimal.NewFromInt(100)

// roundRatio computes round(num/den) exactly, half away from zero.
// den must be non-zero.
func roundRatio(num decimal.Decimal, den int) int {
	return int(num.Div(decimal.NewFromInt(int64(den))).Round(0).IntPart())
}

// StatusCounts tallies a status board.
type StatusCounts struct {
	Total     int
	Present   int
	Absent    int
	NotMarked int
}

func (c StatusCounts) Marked() int {
	return c.Present + c.Absent
}

func CountStatuses(views []EmployeeView) StatusCounts {
	c := StatusCounts{Total: len(views)}
	for _, v := range views {
		switch v.Status {
		case attendance.StatusPresent:
			c.Present++
		case attendance.StatusAbsent:
			c.Absent++
		default:
			c.NotMarked++
		}
	}
	return c
}

// AttendanceRate is round(present / (present+absent) * 100), always in
// [0, 100], and 0 when nothing is marked whatever the unmarked count.
func AttendanceRate(present, absent int) int {
	marked := present + absent
	if marked <= 0 || present <= 0 {
		return 0
	}
	return min(100, roundRatio(decimal.NewFromInt(int64(present)).Mul(hundred), marked))
}

// AbsenceRate complements AttendanceRate to 100 when anything is marked.
func AbsenceRate(present, absent int) int {
	if present+absent <= 0 {
		return 0
	}
	return 100 - AttendanceRate(present, absent)
}

// ScaleCount estimates the share of a global count that belongs to a
// subset: round(global * filtered / total). A zero total leaves the global
// count unchanged.
func ScaleCount(global, filtered, total int) int {
	if total <= 0 {
		return global
	}
	return roundRatio(decimal.NewFromInt(int64(global)).Mul(decimal.NewFromInt(int64(filtered))), total)
}

// StatCards are the today figures of the dashboard header.
type StatCards struct {
	Total          int
	Present        int
	Absent         int
	Marked         int
	Unmarked       int
	AttendanceRate int
	AbsenceRate    int
	// Approximate is set when present and absent were scaled from the
	// global summary instead of counted for the filtered set.
	Approximate bool
}

// DashboardCounts derives the stat cards for the filtered employee set.
// The summary is global, so under a department filter present and absent
// are scaled by filtered/total.
func DashboardCounts(summary attendance.Summary, filtered, total int, deptActive bool) StatCards {
	if !deptActive {
		filtered = total
	}
	present := ScaleCount(summary.PresentToday, filtered, total)
	absent := ScaleCount(summary.AbsentToday, filtered, total)
	marked := present + absent

	return StatCards{
		Total:          filtered,
		Present:        present,
		Absent:         absent,
		Marked:         marked,
		Unmarked:       max(0, filtered-marked),
		AttendanceRate: AttendanceRate(present, absent),
		AbsenceRate:    AbsenceRate(present, absent),
		Approximate:    deptActive && total > 0 && filtered != total,
	}
}

// Slice is one segment of a pie chart.
type Slice struct {
	Name  string
	Value int
}

// PieSlices lists present, absent and unmarked, dropping empty segments.
func PieSlices(c StatCards) []Slice {
	all := []Slice{
		{Name: "Present", Value: c.Present},
		{Name: "Absent", Value: c.Absent},
		{Name: "Unmarked", Value: c.Unmarked},
	}
	out := make([]Slice, 0, len(all))
	for _, s := range all {
		if s.Value > 0 {
			out = append(out, s)
		}
	}
	return out
}
