package view

import (
	"time"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/attendance"
)

// TrendPoint is the attendance rate of one day.
type TrendPoint struct {
	Date    string
	Label   string // "Jan 2"
	Present int
	Absent  int
	Rate    int
}

// TrendRange is the window AttendanceTrend covers for days ending today.
func TrendRange(days int, today time.Time) attendance.DateRange {
	days = max(days, 1)
	return attendance.DateRange{
		StartDate: attendance.FormatDate(today.AddDate(0, 0, -(days - 1))),
		EndDate:   attendance.FormatDate(today),
	}
}

// AttendanceTrend computes the daily attendance rate over the last days
// days ending today, oldest first. Days without marks have rate 0.
func AttendanceTrend(records []attendance.Record, days int, today time.Time) []TrendPoint {
	days = max(days, 1)

	type tally struct{ present, absent int }
	byDay := make(map[string]*tally)
	for key, status := range NewStatusIndex(records) {
		t, ok := byDay[key.Date]
		if !ok {
			t = &tally{}
			byDay[key.Date] = t
		}
		switch status {
		case attendance.StatusPresent:
			t.present++
		case attendance.StatusAbsent:
			t.absent++
		}
	}

	points := make([]TrendPoint, days)
	for i := range points {
		d := today.AddDate(0, 0, -(days - 1 - i))
		date := attendance.FormatDate(d)
		p := TrendPoint{Date: date, Label: d.Format("Jan 2")}
		if t, ok := byDay[date]; ok {
			p.Present, p.Absent = t.present, t.absent
			p.Rate = AttendanceRate(t.present, t.absent)
		}
		points[i] = p
	}
	return points
}

// TrendDiff is the change in rate from the first to the last point.
func TrendDiff(points []TrendPoint) int {
	if len(points) == 0 {
		return 0
	}
	return points[len(points)-1].Rate - points[0].Rate
}
