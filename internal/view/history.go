package view

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/attendance"
)

// MonthRange spans the first to the last calendar day of month in year.
func MonthRange(year int, month time.Month) attendance.DateRange {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return attendance.DateRange{
		StartDate: attendance.FormatDate(first),
		EndDate:   attendance.FormatDate(last),
	}
}

// FilterRecordsByStatus keeps records with status; All or empty keeps all.
func FilterRecordsByStatus(records []attendance.Record, status string) []attendance.Record {
	if isAll(status) {
		return records
	}
	out := make([]attendance.Record, 0, len(records))
	for _, rec := range records {
		if rec.Status == attendance.Status(status) {
			out = append(out, rec)
		}
	}
	return out
}

// SortRecordsNewestFirst returns a copy ordered by date descending.
func SortRecordsNewestFirst(records []attendance.Record) []attendance.Record {
	out := append([]attendance.Record(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// HistoryStats counts the marks of a record list. rate is nil when nothing
// is marked.
func HistoryStats(records []attendance.Record) (present, absent int, rate *int) {
	for _, rec := range records {
		switch rec.Status {
		case attendance.StatusPresent:
			present++
		case attendance.StatusAbsent:
			absent++
		}
	}
	if present+absent > 0 {
		r := AttendanceRate(present, absent)
		rate = &r
	}
	return present, absent, rate
}

// YearOptions lists n years counting back from the year of now.
func YearOptions(now time.Time, n int) []int {
	years := make([]int, 0, max(n, 0))
	for i := 0; i < n; i++ {
		years = append(years, now.Year()-i)
	}
	return years
}
