package view

import (
	"slices"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/employee"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Toggle flips the order; anything unknown becomes descending, as if it
// had been ascending.
func (o SortOrder) Toggle() SortOrder {
	if o == SortDesc {
		return SortAsc
	}
	return SortDesc
}

func (o SortOrder) Valid() bool {
	return o == SortAsc || o == SortDesc
}

// newCollator returns an English collator. A Collator is not safe for
// concurrent use, so every sort builds its own.
func newCollator() *collate.Collator {
	return collate.New(language.English)
}

// SortByName returns a copy of items stably ordered by the locale-aware
// collation of name(item).
func SortByName[T any](items []T, name func(T) string, order SortOrder) []T {
	out := slices.Clone(items)
	c := newCollator()
	sort.SliceStable(out, func(i, j int) bool {
		cmp := c.CompareString(name(out[i]), name(out[j]))
		if order == SortDesc {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}

// EmployeeName is the name accessor for SortByName over employees.
func EmployeeName(e employee.Employee) string { return e.FullName }

// ViewName is the name accessor for SortByName over EmployeeView.
func ViewName(v EmployeeView) string { return v.FullName }

type BarPeriod string

const (
	BarPeriodAll  BarPeriod = "all"
	BarPeriodTop5 BarPeriod = "top5"
	BarPeriodTop3 BarPeriod = "top3"
)

func (p BarPeriod) Valid() bool {
	return p == BarPeriodAll || p == BarPeriodTop5 || p == BarPeriodTop3
}

type BarSort string

const (
	BarSortCountDesc BarSort = "count-desc"
	BarSortCountAsc  BarSort = "count-asc"
	BarSortNameAsc   BarSort = "name-asc"
)

func (s BarSort) Valid() bool {
	return s == BarSortCountDesc || s == BarSortCountAsc || s == BarSortNameAsc
}

// DepartmentBars computes the department head-count chart. A selected
// department shows only its own bar. Otherwise the top-N cut is taken from
// the count-descending ranking before the requested sort is applied.
func DepartmentBars(employees []employee.Employee, selected string, period BarPeriod, by BarSort) []employee.DepartmentCount {
	ranked := DepartmentCounts(employees)

	if !isAll(selected) {
		for _, d := range ranked {
			if d.Name == selected {
				return []employee.DepartmentCount{d}
			}
		}
		return []employee.DepartmentCount{}
	}

	switch period {
	case BarPeriodTop5:
		ranked = ranked[:min(5, len(ranked))]
	case BarPeriodTop3:
		ranked = ranked[:min(3, len(ranked))]
	}

	switch by {
	case BarSortCountAsc:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Count < ranked[j].Count
		})
	case BarSortNameAsc:
		ranked = SortByName(ranked, func(d employee.DepartmentCount) string { return d.Name }, SortAsc)
	}
	return ranked
}
