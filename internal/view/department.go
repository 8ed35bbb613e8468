package view

import (
	"sort"
	"strings"
	"unicode"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/employee"
)

// FindMatchingDepartment looks input up case-insensitively among known and
// returns the known label with its original casing.
func FindMatchingDepartment(input string, known []string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" {
		return "", false
	}
	for _, dept := range known {
		if strings.ToLower(dept) == needle {
			return dept, true
		}
	}
	return "", false
}

// CapitalizeWords upper-cases the first letter of every whitespace-separated
// word and lower-cases the rest. Separators are kept as they are.
func CapitalizeWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	start := true
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			start = true
		case start:
			r = unicode.ToUpper(r)
			start = false
		default:
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ResolveDepartment returns the label an employee is created under: the
// existing department when one matches, else the capitalised input, in
// which case isNew is true.
func ResolveDepartment(input string, known []string) (label string, isNew bool) {
	if match, ok := FindMatchingDepartment(input, known); ok {
		return match, false
	}
	return CapitalizeWords(strings.TrimSpace(input)), true
}

// Departments lists the distinct departments of employees in byte order.
func Departments(employees []employee.Employee) []string {
	seen := make(map[string]struct{}, len(employees))
	var out []string
	for _, emp := range employees {
		if _, ok := seen[emp.Department]; ok {
			continue
		}
		seen[emp.Department] = struct{}{}
		out = append(out, emp.Department)
	}
	sort.Strings(out)
	return out
}

// DepartmentCounts ranks departments by head count, largest first. Ties
// keep name order.
func DepartmentCounts(employees []employee.Employee) []employee.DepartmentCount {
	counts := make(map[string]int)
	for _, emp := range employees {
		counts[emp.Department]++
	}
	out := make([]employee.DepartmentCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, employee.DepartmentCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// DepartmentSuggestions filters known by case-insensitive substring. A
// blank input suggests everything.
func DepartmentSuggestions(input string, known []string) []string {
	if strings.TrimSpace(input) == "" {
		return append([]string(nil), known...)
	}
	q := strings.ToLower(input)
	var out []string
	for _, dept := range known {
		if strings.Contains(strings.ToLower(dept), q) {
			out = append(out, dept)
		}
	}
	return out
}
