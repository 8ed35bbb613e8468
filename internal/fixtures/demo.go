package fixtures

import (
	"math/rand/v2"
	"time"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/employee"
)

// ==========================================
// DEMO DATASET
// ==========================================

// DemoEmployees is the default roster loaded by the seed command
func DemoEmployees() []employee.CreateEmployeeRequest {
	return []employee.CreateEmployeeRequest{
		{EmployeeID: "EMP001", FullName: "Aarav Sharma", Email: "aarav.sharma@company.in", Department: "Engineering"},
		{EmployeeID: "EMP002", FullName: "Priya Patel", Email: "priya.patel@company.in", Department: "Engineering"},
		{EmployeeID: "EMP003", FullName: "Rohan Gupta", Email: "rohan.gupta@company.in", Department: "Design"},
		{EmployeeID: "EMP004", FullName: "Ananya Iyer", Email: "ananya.iyer@company.in", Department: "Marketing"},
		{EmployeeID: "EMP005", FullName: "Vikram Singh", Email: "vikram.singh@company.in", Department: "Engineering"},
		{EmployeeID: "EMP006", FullName: "Neha Reddy", Email: "neha.reddy@company.in", Department: "HR"},
		{EmployeeID: "EMP007", FullName: "Arjun Nair", Email: "arjun.nair@company.in", Department: "Finance"},
		{EmployeeID: "EMP008", FullName: "Kavya Joshi", Email: "kavya.joshi@company.in", Department: "Design"},
		{EmployeeID: "EMP009", FullName: "Rahul Verma", Email: "rahul.verma@company.in", Department: "Marketing"},
		{EmployeeID: "EMP010", FullName: "Meera Kulkarni", Email: "meera.kulkarni@company.in", Department: "HR"},
		{EmployeeID: "EMP011", FullName: "Aditya Mehta", Email: "aditya.mehta@company.in", Department: "Engineering"},
		{EmployeeID: "EMP012", FullName: "Shreya Banerjee", Email: "shreya.banerjee@company.in", Department: "Finance"},
	}
}

// DemoAttendance marks every employee on each weekday of the last days days
// up to and including today. Each mark is Present with probability
// presentRatio.
func DemoAttendance(employeeIDs []string, today time.Time, days int, presentRatio float64, rng *rand.Rand) []attendance.MarkAttendanceRequest {
	var marks []attendance.MarkAttendanceRequest
	for _, id := range employeeIDs {
		for daysAgo := 0; daysAgo < days; daysAgo++ {
			d := today.AddDate(0, 0, -daysAgo)
			if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
				continue
			}
			status := attendance.StatusAbsent
			if rng.Float64() < presentRatio {
				status = attendance.StatusPresent
			}
			marks = append(marks, attendance.MarkAttendanceRequest{
				EmployeeID: id,
				Date:       attendance.FormatDate(d),
				Status:     status,
			})
		}
	}
	return marks
}
