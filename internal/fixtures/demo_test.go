package fixtures

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/employee"
)

func TestDemoEmployees_AreValidAndUnique(t *testing.T) {
	ids := map[string]bool{}
	emails := map[string]bool{}
	for _, e := range DemoEmployees() {
		assert.NoError(t, e.Validate(), e.EmployeeID)
		assert.False(t, ids[e.EmployeeID])
		assert.False(t, emails[e.Email])
		ids[e.EmployeeID] = true
		emails[e.Email] = true
	}
	assert.Len(t, ids, 12)
}

func TestDemoAttendance_SkipsWeekends(t *testing.T) {
	// Friday
	today := time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewPCG(1, 2))

	marks := DemoAttendance([]string{"EMP001", "EMP002"}, today, 14, 0.85, rng)

	// 14 days back from a Friday cover 10 weekdays
	assert.Len(t, marks, 20)
	for _, m := range marks {
		d, err := time.Parse(attendance.DateLayout, m.Date)
		require.NoError(t, err)
		assert.NotEqual(t, time.Saturday, d.Weekday())
		assert.NotEqual(t, time.Sunday, d.Weekday())
		assert.True(t, m.Status.IsMarkable())
	}
}

func TestMemory_UpstreamSemantics(t *testing.T) {
	// Setup
	ctx := context.Background()
	now := func() time.Time { return time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC) }
	m := NewMemory(now)
	repo := m.AttendanceRepo()

	// Act
	_, err := m.Create(ctx, employee.CreateEmployeeRequest{EmployeeID: "E1", FullName: "A", Email: "a@x.io", Department: "HR"})
	require.NoError(t, err)
	_, dupErr := m.Create(ctx, employee.CreateEmployeeRequest{EmployeeID: "E1", Email: "b@x.io"})
	_, err = repo.Mark(ctx, attendance.MarkAttendanceRequest{EmployeeID: "E1", Date: "2026-10-16", Status: attendance.StatusPresent})
	require.NoError(t, err)
	_, err = repo.Mark(ctx, attendance.MarkAttendanceRequest{EmployeeID: "E1", Date: "2026-10-16", Status: attendance.StatusAbsent})
	require.NoError(t, err)
	summary, _ := repo.Summary(ctx)
	records, _ := repo.List(ctx, "E1", attendance.DateRange{})
	delErr := m.Delete(ctx, "E2")

	// Assert
	assert.ErrorIs(t, dupErr, employee.ErrEmployeeIDExists)
	assert.Equal(t, attendance.Summary{TotalEmployees: 1, AbsentToday: 1}, summary)
	require.Len(t, records, 1)
	assert.Equal(t, attendance.StatusAbsent, records[0].Status)
	assert.ErrorIs(t, delErr, employee.ErrEmployeeNotFound)
}
