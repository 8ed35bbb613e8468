package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/config"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/employee"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.HRMSAPIConfig{BaseURL: srv.URL, Timeout: 2 * time.Second})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_ListEmployees_Success(t *testing.T) {
	// Setup
	var requestID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/employees", r.URL.Path)
		requestID = r.Header.Get("X-Request-ID")
		writeJSON(w, http.StatusOK, []map[string]any{
			{"employee_id": "EMP001", "full_name": "Aarav Sharma", "email": "aarav@example.com",
				"department": "Engineering", "created_at": "2026-10-01T08:30:00.123456"},
			{"employee_id": "EMP002", "full_name": "Diya Patel", "email": "diya@example.com",
				"department": "Design"},
		})
	})

	// Act
	employees, err := client.ListEmployees(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, "Aarav Sharma", employees[0].FullName)
	require.NotNil(t, employees[0].CreatedAt)
	assert.Equal(t, 2026, employees[0].CreatedAt.Year())
	assert.Nil(t, employees[1].CreatedAt)
	_, err = uuid.Parse(requestID)
	assert.NoError(t, err, "every request carries a uuid X-Request-ID")
}

func TestClient_ListAttendance_OmitsEmptyRange(t *testing.T) {
	// Setup
	var queries []string
	var mu sync.Mutex
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		queries = append(queries, r.URL.RawQuery)
		mu.Unlock()
		writeJSON(w, http.StatusOK, []any{})
	})

	// Act
	all, err := client.ListAttendance(context.Background(), "EMP001", attendance.DateRange{})
	require.NoError(t, err)
	_, err = client.ListAttendance(context.Background(), "EMP001", attendance.Day("2026-10-16"))
	require.NoError(t, err)

	// Assert
	assert.Empty(t, all)
	assert.NotNil(t, all)
	assert.Equal(t, []string{"", "end_date=2026-10-16&start_date=2026-10-16"}, queries)
}

func TestClient_ListAttendance_DropsRowsOutsideRange(t *testing.T) {
	// Setup
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []attendance.RecordResponse{
			{EmployeeID: "EMP001", Date: "2026-09-30", Status: attendance.StatusAbsent},
			{EmployeeID: "EMP001", Date: "2026-10-01", Status: attendance.StatusPresent},
			{EmployeeID: "EMP001", Date: "2026-10-31", Status: attendance.StatusAbsent},
			{EmployeeID: "EMP001", Date: "2026-11-01", Status: attendance.StatusPresent},
		})
	})

	// Act
	month, err := client.ListAttendance(context.Background(), "EMP001", attendance.DateRange{StartDate: "2026-10-01", EndDate: "2026-10-31"})
	require.NoError(t, err)
	all, err := client.ListAttendance(context.Background(), "EMP001", attendance.DateRange{})
	require.NoError(t, err)

	// Assert
	require.Len(t, month, 2)
	assert.Equal(t, "2026-10-01", month[0].Date)
	assert.Equal(t, "2026-10-31", month[1].Date)
	assert.Len(t, all, 4)
}

func TestClient_MarkAttendance_PostsUpsert(t *testing.T) {
	// Setup
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/attendance/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"employee_id": "EMP003", "date": "2026-10-16", "status": "Absent"}, body)
		writeJSON(w, http.StatusCreated, body)
	})

	// Act
	rec, err := client.MarkAttendance(context.Background(), attendance.MarkAttendanceRequest{
		EmployeeID: "EMP003", Date: "2026-10-16", Status: attendance.StatusAbsent,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, attendance.Record{EmployeeID: "EMP003", Date: "2026-10-16", Status: attendance.StatusAbsent}, rec)
}

func TestClient_GetAttendanceSummary(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/attendance/summary", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]int{"total_employees": 12, "present_today": 9, "absent_today": 2})
	})

	summary, err := client.GetAttendanceSummary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, attendance.Summary{TotalEmployees: 12, PresentToday: 9, AbsentToday: 2}, summary)
}

// Test duplicate email detection through the free-text fallback
func TestClient_CreateEmployee_DuplicateEmail(t *testing.T) {
	// Setup
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]string{
			"detail": "Employee with email 'a@b.co' already exists",
		})
	})

	// Act
	_, err := client.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{EmployeeID: "E9", Email: "a@b.co"})

	// Assert
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
	assert.Equal(t, http.StatusConflict, verr.Status)
	assert.ErrorIs(t, err, employee.ErrEmailExists)
	assert.Equal(t, map[string]string{"email": "Employee with email 'a@b.co' already exists"}, verr.Details())
}

func TestClient_CreateEmployee_DuplicateID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]string{
			"detail": "Employee with ID 'E9' already exists",
		})
	})

	_, err := client.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{EmployeeID: "E9"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "employee_id", verr.Field)
	assert.ErrorIs(t, err, employee.ErrEmployeeIDExists)
}

// Test structured field attribution wins over the text heuristic
func TestClient_CreateEmployee_StructuredField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]string{
			"field":   "full_name",
			"message": "name collides with an existing email id",
		})
	})

	_, err := client.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "full_name", verr.Field)
	assert.NotErrorIs(t, err, employee.ErrEmailExists)
}

func TestClient_CreateEmployee_LocatedDetails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{
				{"loc": []any{"body", "email"}, "msg": "value is not a valid email address"},
				{"loc": []any{"body", "department"}, "msg": "String should have at least 1 character"},
			},
		})
	})

	_, err := client.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
	assert.Equal(t, map[string]string{
		"email":      "value is not a valid email address",
		"department": "String should have at least 1 character",
	}, verr.Details())
}

func TestClient_CreateEmployee_UnattributedRejection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Payload too large"})
	})

	_, err := client.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, verr.Field)
	assert.Equal(t, map[string]string{GeneralField: "Payload too large"}, verr.Details())
}

func TestClient_DeleteEmployee_NotFound(t *testing.T) {
	// Setup
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/employees/EMP404", r.URL.Path)
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Employee with ID 'EMP404' not found"})
	})

	// Act
	err := client.DeleteEmployee(context.Background(), "EMP404")

	// Assert
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "EMP404", nf.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.Equal(t, "Employee with ID 'EMP404' not found", err.Error())
}

func TestClient_ServerError_IsNetworkError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := client.GetAttendanceSummary(context.Background())

	var nerr *NetworkError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, http.StatusBadGateway, nerr.StatusCode)
	assert.True(t, nerr.Retryable())
}

func TestClient_Unreachable_IsNetworkError(t *testing.T) {
	// Setup
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()
	client := NewClientWithHTTP(base, &http.Client{Timeout: time.Second})

	// Act
	_, err := client.ListEmployees(context.Background())

	// Assert
	var nerr *NetworkError
	require.ErrorAs(t, err, &nerr)
	assert.Zero(t, nerr.StatusCode)
	assert.True(t, nerr.Retryable())
}

func TestClient_CanceledContext_NotRetryable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListEmployees(ctx)

	var nerr *NetworkError
	require.ErrorAs(t, err, &nerr)
	assert.False(t, nerr.Retryable())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClient_UnexpectedStatus_IsAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusTeapot, map[string]string{"detail": "short and stout"})
	})

	_, err := client.ListEmployees(context.Background())

	var aerr *APIError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, http.StatusTeapot, aerr.StatusCode)
	assert.Equal(t, "short and stout", aerr.Message)
}

func TestGuessField(t *testing.T) {
	assert.Equal(t, "email", guessField("Email id already used"))
	assert.Equal(t, "employee_id", guessField("Employee with ID 'X' already exists"))
	assert.Equal(t, "", guessField("Department is closed"))
}
