package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	Directory(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Departments(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
	}
}

// Directory implements EmployeeHandler
func (h *employeeHandlerImpl) Directory(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	filter := employee.DirectoryFilter{
		Search:     q.String("search"),
		Department: q.String("department"),
		Status:     q.String("status"),
		SortOrder:  q.String("sort_order"),
		Page:       q.Int("page"),
	}
	if err := q.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.employeeService.Directory(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements EmployeeHandler
func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", result)
}

// Delete implements EmployeeHandler
func (h *employeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employee_id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	if err := h.employeeService.DeleteEmployee(r.Context(), employeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// Departments implements EmployeeHandler
func (h *employeeHandlerImpl) Departments(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.Departments(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
