package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AttendanceHandler interface {
	TodayBoard(w http.ResponseWriter, r *http.Request)
	MarkToday(w http.ResponseWriter, r *http.Request)
	Mark(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	ExportToday(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

func parseBoardFilter(r *http.Request) (attendance.BoardFilter, error) {
	q := newQueryParams(r)
	filter := attendance.BoardFilter{
		Search:     q.String("search"),
		Department: q.String("department"),
		Status:     q.String("status"),
		Page:       q.Int("page"),
		PageSize:   q.PageSize("page_size"),
	}
	return filter, q.Err()
}

// TodayBoard implements AttendanceHandler.
func (h *attendanceHandlerImpl) TodayBoard(w http.ResponseWriter, r *http.Request) {
	filter, err := parseBoardFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.TodayBoard(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MarkToday implements AttendanceHandler.
func (h *attendanceHandlerImpl) MarkToday(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employee_id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	var req attendance.MarkTodayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.MarkToday(r.Context(), employeeID, req.Status)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance marked successfully", result)
}

// Mark implements AttendanceHandler.
func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.MarkAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance marked successfully", result)
}

// History implements AttendanceHandler.
func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	filter := attendance.HistoryFilter{
		EmployeeID: chi.URLParam(r, "employee_id"),
		Month:      q.String("month"),
		Year:       q.String("year"),
		Status:     q.String("status"),
		Page:       q.Int("page"),
		PageSize:   q.PageSize("page_size"),
	}
	if err := q.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.History(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportToday implements AttendanceHandler.
func (h *attendanceHandlerImpl) ExportToday(w http.ResponseWriter, r *http.Request) {
	filter, err := parseBoardFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	data, err := h.attendanceService.ExportToday(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("attendance-%s.xlsx", time.Now().Format(attendance.DateLayout))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Warn("Failed to write export", "error", err)
	}
}
