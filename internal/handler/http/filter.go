package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/filter"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type FilterHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
}

type filterHandlerImpl struct {
	filterService filter.FilterService
}

func NewFilterHandler(filterService filter.FilterService) FilterHandler {
	return &filterHandlerImpl{
		filterService: filterService,
	}
}

// Get implements FilterHandler.
func (h *filterHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	v, err := filter.ParseView(chi.URLParam(r, "view"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	state, err := h.filterService.Get(v)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, state)
}

// Update implements FilterHandler.
func (h *filterHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	v, err := filter.ParseView(chi.URLParam(r, "view"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req filter.UpdateFilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	state, err := h.filterService.Update(v, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Filters updated", state)
}

// Reset implements FilterHandler.
func (h *filterHandlerImpl) Reset(w http.ResponseWriter, r *http.Request) {
	v, err := filter.ParseView(chi.URLParam(r, "view"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	state, err := h.filterService.Reset(v)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Filters reset", state)
}
