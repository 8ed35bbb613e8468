package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/repository/cached"
)

type CacheHandler interface {
	Refresh(w http.ResponseWriter, r *http.Request)
	Statuses(w http.ResponseWriter, r *http.Request)
}

type cacheHandlerImpl struct {
	cache *cached.Repository
}

func NewCacheHandler(cache *cached.Repository) CacheHandler {
	return &cacheHandlerImpl{
		cache: cache,
	}
}

// Refresh handles POST /refresh
// Refetches the employee list, the summary and today's statuses before
// answering with the resulting query states.
func (h *cacheHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.cache.Refresh(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Data refreshed", h.cache.Statuses())
}

// Statuses handles GET /cache
func (h *cacheHandlerImpl) Statuses(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.cache.Statuses())
}
