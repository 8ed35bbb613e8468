package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/filter"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/cache"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/gateway"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/inflight"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/validator"
)

// HandleError maps domain and upstream errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Upstream errors
	var upstreamValidation *gateway.ValidationError
	if errors.As(err, &upstreamValidation) {
		if upstreamValidation.Status == http.StatusConflict {
			ConflictWithDetails(w, "CONFLICT", upstreamValidation.Message, upstreamValidation.Details())
			return
		}
		ValidationErrorWithMessage(w, upstreamValidation.Message, upstreamValidation.Details())
		return
	}

	var notFound *gateway.NotFoundError
	if errors.As(err, &notFound) {
		NotFound(w, notFound.Error())
		return
	}

	var network *gateway.NetworkError
	if errors.As(err, &network) {
		slog.Warn("HRMS API unreachable", "error", err)
		BadGateway(w, "NETWORK_ERROR", "Unable to reach the HRMS service. Please try again.", network.Retryable())
		return
	}

	var upstream *gateway.APIError
	if errors.As(err, &upstream) {
		slog.Warn("HRMS API error", "status", upstream.StatusCode, "error", err)
		BadGateway(w, "UPSTREAM_ERROR", upstream.Message, false)
		return
	}

	switch {
	case errors.Is(err, inflight.ErrMutationInFlight):
		ConflictWithDetails(w, "MUTATION_IN_FLIGHT", err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidTransition):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// Filter and cache lookups
	case errors.Is(err, filter.ErrUnknownView):
		NotFound(w, err.Error())
	case errors.Is(err, cache.ErrUnknownKey):
		NotFound(w, err.Error())

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
