package http

import (
	"errors"
	"net/http"

	"github.com/ireporter/ireporter/internal/adapter/http/response"
	"github.com/ireporter/ireporter/internal/domain"
	"github.com/ireporter/ireporter/internal/service/logger"
)

// writeDomainError translates the core's typed errors into HTTP responses.
// The core has exhausted its contract once it returned the right kind; this
// is the single place that decides status codes and user-facing wording.
func writeDomainError(w http.ResponseWriter, log logger.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(w, "Record not found")
	case errors.Is(err, domain.ErrForbidden):
		response.Forbidden(w, "You are not allowed to perform this action")
	case errors.Is(err, domain.ErrRecordLocked):
		response.Conflict(w, "Record is no longer editable")
	case errors.Is(err, domain.ErrInvalidTransition):
		response.UnprocessableEntity(w, "Invalid status transition")
	case errors.Is(err, domain.ErrEmptyComment):
		response.UnprocessableEntity(w, "A comment is required when changing status")
	case errors.Is(err, domain.ErrConflict):
		response.Conflict(w, "Record was modified concurrently, retry")
	case errors.Is(err, domain.ErrValidation):
		response.UnprocessableEntity(w, err.Error())
	default:
		if log != nil {
			log.Error("unhandled error", err, nil)
		}
		response.InternalServerError(w, "Something went wrong")
	}
}
