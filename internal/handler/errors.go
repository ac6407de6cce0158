package handler

import (
	"errors"
	"net/http"

	"aeromaint/internal/domain"
	"aeromaint/internal/httputil"
)

// respondDomainError maps domain errors to HTTP responses. Typed errors
// carry their own status code; the sentinel checks cover wrapped errors.
func respondDomainError(w http.ResponseWriter, err error) {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, "forbidden")
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// respondConflict surfaces a name collision together with the id of the
// entity already occupying the name, so clients can offer a resolution.
func respondConflict(w http.ResponseWriter, conflictErr *domain.ConflictError) {
	httputil.RespondErrorWithExtras(w, http.StatusConflict, conflictErr.Message, map[string]interface{}{
		"resource_type": conflictErr.ResourceType,
		"resource_id":   conflictErr.ResourceID,
	})
}
