package response

import (
	"errors"
	"net/http"

	"github.com/edvin/tradelink/internal/core"
)

// WriteServiceError maps well-known service errors to HTTP status codes.
// Anything unrecognized becomes a 500 with a generic message so internal
// details never leak to clients.
func WriteServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, core.ErrAlreadyExists):
		WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, core.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, core.ErrNotSupplier), errors.Is(err, core.ErrNotParticipant):
		WriteError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, core.ErrTooManyImages):
		WriteError(w, http.StatusBadRequest, err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
