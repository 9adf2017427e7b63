package dto

import (
	"errors"
	"net/http"

	"github.com/erp/catalog/internal/domain/shared"
)

// Fixed error messages
const (
	MsgInternalError   = "Internal Server Error"
	MsgRouteNotFound   = "Route not found"
	MsgBodyTooLarge    = "Request body exceeds maximum allowed size"
	MsgInvalidJSONBody = "Invalid JSON body"
)

// NormalizeError maps any error onto a status code and error body.
// Outside production unexpected errors keep their raw message.
func NormalizeError(err error, production bool) (int, ErrorBody) {
	var (
		validationErr *shared.ValidationError
		duplicateErr  *shared.DuplicateKeyError
		domainErr     *shared.DomainError
		maxBytesErr   *http.MaxBytesError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, NewErrorBody(http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &duplicateErr):
		return http.StatusBadRequest, NewErrorBody(http.StatusBadRequest, duplicateErr.Error())
	case errors.Is(err, shared.ErrNotFound):
		msg := shared.ErrNotFound.Message
		if errors.As(err, &domainErr) {
			msg = domainErr.Message
		}
		return http.StatusNotFound, NewErrorBody(http.StatusNotFound, msg)
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge, NewErrorBody(http.StatusRequestEntityTooLarge, MsgBodyTooLarge)
	}

	msg := MsgInternalError
	if !production && err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return http.StatusInternalServerError, NewErrorBody(http.StatusInternalServerError, msg)
}
