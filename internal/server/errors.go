package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-latex/internal/rendering"
	"github.com/jonathan/resume-latex/internal/store"
	"github.com/jonathan/resume-latex/internal/types"
)

// ErrDraftNotFound indicates no draft has been saved yet
type ErrDraftNotFound struct{}

func (e *ErrDraftNotFound) Error() string {
	return "no saved draft"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrPayloadTooLarge indicates the request body exceeded the input limit
type ErrPayloadTooLarge struct {
	Limit int64
}

func (e *ErrPayloadTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case nil:
		return http.StatusOK
	case *ErrDraftNotFound:
		return http.StatusNotFound
	case *ErrValidation, *types.ValidationError:
		return http.StatusBadRequest
	case *ErrPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case *rendering.TemplateError, *rendering.RenderError:
		return http.StatusInternalServerError
	}

	switch {
	case errors.Is(err, store.ErrInvalidExport):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrCorruptDraft):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
