package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInputValidation           = errors.New("invalid input")
	ErrGenerationFailed          = errors.New("quiz generation failed")
	ErrGenerationUnavailable     = errors.New("quiz generation unavailable")
	ErrNotFound                  = errors.New("not found")
	ErrPersistencePartialFailure = errors.New("persistence partially failed")
	ErrNoStoredSource            = errors.New("no stored source to regenerate from")
)

// Input wraps ErrInputValidation with a caller-facing message.
func Input(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInputValidation, fmt.Sprintf(format, args...))
}

// NotFound wraps ErrNotFound for the named entity.
func NotFound(entity, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, entity, id)
}

// Status maps an error onto an HTTP status and a stable machine code.
func Status(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusOK, ""
	case errors.Is(err, ErrInputValidation):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrNoStoredSource):
		return http.StatusConflict, "no_stored_source"
	case errors.Is(err, ErrGenerationFailed):
		return http.StatusUnprocessableEntity, "generation_failed"
	case errors.Is(err, ErrGenerationUnavailable):
		return http.StatusServiceUnavailable, "generation_unavailable"
	case errors.Is(err, ErrPersistencePartialFailure):
		return http.StatusInternalServerError, "persistence_partial_failure"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
