package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saulo-duarte/quizgen-lambda/internal/apperr"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"input", apperr.Input("user id is required"), http.StatusBadRequest, "invalid_input"},
		{"not found", apperr.NotFound("quiz", "x"), http.StatusNotFound, "not_found"},
		{"wrapped not found", fmt.Errorf("loading: %w", apperr.NotFound("attempt", "y")), http.StatusNotFound, "not_found"},
		{"no source", apperr.ErrNoStoredSource, http.StatusConflict, "no_stored_source"},
		{"generation failed", fmt.Errorf("%w: question count mismatch", apperr.ErrGenerationFailed), http.StatusUnprocessableEntity, "generation_failed"},
		{"unavailable", apperr.ErrGenerationUnavailable, http.StatusServiceUnavailable, "generation_unavailable"},
		{"partial", apperr.ErrPersistencePartialFailure, http.StatusInternalServerError, "persistence_partial_failure"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, code := apperr.Status(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, code)
		})
	}
}

func TestInputMessage(t *testing.T) {
	err := apperr.Input("unsupported file type %q", "text/plain")
	assert.ErrorIs(t, err, apperr.ErrInputValidation)
	assert.Equal(t, `invalid input: unsupported file type "text/plain"`, err.Error())
}
