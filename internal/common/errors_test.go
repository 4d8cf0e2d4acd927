package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConstructorsCarryStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, BadRequest("x").StatusCode)
	assert.Equal(t, http.StatusUnauthorized, Unauthorized("x").StatusCode)
	assert.Equal(t, http.StatusForbidden, Forbidden("x").StatusCode)
	assert.Equal(t, http.StatusNotFound, NotFound("x").StatusCode)
	assert.Equal(t, http.StatusInternalServerError, ServerError("x").StatusCode)
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"app error", NotFound("Contact not found"), http.StatusNotFound},
		{
			"wrapped app error",
			fmt.Errorf("failed to load contact: %w", Forbidden("not yours")),
			http.StatusForbidden,
		},
		{
			"unique violation",
			fmt.Errorf("create user: %w", &pgconn.PgError{Code: "23505"}),
			http.StatusBadRequest,
		},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromError(tt.err))
		})
	}
}

func TestHasStatus(t *testing.T) {
	err := fmt.Errorf("wrap: %w", BadRequest("Invalid ID format"))
	assert.True(t, HasStatus(err, http.StatusBadRequest))
	assert.False(t, HasStatus(err, http.StatusNotFound))
}

func TestTitleForStatus(t *testing.T) {
	assert.Equal(t, "Validation Error", TitleForStatus(http.StatusBadRequest))
	assert.Equal(t, "Unauthorized", TitleForStatus(http.StatusUnauthorized))
	assert.Equal(t, "Forbidden", TitleForStatus(http.StatusForbidden))
	assert.Equal(t, "Not Found", TitleForStatus(http.StatusNotFound))
	assert.Equal(t, "Server Error", TitleForStatus(http.StatusInternalServerError))

	// Anything outside the taxonomy must still produce a title.
	assert.Equal(t, "Unknown Error", TitleForStatus(http.StatusTeapot))
}

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := errors.New("uuid is malformed")
	err := WrapError(http.StatusBadRequest, "Invalid ID format", cause)
	assert.Equal(t, "Invalid ID format: uuid is malformed", err.Error())
	assert.ErrorIs(t, err, cause)
}
