package utils

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mrmelo_sanctuary/models"
)

type testError struct {
	status int
	code   int
}

func (e *testError) Error() string   { return "bad thing" }
func (e *testError) HTTPStatus() int { return e.status }
func (e *testError) ErrorCode() int  { return e.code }

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "client error uses its own message without wrapping context",
			err:        fmt.Errorf("wrapped: %w", &testError{status: http.StatusBadRequest, code: models.CodeInvalidParams}),
			wantStatus: http.StatusBadRequest,
			wantBody:   `"error": "bad thing"`,
		},
		{
			name:       "server error hides detail",
			err:        &testError{status: http.StatusBadGateway, code: models.CodeInferenceError},
			wantStatus: http.StatusBadGateway,
			wantBody:   `"error": "failed to generate analysis"`,
		},
		{
			name:       "no rows",
			err:        fmt.Errorf("lookup: %w", sql.ErrNoRows),
			wantStatus: http.StatusNotFound,
			wantBody:   `"code": 1002`,
		},
		{
			name:       "unknown",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `"code": 2000`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteServiceError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestWriteSuccessResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccessResponse(rec, map[string]int{"total": 3})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total":3}`, rec.Body.String())
}

func TestClassifyError_DropsWrappingContext(t *testing.T) {
	err := fmt.Errorf("load writing w9: %w", &testError{status: http.StatusNotFound, code: models.CodeContentNotFound})

	status, code, message := ClassifyError(err)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, models.CodeContentNotFound, code)
	assert.Equal(t, "bad thing", message)
}
