package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/passkeeper/internal/model"
	"github.com/dtroode/passkeeper/internal/testutil"
)

func TestHandleError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "validation error -> BadRequest",
			in:       fmt.Errorf("create: %w", model.NewValidationError("nonce", model.ErrInvalidNonce)),
			wantCode: http.StatusBadRequest,
			wantMsg:  "validation failed for nonce: invalid nonce provided",
		},
		{
			name:     "invalid sort key -> BadRequest",
			in:       model.ErrInvalidSortKey,
			wantCode: http.StatusBadRequest,
			wantMsg:  "invalid sort key",
		},
		{
			name:     "page size exceeded -> BadRequest",
			in:       model.ErrPageSizeExceeded,
			wantCode: http.StatusBadRequest,
			wantMsg:  "max pagination size exceeded",
		},
		{
			name:     "wrapped not found -> NotFound",
			in:       fmt.Errorf("failed to get record by id: %w", model.ErrNotFound),
			wantCode: http.StatusNotFound,
			wantMsg:  "record not found",
		},
		{
			name:     "storage error -> InternalServerError",
			in:       model.NewStorageError("save record", errors.New("dial tcp: connection refused")),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "internal server error",
		},
		{
			name:     "deadline exceeded -> ServiceUnavailable",
			in:       model.NewStorageError("save record", context.DeadlineExceeded),
			wantCode: http.StatusServiceUnavailable,
			wantMsg:  "request timed out",
		},
		{
			name:     "other -> InternalServerError",
			in:       errors.New("boom"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "internal server error",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			handleError(rec, testutil.MakeNoopLogger(), tt.in)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body messageResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}
