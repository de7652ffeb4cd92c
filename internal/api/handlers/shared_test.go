package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ekaraca/bist-portfolio-backend/internal/apperrors"
	"github.com/ekaraca/bist-portfolio-backend/internal/validation"
)

// TestRespondServiceError tests the error-to-status mapping.
// This is an internal test (package handlers, not handlers_test) because
// respondServiceError is unexported.
func TestRespondServiceError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation error maps to 400", &validation.Error{Fields: map[string]string{"name": "name is required"}}, http.StatusBadRequest},
		{"invalid UUID maps to 400", validation.ErrInvalidUUID, http.StatusBadRequest},
		{"not-found sentinel maps to 404", apperrors.ErrPortfolioNotFound, http.StatusNotFound},
		{"wrapped not-found maps to 404", fmt.Errorf("lookup: %w", apperrors.ErrFundNotFound), http.StatusNotFound},
		{"insufficient holdings maps to 409", apperrors.ErrInsufficientHoldings, http.StatusConflict},
		{"duplicate entry maps to 409", apperrors.ErrDuplicateEntry, http.StatusConflict},
		{"instrument in use maps to 409", apperrors.ErrInstrumentInUse, http.StatusConflict},
		{"missing API key maps to 412", apperrors.ErrAPIKeyMissing, http.StatusPreconditionFailed},
		{"unknown error maps to 500", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			respondServiceError(w, tc.err, "fallback message")

			if w.Code != tc.status {
				t.Errorf("Expected status %d, got %d", tc.status, w.Code)
			}
		})
	}
}
