package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ekaraca/bist-portfolio-backend/internal/api/response"
	"github.com/ekaraca/bist-portfolio-backend/internal/apperrors"
	"github.com/ekaraca/bist-portfolio-backend/internal/validation"
)

// parseJSON decodes a JSON request body into the given request type.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	err := json.NewDecoder(r.Body).Decode(&req)
	return req, err
}

// respondServiceError maps a service error onto the appropriate HTTP status:
// validation failures are 400, not-found sentinels 404, business conflicts 409,
// everything else the supplied fallback message with 500.
func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	var validationErr *validation.Error
	switch {
	case errors.As(err, &validationErr), errors.Is(err, validation.ErrInvalidUUID), errors.Is(err, validation.ErrEmptySlice):
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
	case isNotFound(err):
		response.RespondError(w, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, apperrors.ErrInsufficientHoldings),
		errors.Is(err, apperrors.ErrDuplicateEntry),
		errors.Is(err, apperrors.ErrInstrumentInUse):
		response.RespondError(w, http.StatusConflict, err.Error(), "")
	case errors.Is(err, apperrors.ErrAPIKeyMissing):
		response.RespondError(w, http.StatusPreconditionFailed, err.Error(), "")
	default:
		response.RespondError(w, http.StatusInternalServerError, fallback, err.Error())
	}
}

func isNotFound(err error) bool {
	for _, sentinel := range []error{
		apperrors.ErrInstrumentNotFound,
		apperrors.ErrPortfolioNotFound,
		apperrors.ErrPositionNotFound,
		apperrors.ErrTransactionNotFound,
		apperrors.ErrFundNotFound,
		apperrors.ErrFundShareNotFound,
		apperrors.ErrInvestorNotFound,
		apperrors.ErrInvestmentNotFound,
		apperrors.ErrSettingNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
