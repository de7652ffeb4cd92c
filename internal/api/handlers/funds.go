package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ekaraca/bist-portfolio-backend/internal/api/request"
	"github.com/ekaraca/bist-portfolio-backend/internal/api/response"
	"github.com/ekaraca/bist-portfolio-backend/internal/apperrors"
	"github.com/ekaraca/bist-portfolio-backend/internal/service"
)

// FundHandler handles HTTP requests for fund and fund share endpoints.
type FundHandler struct {
	fundService *service.FundService
}

// NewFundHandler creates a new FundHandler with the provided service dependency.
func NewFundHandler(fundService *service.FundService) *FundHandler {
	return &FundHandler{
		fundService: fundService,
	}
}

// Funds handles GET requests to list all funds.
//
// Endpoint: GET /api/fund
// Response: 200 OK with array of Fund
// Error: 500 Internal Server Error if retrieval fails
func (h *FundHandler) Funds(w http.ResponseWriter, _ *http.Request) {
	funds, err := h.fundService.GetAllFunds()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveFunds.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, funds)
}

// GetFund handles GET requests to retrieve a single fund.
//
// Endpoint: GET /api/fund/{uuid}
// Response: 200 OK with Fund
// Error: 404 Not Found if the fund does not exist
func (h *FundHandler) GetFund(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "uuid")

	fund, err := h.fundService.GetFund(fundID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveFunds.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, fund)
}

// CreateFund handles POST requests to create a fund.
//
// Endpoint: POST /api/fund
// Request Body: CreateFundRequest
// Response: 201 Created with Fund
// Error: 400 Bad Request if validation fails
func (h *FundHandler) CreateFund(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateFundRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	fund, err := h.fundService.CreateFund(req)
	if err != nil {
		respondServiceError(w, err, "failed to create fund")
		return
	}

	response.RespondJSON(w, http.StatusCreated, fund)
}

// UpdateFund handles PUT requests to update fund metadata. The value columns
// are maintained by aggregation and share issuance, never accepted here.
//
// Endpoint: PUT /api/fund/{uuid}
// Request Body: UpdateFundRequest (all fields optional)
// Response: 200 OK with updated Fund
// Error: 404 Not Found if the fund does not exist
func (h *FundHandler) UpdateFund(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateFundRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	fund, err := h.fundService.UpdateFund(fundID, req)
	if err != nil {
		respondServiceError(w, err, "failed to update fund")
		return
	}

	response.RespondJSON(w, http.StatusOK, fund)
}

// DeleteFund handles DELETE requests to remove a fund and its shares.
//
// Endpoint: DELETE /api/fund/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the fund does not exist
func (h *FundHandler) DeleteFund(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "uuid")

	if err := h.fundService.DeleteFund(fundID); err != nil {
		respondServiceError(w, err, "failed to delete fund")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// RecomputeFundValue handles POST requests to recompute a fund's current value
// from its linked portfolios. Funds without linked portfolios are unaffected.
//
// Endpoint: POST /api/fund/{uuid}/recompute
// Response: 200 OK with the refreshed Fund
// Error: 404 Not Found if the fund does not exist
func (h *FundHandler) RecomputeFundValue(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "uuid")

	fund, err := h.fundService.UpdateValueFromPortfolios(r.Context(), fundID)
	if err != nil {
		respondServiceError(w, err, "failed to recompute fund value")
		return
	}

	response.RespondJSON(w, http.StatusOK, fund)
}

// FundShares handles GET requests to list a fund's shares with read-time valuations.
//
// Endpoint: GET /api/fund/{uuid}/shares
// Response: 200 OK with array of FundShareValue
// Error: 404 Not Found if the fund does not exist
func (h *FundHandler) FundShares(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "uuid")

	shares, err := h.fundService.GetFundShares(fundID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveFundShares.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, shares)
}

// CreateFundShare handles POST requests to issue shares to an investor. The
// share count is derived from the investment amount at the prevailing share
// price and never accepted from the caller.
//
// Endpoint: POST /api/fund/share
// Request Body: CreateFundShareRequest
// Response: 201 Created with FundShare
// Error: 409 Conflict if the investor already holds shares in the fund
func (h *FundHandler) CreateFundShare(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateFundShareRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	share, err := h.fundService.CreateShare(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "failed to create fund share")
		return
	}

	response.RespondJSON(w, http.StatusCreated, share)
}

// UpdateFundShare handles PUT requests to adjust a share's recorded investment.
//
// Endpoint: PUT /api/fund/share/{uuid}
// Request Body: UpdateFundShareRequest
// Response: 200 OK with updated FundShare
// Error: 404 Not Found if the share does not exist
func (h *FundHandler) UpdateFundShare(w http.ResponseWriter, r *http.Request) {
	shareID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateFundShareRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	share, err := h.fundService.UpdateShare(r.Context(), shareID, req)
	if err != nil {
		respondServiceError(w, err, "failed to update fund share")
		return
	}

	response.RespondJSON(w, http.StatusOK, share)
}

// DeleteFundShare handles DELETE requests to redeem an investor's shares.
// The fund's value columns are decremented and clamped at zero.
//
// Endpoint: DELETE /api/fund/share/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the share does not exist
func (h *FundHandler) DeleteFundShare(w http.ResponseWriter, r *http.Request) {
	shareID := chi.URLParam(r, "uuid")

	if err := h.fundService.DeleteShare(r.Context(), shareID); err != nil {
		respondServiceError(w, err, "failed to delete fund share")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
