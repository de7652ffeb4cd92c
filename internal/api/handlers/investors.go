package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ekaraca/bist-portfolio-backend/internal/api/request"
	"github.com/ekaraca/bist-portfolio-backend/internal/api/response"
	"github.com/ekaraca/bist-portfolio-backend/internal/apperrors"
	"github.com/ekaraca/bist-portfolio-backend/internal/service"
)

// InvestorHandler handles HTTP requests for investor endpoints.
type InvestorHandler struct {
	investorService   *service.InvestorService
	investmentService *service.InvestmentService
}

// NewInvestorHandler creates a new InvestorHandler with the provided service dependencies.
func NewInvestorHandler(
	investorService *service.InvestorService,
	investmentService *service.InvestmentService,
) *InvestorHandler {
	return &InvestorHandler{
		investorService:   investorService,
		investmentService: investmentService,
	}
}

// Investors handles GET requests to list all investors.
//
// Endpoint: GET /api/investor
// Response: 200 OK with array of Investor
// Error: 500 Internal Server Error if retrieval fails
func (h *InvestorHandler) Investors(w http.ResponseWriter, _ *http.Request) {
	investors, err := h.investorService.GetInvestors()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveInvestors.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, investors)
}

// GetInvestor handles GET requests to retrieve a single investor.
//
// Endpoint: GET /api/investor/{uuid}
// Response: 200 OK with Investor
// Error: 404 Not Found if the investor does not exist
func (h *InvestorHandler) GetInvestor(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "uuid")

	investor, err := h.investorService.GetInvestor(investorID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveInvestors.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, investor)
}

// InvestorSummary handles GET requests for an investor's cached total against
// the current value of their fund shares.
//
// Endpoint: GET /api/investor/{uuid}/summary
// Response: 200 OK with InvestorSummary
// Error: 404 Not Found if the investor does not exist
func (h *InvestorHandler) InvestorSummary(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "uuid")

	summary, err := h.investorService.GetInvestorSummary(investorID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveInvestors.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// InvestorShares handles GET requests for an investor's fund shares with
// read-time valuations.
//
// Endpoint: GET /api/investor/{uuid}/shares
// Response: 200 OK with array of FundShareValue
// Error: 404 Not Found if the investor does not exist
func (h *InvestorHandler) InvestorShares(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "uuid")

	shares, err := h.investorService.GetInvestorShares(investorID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveFundShares.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, shares)
}

// InvestorInvestments handles GET requests for an investor's cash
// contributions, newest first.
//
// Endpoint: GET /api/investor/{uuid}/investments
// Response: 200 OK with array of Investment
// Error: 404 Not Found if the investor does not exist
func (h *InvestorHandler) InvestorInvestments(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "uuid")

	investments, err := h.investmentService.GetInvestmentsByInvestorID(investorID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveInvestments.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, investments)
}

// CreateInvestor handles POST requests to create an investor.
//
// Endpoint: POST /api/investor
// Request Body: CreateInvestorRequest
// Response: 201 Created with Investor
// Error: 400 Bad Request if validation fails
func (h *InvestorHandler) CreateInvestor(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateInvestorRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	investor, err := h.investorService.CreateInvestor(req)
	if err != nil {
		respondServiceError(w, err, "failed to create investor")
		return
	}

	response.RespondJSON(w, http.StatusCreated, investor)
}

// UpdateInvestor handles PUT requests to update an investor. Switching
// invested_source recomputes the cached total from the new source.
//
// Endpoint: PUT /api/investor/{uuid}
// Request Body: UpdateInvestorRequest (all fields optional)
// Response: 200 OK with updated Investor
// Error: 404 Not Found if the investor does not exist
func (h *InvestorHandler) UpdateInvestor(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateInvestorRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	investor, err := h.investorService.UpdateInvestor(r.Context(), investorID, req)
	if err != nil {
		respondServiceError(w, err, "failed to update investor")
		return
	}

	response.RespondJSON(w, http.StatusOK, investor)
}

// DeleteInvestor handles DELETE requests to remove an investor along with
// their investments and fund shares.
//
// Endpoint: DELETE /api/investor/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the investor does not exist
func (h *InvestorHandler) DeleteInvestor(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "uuid")

	if err := h.investorService.DeleteInvestor(investorID); err != nil {
		respondServiceError(w, err, "failed to delete investor")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// RecomputeInvestor handles POST requests to force a recompute of an
// investor's cached total from their configured source.
//
// Endpoint: POST /api/investor/{uuid}/recompute
// Response: 200 OK with the refreshed Investor
// Error: 404 Not Found if the investor does not exist
func (h *InvestorHandler) RecomputeInvestor(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "uuid")

	investor, err := h.investorService.Recompute(r.Context(), investorID)
	if err != nil {
		respondServiceError(w, err, "failed to recompute investor")
		return
	}

	response.RespondJSON(w, http.StatusOK, investor)
}
