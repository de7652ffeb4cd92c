package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ekaraca/bist-portfolio-backend/internal/api/request"
	"github.com/ekaraca/bist-portfolio-backend/internal/api/response"
	"github.com/ekaraca/bist-portfolio-backend/internal/service"
)

// InvestmentHandler handles HTTP requests for cash-contribution endpoints.
type InvestmentHandler struct {
	investmentService *service.InvestmentService
}

// NewInvestmentHandler creates a new InvestmentHandler with the provided service dependency.
func NewInvestmentHandler(investmentService *service.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{
		investmentService: investmentService,
	}
}

// CreateInvestment handles POST requests to record a contribution. The owning
// investor's cached total is refreshed in the same database transaction.
//
// Endpoint: POST /api/investment
// Request Body: CreateInvestmentRequest
// Response: 201 Created with Investment
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the investor does not exist
func (h *InvestmentHandler) CreateInvestment(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateInvestmentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	investment, err := h.investmentService.CreateInvestment(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "failed to create investment")
		return
	}

	response.RespondJSON(w, http.StatusCreated, investment)
}

// UpdateInvestment handles PUT requests to correct a contribution.
//
// Endpoint: PUT /api/investment/{uuid}
// Request Body: UpdateInvestmentRequest (all fields optional)
// Response: 200 OK with updated Investment
// Error: 404 Not Found if the investment does not exist
func (h *InvestmentHandler) UpdateInvestment(w http.ResponseWriter, r *http.Request) {
	investmentID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateInvestmentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	investment, err := h.investmentService.UpdateInvestment(r.Context(), investmentID, req)
	if err != nil {
		respondServiceError(w, err, "failed to update investment")
		return
	}

	response.RespondJSON(w, http.StatusOK, investment)
}

// DeleteInvestment handles DELETE requests to remove a single contribution.
//
// Endpoint: DELETE /api/investment/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the investment does not exist
func (h *InvestmentHandler) DeleteInvestment(w http.ResponseWriter, r *http.Request) {
	investmentID := chi.URLParam(r, "uuid")

	if err := h.investmentService.DeleteInvestment(r.Context(), investmentID); err != nil {
		respondServiceError(w, err, "failed to delete investment")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// BulkDeleteResponse reports how many contributions a bulk delete removed.
type BulkDeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

// BulkDeleteInvestments handles POST requests to delete several contributions
// in one transaction. Each affected investor's cached total is recomputed
// exactly once regardless of how many of their rows were removed.
//
// Endpoint: POST /api/investment/bulk-delete
// Request Body: BulkDeleteInvestmentsRequest
// Response: 200 OK with BulkDeleteResponse
// Error: 400 Bad Request if the ID list is empty or contains invalid UUIDs
func (h *InvestmentHandler) BulkDeleteInvestments(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.BulkDeleteInvestmentsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	deleted, err := h.investmentService.BulkDeleteInvestments(r.Context(), req.IDs)
	if err != nil {
		respondServiceError(w, err, "failed to delete investments")
		return
	}

	response.RespondJSON(w, http.StatusOK, BulkDeleteResponse{Deleted: deleted})
}
