package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ekaraca/bist-portfolio-backend/internal/api/request"
	"github.com/ekaraca/bist-portfolio-backend/internal/api/response"
	"github.com/ekaraca/bist-portfolio-backend/internal/apperrors"
	"github.com/ekaraca/bist-portfolio-backend/internal/model"
	"github.com/ekaraca/bist-portfolio-backend/internal/service"
)

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Portfolios handles GET requests to list portfolios. Inactive portfolios are
// excluded unless includeInactive=true is passed.
//
// Endpoint: GET /api/portfolio?includeInactive=true
// Response: 200 OK with array of Portfolio
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Portfolios(w http.ResponseWriter, r *http.Request) {
	filter := model.PortfolioFilter{
		IncludeInactive: r.URL.Query().Get("includeInactive") == "true",
	}

	portfolios, err := h.portfolioService.GetPortfolios(filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolios.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolios)
}

// GetPortfolio handles GET requests to retrieve a single portfolio.
//
// Endpoint: GET /api/portfolio/{uuid}
// Response: 200 OK with Portfolio
// Error: 404 Not Found if the portfolio does not exist
func (h *PortfolioHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	portfolio, err := h.portfolioService.GetPortfolio(portfolioID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrievePortfolios.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// PortfolioSummary handles GET requests for a portfolio's read-time aggregates.
// Value, cost and P&L are computed from positions and the latest snapshot
// prices on every call; nothing is cached.
//
// Endpoint: GET /api/portfolio/{uuid}/summary
// Response: 200 OK with PortfolioSummary
// Error: 404 Not Found if the portfolio does not exist
func (h *PortfolioHandler) PortfolioSummary(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	summary, err := h.portfolioService.GetPortfolioSummary(portfolioID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrievePortfolios.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// PortfolioPositions handles GET requests for a portfolio's positions valued
// at the latest snapshot price per instrument.
//
// Endpoint: GET /api/portfolio/{uuid}/positions
// Response: 200 OK with array of PositionValuation
// Error: 404 Not Found if the portfolio does not exist
func (h *PortfolioHandler) PortfolioPositions(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	positions, err := h.portfolioService.GetPortfolioPositions(portfolioID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrievePositions.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, positions)
}

// CreatePortfolio handles POST requests to create a new portfolio.
//
// Endpoint: POST /api/portfolio
// Request Body: CreatePortfolioRequest
// Response: 201 Created with Portfolio
// Error: 400 Bad Request if validation fails
func (h *PortfolioHandler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreatePortfolioRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "failed to create portfolio")
		return
	}

	response.RespondJSON(w, http.StatusCreated, portfolio)
}

// UpdatePortfolio handles PUT requests to update a portfolio. Changing the
// fund or investor link recomputes both sides of the change.
//
// Endpoint: PUT /api/portfolio/{uuid}
// Request Body: UpdatePortfolioRequest (all fields optional)
// Response: 200 OK with updated Portfolio
// Error: 404 Not Found if the portfolio does not exist
func (h *PortfolioHandler) UpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdatePortfolioRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	portfolio, err := h.portfolioService.UpdatePortfolio(r.Context(), portfolioID, req)
	if err != nil {
		respondServiceError(w, err, "failed to update portfolio")
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// DeletePortfolio handles DELETE requests to remove a portfolio together with
// its positions and transactions.
//
// Endpoint: DELETE /api/portfolio/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the portfolio does not exist
func (h *PortfolioHandler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	if err := h.portfolioService.DeletePortfolio(r.Context(), portfolioID); err != nil {
		respondServiceError(w, err, "failed to delete portfolio")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
