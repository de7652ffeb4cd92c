package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ekaraca/bist-portfolio-backend/internal/api/response"
	"github.com/ekaraca/bist-portfolio-backend/internal/apperrors"
	"github.com/ekaraca/bist-portfolio-backend/internal/service"
)

// InstrumentHandler handles HTTP requests for instrument and snapshot endpoints.
// Instruments are read-only through the API; ingestion creates and refreshes them.
type InstrumentHandler struct {
	instrumentService *service.InstrumentService
}

// NewInstrumentHandler creates a new InstrumentHandler with the provided service dependency.
func NewInstrumentHandler(instrumentService *service.InstrumentService) *InstrumentHandler {
	return &InstrumentHandler{
		instrumentService: instrumentService,
	}
}

// Instruments handles GET requests to list all instruments with their latest quote.
//
// Endpoint: GET /api/instrument
// Response: 200 OK with array of InstrumentQuote
// Error: 500 Internal Server Error if retrieval fails
func (h *InstrumentHandler) Instruments(w http.ResponseWriter, _ *http.Request) {
	instruments, err := h.instrumentService.GetInstruments()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveInstruments.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, instruments)
}

// GetInstrument handles GET requests to retrieve a single instrument by its code.
//
// Endpoint: GET /api/instrument/{code}
// Response: 200 OK with Instrument
// Error: 404 Not Found if the code is unknown
func (h *InstrumentHandler) GetInstrument(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	instrument, err := h.instrumentService.GetInstrument(code)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveInstruments.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, instrument)
}

// Snapshots handles GET requests to retrieve an instrument's price history,
// newest first. The optional limit query parameter caps the row count.
//
// Endpoint: GET /api/instrument/{code}/snapshots?limit=N
// Response: 200 OK with array of PriceSnapshot
// Error: 404 Not Found if the code is unknown
func (h *InstrumentHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.RespondError(w, http.StatusBadRequest, "invalid limit parameter", raw)
			return
		}
		limit = parsed
	}

	snapshots, err := h.instrumentService.GetSnapshots(code, limit)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveSnapshots.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshots)
}

// DeleteInstrument handles DELETE requests to remove an instrument.
// Blocked with 409 Conflict while positions, transactions or snapshots still
// reference it.
//
// Endpoint: DELETE /api/admin/instrument/{code}
// Response: 204 No Content
func (h *InstrumentHandler) DeleteInstrument(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if err := h.instrumentService.DeleteInstrument(code); err != nil {
		respondServiceError(w, err, "failed to delete instrument")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
