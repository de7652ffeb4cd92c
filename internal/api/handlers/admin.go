package handlers

import (
	"net/http"
	"strings"

	"github.com/ekaraca/bist-portfolio-backend/internal/api/request"
	"github.com/ekaraca/bist-portfolio-backend/internal/api/response"
	"github.com/ekaraca/bist-portfolio-backend/internal/config"
	"github.com/ekaraca/bist-portfolio-backend/internal/service"
)

// AdminHandler handles API-key guarded operational endpoints: manual ingestion
// and retention runs, and storing the market-data API key.
type AdminHandler struct {
	ingestService    *service.IngestService
	retentionService *service.RetentionService
	settingsService  *service.SettingsService
	retentionCfg     config.RetentionConfig
}

// NewAdminHandler creates a new AdminHandler with the provided service dependencies.
func NewAdminHandler(
	ingestService *service.IngestService,
	retentionService *service.RetentionService,
	settingsService *service.SettingsService,
	retentionCfg config.RetentionConfig,
) *AdminHandler {
	return &AdminHandler{
		ingestService:    ingestService,
		retentionService: retentionService,
		settingsService:  settingsService,
		retentionCfg:     retentionCfg,
	}
}

// TriggerIngest handles POST requests to run one ingestion pass immediately.
// A pass already in flight is joined rather than duplicated.
//
// Endpoint: POST /api/admin/ingest
// Response: 200 OK with IngestResult
// Error: 412 Precondition Failed if no API key is stored
func (h *AdminHandler) TriggerIngest(w http.ResponseWriter, r *http.Request) {
	result, err := h.ingestService.Ingest(r.Context())
	if err != nil {
		respondServiceError(w, err, "ingestion failed")
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// RetentionResponse reports how many snapshot rows a pruning run removed.
type RetentionResponse struct {
	Removed int64 `json:"removed"`
}

// TriggerRetention handles POST requests to prune old snapshots immediately.
// Body fields fall back to the configured retention defaults when omitted.
//
// Endpoint: POST /api/admin/retention
// Request Body: RetentionRequest (optional)
// Response: 200 OK with RetentionResponse
func (h *AdminHandler) TriggerRetention(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.RetentionRequest](r)
	if err != nil && !strings.Contains(err.Error(), "EOF") {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	days := h.retentionCfg.Days
	if req.Days > 0 {
		days = req.Days
	}
	keepDaily := h.retentionCfg.KeepDaily
	if req.KeepDaily != nil {
		keepDaily = *req.KeepDaily
	}

	removed, err := h.retentionService.Prune(days, keepDaily)
	if err != nil {
		respondServiceError(w, err, "retention pruning failed")
		return
	}

	response.RespondJSON(w, http.StatusOK, RetentionResponse{Removed: removed})
}

// SetAPIKey handles POST requests to store the market-data API key. The key is
// encrypted at rest and never echoed back.
//
// Endpoint: POST /api/admin/settings/apikey
// Request Body: SetAPIKeyRequest
// Response: 204 No Content
// Error: 400 Bad Request if the key is empty
func (h *AdminHandler) SetAPIKey(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetAPIKeyRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if strings.TrimSpace(req.APIKey) == "" {
		response.RespondError(w, http.StatusBadRequest, "validation failed", "apiKey is required")
		return
	}

	if err := h.settingsService.SetAPIKey(req.APIKey); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to store api key", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
