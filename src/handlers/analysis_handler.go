package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/username/finpulse/backend/src/config"
	"github.com/username/finpulse/backend/src/logger"
	"github.com/username/finpulse/backend/src/models"
	"github.com/username/finpulse/backend/src/services"
)

type AnalysisHandler struct {
	engineService services.EngineService
}

func NewAnalysisHandler(service services.EngineService) *AnalysisHandler {
	return &AnalysisHandler{
		engineService: service,
	}
}

func sendJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	logger.L.Warn("Sending JSON error to client", "message", message, "statusCode", statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.L.Error("Failed to encode JSON response", "error", err)
	}
}

// decodeSnapshot reads and validates the request body into a Snapshot.
// It writes the error response itself and reports success via the bool.
func (h *AnalysisHandler) decodeSnapshot(w http.ResponseWriter, r *http.Request) (models.Snapshot, bool) {
	var snapshot models.Snapshot

	r.Body = http.MaxBytesReader(w, r.Body, config.Cfg.MaxSnapshotSizeBytes)
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		ctxLogger := logger.FromContext(r.Context())
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			ctxLogger.Warn("Snapshot payload too large", "limit", config.Cfg.MaxSnapshotSizeBytes)
			sendJSONError(w, "Snapshot payload too large", http.StatusRequestEntityTooLarge)
			return snapshot, false
		}
		ctxLogger.Warn("Failed to decode snapshot payload", "error", err)
		sendJSONError(w, "Invalid snapshot JSON", http.StatusBadRequest)
		return snapshot, false
	}
	return snapshot, true
}

func (h *AnalysisHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.decodeSnapshot(w, r)
	if !ok {
		return
	}
	payload := h.engineService.BuildDashboard(r.Context(), snapshot)
	writeJSON(w, payload)
}

func (h *AnalysisHandler) HandleLoans(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.decodeSnapshot(w, r)
	if !ok {
		return
	}
	payload := h.engineService.BuildLoansView(r.Context(), snapshot)
	writeJSON(w, payload)
}

func (h *AnalysisHandler) HandleRefinance(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.decodeSnapshot(w, r)
	if !ok {
		return
	}
	payload := h.engineService.BuildRefinanceView(r.Context(), snapshot)
	writeJSON(w, payload)
}

func (h *AnalysisHandler) HandleDeposits(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.decodeSnapshot(w, r)
	if !ok {
		return
	}
	payload := h.engineService.BuildSavingsView(r.Context(), snapshot)
	writeJSON(w, payload)
}

// HandleHealth is the liveness probe.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}
