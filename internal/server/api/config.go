// Package api provides HTTP API handlers for the detection service.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/mindfultouch/internal/detect"
)

// DetectionController exposes runtime control over the detection pipeline.
type DetectionController interface {
	Config() detect.Config
	ApplyConfig(detect.Config) error
	SetEnabled(enabled bool)
	IsEnabled() bool
}

// ConfigHandler handles HTTP requests for the detection configuration.
type ConfigHandler struct {
	controller DetectionController
}

// NewConfigHandler creates a new ConfigHandler with the given controller.
func NewConfigHandler(c DetectionController) *ConfigHandler {
	return &ConfigHandler{controller: c}
}

// ServeHTTP implements the http.Handler interface.
func (h *ConfigHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// get handles GET /api/config and returns the active configuration.
func (h *ConfigHandler) get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.controller.Config())
}

// update handles PUT /api/config and replaces the active configuration.
func (h *ConfigHandler) update(w http.ResponseWriter, r *http.Request) {
	var cfg detect.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.controller.ApplyConfig(cfg); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.controller.Config())
}

// DetectionHandler handles HTTP requests for pausing and resuming detection.
type DetectionHandler struct {
	controller DetectionController
}

// NewDetectionHandler creates a new DetectionHandler with the given controller.
func NewDetectionHandler(c DetectionController) *DetectionHandler {
	return &DetectionHandler{controller: c}
}

type detectionState struct {
	Enabled bool `json:"enabled"`
}

// ServeHTTP implements the http.Handler interface.
func (h *DetectionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, detectionState{Enabled: h.controller.IsEnabled()})
	case http.MethodPut:
		var req detectionState
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		h.controller.SetEnabled(req.Enabled)
		writeJSON(w, http.StatusOK, detectionState{Enabled: h.controller.IsEnabled()})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
