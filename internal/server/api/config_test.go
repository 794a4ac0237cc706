package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ayusman/mindfultouch/internal/detect"
)

type stubController struct {
	cfg     detect.Config
	enabled bool
}

func (s *stubController) Config() detect.Config { return s.cfg }

func (s *stubController) ApplyConfig(cfg detect.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg
	return nil
}

func (s *stubController) SetEnabled(enabled bool) { s.enabled = enabled }
func (s *stubController) IsEnabled() bool         { return s.enabled }

func TestConfigHandler_Get(t *testing.T) {
	controller := &stubController{cfg: detect.DefaultConfig()}
	h := NewConfigHandler(controller)

	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var cfg detect.Config
	if err := json.NewDecoder(rec.Body).Decode(&cfg); err != nil {
		t.Fatalf("failed to decode config: %v", err)
	}
	if cfg.CooldownSeconds != controller.cfg.CooldownSeconds {
		t.Errorf("CooldownSeconds mismatch: got %v, want %v",
			cfg.CooldownSeconds, controller.cfg.CooldownSeconds)
	}
}

func TestConfigHandler_Put(t *testing.T) {
	controller := &stubController{cfg: detect.DefaultConfig()}
	h := NewConfigHandler(controller)

	updated := detect.DefaultConfig()
	updated.AlertDelaySeconds = 5
	body, err := json.Marshal(updated)
	if err != nil {
		t.Fatalf("failed to marshal config: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, "/api/config", strings.NewReader(string(body)))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	if controller.cfg.AlertDelaySeconds != 5 {
		t.Errorf("controller config should be updated, got delay %v", controller.cfg.AlertDelaySeconds)
	}
}

func TestConfigHandler_PutInvalid(t *testing.T) {
	controller := &stubController{cfg: detect.DefaultConfig()}
	h := NewConfigHandler(controller)

	t.Run("malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/config", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		bad := detect.DefaultConfig()
		bad.AlertDelaySeconds = -1
		body, err := json.Marshal(bad)
		if err != nil {
			t.Fatalf("failed to marshal config: %v", err)
		}

		req := httptest.NewRequest(http.MethodPut, "/api/config", strings.NewReader(string(body)))
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
		if controller.cfg.AlertDelaySeconds == -1 {
			t.Error("invalid config should not be applied")
		}
	})
}

func TestDetectionHandler(t *testing.T) {
	controller := &stubController{enabled: true}
	h := NewDetectionHandler(controller)

	t.Run("get state", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/detection", nil)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}

		var state detectionState
		if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
			t.Fatalf("failed to decode state: %v", err)
		}
		if !state.Enabled {
			t.Error("expected detection to be enabled")
		}
	})

	t.Run("pause", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/detection", strings.NewReader(`{"enabled":false}`))
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
		if controller.enabled {
			t.Error("detection should have been paused")
		}
	})
}
