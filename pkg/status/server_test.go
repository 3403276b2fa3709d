package status

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"hollowbot/pkg/config"
)

func TestReadyReflectsChannelState(t *testing.T) {
	server := NewServer(config.StatusConfig{}, nil)

	recorder := httptest.NewRecorder()
	server.handleReady(recorder, httptest.NewRequest("GET", "/readyz", nil))
	if recorder.Code != 503 {
		t.Fatalf("readyz code = %d, want 503 before channel starts", recorder.Code)
	}

	server.SetChannel("telegram", true)
	server.SetMutedCount(2)

	recorder = httptest.NewRecorder()
	server.handleReady(recorder, httptest.NewRequest("GET", "/readyz", nil))
	if recorder.Code != 200 {
		t.Fatalf("readyz code = %d, want 200", recorder.Code)
	}

	var payload response
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if payload.Status != "ready" || payload.Channel != "telegram" || payload.MutedCount != 2 {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestHealthAlwaysOK(t *testing.T) {
	server := NewServer(config.StatusConfig{}, nil)

	recorder := httptest.NewRecorder()
	server.handleHealth(recorder, httptest.NewRequest("GET", "/healthz", nil))
	if recorder.Code != 200 {
		t.Fatalf("healthz code = %d, want 200", recorder.Code)
	}
}
