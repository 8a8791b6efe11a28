package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/aggregate"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/models"
)

func testServer() *Server {
	return NewServer(aggregate.New(nil, 1), nil, nil)
}

func TestCORSPreflight(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodOptions, "/matches", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("OPTIONS status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type, X-User-Id, X-Auth-Token, X-Session-Id" {
		t.Errorf("Allow-Headers = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Max-Age"); got != "86400" {
		t.Errorf("Max-Age = %q", got)
	}
}

func TestPing(t *testing.T) {
	srv := testServer()
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "pong\n" {
		t.Errorf("ping = %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("missing request id header")
	}
}

func TestMatchesSyntheticFallback(t *testing.T) {
	srv := testServer()
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/matches", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp models.AggregateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if resp.Count == 0 || resp.Source != "synthetic" {
		t.Errorf("count=%d source=%q, want synthetic fallback", resp.Count, resp.Source)
	}
	for _, m := range resp.Matches {
		if m.Prediction == nil {
			t.Errorf("match %s has no prediction", m.ID)
		}
	}
}

func TestSaveWithoutDatabase(t *testing.T) {
	srv := testServer()
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/predictions/save", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if body["error"] == "" {
		t.Error("missing structured error")
	}
}

func TestStatsWithoutDatabase(t *testing.T) {
	srv := testServer()
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats?period=week", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSendWithoutTelegram(t *testing.T) {
	srv := testServer()
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/telegram/send", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAllowedProxyURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://api.sofascore.com/api/v1/sport/table-tennis/events/live", true},
		{"https://sofascore.com/x", true},
		{"https://www.sofascore.com/", true},
		{"https://evil.com/?u=sofascore.com", false},
		{"https://sofascore.com.evil.com/x", false},
		{"ftp://api.sofascore.com/x", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := allowedProxyURL(tt.url); got != tt.want {
			t.Errorf("allowedProxyURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestProxyRequiresURL(t *testing.T) {
	srv := testServer()
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/proxy/sofascore", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestBoolParam(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "yes"} {
		if !boolParam(v) {
			t.Errorf("boolParam(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"", "0", "false", "no"} {
		if boolParam(v) {
			t.Errorf("boolParam(%q) = true, want false", v)
		}
	}
}
