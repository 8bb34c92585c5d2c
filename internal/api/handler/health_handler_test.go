package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(ctx context.Context) error { return f.err }

func TestHealthHandler_Liveness(t *testing.T) {
	c, rec := newContext(t, http.MethodGet, "/health", "")
	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadinessHandler_BackendUp(t *testing.T) {
	c, rec := newContext(t, http.MethodGet, "/health/ready", "")
	if err := NewReadinessHandler(&fakePinger{}).Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != "ok" || resp.Dependencies["backend"].Status != "ok" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestReadinessHandler_BackendDown(t *testing.T) {
	c, rec := newContext(t, http.MethodGet, "/health/ready", "")
	pinger := &fakePinger{err: errors.New("connection refused")}
	if err := NewReadinessHandler(pinger).Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != "degraded" || resp.Dependencies["backend"].Status != "unhealthy" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
