package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/iho/walletledger/internal/adapter/http/dto"
	"github.com/iho/walletledger/internal/adapter/http/middleware"
	"github.com/iho/walletledger/internal/domain"
)

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/accounts?limit=50", nil)
	if got := parseIntQuery(req, "limit", 10); got != 50 {
		t.Fatalf("expected limit=50, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/accounts?limit=invalid", nil)
	if got := parseIntQuery(req, "limit", 10); got != 10 {
		t.Fatalf("expected fallback to default, got %d", got)
	}

	req.URL = &url.URL{RawQuery: ""}
	if got := parseIntQuery(req, "limit", 25); got != 25 {
		t.Fatalf("expected default when missing, got %d", got)
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"invalid argument", domain.InvalidArgument("name", "too short"), http.StatusBadRequest},
		{"empty distribution", domain.ErrEmptyDistribution, http.StatusBadRequest},
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound},
		{"cashflow not found", fmt.Errorf("load: %w", domain.ErrCashflowNotFound), http.StatusNotFound},
		{"currency invalid", domain.ErrCurrencyInvalid, http.StatusUnprocessableEntity},
		{"rate missing", domain.ErrExchangeRateNotFound, http.StatusUnprocessableEntity},
		{"default rate type missing", domain.ErrDefaultRateTypeNotFound, http.StatusUnprocessableEntity},
		{"catalog mismatch", domain.ErrCatalogMismatch, http.StatusConflict},
		{"provider down", fmt.Errorf("%w: %w", domain.ErrRateProviderUnavailable, errors.New("dial tcp")), http.StatusBadGateway},
		{"no rate data", domain.ErrNoRateData, http.StatusBadGateway},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	payload := map[string]string{"status": "ok"}

	writeJSON(rr, http.StatusCreated, payload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}

	var decoded map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if decoded["status"] != "ok" {
		t.Fatalf("unexpected body: %v", decoded)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeError(rr, http.StatusBadRequest, "bad", "details")

	var decoded dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if rr.Code != http.StatusBadRequest || decoded.Error != "bad" || decoded.Message != "details" {
		t.Fatalf("unexpected error response: %d %+v", rr.Code, decoded)
	}
}

func TestRequireUser(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := requireUser(rr, req); ok || rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	req = withUser(req, "user-1")
	userID, ok := requireUser(rr, req)
	if !ok || userID != "user-1" {
		t.Fatalf("expected user-1, got %q", userID)
	}
}

func withUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(middleware.WithUserID(r.Context(), userID))
}
