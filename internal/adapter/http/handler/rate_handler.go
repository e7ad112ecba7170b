package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/walletledger/internal/adapter/http/dto"
	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/usecase"
)

// RateService defines the behavior needed by RateHandler.
type RateService interface {
	EnsureSeedData(ctx context.Context) error
	UpdateDailyRates(ctx context.Context) (bool, error)
	ListCurrencies(ctx context.Context) ([]*domain.Currency, error)
	GetRate(ctx context.Context, input usecase.GetRateInput) (*domain.ExchangeRate, error)
}

// RateHandler exposes the currency catalog and rate ingestion.
type RateHandler struct {
	rateUC RateService
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(rateUC RateService) *RateHandler {
	return &RateHandler{rateUC: rateUC}
}

// ListCurrencies lists the currency catalog.
func (h *RateHandler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	currencies, err := h.rateUC.ListCurrencies(r.Context())
	if err != nil {
		writeDomainError(w, "failed to list currencies", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"currencies": dto.CurrenciesFromDomain(currencies)})
}

// GetRate returns the stored rate of a currency for ?date= (default today)
// and ?type= (default ForexBuying).
func (h *RateHandler) GetRate(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	input := usecase.GetRateInput{
		Code:     code,
		RateType: domain.RateType(r.URL.Query().Get("type")),
	}

	if raw := r.URL.Query().Get("date"); raw != "" {
		day, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date", "expected YYYY-MM-DD")
			return
		}
		input.Day = day
	}

	rate, err := h.rateUC.GetRate(r.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrExchangeRateNotFound) {
			writeError(w, http.StatusNotFound, "rate not found", err.Error())
			return
		}
		writeDomainError(w, "failed to get rate", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ExchangeRateFromDomain(domain.NormalizeCurrencyCode(code), rate))
}

// Seed loads the initial catalog and today's rates when the store is empty.
func (h *RateHandler) Seed(w http.ResponseWriter, r *http.Request) {
	if err := h.rateUC.EnsureSeedData(r.Context()); err != nil {
		writeDomainError(w, "failed to seed catalog", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "seeded"})
}

// Update fetches and stores today's rates.
func (h *RateHandler) Update(w http.ResponseWriter, r *http.Request) {
	updated, err := h.rateUC.UpdateDailyRates(r.Context())
	if err != nil {
		writeDomainError(w, "failed to update rates", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RateUpdateResponse{Updated: updated})
}
