package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/walletledger/internal/adapter/http/dto"
	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/usecase"
)

// CashflowService defines the behavior needed by CashflowHandler.
type CashflowService interface {
	PostCashflow(ctx context.Context, input usecase.PostCashflowInput) (*domain.Cashflow, error)
	DistributeCashflow(ctx context.Context, input usecase.DistributeCashflowInput) ([]*domain.Cashflow, error)
	GetCashflow(ctx context.Context, id, userID string) (*domain.Cashflow, error)
	ListCashflowsByAccount(ctx context.Context, input usecase.ListCashflowsInput) ([]*domain.Cashflow, error)
}

// CashflowHandler handles cashflow posting and reads.
type CashflowHandler struct {
	cashflowUC CashflowService
}

// NewCashflowHandler creates a new CashflowHandler.
func NewCashflowHandler(cashflowUC CashflowService) *CashflowHandler {
	return &CashflowHandler{cashflowUC: cashflowUC}
}

// Post posts a single cashflow.
func (h *CashflowHandler) Post(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.PostCashflowRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	cashflow, err := h.cashflowUC.PostCashflow(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		writeDomainError(w, "failed to post cashflow", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CashflowFromDomain(cashflow))
}

// Distribute posts a batch of cashflows atomically.
func (h *CashflowHandler) Distribute(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.DistributeCashflowRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	cashflows, err := h.cashflowUC.DistributeCashflow(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		writeDomainError(w, "failed to distribute cashflow", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ListCashflowsResponse{
		Cashflows: dto.CashflowsFromDomain(cashflows),
		Total:     int64(len(cashflows)),
	})
}

// Get retrieves one of the caller's cashflows with its document.
func (h *CashflowHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing cashflow ID", "")
		return
	}

	cashflow, err := h.cashflowUC.GetCashflow(r.Context(), id, userID)
	if err != nil {
		writeDomainError(w, "failed to get cashflow", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CashflowFromDomain(cashflow))
}

// ListByAccount lists the cashflows of an account.
func (h *CashflowHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	cashflows, err := h.cashflowUC.ListCashflowsByAccount(r.Context(), usecase.ListCashflowsInput{
		UserID:    userID,
		AccountID: chi.URLParam(r, "id"),
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, "failed to list cashflows", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListCashflowsResponse{
		Cashflows: dto.CashflowsFromDomain(cashflows),
		Total:     int64(len(cashflows)),
	})
}
