package handler

import (
	"context"
	"net/http"

	"github.com/iho/walletledger/internal/adapter/http/dto"
	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/usecase"
)

// CategoryService defines the behavior needed by CategoryHandler.
type CategoryService interface {
	CreateIncomeExpense(ctx context.Context, input usecase.CreateIncomeExpenseInput) (string, error)
	ListIncomeExpenseTree(ctx context.Context, userID string) ([]*domain.IncomeExpenseNode, error)
}

// CategoryHandler handles income/expense category requests.
type CategoryHandler struct {
	categoryUC CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryUC CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryUC: categoryUC}
}

// Create creates a category for the caller.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	id, err := h.categoryUC.CreateIncomeExpense(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		writeDomainError(w, "failed to create category", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CreatedResponse{ID: id})
}

// Tree returns the caller's categories as a forest.
func (h *CategoryHandler) Tree(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	tree, err := h.categoryUC.ListIncomeExpenseTree(r.Context(), userID)
	if err != nil {
		writeDomainError(w, "failed to list categories", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"categories": dto.CategoryTreeFromDomain(tree)})
}
