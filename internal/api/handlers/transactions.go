package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ymoney/networth-backend/internal/api/request"
	"github.com/ymoney/networth-backend/internal/model"
	"github.com/ymoney/networth-backend/internal/service"
	"github.com/ymoney/networth-backend/internal/validation"
)

// TransactionHandler handles ledger-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// Transactions lists an asset's ledger in replay order.
//
// Endpoint: GET /api/assets/{uuid}/transactions
func (h *TransactionHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactionService.GetTransactions(chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, "failed to retrieve transactions")
		return
	}

	respondJSON(w, http.StatusOK, transactions)
}

// CreateTransaction appends a ledger entry.
//
// Endpoint: POST /api/transactions
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body", "detail": err.Error()})
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		respondValidationError(w, err)
		return
	}

	transaction := model.Transaction{
		AssetID:  req.AssetID,
		Amount:   req.Amount,
		UnitCost: req.UnitCost,
		Note:     req.Note,
	}
	if req.Date != "" {
		transaction.Date, _ = time.Parse("2006-01-02", req.Date)
	}

	created, err := h.transactionService.CreateTransaction(transaction)
	if err != nil {
		respondServiceError(w, err, "failed to create transaction")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// UpdateTransaction edits a ledger entry.
//
// Endpoint: PUT /api/transactions/{uuid}
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	var req request.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body", "detail": err.Error()})
		return
	}

	if err := validation.ValidateUpdateTransaction(req); err != nil {
		respondValidationError(w, err)
		return
	}

	existing, err := h.transactionService.GetTransaction(transactionID)
	if err != nil {
		respondServiceError(w, err, "failed to retrieve transaction")
		return
	}

	existing.Amount = req.Amount
	existing.UnitCost = req.UnitCost
	existing.Note = req.Note
	if req.Date != "" {
		existing.Date, _ = time.Parse("2006-01-02", req.Date)
	}

	if err := h.transactionService.UpdateTransaction(existing); err != nil {
		respondServiceError(w, err, "failed to update transaction")
		return
	}

	respondJSON(w, http.StatusOK, existing)
}

// DeleteTransaction removes a ledger entry.
//
// Endpoint: DELETE /api/transactions/{uuid}
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.transactionService.DeleteTransaction(chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, "failed to delete transaction")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// Transfer moves value between two assets as paired ledger entries.
//
// Endpoint: POST /api/transactions/transfer
func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req request.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body", "detail": err.Error()})
		return
	}

	if err := validation.ValidateTransfer(req); err != nil {
		respondValidationError(w, err)
		return
	}

	transfer := model.Transfer{
		FromAssetID: req.FromAssetID,
		ToAssetID:   req.ToAssetID,
		Amount:      req.Amount,
		Fee:         req.Fee,
	}
	if req.Date != "" {
		transfer.Date, _ = time.Parse("2006-01-02", req.Date)
	} else {
		transfer.Date = time.Now().UTC()
	}

	if err := h.transactionService.Transfer(transfer); err != nil {
		respondServiceError(w, err, "failed to transfer")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}
