package payments

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cbailey/wallet-ledger/pkg/api"
	"github.com/cbailey/wallet-ledger/pkg/handlers"
	"github.com/cbailey/wallet-ledger/pkg/ledger"
	"github.com/cbailey/wallet-ledger/pkg/mapping"
	"github.com/cbailey/wallet-ledger/pkg/models"
	"github.com/cbailey/wallet-ledger/pkg/money"
	"github.com/cbailey/wallet-ledger/pkg/websockets"
)

// PaymentsHandler holds the dependencies for the monetary operations: top-up,
// withdrawal, and transfer.
type PaymentsHandler struct {
	Ledger    *ledger.Service
	Publisher websockets.Publisher
}

// NewPaymentsHandler creates a new PaymentsHandler.
func NewPaymentsHandler(ledgerService *ledger.Service, publisher websockets.Publisher) *PaymentsHandler {
	return &PaymentsHandler{Ledger: ledgerService, Publisher: publisher}
}

// TopUp handles the logic for funding a balance through a gateway.
func (h *PaymentsHandler) TopUp(w http.ResponseWriter, r *http.Request, userId string) {
	var req api.NewTopUp
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteJSON(w, http.StatusBadRequest, api.Error{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	amountMinor, err := money.ParseAmount(req.Amount, req.Currency)
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	tx, err := h.Ledger.TopUp(r.Context(), userId, amountMinor, req.Currency, req.Gateway, req.GatewayRef)
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	h.publish(r, tx)
	handlers.WriteJSON(w, http.StatusCreated, api.TopUpResponse{
		Success: tx.Status == models.COMPLETED,
		TopUp:   *mapping.ToApiTransaction(tx),
	})
}

// Withdraw handles the logic for paying out from a balance. An Idempotency-Key
// header guards client retries.
func (h *PaymentsHandler) Withdraw(w http.ResponseWriter, r *http.Request, userId string) {
	var req api.NewWithdrawal
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteJSON(w, http.StatusBadRequest, api.Error{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	amountMinor, err := money.ParseAmount(req.Amount, req.Currency)
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	tx, err := h.Ledger.Withdraw(r.Context(), userId, amountMinor, req.Currency, req.Gateway, r.Header.Get("Idempotency-Key"))
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	h.publish(r, tx)
	handlers.WriteJSON(w, http.StatusCreated, api.WithdrawalResponse{
		Success:    tx.Status == models.COMPLETED,
		Withdrawal: *mapping.ToApiTransaction(tx),
	})
}

// Transfer handles the logic for a user-to-user transfer.
func (h *PaymentsHandler) Transfer(w http.ResponseWriter, r *http.Request, userId string) {
	var req api.NewTransfer
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteJSON(w, http.StatusBadRequest, api.Error{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	amountMinor, err := money.ParseAmount(req.Amount, req.Currency)
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	transfer, err := h.Ledger.Transfer(r.Context(), userId, req.RecipientId, amountMinor, req.Currency)
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	h.publish(r, &transfer.Out)
	h.publish(r, &transfer.In)
	handlers.WriteJSON(w, http.StatusCreated, api.TransferResponse{
		Success:  true,
		Transfer: *mapping.ToApiTransfer(transfer),
	})
}

func (h *PaymentsHandler) publish(r *http.Request, tx *models.Transaction) {
	if h.Publisher == nil {
		return
	}
	msg := websockets.Message{
		Type: websockets.MessageTypeBalanceUpdate,
		Payload: websockets.BalanceUpdatePayload{
			UserID:        tx.UserId,
			TransactionID: tx.Id,
			Type:          string(tx.Type),
			Status:        string(tx.Status),
			Amount:        money.FormatAmount(tx.AmountMinor, tx.Currency),
			Currency:      tx.Currency,
		},
	}
	if err := h.Publisher.Publish(r.Context(), msg); err != nil {
		slog.Error("failed to publish balance update", "transaction_id", tx.Id, "error", err)
	}
}
