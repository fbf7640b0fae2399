// Package handlers carries the helpers shared by the per-area HTTP handlers.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cbailey/wallet-ledger/pkg/api"
	"github.com/cbailey/wallet-ledger/pkg/ledger"
	"github.com/cbailey/wallet-ledger/pkg/money"
	"github.com/cbailey/wallet-ledger/pkg/storage"
	"github.com/cbailey/wallet-ledger/pkg/subscriptions"
)

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// WriteError maps a service error onto the HTTP status and structured error
// body of the API contract. Validation errors come back 4xx before any ledger
// work; gateway-dependent failures are flagged retryable so the caller knows to
// check the transaction status.
func WriteError(w http.ResponseWriter, err error) {
	var (
		status    = http.StatusInternalServerError
		retryable = false
	)

	switch {
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidCurrency),
		errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, money.ErrInvalidCurrency),
		errors.Is(err, subscriptions.ErrInvalidDuration):
		status = http.StatusBadRequest
	case errors.Is(err, ledger.ErrInsufficientFunds):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, ledger.ErrSameAccount):
		status = http.StatusConflict
	case errors.Is(err, ledger.ErrRecipientNotFound),
		errors.Is(err, storage.ErrAccountNotFound),
		errors.Is(err, storage.ErrTransactionNotFound),
		errors.Is(err, subscriptions.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ledger.ErrGatewayNotSupported):
		status = http.StatusBadRequest
	case errors.Is(err, ledger.ErrGateway):
		status = http.StatusBadGateway
		retryable = true
	case errors.Is(err, storage.ErrAccountExists),
		errors.Is(err, storage.ErrSubscriptionNotActive),
		errors.Is(err, subscriptions.ErrNotActive):
		status = http.StatusConflict
	case errors.Is(err, storage.ErrVersionConflict):
		status = http.StatusConflict
		retryable = true
	}

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}

	WriteJSON(w, status, api.Error{Error: err.Error(), Retryable: retryable})
}
