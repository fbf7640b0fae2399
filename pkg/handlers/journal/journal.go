package journal

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/cbailey/wallet-ledger/pkg/api"
	"github.com/cbailey/wallet-ledger/pkg/handlers"
	"github.com/cbailey/wallet-ledger/pkg/ledger"
	"github.com/cbailey/wallet-ledger/pkg/mapping"
)

// JournalHandler serves read access to the transaction journal.
type JournalHandler struct {
	Ledger *ledger.Service
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(ledgerService *ledger.Service) *JournalHandler {
	return &JournalHandler{Ledger: ledgerService}
}

// ListTransactions returns a user's journal entries, newest first.
func (h *JournalHandler) ListTransactions(w http.ResponseWriter, r *http.Request, userId string) {
	txs, err := h.Ledger.ListTransactions(r.Context(), userId)
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	apiTxs := make([]api.Transaction, len(txs))
	for i := range txs {
		apiTxs[i] = *mapping.ToApiTransaction(&txs[i])
	}
	handlers.WriteJSON(w, http.StatusOK, apiTxs)
}

// GetTransactionById returns a single journal entry.
func (h *JournalHandler) GetTransactionById(w http.ResponseWriter, r *http.Request, transactionId openapi_types.UUID) {
	tx, err := h.Ledger.GetTransaction(r.Context(), transactionId.String())
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, mapping.ToApiTransaction(tx))
}
