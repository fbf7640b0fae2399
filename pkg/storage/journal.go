package storage

import (
	"context"
	"time"

	"github.com/cbailey/wallet-ledger/pkg/models"
)

// JournalReader defines the interface for reading the transaction journal.
type JournalReader interface {
	// GetTransaction retrieves a journal entry by its ID.
	GetTransaction(ctx context.Context, txID string) (*models.Transaction, error)

	// FindByIdempotencyKey returns the journal entry previously recorded for a
	// (type, idempotency key) pair, or ErrTransactionNotFound.
	FindByIdempotencyKey(ctx context.Context, txType models.TransactionType, key string) (*models.Transaction, error)

	// ListTransactionsByUserID retrieves a user's journal entries, newest first.
	ListTransactionsByUserID(ctx context.Context, userID string) ([]models.Transaction, error)

	// GetStalePendingTransactions retrieves gateway-backed entries that have been
	// pending for longer than maxAge and need reconciliation.
	GetStalePendingTransactions(ctx context.Context, maxAge time.Duration) ([]models.Transaction, error)
}

// JournalWriter defines the terminal state transitions of journal entries.
// Both transitions are conditional on the entry still being pending, so repeated
// delivery of the same completion signal is safe.
type JournalWriter interface {
	// CompleteTransaction transitions pending -> completed. Returns
	// ErrTransactionTerminal if the entry is already terminal.
	CompleteTransaction(ctx context.Context, txID string) error

	// FailTransaction transitions pending -> failed with a reason. Returns
	// ErrTransactionTerminal if the entry is already terminal.
	FailTransaction(ctx context.Context, txID string, reason string) error

	// RecordPending appends an entry in the pending state without touching any
	// balance, consuming the entry's idempotency key if it carries one. Used for
	// unconfirmed inbound funding awaiting a gateway decision.
	RecordPending(ctx context.Context, tx *models.Transaction) error

	// RecordFailed appends an entry directly in the failed state, for operations
	// rejected before any balance work (audit trail of declined requests).
	RecordFailed(ctx context.Context, tx *models.Transaction, reason string) error
}

// JournalStore combines the reader and writer interfaces.
type JournalStore interface {
	JournalReader
	JournalWriter
}
