package storage

import (
	"context"

	"github.com/cbailey/wallet-ledger/pkg/models"
)

// LedgerStore defines the interface for the balance rows and the atomic units
// of work that mutate them. Every mutation writes the balance row and its
// journal entries in one storage-level transaction; partial effects are never
// observable.
type LedgerStore interface {
	// GetBalance retrieves the (user, currency) balance row. Returns a zero
	// balance with ok=false if the user has never held the currency.
	GetBalance(ctx context.Context, userID, currency string) (*models.Balance, bool, error)

	// Credit atomically applies tx (already completed, e.g. a confirmed top-up)
	// to the user's balance: writes the journal entry, consumes the idempotency
	// key, and increases the balance. Fails with ErrDuplicateOperation if the
	// idempotency key was already consumed.
	Credit(ctx context.Context, tx *models.Transaction) error

	// DebitPending atomically decreases the balance and records tx as pending.
	// Fails with ErrInsufficientFunds without touching the balance if the debit
	// would drive it negative.
	DebitPending(ctx context.Context, tx *models.Transaction) error

	// DebitCompleted is DebitPending with the journal entry written directly in
	// the completed state, for debits with no external settlement step
	// (purchases, subscription charges).
	DebitCompleted(ctx context.Context, tx *models.Transaction) error

	// Transfer atomically debits the sender, credits the recipient, and records
	// both journal legs. Fails with ErrInsufficientFunds (sender short) or
	// ErrAccountNotFound (recipient unknown) with no side effects.
	Transfer(ctx context.Context, out, in *models.Transaction) error

	// CompleteCredit marks a pending inbound tx completed and applies its credit
	// to the balance, as one atomic unit. Used when reconciliation finds that a
	// timed-out top-up actually succeeded at the provider.
	CompleteCredit(ctx context.Context, tx *models.Transaction) error

	// CompensateFailed credits the debited amount back and marks tx failed, as
	// one atomic unit. Used when an external payout fails after the debit.
	CompensateFailed(ctx context.Context, tx *models.Transaction, reason string) error
}
