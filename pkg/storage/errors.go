package storage

import "errors"

// ErrInsufficientFunds is returned when a balance cannot cover a debit.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrAccountNotFound is returned when no account exists for a user ID.
var ErrAccountNotFound = errors.New("account not found")

// ErrAccountExists is returned when creating an account that already exists.
var ErrAccountExists = errors.New("account already exists")

// ErrTransactionNotFound is returned when a journal entry cannot be located.
var ErrTransactionNotFound = errors.New("transaction not found")

// ErrTransactionTerminal is returned when attempting a state transition on a
// transaction that is already completed or failed. Callers treat it as a signal
// to log and move on, not as a failure (at-least-once delivery tolerance).
var ErrTransactionTerminal = errors.New("transaction already in a terminal state")

// ErrDuplicateOperation is returned when an idempotency key has already been
// consumed by a prior operation of the same type.
var ErrDuplicateOperation = errors.New("duplicate operation for idempotency key")

// ErrSubscriptionNotFound is returned when a user has no subscription row.
var ErrSubscriptionNotFound = errors.New("subscription not found")

// ErrSubscriptionNotActive is returned when an operation requires an active
// subscription and the stored one is expired or canceled.
var ErrSubscriptionNotActive = errors.New("subscription not active")

// ErrVersionConflict is returned when an optimistic-lock condition failed and
// the operation should be retried against fresh state.
var ErrVersionConflict = errors.New("version conflict, retry")
