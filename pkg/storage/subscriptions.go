package storage

import (
	"context"
	"time"

	"github.com/cbailey/wallet-ledger/pkg/models"
)

// SubscriptionStore defines the interface for subscription rows. One row exists
// per user; replacing it is only allowed once the previous subscription is no
// longer active.
type SubscriptionStore interface {
	// GetSubscription retrieves the user's subscription row, or
	// ErrSubscriptionNotFound.
	GetSubscription(ctx context.Context, userID string) (*models.Subscription, error)

	// CreateSubscriptionWithCharge atomically debits the user's balance, records
	// chargeTx (completed) in the journal, and writes sub as the user's active
	// subscription. Fails with ErrInsufficientFunds or ErrSubscriptionNotActive
	// (an active subscription already exists) with no side effects.
	CreateSubscriptionWithCharge(ctx context.Context, sub *models.Subscription, chargeTx *models.Transaction) error

	// ExtendSubscription pushes expires_at forward to newExpiresAt. Only valid
	// while the row is active; fails with ErrSubscriptionNotActive otherwise.
	ExtendSubscription(ctx context.Context, userID, subscriptionID string, newExpiresAt time.Time) error

	// ExpireSubscription transitions active -> expired if expires_at has passed.
	// Idempotent: a no-op when the row is already terminal or not yet due.
	ExpireSubscription(ctx context.Context, userID string, now time.Time) (*models.Subscription, error)
}
