package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cbailey/wallet-ledger/pkg/ledger"
	"github.com/cbailey/wallet-ledger/pkg/models"
	"github.com/cbailey/wallet-ledger/pkg/money"
	"github.com/cbailey/wallet-ledger/pkg/storage"
	"github.com/google/uuid"
)

// ErrNotActive is returned when an operation requires an active subscription.
var ErrNotActive = errors.New("subscription not active")

// ErrNotFound is returned when the user has no subscription.
var ErrNotFound = errors.New("subscription not found")

// ErrInvalidDuration is returned for non-positive durations.
var ErrInvalidDuration = errors.New("duration must be positive")

// Service drives the subscription state machine {active, expired, canceled}.
// Charging goes through the ledger: creating a subscription debits the balance
// and the journal in the same atomic unit that writes the subscription row.
type Service struct {
	store storage.SubscriptionStore
	now   func() time.Time
}

// NewService creates a Service. nowFn may be nil to use the wall clock.
func NewService(store storage.SubscriptionStore, nowFn func() time.Time) *Service {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Service{store: store, now: nowFn}
}

// Create charges the user and activates a subscription for the given duration.
// A failed charge creates no subscription. An existing active subscription is
// first lapsed if due, then rejected if still active.
func (s *Service) Create(ctx context.Context, userID, plan string, amountMinor int64, currency string, duration time.Duration) (*models.Subscription, error) {
	if amountMinor <= 0 {
		return nil, ledger.ErrInvalidAmount
	}
	if !money.ValidCurrency(currency) {
		return nil, fmt.Errorf("%w: %q", ledger.ErrInvalidCurrency, currency)
	}
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}

	// Lazily expire a lapsed subscription so it does not block the new one.
	if _, err := s.CheckAndUpdateStatus(ctx, userID); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	now := s.now()
	chargeTx := &models.Transaction{
		Id:          uuid.New().String(),
		UserId:      userID,
		Type:        models.SUBSCRIPTION_CHARGE,
		AmountMinor: amountMinor,
		Currency:    currency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	sub := &models.Subscription{
		Id:          uuid.New().String(),
		UserId:      userID,
		Plan:        plan,
		Status:      models.SubscriptionActive,
		AmountMinor: amountMinor,
		Currency:    currency,
		ChargeTxId:  chargeTx.Id,
		StartedAt:   now,
		ExpiresAt:   now.Add(duration),
		UpdatedAt:   now,
	}

	err := s.store.CreateSubscriptionWithCharge(ctx, sub, chargeTx)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInsufficientFunds):
			return nil, ledger.ErrInsufficientFunds
		case errors.Is(err, storage.ErrSubscriptionNotActive):
			return nil, fmt.Errorf("user %s already has an active subscription: %w", userID, err)
		}
		return nil, err
	}

	return sub, nil
}

// Extend pushes the expiry of an active subscription forward. It never
// re-charges: composing a charge with an extension is the caller's job.
func (s *Service) Extend(ctx context.Context, userID, subscriptionID string, duration time.Duration) (*models.Subscription, error) {
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}

	sub, err := s.CheckAndUpdateStatus(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sub.Status != models.SubscriptionActive {
		return nil, fmt.Errorf("subscription %s is %s: %w", subscriptionID, sub.Status, ErrNotActive)
	}
	if sub.Id != subscriptionID {
		return nil, fmt.Errorf("subscription %s: %w", subscriptionID, ErrNotFound)
	}

	newExpiry := sub.ExpiresAt.Add(duration)
	if err := s.store.ExtendSubscription(ctx, userID, subscriptionID, newExpiry); err != nil {
		if errors.Is(err, storage.ErrSubscriptionNotActive) {
			return nil, ErrNotActive
		}
		return nil, err
	}

	sub.ExpiresAt = newExpiry
	return sub, nil
}

// CheckAndUpdateStatus lazily transitions an overdue active subscription to
// expired and returns the current row. Idempotent; terminal states are never
// resurrected.
func (s *Service) CheckAndUpdateStatus(ctx context.Context, userID string) (*models.Subscription, error) {
	sub, err := s.store.ExpireSubscription(ctx, userID, s.now())
	if err != nil {
		if errors.Is(err, storage.ErrSubscriptionNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sub, nil
}
