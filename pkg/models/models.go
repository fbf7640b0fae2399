package models

import (
	"time"
)

// TransactionType defines the kind of balance-affecting event a journal entry records.
type TransactionType string

const (
	TOPUP               TransactionType = "topup"
	WITHDRAWAL          TransactionType = "withdrawal"
	TRANSFER_OUT        TransactionType = "transfer_out"
	TRANSFER_IN         TransactionType = "transfer_in"
	PURCHASE            TransactionType = "purchase"
	SUBSCRIPTION_CHARGE TransactionType = "subscription_charge"
)

// TransactionStatus defines the possible states of a journal entry.
type TransactionStatus string

const (
	PENDING   TransactionStatus = "pending"
	COMPLETED TransactionStatus = "completed"
	FAILED    TransactionStatus = "failed"
)

// IsTerminal reports whether a transaction can no longer change state.
func (s TransactionStatus) IsTerminal() bool {
	return s == COMPLETED || s == FAILED
}

// Account represents a registered wallet owner. Balances hang off an account
// per currency and are created lazily on first credit.
type Account struct {
	UserId    string    `json:"user_id" dynamodbav:"user_id"`
	Name      string    `json:"name" dynamodbav:"name"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

// Balance is one (user, currency) row of the ledger. AmountMinor is the spendable
// amount in the currency's minor unit and is never negative after a committed
// operation. Version is bumped on every mutation for optimistic locking.
type Balance struct {
	UserId      string    `json:"user_id" dynamodbav:"user_id"`
	Currency    string    `json:"currency" dynamodbav:"currency"`
	AmountMinor int64     `json:"amount_minor" dynamodbav:"amount_minor"`
	Version     int64     `json:"version" dynamodbav:"version"`
	UpdatedAt   time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// Transaction is one append-only journal entry. AmountMinor is unsigned; the
// direction is implied by Type. Entries are created pending and reach exactly one
// terminal state, after which they are immutable.
type Transaction struct {
	Id             string            `dynamodbav:"id"`
	UserId         string            `dynamodbav:"user_id"`
	Type           TransactionType   `dynamodbav:"tx_type"`
	Status         TransactionStatus `dynamodbav:"status"`
	AmountMinor    int64             `dynamodbav:"amount_minor"`
	FeeMinor       int64             `dynamodbav:"fee_minor,omitempty"`
	Currency       string            `dynamodbav:"currency"`
	Gateway        string            `dynamodbav:"gateway,omitempty"`
	GatewayRef     string            `dynamodbav:"gateway_ref,omitempty"`
	IdempotencyKey string            `dynamodbav:"idem_key,omitempty"`
	CorrelationId  string            `dynamodbav:"correlation_id,omitempty"`
	CounterpartyId string            `dynamodbav:"counterparty_id,omitempty"`
	FailureReason  string            `dynamodbav:"failure_reason,omitempty"`
	CreatedAt      time.Time         `dynamodbav:"created_at"`
	UpdatedAt      time.Time         `dynamodbav:"updated_at"`
}

// Transfer is the result of moving funds between two accounts: the two journal
// legs share Out.CorrelationId == In.CorrelationId.
type Transfer struct {
	CorrelationId string      `json:"correlation_id"`
	Out           Transaction `json:"out"`
	In            Transaction `json:"in"`
}

// SubscriptionStatus defines the billing state of a subscription.
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionExpired  SubscriptionStatus = "expired"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

// Subscription represents a user's paid plan. At most one row exists per user,
// which enforces the one-active-subscription invariant at the storage level.
type Subscription struct {
	Id          string             `dynamodbav:"id"`
	UserId      string             `dynamodbav:"user_id"`
	Plan        string             `dynamodbav:"plan"`
	Status      SubscriptionStatus `dynamodbav:"status"`
	AmountMinor int64              `dynamodbav:"amount_minor"`
	Currency    string             `dynamodbav:"currency"`
	ChargeTxId  string             `dynamodbav:"charge_tx_id,omitempty"`
	StartedAt   time.Time          `dynamodbav:"started_at"`
	ExpiresAt   time.Time          `dynamodbav:"expires_at"`
	UpdatedAt   time.Time          `dynamodbav:"updated_at"`
}
