// Package api defines the request and response types of the HTTP surface.
// Amounts cross this boundary as decimal strings ("40.00"); minor units stay
// internal.
package api

import (
	"time"
)

// Error is the structured error body returned on every failure.
type Error struct {
	Error string `json:"error"`
	// Retryable distinguishes "your request was invalid" from "the operation
	// failed after partial processing, check the transaction status".
	Retryable bool `json:"retryable,omitempty"`
}

// NewAccount is the request body for creating an account.
type NewAccount struct {
	UserId string `json:"user_id"`
	Name   string `json:"name"`
}

// Account is the response shape of a wallet account.
type Account struct {
	UserId    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Balance is the response shape of one (user, currency) balance.
type Balance struct {
	UserId   string `json:"user_id"`
	Currency string `json:"currency"`
	Balance  string `json:"balance"`
}

// NewTopUp is the request body for funding a balance.
type NewTopUp struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Gateway  string `json:"gateway"`
	// GatewayRef marks a confirmation callback or retry of an
	// already-initiated funding flow.
	GatewayRef string `json:"gateway_ref,omitempty"`
}

// NewWithdrawal is the request body for paying out from a balance.
type NewWithdrawal struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Gateway  string `json:"gateway"`
}

// NewTransfer is the request body for a user-to-user transfer.
type NewTransfer struct {
	RecipientId string `json:"recipient_id"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
}

// Transaction is the response shape of one journal entry.
type Transaction struct {
	Id             string    `json:"id"`
	UserId         string    `json:"user_id"`
	Type           string    `json:"type"`
	Status         string    `json:"status"`
	Amount         string    `json:"amount"`
	Fee            string    `json:"fee,omitempty"`
	Currency       string    `json:"currency"`
	Gateway        string    `json:"gateway,omitempty"`
	GatewayRef     string    `json:"gateway_ref,omitempty"`
	CorrelationId  string    `json:"correlation_id,omitempty"`
	CounterpartyId string    `json:"counterparty_id,omitempty"`
	FailureReason  string    `json:"failure_reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TopUpResponse wraps a completed or pending top-up.
type TopUpResponse struct {
	Success bool        `json:"success"`
	TopUp   Transaction `json:"topup"`
}

// WithdrawalResponse wraps a completed or pending withdrawal.
type WithdrawalResponse struct {
	Success    bool        `json:"success"`
	Withdrawal Transaction `json:"withdrawal"`
}

// Transfer is the response shape of a completed transfer.
type Transfer struct {
	CorrelationId string      `json:"correlation_id"`
	Out           Transaction `json:"out"`
	In            Transaction `json:"in"`
}

// TransferResponse wraps a completed transfer.
type TransferResponse struct {
	Success  bool     `json:"success"`
	Transfer Transfer `json:"transfer"`
}

// NewSubscription is the request body for purchasing a subscription.
type NewSubscription struct {
	Plan     string `json:"plan"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	// DurationDays is the billing period being purchased.
	DurationDays int `json:"duration_days"`
}

// ExtendSubscription is the request body for extending a subscription.
type ExtendSubscription struct {
	DurationDays int `json:"duration_days"`
}

// Subscription is the response shape of a subscription.
type Subscription struct {
	Id        string    `json:"id"`
	UserId    string    `json:"user_id"`
	Plan      string    `json:"plan"`
	Status    string    `json:"status"`
	Amount    string    `json:"amount"`
	Currency  string    `json:"currency"`
	StartedAt time.Time `json:"started_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SubscriptionResponse wraps a subscription mutation result.
type SubscriptionResponse struct {
	Success      bool         `json:"success"`
	Subscription Subscription `json:"subscription"`
}
