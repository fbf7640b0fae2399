package ledger

import "errors"

// ErrInvalidCurrency is returned for malformed or mismatched currency codes.
var ErrInvalidCurrency = errors.New("invalid currency")

// ErrInvalidAmount is returned for non-positive amounts.
var ErrInvalidAmount = errors.New("amount must be positive")

// ErrInsufficientFunds is returned when a debit would drive a balance negative.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrSameAccount is returned when a transfer names the sender as recipient.
var ErrSameAccount = errors.New("cannot transfer to the same account")

// ErrRecipientNotFound is returned when a transfer's recipient has no account.
var ErrRecipientNotFound = errors.New("recipient account not found")

// ErrGatewayNotSupported is returned for unknown gateway names.
var ErrGatewayNotSupported = errors.New("gateway not supported")

// ErrGateway is returned when the payment provider reported or caused a
// failure. The underlying provider error is wrapped.
var ErrGateway = errors.New("gateway error")
