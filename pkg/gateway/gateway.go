package gateway

import (
	"context"
	"errors"
)

// Status is a provider-side payment state, normalized across providers.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// ErrNotSupported is returned when no provider is registered under a name.
var ErrNotSupported = errors.New("gateway not supported")

// ErrProvider wraps any provider-side failure so callers can classify it
// without knowing which provider was involved.
var ErrProvider = errors.New("gateway provider error")

// ErrTimeout marks a provider call whose outcome is unknown: the request may
// have been processed even though no response arrived. Callers must not treat
// the operation as failed; only the provider's own record can settle it.
var ErrTimeout = errors.New("gateway timeout")

// Receipt is a provider response normalized into what the ledger needs: a
// stable external reference (the idempotency key source), the provider's fee,
// and the outcome.
type Receipt struct {
	Reference string
	FeeMinor  int64
	Status    Status
}

// Request describes one funding or payout attempt. Reference is generated by
// the caller and recorded by the provider, so a timed-out call can still be
// resolved later through CheckStatus.
type Request struct {
	UserID      string
	AmountMinor int64
	Currency    string
	Reference   string
}

// Gateway is the uniform interface to an external payment provider. Providers
// compute their own fee schedules and never touch the ledger.
type Gateway interface {
	// Name returns the registry key for this provider.
	Name() string

	// InitiateTopUp starts an inbound funding flow and returns the provider's
	// receipt. For instant-capture providers the receipt comes back succeeded.
	InitiateTopUp(ctx context.Context, req Request) (*Receipt, error)

	// ConfirmTopUp re-checks a previously initiated funding flow by reference.
	ConfirmTopUp(ctx context.Context, reference string) (*Receipt, error)

	// InitiateWithdrawal starts an outbound payout.
	InitiateWithdrawal(ctx context.Context, req Request) (*Receipt, error)

	// CheckStatus queries the provider's own record for a reference. Used by
	// reconciliation to decide the fate of stale pending transactions.
	CheckStatus(ctx context.Context, reference string) (Status, error)
}

// Registry resolves gateway names to providers, failing closed on unknown keys.
type Registry struct {
	providers map[string]Gateway
}

// NewRegistry creates a Registry over the given providers.
func NewRegistry(providers ...Gateway) *Registry {
	r := &Registry{providers: make(map[string]Gateway, len(providers))}
	for _, p := range providers {
		r.providers[p.Name()] = p
	}
	return r
}

// Resolve returns the provider registered under name, or ErrNotSupported.
func (r *Registry) Resolve(name string) (Gateway, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, ErrNotSupported
	}
	return p, nil
}
