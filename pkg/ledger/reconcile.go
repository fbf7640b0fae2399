package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cbailey/wallet-ledger/pkg/gateway"
	"github.com/cbailey/wallet-ledger/pkg/metrics"
	"github.com/cbailey/wallet-ledger/pkg/models"
	"github.com/cbailey/wallet-ledger/pkg/storage"
)

// Reconciler resolves journal entries stuck in pending against the gateway's
// own record. A pending entry exists exactly when a gateway call timed out or
// deferred, so the provider's status query is the source of truth.
type Reconciler struct {
	store    LedgerBackend
	gateways *gateway.Registry
	metrics  *metrics.Collector
}

// NewReconciler creates a Reconciler. collector may be nil.
func NewReconciler(store LedgerBackend, gateways *gateway.Registry, collector *metrics.Collector) *Reconciler {
	return &Reconciler{store: store, gateways: gateways, metrics: collector}
}

// Reconcile decides the fate of one pending transaction. It is safe to call
// repeatedly and concurrently for the same entry: all terminal transitions are
// conditional on the entry still being pending.
func (r *Reconciler) Reconcile(ctx context.Context, tx *models.Transaction) error {
	// Re-read: the entry may have been resolved since it was enqueued.
	current, err := r.store.GetTransaction(ctx, tx.Id)
	if err != nil {
		return fmt.Errorf("failed to load transaction for reconciliation: %w", err)
	}
	if current.Status.IsTerminal() {
		slog.Log(ctx, slog.LevelInfo, "transaction already resolved", "transaction_id", current.Id, "status", current.Status)
		return nil
	}

	gw, err := r.gateways.Resolve(current.Gateway)
	if err != nil {
		return fmt.Errorf("pending transaction %s names unknown gateway %q", current.Id, current.Gateway)
	}

	reference := current.GatewayRef
	if reference == "" {
		// A payout that timed out before the provider answered is queried by
		// the client reference we sent with it.
		reference = current.Id
	}

	status, err := gw.CheckStatus(ctx, reference)
	if err != nil {
		return fmt.Errorf("status check against %s failed: %w", current.Gateway, err)
	}

	switch status {
	case gateway.StatusPending:
		// Still undecided at the provider; a later sweep retries.
		return nil

	case gateway.StatusSucceeded:
		return r.resolveSucceeded(ctx, current)

	default:
		return r.resolveFailed(ctx, current)
	}
}

func (r *Reconciler) resolveSucceeded(ctx context.Context, tx *models.Transaction) error {
	var err error
	switch tx.Type {
	case models.TOPUP:
		// The credit was never applied for a pending top-up; apply it now.
		err = r.store.CompleteCredit(ctx, tx)
	case models.WITHDRAWAL:
		// The debit already happened; only the journal entry moves.
		err = r.store.CompleteTransaction(ctx, tx.Id)
	default:
		return fmt.Errorf("unexpected pending transaction type %q", tx.Type)
	}
	if errors.Is(err, storage.ErrTransactionTerminal) {
		slog.Log(ctx, slog.LevelInfo, "duplicate reconciliation, entry already terminal", "transaction_id", tx.Id)
		err = nil
	}
	if err == nil {
		r.observe("completed")
	}
	return err
}

func (r *Reconciler) resolveFailed(ctx context.Context, tx *models.Transaction) error {
	var err error
	switch tx.Type {
	case models.TOPUP:
		// Nothing was credited; just close the entry out.
		err = r.store.FailTransaction(ctx, tx.Id, "provider reported failure")
	case models.WITHDRAWAL:
		// The debit must be compensated along with the failure.
		err = r.store.CompensateFailed(ctx, tx, "provider reported failure")
	default:
		return fmt.Errorf("unexpected pending transaction type %q", tx.Type)
	}
	if errors.Is(err, storage.ErrTransactionTerminal) {
		slog.Log(ctx, slog.LevelInfo, "duplicate reconciliation, entry already terminal", "transaction_id", tx.Id)
		err = nil
	}
	if err == nil {
		r.observe("failed")
	}
	return err
}

func (r *Reconciler) observe(outcome string) {
	if r.metrics != nil {
		r.metrics.PendingReconciled(outcome)
	}
}
