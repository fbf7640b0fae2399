package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cbailey/wallet-ledger/pkg/models"
	"github.com/cbailey/wallet-ledger/pkg/storage"
)

// DebitPending atomically decreases the balance and records tx as pending. Used
// for withdrawals, where an external payout still has to settle.
func (s *Store) DebitPending(ctx context.Context, tx *models.Transaction) error {
	tx.Status = models.PENDING
	return s.debit(ctx, tx)
}

// DebitCompleted atomically decreases the balance and records tx as completed.
// Used for debits with no external settlement step (purchases, subscription
// charges).
func (s *Store) DebitCompleted(ctx context.Context, tx *models.Transaction) error {
	tx.Status = models.COMPLETED
	return s.debit(ctx, tx)
}

func (s *Store) debit(ctx context.Context, tx *models.Transaction) error {
	// Read the balance first: the read supplies the optimistic version for the
	// conditional write and lets an obviously short balance fail fast.
	balance, ok, err := s.GetBalance(ctx, tx.UserId, tx.Currency)
	if err != nil {
		return fmt.Errorf("failed to get balance for debit: %w", err)
	}
	if !ok || balance.AmountMinor < tx.AmountMinor {
		return storage.ErrInsufficientFunds
	}

	now := time.Now()

	items := make([]types.TransactWriteItem, 0, 3)
	idemIdx := -1
	if tx.IdempotencyKey != "" {
		idemPut, err := s.idempotencyPut(tx)
		if err != nil {
			return err
		}
		idemIdx = len(items)
		items = append(items, idemPut)
	}

	journalPut, err := s.journalPut(tx)
	if err != nil {
		return err
	}
	items = append(items, journalPut)
	debitIdx := len(items)
	items = append(items, s.debitUpdate(tx.UserId, tx.Currency, tx.AmountMinor, balance.Version, now))

	slog.Log(ctx, slog.LevelDebug, "debiting balance", "transaction_id", tx.Id, "user_id", tx.UserId, "amount_minor", tx.AmountMinor, "currency", tx.Currency)

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			if idemIdx >= 0 && canceledAt(tce.CancellationReasons, idemIdx) {
				return fmt.Errorf("key %s: %w", tx.IdempotencyKey, storage.ErrDuplicateOperation)
			}
			if canceledAt(tce.CancellationReasons, debitIdx) {
				// Sufficiency was verified against the version we condition on,
				// so a failed check means the row moved underneath us.
				return storage.ErrVersionConflict
			}
			if conflictedAny(tce.CancellationReasons) {
				return storage.ErrVersionConflict
			}
		}
		return fmt.Errorf("failed to execute debit transaction: %w", err)
	}

	return nil
}

// CompensateFailed credits a debited amount back and marks the journal entry
// failed, as one atomic unit. The status condition on the journal update means
// a re-delivered payout failure cannot credit the amount back twice.
func (s *Store) CompensateFailed(ctx context.Context, tx *models.Transaction, reason string) error {
	now := time.Now()

	items := []types.TransactWriteItem{
		s.journalStatusUpdate(tx.Id, models.FAILED, reason, now),
		s.creditUpdate(tx.UserId, tx.Currency, tx.AmountMinor, now),
	}

	slog.Log(ctx, slog.LevelDebug, "compensating failed debit", "transaction_id", tx.Id, "user_id", tx.UserId, "amount_minor", tx.AmountMinor, "reason", reason)

	_, err := s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && canceledAt(tce.CancellationReasons, 0) {
			return fmt.Errorf("transaction %s: %w", tx.Id, storage.ErrTransactionTerminal)
		}
		return fmt.Errorf("failed to execute compensation transaction: %w", err)
	}

	return nil
}
