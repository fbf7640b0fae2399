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

// Credit atomically applies a confirmed inbound transaction: the idempotency key
// is consumed, the journal entry is appended, and the balance row is increased,
// all in one TransactWriteItems call. A replayed gateway confirmation fails the
// idempotency Put and surfaces as ErrDuplicateOperation with no second credit.
func (s *Store) Credit(ctx context.Context, tx *models.Transaction) error {
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
	items = append(items, s.creditUpdate(tx.UserId, tx.Currency, tx.AmountMinor, now))

	slog.Log(ctx, slog.LevelDebug, "crediting balance", "transaction_id", tx.Id, "user_id", tx.UserId, "amount_minor", tx.AmountMinor, "currency", tx.Currency)

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && idemIdx >= 0 && canceledAt(tce.CancellationReasons, idemIdx) {
			return fmt.Errorf("key %s: %w", tx.IdempotencyKey, storage.ErrDuplicateOperation)
		}
		return fmt.Errorf("failed to execute credit transaction: %w", err)
	}

	return nil
}

// CompleteCredit marks a pending inbound journal entry completed and applies
// its credit, atomically. The status condition makes a duplicate reconciliation
// pass a no-op rather than a double credit.
func (s *Store) CompleteCredit(ctx context.Context, tx *models.Transaction) error {
	now := time.Now()

	items := []types.TransactWriteItem{
		s.journalStatusUpdate(tx.Id, models.COMPLETED, "", now),
		s.creditUpdate(tx.UserId, tx.Currency, tx.AmountMinor, now),
	}

	slog.Log(ctx, slog.LevelDebug, "completing pending credit", "transaction_id", tx.Id, "user_id", tx.UserId, "amount_minor", tx.AmountMinor)

	_, err := s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && canceledAt(tce.CancellationReasons, 0) {
			return fmt.Errorf("transaction %s: %w", tx.Id, storage.ErrTransactionTerminal)
		}
		return fmt.Errorf("failed to execute credit completion: %w", err)
	}

	return nil
}
