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

// Transfer atomically moves funds between two accounts: the sender's debit, the
// recipient's credit, and both journal legs commit together or not at all, so no
// partial transfer state is ever visible to readers. The recipient's account
// registration is asserted inside the same unit.
func (s *Store) Transfer(ctx context.Context, out, in *models.Transaction) error {
	// Read the sender's balance for the optimistic version and a fast
	// sufficiency check.
	senderBalance, ok, err := s.GetBalance(ctx, out.UserId, out.Currency)
	if err != nil {
		return fmt.Errorf("failed to get sender's balance: %w", err)
	}
	if !ok || senderBalance.AmountMinor < out.AmountMinor {
		return storage.ErrInsufficientFunds
	}

	now := time.Now()

	outPut, err := s.journalPut(out)
	if err != nil {
		return err
	}
	inPut, err := s.journalPut(in)
	if err != nil {
		return err
	}

	const (
		recipientCheckIdx = 0
		senderDebitIdx    = 1
	)
	items := []types.TransactWriteItem{
		s.accountExistsCheck(in.UserId),
		s.debitUpdate(out.UserId, out.Currency, out.AmountMinor, senderBalance.Version, now),
		s.creditUpdate(in.UserId, in.Currency, in.AmountMinor, now),
		outPut,
		inPut,
	}

	slog.Log(ctx, slog.LevelDebug, "transferring balance",
		"correlation_id", out.CorrelationId, "from", out.UserId, "to", in.UserId,
		"amount_minor", out.AmountMinor, "currency", out.Currency)

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			if canceledAt(tce.CancellationReasons, recipientCheckIdx) {
				return fmt.Errorf("recipient %s: %w", in.UserId, storage.ErrAccountNotFound)
			}
			if canceledAt(tce.CancellationReasons, senderDebitIdx) {
				return storage.ErrVersionConflict
			}
			if conflictedAny(tce.CancellationReasons) {
				return storage.ErrVersionConflict
			}
		}
		return fmt.Errorf("failed to execute transfer transaction: %w", err)
	}

	return nil
}
