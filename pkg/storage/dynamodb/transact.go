package dynamodb

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cbailey/wallet-ledger/pkg/models"
)

// idemItemID builds the journal-table key under which an idempotency key is
// consumed. Scoping by transaction type means a top-up and a withdrawal may
// legitimately share an external reference.
func idemItemID(txType models.TransactionType, key string) string {
	return fmt.Sprintf("idem#%s#%s", txType, key)
}

// idempotencyItem is the marker row written alongside a guarded journal entry.
// It lives in the journal table and points back at the entry it guards.
type idempotencyItem struct {
	Id        string    `dynamodbav:"id"`
	TxId      string    `dynamodbav:"tx_id"`
	TxType    string    `dynamodbav:"tx_type"`
	CreatedAt time.Time `dynamodbav:"created_at"`
}

// journalPut returns a TransactWriteItem that appends tx to the journal.
func (s *Store) journalPut(tx *models.Transaction) (types.TransactWriteItem, error) {
	txAV, err := marshalItem(tx)
	if err != nil {
		return types.TransactWriteItem{}, fmt.Errorf("failed to marshal transaction: %w", err)
	}
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(s.JournalTableName),
			Item:                txAV,
			ConditionExpression: aws.String("attribute_not_exists(id)"),
		},
	}, nil
}

// idempotencyPut returns a TransactWriteItem that consumes tx's idempotency key.
// The conditional Put shares the atomic unit with the write it guards, so two
// concurrent replays cannot both pass the not-found check.
func (s *Store) idempotencyPut(tx *models.Transaction) (types.TransactWriteItem, error) {
	item := idempotencyItem{
		Id:        idemItemID(tx.Type, tx.IdempotencyKey),
		TxId:      tx.Id,
		TxType:    string(tx.Type),
		CreatedAt: tx.CreatedAt,
	}
	itemAV, err := marshalItem(item)
	if err != nil {
		return types.TransactWriteItem{}, fmt.Errorf("failed to marshal idempotency item: %w", err)
	}
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(s.JournalTableName),
			Item:                itemAV,
			ConditionExpression: aws.String("attribute_not_exists(id)"),
		},
	}, nil
}

// creditUpdate returns a TransactWriteItem that increases a balance row.
// ADD treats a missing attribute as zero, so the row is created lazily on the
// first credit to a (user, currency) pair.
func (s *Store) creditUpdate(userID, currency string, amountMinor int64, now time.Time) types.TransactWriteItem {
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName: aws.String(s.BalancesTableName),
			Key: map[string]types.AttributeValue{
				"user_id":  &types.AttributeValueMemberS{Value: userID},
				"currency": &types.AttributeValueMemberS{Value: currency},
			},
			UpdateExpression: aws.String("ADD amount_minor :amount, version :inc SET updated_at = :now"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":amount": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", amountMinor)},
				":inc":    &types.AttributeValueMemberN{Value: "1"},
				":now":    &types.AttributeValueMemberS{Value: formatTime(now)},
			},
		},
	}
}

// debitUpdate returns a TransactWriteItem that decreases a balance row, guarded
// by both the sufficient-funds check and the optimistic version read beforehand.
// Two concurrent debits against the same row cannot both commit.
func (s *Store) debitUpdate(userID, currency string, amountMinor, version int64, now time.Time) types.TransactWriteItem {
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName: aws.String(s.BalancesTableName),
			Key: map[string]types.AttributeValue{
				"user_id":  &types.AttributeValueMemberS{Value: userID},
				"currency": &types.AttributeValueMemberS{Value: currency},
			},
			UpdateExpression:    aws.String("SET amount_minor = amount_minor - :amount, version = version + :inc, updated_at = :now"),
			ConditionExpression: aws.String("amount_minor >= :amount AND version = :version"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":amount":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", amountMinor)},
				":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", version)},
				":inc":     &types.AttributeValueMemberN{Value: "1"},
				":now":     &types.AttributeValueMemberS{Value: formatTime(now)},
			},
		},
	}
}

// journalStatusUpdate returns a TransactWriteItem that moves a pending journal
// entry to a terminal status. The condition makes the transition idempotent
// under at-least-once delivery.
func (s *Store) journalStatusUpdate(txID string, to models.TransactionStatus, reason string, now time.Time) types.TransactWriteItem {
	update := &types.Update{
		TableName: aws.String(s.JournalTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: txID},
		},
		UpdateExpression:    aws.String("SET #status = :to, updated_at = :now"),
		ConditionExpression: aws.String("#status = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":to":      &types.AttributeValueMemberS{Value: string(to)},
			":pending": &types.AttributeValueMemberS{Value: string(models.PENDING)},
			":now":     &types.AttributeValueMemberS{Value: formatTime(now)},
		},
	}
	if reason != "" {
		update.UpdateExpression = aws.String("SET #status = :to, updated_at = :now, failure_reason = :reason")
		update.ExpressionAttributeValues[":reason"] = &types.AttributeValueMemberS{Value: reason}
	}
	return types.TransactWriteItem{Update: update}
}

// accountExistsCheck returns a TransactWriteItem asserting that userID has a
// registered account, without touching the row.
func (s *Store) accountExistsCheck(userID string) types.TransactWriteItem {
	return types.TransactWriteItem{
		ConditionCheck: &types.ConditionCheck{
			TableName: aws.String(s.AccountsTableName),
			Key: map[string]types.AttributeValue{
				"user_id": &types.AttributeValueMemberS{Value: userID},
			},
			ConditionExpression: aws.String("attribute_exists(user_id)"),
		},
	}
}

// canceledAt reports whether err is a TransactionCanceledException whose item at
// index idx failed its conditional check.
func canceledAt(reasons []types.CancellationReason, idx int) bool {
	if idx >= len(reasons) {
		return false
	}
	code := reasons[idx].Code
	return code != nil && *code == "ConditionalCheckFailed"
}

// conflictedAny reports whether any item in the canceled transaction lost a
// write-write race with another in-flight transaction. DynamoDB reports these
// as TransactionConflict, not as a conditional failure; callers retry them the
// same way as an optimistic-lock miss.
func conflictedAny(reasons []types.CancellationReason) bool {
	for _, r := range reasons {
		if r.Code != nil && *r.Code == "TransactionConflict" {
			return true
		}
	}
	return false
}
