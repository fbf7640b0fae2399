package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cbailey/wallet-ledger/pkg/models"
	"github.com/cbailey/wallet-ledger/pkg/storage"
)

const (
	stalePendingGSI = "status-created_at-index"
	userJournalGSI  = "user_id-created_at-index"
)

// GetTransaction retrieves a journal entry from DynamoDB by its ID.
func (s *Store) GetTransaction(ctx context.Context, txID string) (*models.Transaction, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": txID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.JournalTableName),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("transaction %s: %w", txID, storage.ErrTransactionNotFound)
	}

	var tx models.Transaction
	if err := attributevalue.UnmarshalMap(result.Item, &tx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
	}

	return &tx, nil
}

// FindByIdempotencyKey resolves a (type, key) pair to the journal entry it
// guards, via the idempotency marker row written in the same atomic unit.
func (s *Store) FindByIdempotencyKey(ctx context.Context, txType models.TransactionType, key string) (*models.Transaction, error) {
	markerKey, err := attributevalue.MarshalMap(map[string]string{"id": idemItemID(txType, key)})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal idempotency key: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.JournalTableName),
		Key:       markerKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get idempotency marker from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("idempotency key %s: %w", key, storage.ErrTransactionNotFound)
	}

	var marker idempotencyItem
	if err := attributevalue.UnmarshalMap(result.Item, &marker); err != nil {
		return nil, fmt.Errorf("failed to unmarshal idempotency marker: %w", err)
	}

	return s.GetTransaction(ctx, marker.TxId)
}

// ListTransactionsByUserID retrieves a user's journal entries, newest first.
func (s *Store) ListTransactionsByUserID(ctx context.Context, userID string) ([]models.Transaction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.JournalTableName),
		IndexName:              aws.String(userJournalGSI),
		KeyConditionExpression: aws.String("user_id = :user_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":user_id": &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(false),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for user: %w", err)
	}

	var transactions []models.Transaction
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &transactions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transactions: %w", err)
	}

	return transactions, nil
}

// GetStalePendingTransactions retrieves gateway-backed entries that have been
// pending for longer than maxAge. These are the reconciliation candidates: a
// gateway call that timed out leaves its entry pending, never completed.
func (s *Store) GetStalePendingTransactions(ctx context.Context, maxAge time.Duration) ([]models.Transaction, error) {
	cutoff := formatTime(time.Now().Add(-maxAge))

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.JournalTableName),
		IndexName:              aws.String(stalePendingGSI),
		KeyConditionExpression: aws.String("#status = :status AND created_at < :cutoff"),
		FilterExpression:       aws.String("attribute_exists(gateway)"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(models.PENDING)},
			":cutoff": &types.AttributeValueMemberS{Value: cutoff},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for stale pending transactions: %w", err)
	}

	var transactions []models.Transaction
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &transactions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stale pending transactions: %w", err)
	}

	return transactions, nil
}

// CompleteTransaction transitions a pending journal entry to completed.
func (s *Store) CompleteTransaction(ctx context.Context, txID string) error {
	return s.transitionTransaction(ctx, txID, models.COMPLETED, "")
}

// FailTransaction transitions a pending journal entry to failed.
func (s *Store) FailTransaction(ctx context.Context, txID string, reason string) error {
	return s.transitionTransaction(ctx, txID, models.FAILED, reason)
}

func (s *Store) transitionTransaction(ctx context.Context, txID string, to models.TransactionStatus, reason string) error {
	item := s.journalStatusUpdate(txID, to, reason, time.Now())

	input := &dynamodb.UpdateItemInput{
		TableName:                 item.Update.TableName,
		Key:                       item.Update.Key,
		UpdateExpression:          item.Update.UpdateExpression,
		ConditionExpression:       item.Update.ConditionExpression,
		ExpressionAttributeNames:  item.Update.ExpressionAttributeNames,
		ExpressionAttributeValues: item.Update.ExpressionAttributeValues,
	}

	_, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return fmt.Errorf("transaction %s: %w", txID, storage.ErrTransactionTerminal)
		}
		return fmt.Errorf("failed to transition transaction %s to %s: %w", txID, to, err)
	}

	return nil
}

// RecordPending appends a journal entry in the pending state, consuming its
// idempotency key in the same atomic unit so concurrent retries of the same
// funding flow cannot both record an entry.
func (s *Store) RecordPending(ctx context.Context, tx *models.Transaction) error {
	tx.Status = models.PENDING

	items := make([]types.TransactWriteItem, 0, 2)
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

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && idemIdx >= 0 && canceledAt(tce.CancellationReasons, idemIdx) {
			return fmt.Errorf("key %s: %w", tx.IdempotencyKey, storage.ErrDuplicateOperation)
		}
		return fmt.Errorf("failed to record pending transaction: %w", err)
	}

	return nil
}

// RecordFailed appends a journal entry directly in the failed state. Declined
// operations stay auditable even though they never touched a balance.
func (s *Store) RecordFailed(ctx context.Context, tx *models.Transaction, reason string) error {
	tx.Status = models.FAILED
	tx.FailureReason = reason

	txAV, err := marshalItem(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal failed transaction: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.JournalTableName),
		Item:                txAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return fmt.Errorf("failed to record failed transaction: %w", err)
	}

	return nil
}
