package dynamodb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cbailey/wallet-ledger/pkg/models"
	"github.com/cbailey/wallet-ledger/pkg/storage"
	"github.com/cbailey/wallet-ledger/pkg/storage/dynamodb/mocks"
)

func balanceItem(t *testing.T, userID, currency string, amountMinor, version int64) *dynamodb.GetItemOutput {
	t.Helper()
	av, err := attributevalue.MarshalMap(&models.Balance{
		UserId:      userID,
		Currency:    currency,
		AmountMinor: amountMinor,
		Version:     version,
	})
	assert.NoError(t, err)
	return &dynamodb.GetItemOutput{Item: av}
}

func TestDebitPending(t *testing.T) {
	tx := &models.Transaction{
		Id:          "tx-1",
		UserId:      "user-a",
		Type:        models.WITHDRAWAL,
		AmountMinor: 1000,
		Currency:    "USD",
		Gateway:     "stripe",
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(balanceItem(t, "user-a", "USD", 5000, 3), nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			return len(input.TransactItems) == 2
		})).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		err := store.DebitPending(context.Background(), tx)

		assert.NoError(t, err)
		assert.Equal(t, models.PENDING, tx.Status)
		mockClient.AssertExpectations(t)
	})

	t.Run("Insufficient Funds", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(balanceItem(t, "user-a", "USD", 500, 3), nil)

		err := store.DebitPending(context.Background(), tx)

		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)
		// The short balance fails fast: no write is attempted.
		mockClient.AssertNotCalled(t, "TransactWriteItems", mock.Anything, mock.Anything)
	})

	t.Run("Never Held Currency", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		err := store.DebitPending(context.Background(), tx)

		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)
	})

	t.Run("Version Conflict", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(balanceItem(t, "user-a", "USD", 5000, 3), nil)
		// Without an idempotency key the debit update sits at index 1.
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, conditionalCancel(1, 2))

		err := store.DebitPending(context.Background(), tx)

		assert.ErrorIs(t, err, storage.ErrVersionConflict)
		mockClient.AssertExpectations(t)
	})

	t.Run("Write Conflict Is Retryable", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(balanceItem(t, "user-a", "USD", 5000, 3), nil)
		// A concurrent transaction touching the same balance row cancels ours
		// with TransactionConflict, not a conditional failure. Same remedy:
		// re-read and retry.
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, conflictCancel(1, 2))

		err := store.DebitPending(context.Background(), tx)

		assert.ErrorIs(t, err, storage.ErrVersionConflict)
		mockClient.AssertExpectations(t)
	})

	t.Run("Replayed Key", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		guarded := *tx
		guarded.IdempotencyKey = "retry-key-1"
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(balanceItem(t, "user-a", "USD", 5000, 3), nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, conditionalCancel(0, 3))

		err := store.DebitPending(context.Background(), &guarded)

		assert.ErrorIs(t, err, storage.ErrDuplicateOperation)
		mockClient.AssertExpectations(t)
	})
}

func TestDebitCompleted(t *testing.T) {
	tx := &models.Transaction{
		Id:          "tx-2",
		UserId:      "user-a",
		Type:        models.PURCHASE,
		AmountMinor: 1500,
		Currency:    "USD",
	}

	mockClient := new(mocks.DynamoDBAPI)
	store := newTestStore(mockClient)

	mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(balanceItem(t, "user-a", "USD", 5000, 1), nil)
	mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

	err := store.DebitCompleted(context.Background(), tx)

	assert.NoError(t, err)
	assert.Equal(t, models.COMPLETED, tx.Status)
	mockClient.AssertExpectations(t)
}

func TestCompensateFailed(t *testing.T) {
	tx := &models.Transaction{
		Id:          "tx-1",
		UserId:      "user-a",
		Type:        models.WITHDRAWAL,
		Status:      models.PENDING,
		AmountMinor: 1000,
		Currency:    "USD",
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			return len(input.TransactItems) == 2
		})).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		err := store.CompensateFailed(context.Background(), tx, "provider declined payout")

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Already Terminal", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, conditionalCancel(0, 2))

		err := store.CompensateFailed(context.Background(), tx, "provider declined payout")

		assert.ErrorIs(t, err, storage.ErrTransactionTerminal)
		mockClient.AssertExpectations(t)
	})
}
