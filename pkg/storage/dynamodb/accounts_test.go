package dynamodb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cbailey/wallet-ledger/pkg/models"
	"github.com/cbailey/wallet-ledger/pkg/storage"
	"github.com/cbailey/wallet-ledger/pkg/storage/dynamodb/mocks"
)

func TestCreateAccount(t *testing.T) {
	account := &models.Account{UserId: "user-a", Name: "Ada"}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(&dynamodb.PutItemOutput{}, nil)

		result, err := store.CreateAccount(context.Background(), account)

		assert.NoError(t, err)
		assert.Equal(t, account, result)
		mockClient.AssertExpectations(t)
	})

	t.Run("Already Exists", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		_, err := store.CreateAccount(context.Background(), account)

		assert.ErrorIs(t, err, storage.ErrAccountExists)
		mockClient.AssertExpectations(t)
	})
}

func TestGetAccount(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		accountAV, _ := attributevalue.MarshalMap(&models.Account{UserId: "user-a", Name: "Ada"})
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)

		result, err := store.GetAccount(context.Background(), "user-a")

		assert.NoError(t, err)
		assert.Equal(t, "user-a", result.UserId)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		_, err := store.GetAccount(context.Background(), "user-a")

		assert.ErrorIs(t, err, storage.ErrAccountNotFound)
		mockClient.AssertExpectations(t)
	})
}

func TestGetBalance(t *testing.T) {
	t.Run("Existing Row", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(balanceItem(t, "user-a", "USD", 5000, 3), nil)

		balance, ok, err := store.GetBalance(context.Background(), "user-a", "USD")

		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(5000), balance.AmountMinor)
		assert.Equal(t, int64(3), balance.Version)
		mockClient.AssertExpectations(t)
	})

	t.Run("Never Held Currency", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		balance, ok, err := store.GetBalance(context.Background(), "user-a", "EUR")

		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, int64(0), balance.AmountMinor)
		assert.Equal(t, "EUR", balance.Currency)
		mockClient.AssertExpectations(t)
	})
}
