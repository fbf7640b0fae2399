package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cbailey/wallet-ledger/pkg/models"
	"github.com/cbailey/wallet-ledger/pkg/storage"
)

// CreateAccount creates a new account record in DynamoDB.
func (s *Store) CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	accountAV, err := attributevalue.MarshalMap(account)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.AccountsTableName),
		Item:                accountAV,
		ConditionExpression: aws.String("attribute_not_exists(user_id)"), // Prevent overwriting existing accounts.
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("user %s: %w", account.UserId, storage.ErrAccountExists)
		}
		return nil, fmt.Errorf("failed to create account in DynamoDB: %w", err)
	}

	return account, nil
}

// GetAccount retrieves an account from DynamoDB by user ID.
func (s *Store) GetAccount(ctx context.Context, userID string) (*models.Account, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account user ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.AccountsTableName),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get account from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("user %s: %w", userID, storage.ErrAccountNotFound)
	}

	var account models.Account
	if err := attributevalue.UnmarshalMap(result.Item, &account); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}

	return &account, nil
}

// ListAccounts retrieves all accounts from DynamoDB.
func (s *Store) ListAccounts(ctx context.Context) ([]models.Account, error) {
	result, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.AccountsTableName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts table: %w", err)
	}

	var accounts []models.Account
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &accounts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal accounts: %w", err)
	}

	return accounts, nil
}
