package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/cbailey/wallet-ledger/pkg/models"
)

// GetBalance retrieves the (user, currency) balance row. A user who has never
// held the currency gets a zero balance back with ok=false; the 0-vs-404 policy
// is decided by the caller.
func (s *Store) GetBalance(ctx context.Context, userID, currency string) (*models.Balance, bool, error) {
	key, err := attributevalue.MarshalMap(map[string]string{
		"user_id":  userID,
		"currency": currency,
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal balance key: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.BalancesTableName),
		Key:       key,
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to get balance from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return &models.Balance{UserId: userID, Currency: currency}, false, nil
	}

	var balance models.Balance
	if err := attributevalue.UnmarshalMap(result.Item, &balance); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal balance: %w", err)
	}

	return &balance, true, nil
}
