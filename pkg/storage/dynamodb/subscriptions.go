package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cbailey/wallet-ledger/pkg/models"
	"github.com/cbailey/wallet-ledger/pkg/storage"
)

// GetSubscription retrieves the user's subscription row.
func (s *Store) GetSubscription(ctx context.Context, userID string) (*models.Subscription, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal subscription key: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.SubscriptionsTableName),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("user %s: %w", userID, storage.ErrSubscriptionNotFound)
	}

	var sub models.Subscription
	if err := attributevalue.UnmarshalMap(result.Item, &sub); err != nil {
		return nil, fmt.Errorf("failed to unmarshal subscription: %w", err)
	}

	return &sub, nil
}

// CreateSubscriptionWithCharge atomically debits the balance, records the charge
// in the journal, and writes the subscription row. One row per user plus the
// not-active condition enforce the single-active-subscription invariant; a
// failed debit leaves no subscription behind.
func (s *Store) CreateSubscriptionWithCharge(ctx context.Context, sub *models.Subscription, chargeTx *models.Transaction) error {
	balance, ok, err := s.GetBalance(ctx, sub.UserId, sub.Currency)
	if err != nil {
		return fmt.Errorf("failed to get balance for subscription charge: %w", err)
	}
	if !ok || balance.AmountMinor < sub.AmountMinor {
		return storage.ErrInsufficientFunds
	}

	now := time.Now()
	chargeTx.Status = models.COMPLETED

	subAV, err := marshalItem(sub)
	if err != nil {
		return fmt.Errorf("failed to marshal subscription: %w", err)
	}
	chargePut, err := s.journalPut(chargeTx)
	if err != nil {
		return err
	}

	const (
		debitIdx = 0
		subIdx   = 2
	)
	items := []types.TransactWriteItem{
		s.debitUpdate(sub.UserId, sub.Currency, sub.AmountMinor, balance.Version, now),
		chargePut,
		{
			Put: &types.Put{
				TableName:           aws.String(s.SubscriptionsTableName),
				Item:                subAV,
				ConditionExpression: aws.String("attribute_not_exists(user_id) OR #status <> :active"),
				ExpressionAttributeNames: map[string]string{
					"#status": "status",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":active": &types.AttributeValueMemberS{Value: string(models.SubscriptionActive)},
				},
			},
		},
	}

	slog.Log(ctx, slog.LevelDebug, "creating subscription with charge",
		"subscription_id", sub.Id, "user_id", sub.UserId, "plan", sub.Plan, "amount_minor", sub.AmountMinor)

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			if canceledAt(tce.CancellationReasons, subIdx) {
				return fmt.Errorf("user %s already has an active subscription: %w", sub.UserId, storage.ErrSubscriptionNotActive)
			}
			if canceledAt(tce.CancellationReasons, debitIdx) {
				return storage.ErrVersionConflict
			}
			if conflictedAny(tce.CancellationReasons) {
				return storage.ErrVersionConflict
			}
		}
		return fmt.Errorf("failed to execute subscription transaction: %w", err)
	}

	return nil
}

// ExtendSubscription pushes expires_at forward, only while the row is active
// and still carries the expected subscription ID.
func (s *Store) ExtendSubscription(ctx context.Context, userID, subscriptionID string, newExpiresAt time.Time) error {
	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.SubscriptionsTableName),
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
		},
		UpdateExpression:    aws.String("SET expires_at = :expires, updated_at = :now"),
		ConditionExpression: aws.String("id = :id AND #status = :active"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expires": &types.AttributeValueMemberS{Value: formatTime(newExpiresAt)},
			":id":      &types.AttributeValueMemberS{Value: subscriptionID},
			":active":  &types.AttributeValueMemberS{Value: string(models.SubscriptionActive)},
			":now":     &types.AttributeValueMemberS{Value: formatTime(time.Now())},
		},
	}

	_, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return fmt.Errorf("subscription %s: %w", subscriptionID, storage.ErrSubscriptionNotActive)
		}
		return fmt.Errorf("failed to extend subscription %s: %w", subscriptionID, err)
	}

	return nil
}

// ExpireSubscription transitions active -> expired once expires_at has passed.
// Idempotent: already-terminal rows and not-yet-due rows are left untouched, and
// a lost race with a concurrent expiry is benign.
func (s *Store) ExpireSubscription(ctx context.Context, userID string, now time.Time) (*models.Subscription, error) {
	sub, err := s.GetSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}

	if sub.Status != models.SubscriptionActive || sub.ExpiresAt.After(now) {
		return sub, nil
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.SubscriptionsTableName),
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
		},
		UpdateExpression:    aws.String("SET #status = :expired, updated_at = :now"),
		ConditionExpression: aws.String("#status = :active AND expires_at <= :cutoff"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expired": &types.AttributeValueMemberS{Value: string(models.SubscriptionExpired)},
			":active":  &types.AttributeValueMemberS{Value: string(models.SubscriptionActive)},
			":cutoff":  &types.AttributeValueMemberS{Value: formatTime(now)},
			":now":     &types.AttributeValueMemberS{Value: formatTime(now)},
		},
	}

	_, err = s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if !errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("failed to expire subscription for user %s: %w", userID, err)
		}
		// The row changed under us, most likely a concurrent renewal. Return
		// what is actually stored rather than assuming the expiry won.
		return s.GetSubscription(ctx, userID)
	}

	sub.Status = models.SubscriptionExpired
	sub.UpdatedAt = now
	return sub, nil
}
