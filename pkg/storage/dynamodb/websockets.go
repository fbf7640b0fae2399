package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// connectionsGSI groups every live connection under a single partition so they
// can be listed with one query.
const connectionsGSI = "pk-index"

type connectionItem struct {
	ConnectionID string `dynamodbav:"connection_id"`
	PK           string `dynamodbav:"pk"`
}

// AddConnection registers a WebSocket connection ID.
func (s *Store) AddConnection(ctx context.Context, connectionID string) error {
	item, err := attributevalue.MarshalMap(connectionItem{ConnectionID: connectionID, PK: "connections"})
	if err != nil {
		return fmt.Errorf("failed to marshal connection: %w", err)
	}

	if _, err := s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.WebsocketConnectionsTableName),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("failed to put connection: %w", err)
	}
	return nil
}

// RemoveConnection drops a WebSocket connection ID, typically after the API
// Gateway reports it gone.
func (s *Store) RemoveConnection(ctx context.Context, connectionID string) error {
	if _, err := s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.WebsocketConnectionsTableName),
		Key: map[string]types.AttributeValue{
			"connection_id": &types.AttributeValueMemberS{Value: connectionID},
		},
	}); err != nil {
		return fmt.Errorf("failed to delete connection: %w", err)
	}
	return nil
}

// GetAllConnections lists every live WebSocket connection ID.
func (s *Store) GetAllConnections(ctx context.Context) ([]string, error) {
	out, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.WebsocketConnectionsTableName),
		IndexName:              aws.String(connectionsGSI),
		KeyConditionExpression: aws.String("pk = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: "connections"},
		},
		ProjectionExpression: aws.String("connection_id"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query connections table: %w", err)
	}

	var items []connectionItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal connections: %w", err)
	}

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ConnectionID
	}
	return ids, nil
}
