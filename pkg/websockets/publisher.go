package websockets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
)

// ManagementAPI is the slice of the API Gateway management client the
// publisher needs.
type ManagementAPI interface {
	PostToConnection(ctx context.Context, params *apigatewaymanagementapi.PostToConnectionInput, optFns ...func(*apigatewaymanagementapi.Options)) (*apigatewaymanagementapi.PostToConnectionOutput, error)
}

// DefaultPublisher fans a message out to every registered connection through
// the API Gateway management API.
type DefaultPublisher struct {
	connections ConnectionStore
	client      ManagementAPI
}

// NewPublisher creates a DefaultPublisher against the given WebSocket API
// endpoint.
func NewPublisher(cfg aws.Config, connections ConnectionStore, apiEndpoint string) *DefaultPublisher {
	client := apigatewaymanagementapi.NewFromConfig(cfg, func(o *apigatewaymanagementapi.Options) {
		o.BaseEndpoint = aws.String(apiEndpoint)
	})
	return &DefaultPublisher{connections: connections, client: client}
}

// Publish sends message to every live connection. Delivery is best effort:
// per-connection failures are logged, never returned, so a broken client
// cannot fail the request that triggered the push.
func (p *DefaultPublisher) Publish(ctx context.Context, message Message) error {
	ids, err := p.connections.GetAllConnections(ctx)
	if err != nil {
		return fmt.Errorf("failed to list connections: %w", err)
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal %s message: %w", message.Type, err)
	}

	for _, id := range ids {
		_, err := p.client.PostToConnection(ctx, &apigatewaymanagementapi.PostToConnectionInput{
			ConnectionId: aws.String(id),
			Data:         data,
		})
		if err != nil {
			p.dropIfGone(ctx, id, err)
		}
	}

	return nil
}

// dropIfGone removes a connection the management API reports as gone, meaning
// the client disconnected without a clean $disconnect.
func (p *DefaultPublisher) dropIfGone(ctx context.Context, connectionID string, err error) {
	var gone *apigwtypes.GoneException
	if !errors.As(err, &gone) {
		slog.Error("failed to push to connection", "connection_id", connectionID, "error", err)
		return
	}
	if err := p.connections.RemoveConnection(ctx, connectionID); err != nil {
		slog.Error("failed to drop stale connection", "connection_id", connectionID, "error", err)
	}
}
