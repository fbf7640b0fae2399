package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/cbailey/wallet-ledger/pkg/handlers/connections"
	dydbstore "github.com/cbailey/wallet-ledger/pkg/storage/dynamodb"
)

var handler *connections.ConnectionsHandler

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	store := dydbstore.New(dynamodb.NewFromConfig(cfg),
		os.Getenv("DYNAMODB_ACCOUNTS_TABLE_NAME"),
		os.Getenv("DYNAMODB_BALANCES_TABLE_NAME"),
		os.Getenv("DYNAMODB_JOURNAL_TABLE_NAME"),
		os.Getenv("DYNAMODB_SUBSCRIPTIONS_TABLE_NAME"),
		os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME"),
	)

	handler = connections.NewConnectionsHandler(store)
}

// HandleRequest dispatches API Gateway WebSocket events by route.
func HandleRequest(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch request.RequestContext.RouteKey {
	case "$connect":
		return handler.HandleConnect(ctx, request)
	case "$disconnect":
		return handler.HandleDisconnect(ctx, request)
	default:
		return handler.HandleDefault(ctx, request)
	}
}

func main() {
	lambda.Start(HandleRequest)
}
