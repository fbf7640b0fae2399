package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/cbailey/wallet-ledger/pkg/gateway"
	"github.com/cbailey/wallet-ledger/pkg/ledger"
	"github.com/cbailey/wallet-ledger/pkg/metrics"
	"github.com/cbailey/wallet-ledger/pkg/models"
	dydbstore "github.com/cbailey/wallet-ledger/pkg/storage/dynamodb"
)

var reconciler *ledger.Reconciler

func init() {
	// Load environment variables from .env file (useful for local testing).
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize dependencies once.
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	store := dydbstore.New(dbClient,
		os.Getenv("DYNAMODB_ACCOUNTS_TABLE_NAME"),
		os.Getenv("DYNAMODB_BALANCES_TABLE_NAME"),
		os.Getenv("DYNAMODB_JOURNAL_TABLE_NAME"),
		os.Getenv("DYNAMODB_SUBSCRIPTIONS_TABLE_NAME"),
		os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME"),
	)

	var providers []gateway.Gateway
	if base := os.Getenv("STRIPE_BASE_URL"); base != "" {
		providers = append(providers, gateway.NewStripe(base, os.Getenv("STRIPE_API_KEY")))
	}
	if base := os.Getenv("PAYPAL_BASE_URL"); base != "" {
		providers = append(providers, gateway.NewPaypal(base, os.Getenv("PAYPAL_API_KEY")))
	}

	reconciler = ledger.NewReconciler(store, gateway.NewRegistry(providers...), metrics.NewCollector())
}

// HandleRequest processes SQS messages and resolves pending gateway
// transactions against the provider's reported status.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var tx models.Transaction
		if err := json.Unmarshal([]byte(message.Body), &tx); err != nil {
			log.Printf("ERROR: failed to unmarshal transaction from SQS message %s: %v", message.MessageId, err)
			// Returning an error will cause SQS to retry the message, which is appropriate here.
			return err
		}

		log.Printf("Attempting to reconcile transaction %s", tx.Id)

		if err := reconciler.Reconcile(ctx, &tx); err != nil {
			log.Printf("ERROR: failed to reconcile transaction %s: %v", tx.Id, err)
			// In a production system, persistent failures would be sent to a DLQ.
			return err
		}

		log.Printf("Successfully reconciled transaction %s", tx.Id)
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
