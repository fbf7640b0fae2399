package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"

	"github.com/cbailey/wallet-ledger/pkg/scheduler"
	"github.com/cbailey/wallet-ledger/pkg/storage"
	dydbstore "github.com/cbailey/wallet-ledger/pkg/storage/dynamodb"
)

var store storage.Storage
var sqsScheduler scheduler.Scheduler

const stalePendingThreshold = 20 * time.Minute

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	sqsClient := sqs.NewFromConfig(cfg)

	sqsQueueURL := os.Getenv("SQS_QUEUE_URL")
	if sqsQueueURL == "" {
		log.Fatal("SQS_QUEUE_URL environment variable not set")
	}
	sqsScheduler = scheduler.NewSQSScheduler(sqsClient, sqsQueueURL)

	store = dydbstore.New(dbClient,
		os.Getenv("DYNAMODB_ACCOUNTS_TABLE_NAME"),
		os.Getenv("DYNAMODB_BALANCES_TABLE_NAME"),
		os.Getenv("DYNAMODB_JOURNAL_TABLE_NAME"),
		os.Getenv("DYNAMODB_SUBSCRIPTIONS_TABLE_NAME"),
		os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME"),
	)
}

// HandleRequest is triggered by an EventBridge Schedule. It sweeps the journal
// for gateway transactions stuck in pending and re-enqueues them for a status
// check.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting reconciliation sweep for stale pending transactions...")

	staleTxs, err := store.GetStalePendingTransactions(ctx, stalePendingThreshold)
	if err != nil {
		log.Printf("ERROR: failed to get stale pending transactions: %v", err)
		return err
	}

	if len(staleTxs) == 0 {
		log.Println("No stale pending transactions found.")
		return nil
	}

	log.Printf("Found %d stale pending transactions. Re-enqueuing them...", len(staleTxs))

	for i := range staleTxs {
		tx := &staleTxs[i]
		if err := sqsScheduler.ScheduleStatusCheck(ctx, tx, 0); err != nil {
			log.Printf("ERROR: failed to re-enqueue transaction %s: %v", tx.Id, err)
			// Continue to the next transaction, don't let one failure stop the whole batch.
			continue
		}
		log.Printf("Successfully re-enqueued transaction %s", tx.Id)
	}

	log.Println("Reconciliation sweep finished.")
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
