package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/cbailey/wallet-ledger/pkg/api"
	"github.com/cbailey/wallet-ledger/pkg/gateway"
	"github.com/cbailey/wallet-ledger/pkg/handlers"
	"github.com/cbailey/wallet-ledger/pkg/handlers/connections"
	journalhandler "github.com/cbailey/wallet-ledger/pkg/handlers/journal"
	"github.com/cbailey/wallet-ledger/pkg/handlers/payments"
	subshandler "github.com/cbailey/wallet-ledger/pkg/handlers/subscriptions"
	"github.com/cbailey/wallet-ledger/pkg/handlers/wallets"
	"github.com/cbailey/wallet-ledger/pkg/ledger"
	"github.com/cbailey/wallet-ledger/pkg/metrics"
	"github.com/cbailey/wallet-ledger/pkg/middleware"
	"github.com/cbailey/wallet-ledger/pkg/scheduler"
	dydbstore "github.com/cbailey/wallet-ledger/pkg/storage/dynamodb"
	"github.com/cbailey/wallet-ledger/pkg/subscriptions"
	"github.com/cbailey/wallet-ledger/pkg/websockets"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// AWS Session
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	accountsTable := os.Getenv("DYNAMODB_ACCOUNTS_TABLE_NAME")
	balancesTable := os.Getenv("DYNAMODB_BALANCES_TABLE_NAME")
	journalTable := os.Getenv("DYNAMODB_JOURNAL_TABLE_NAME")
	subscriptionsTable := os.Getenv("DYNAMODB_SUBSCRIPTIONS_TABLE_NAME")
	connectionsTable := os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME")

	if accountsTable == "" || balancesTable == "" || journalTable == "" || subscriptionsTable == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	store := dydbstore.New(dbClient, accountsTable, balancesTable, journalTable, subscriptionsTable, connectionsTable)

	// SQS Client and Scheduler
	sqsClient := sqs.NewFromConfig(cfg)
	sqsQueueURL := os.Getenv("SQS_QUEUE_URL")
	if sqsQueueURL == "" {
		log.Fatal("SQS_QUEUE_URL environment variable not set")
	}
	sqsScheduler := scheduler.NewSQSScheduler(sqsClient, sqsQueueURL)

	// Payment gateway registry. Providers without a configured base URL are
	// left out, so requests naming them fail with a clear error.
	var providers []gateway.Gateway
	if base := os.Getenv("STRIPE_BASE_URL"); base != "" {
		providers = append(providers, gateway.NewStripe(base, os.Getenv("STRIPE_API_KEY")))
	}
	if base := os.Getenv("PAYPAL_BASE_URL"); base != "" {
		providers = append(providers, gateway.NewPaypal(base, os.Getenv("PAYPAL_API_KEY")))
	}
	registry := gateway.NewRegistry(providers...)

	collector := metrics.NewCollector()
	feePolicy := ledger.FeePolicy(os.Getenv("TOPUP_FEE_POLICY"))
	ledgerService := ledger.NewService(store, registry, sqsScheduler, collector, feePolicy)
	subscriptionService := subscriptions.NewService(store, time.Now)

	// WebSocket publisher for balance and subscription pushes. Optional.
	var publisher websockets.Publisher = &websockets.NoOpPublisher{}
	if endpoint := os.Getenv("WEBSOCKET_API_ENDPOINT"); endpoint != "" {
		publisher = websockets.NewPublisher(cfg, store, endpoint)
	}

	walletsHandler := wallets.NewWalletsHandler(store, ledgerService)
	paymentsHandler := payments.NewPaymentsHandler(ledgerService, publisher)
	journalHandler := journalhandler.NewJournalHandler(ledgerService)
	subsHandler := subshandler.NewSubscriptionsHandler(subscriptionService, publisher)
	connectionsHandler := connections.NewConnectionsHandler(store)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(middleware.NewStructuredLogger(logger))
	router.Use(chimiddleware.Recoverer)

	router.Route("/accounts", func(r chi.Router) {
		r.Post("/", walletsHandler.CreateAccount)
		r.Get("/", walletsHandler.ListAccounts)
		r.Route("/{userId}", func(r chi.Router) {
			r.Get("/", withUserID(walletsHandler.GetAccount))
			r.Get("/balance", withUserID(walletsHandler.GetBalance))
			r.Post("/topup", withUserID(paymentsHandler.TopUp))
			r.Post("/withdraw", withUserID(paymentsHandler.Withdraw))
			r.Post("/transfer", withUserID(paymentsHandler.Transfer))
			r.Get("/transactions", withUserID(journalHandler.ListTransactions))
			r.Post("/subscription", withUserID(subsHandler.CreateSubscription))
			r.Get("/subscription", withUserID(subsHandler.GetSubscription))
			r.Post("/subscription/{subscriptionId}/extend", func(w http.ResponseWriter, r *http.Request) {
				subsHandler.ExtendSubscription(w, r, chi.URLParam(r, "userId"), chi.URLParam(r, "subscriptionId"))
			})
		})
	})
	router.Get("/transactions/{transactionId}", func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "transactionId"))
		if err != nil {
			handlers.WriteJSON(w, http.StatusBadRequest, api.Error{Error: "invalid transaction id"})
			return
		}
		journalHandler.GetTransactionById(w, r, openapi_types.UUID(id))
	})
	router.Handle("/metrics", collector.Handler())
	// Local stand-in for the API Gateway WebSocket routes.
	router.Get("/ws", connectionsHandler.ServeHTTP)

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	log.Printf("Starting server on port %s", port)

	// Start the server
	err = http.ListenAndServe(":"+port, router)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func withUserID(h func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h(w, r, chi.URLParam(r, "userId"))
	}
}
