package dynamodb

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cbailey/wallet-ledger/pkg/storage"
)

// timeFormat is RFC 3339 with a fixed nanosecond width. Range conditions and
// GSI sort keys compare these strings byte-wise, so the encoding must sort the
// same way the instants do; RFC3339Nano trims trailing zeros and does not.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

// marshalItem marshals v like attributevalue.MarshalMap but encodes every
// time.Time in timeFormat.
func marshalItem(v any) (map[string]types.AttributeValue, error) {
	return attributevalue.MarshalMapWithOptions(v, func(o *attributevalue.EncoderOptions) {
		o.EncodeTime = func(t time.Time) (types.AttributeValue, error) {
			return &types.AttributeValueMemberS{Value: formatTime(t)}, nil
		}
	})
}

// DynamoDBAPI is the subset of the DynamoDB client used by the Store. Declared
// here so tests can substitute a mockery mock for the real client.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store implements the Storage interface using AWS DynamoDB. Multi-row units of
// work go through TransactWriteItems; single-row mutations use conditional
// expressions. Balances carry a version attribute for optimistic locking.
type Store struct {
	Client                        DynamoDBAPI
	AccountsTableName             string
	BalancesTableName             string
	JournalTableName              string
	SubscriptionsTableName        string
	WebsocketConnectionsTableName string
}

// New creates a new Store.
func New(client DynamoDBAPI, accountsTable, balancesTable, journalTable, subscriptionsTable, connectionsTable string) *Store {
	return &Store{
		Client:                        client,
		AccountsTableName:             accountsTable,
		BalancesTableName:             balancesTable,
		JournalTableName:              journalTable,
		SubscriptionsTableName:        subscriptionsTable,
		WebsocketConnectionsTableName: connectionsTable,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)
