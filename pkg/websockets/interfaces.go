package websockets

import "context"

// ConnectionStore tracks live WebSocket connections. Rows are written by the
// $connect and $disconnect route handlers; the publisher reads them all on
// every fan-out and prunes the ones the management API reports gone.
type ConnectionStore interface {
	AddConnection(ctx context.Context, connectionID string) error
	RemoveConnection(ctx context.Context, connectionID string) error
	GetAllConnections(ctx context.Context) ([]string, error)
}

// Publisher pushes a message to every connected client.
type Publisher interface {
	Publish(ctx context.Context, message Message) error
}
