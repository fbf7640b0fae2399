package storage

import "context"

// WebsocketStore defines the interface for storing WebSocket connections.
type WebsocketStore interface {
	AddConnection(ctx context.Context, connectionID string) error
	RemoveConnection(ctx context.Context, connectionID string) error
	GetAllConnections(ctx context.Context) ([]string, error)
}
