package websockets

import "context"

// NoOpPublisher discards every message. It stands in when no WebSocket
// endpoint is configured, and in tests.
type NoOpPublisher struct{}

var _ Publisher = (*NoOpPublisher)(nil)

// Publish does nothing.
func (p *NoOpPublisher) Publish(context.Context, Message) error {
	return nil
}
