package websockets

// MessageType defines the type of a WebSocket message.
type MessageType string

const (
	// MessageTypeBalanceUpdate is for messages pushed when a journal entry
	// changes a user's balance.
	MessageTypeBalanceUpdate MessageType = "balanceUpdate"

	// MessageTypeSubscriptionUpdate is for messages pushed when a
	// subscription is created, extended, or expires.
	MessageTypeSubscriptionUpdate MessageType = "subscriptionUpdate"
)

// Message represents a generic WebSocket message.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// BalanceUpdatePayload is the payload for a balanceUpdate message.
type BalanceUpdatePayload struct {
	UserID        string `json:"user_id"`
	TransactionID string `json:"transaction_id"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
}

// SubscriptionUpdatePayload is the payload for a subscriptionUpdate message.
type SubscriptionUpdatePayload struct {
	UserID         string `json:"user_id"`
	SubscriptionID string `json:"subscription_id"`
	Plan           string `json:"plan"`
	Status         string `json:"status"`
	ExpiresAt      string `json:"expires_at"`
}
