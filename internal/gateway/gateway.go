package gateway

import "context"

// Tutor is what a gateway needs from the English assistant: a text reply
// for an incoming chat message.
type Tutor interface {
	Reply(ctx context.Context, userID, message string) (string, error)
}

// Messenger defines the interface for communication gateways.
type Messenger interface {
	// Start begins the message listening loop
	Start() error
	// Send sends a message to a specific chat
	Send(chatID string, text string) error
	// Stop gracefully shuts down the gateway
	Stop() error
}
