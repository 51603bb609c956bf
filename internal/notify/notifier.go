package notify

import "context"

// SendResult is the per-message delivery outcome from the messaging backend.
type SendResult struct {
	Recipient string `json:"recipient"`
	Cost      string `json:"cost,omitempty"`
	MessageID string `json:"message_id,omitempty"`
}

// Notifier is the external message-delivery capability.
type Notifier interface {
	Send(ctx context.Context, message, recipient string) (SendResult, error)
}

// SendFunc adapts a plain function to the Notifier interface.
type SendFunc func(ctx context.Context, message, recipient string) (SendResult, error)

func (f SendFunc) Send(ctx context.Context, message, recipient string) (SendResult, error) {
	return f(ctx, message, recipient)
}
