package messenger

import "context"

// Button is a single decision control attached to a message. CustomID is
// the opaque action token delivered back on the interaction callback.
type Button struct {
	Label    string
	CustomID string
	Primary  bool
}

// Message is an outbound channel message with optional decision controls.
type Message struct {
	Content string
	Buttons []Button
}

// Messenger defines the interface to the notification channel provider.
type Messenger interface {
	// SendMessage posts a message to a channel and returns the provider's
	// id for the created message.
	SendMessage(ctx context.Context, channelID string, msg Message) (string, error)

	// DeleteMessage removes a previously posted message.
	DeleteMessage(ctx context.Context, channelID, messageID string) error
}
