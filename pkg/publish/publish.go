// Package publish turns new transactions into channel notifications with
// accept/ignore controls.
package publish

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/chris/splitwise-sync/pkg/message"
	"github.com/chris/splitwise-sync/pkg/messenger"
	"github.com/chris/splitwise-sync/pkg/models"
	"github.com/chris/splitwise-sync/pkg/token"
)

// Publisher posts one notification per transaction to a fixed channel.
type Publisher struct {
	messenger messenger.Messenger
	channelID string
	log       zerolog.Logger
}

// NewPublisher creates a Publisher targeting channelID.
func NewPublisher(msgr messenger.Messenger, channelID string, log zerolog.Logger) *Publisher {
	return &Publisher{messenger: msgr, channelID: channelID, log: log}
}

// Publish sends the notification for one transaction. Both buttons encode
// the same transaction id; the rendered body is the format the approval
// flow later parses. Errors are surfaced as-is, with no retry.
func (p *Publisher) Publish(ctx context.Context, txn *models.Transaction) error {
	acceptID, err := token.Encode(token.ActionAccept, txn.Id)
	if err != nil {
		return fmt.Errorf("failed to encode accept token for %q: %w", txn.Id, err)
	}
	ignoreID, err := token.Encode(token.ActionIgnore, txn.Id)
	if err != nil {
		return fmt.Errorf("failed to encode ignore token for %q: %w", txn.Id, err)
	}

	msg := messenger.Message{
		Content: message.Render(txn),
		Buttons: []messenger.Button{
			{Label: "Accept", CustomID: acceptID, Primary: true},
			{Label: "Ignore", CustomID: ignoreID},
		},
	}

	messageID, err := p.messenger.SendMessage(ctx, p.channelID, msg)
	if err != nil {
		return fmt.Errorf("failed to publish transaction %q: %w", txn.Id, err)
	}

	p.log.Info().
		Str("transaction_id", txn.Id).
		Str("message_id", messageID).
		Str("channel_id", p.channelID).
		Msg("published transaction notification")
	return nil
}

// PublishAll publishes each transaction in order, stopping at the first
// failure. Each publish is independent, so a partial run leaves the already
// published notifications valid.
func (p *Publisher) PublishAll(ctx context.Context, txns []models.Transaction) error {
	for i := range txns {
		if err := p.Publish(ctx, &txns[i]); err != nil {
			return err
		}
	}
	return nil
}
