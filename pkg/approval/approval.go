// Package approval processes decisions delivered by interaction callbacks.
// All state a decision needs travels inside its action token and the text
// of the originating message; the processor holds only read-only client
// handles and is safe to call concurrently.
package approval

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/chris/splitwise-sync/pkg/ledger"
	"github.com/chris/splitwise-sync/pkg/message"
	"github.com/chris/splitwise-sync/pkg/messenger"
	"github.com/chris/splitwise-sync/pkg/token"
)

// ErrUnparseableMessage is returned when the transaction fields cannot be
// recovered from the originating message. This indicates the message was
// edited or the notification format drifted, and is a defect rather than a
// transient condition.
var ErrUnparseableMessage = errors.New("unable to extract transaction from message")

// ErrLedgerRejected is returned when the ledger refuses the expense. The
// originating message is left in place so the decision can be retried by a
// human.
var ErrLedgerRejected = errors.New("ledger rejected expense")

// Decision is one resolved action token together with the message that
// carried its buttons.
type Decision struct {
	Token          token.Token
	ChannelID      string
	MessageID      string
	MessageContent string
}

// Processor commits accepted transactions to the ledger and retires the
// originating message.
type Processor struct {
	ledger    ledger.Ledger
	messenger messenger.Messenger
	groupID   int64
	log       zerolog.Logger
}

// NewProcessor creates a Processor committing expenses to the given
// Splitwise group.
func NewProcessor(lgr ledger.Ledger, msgr messenger.Messenger, groupID int64, log zerolog.Logger) *Processor {
	return &Processor{ledger: lgr, messenger: msgr, groupID: groupID, log: log}
}

// Process applies one decision. For an accept it commits the expense first
// and only then deletes the message; if the commit fails the message stays,
// since an undeleted message is the only record that the decision is still
// pending. For an ignore it just deletes the message.
func (p *Processor) Process(ctx context.Context, d Decision) error {
	log := p.log.With().
		Str("transaction_id", d.Token.TransactionId).
		Str("action", string(d.Token.Action)).
		Str("message_id", d.MessageID).
		Logger()

	if d.Token.Action == token.ActionAccept {
		if err := p.commit(ctx, &d, log); err != nil {
			return err
		}
	}

	// Deleting the message is the terminal transition: once it is gone the
	// buttons are gone, which is what prevents a second accept. A failure
	// here after a successful commit leaves a stale message that must be
	// cleaned up by hand, so it is logged loudly but not returned as a
	// workflow failure.
	if err := p.messenger.DeleteMessage(ctx, d.ChannelID, d.MessageID); err != nil {
		log.Error().Err(err).Msg("committed decision but failed to delete message; manual cleanup required")
		return nil
	}

	log.Info().Msg("decision processed, message deleted")
	return nil
}

func (p *Processor) commit(ctx context.Context, d *Decision, log zerolog.Logger) error {
	fields, err := message.Extract(d.MessageContent)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnparseableMessage, err)
	}

	expense := &ledger.Expense{
		// The export encodes direction in the sign; the ledger always
		// records a positive cost.
		Cost:         fields.Amount.Abs(),
		Description:  fields.Description,
		Date:         fields.Date,
		GroupID:      p.groupID,
		Details:      "mint:" + d.Token.TransactionId,
		CurrencyCode: "USD",
	}

	log.Info().
		Str("cost", expense.Cost.String()).
		Str("description", expense.Description).
		Int64("group_id", expense.GroupID).
		Msg("creating ledger expense")

	if err := p.ledger.CreateExpense(ctx, expense); err != nil {
		return fmt.Errorf("%w: %v", ErrLedgerRejected, err)
	}
	return nil
}
