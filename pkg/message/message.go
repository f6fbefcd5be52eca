// Package message owns the notification text format. The renderer and the
// extractor live side by side on purpose: the approval flow re-reads the
// transaction fields out of the delivered message, so the format is a small
// wire contract rather than free text. Any change here must keep Render and
// Extract in lockstep.
package message

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chris/splitwise-sync/pkg/models"
)

const (
	header           = "New transaction! Sync to Splitwise?"
	labelDate        = "- Date: "
	labelAmount      = "- Amount: "
	labelDescription = "- Description: "

	// DateLayout is the calendar date format used in rendered messages and
	// expected from the Mint export.
	DateLayout = "2006-01-02"
)

// ErrMalformed is returned when a message body does not match the rendered
// format. It usually means the message was edited or the format drifted.
var ErrMalformed = errors.New("message does not match notification format")

// Fields are the transaction fields recovered from a rendered message.
type Fields struct {
	Date        time.Time
	Amount      decimal.Decimal
	Description string
}

// Render produces the notification body for a transaction. Line order is
// fixed; Extract depends on it.
func Render(txn *models.Transaction) string {
	return strings.Join([]string{
		header,
		labelDate + txn.Date,
		labelAmount + txn.Amount.String(),
		labelDescription + txn.Description,
	}, "\n")
}

// Extract recovers the date, amount and description from a rendered message
// body. It is a strict parser: every line must be present, in order, with
// its exact label.
func Extract(content string) (*Fields, error) {
	lines := strings.Split(content, "\n")
	if len(lines) < 4 || lines[0] != header {
		return nil, ErrMalformed
	}

	rawDate, ok := strings.CutPrefix(lines[1], labelDate)
	if !ok {
		return nil, fmt.Errorf("%w: missing date line", ErrMalformed)
	}
	rawAmount, ok := strings.CutPrefix(lines[2], labelAmount)
	if !ok {
		return nil, fmt.Errorf("%w: missing amount line", ErrMalformed)
	}
	// The description is free text and may itself contain newlines, so it
	// claims everything from its label to the end of the message.
	description, ok := strings.CutPrefix(strings.Join(lines[3:], "\n"), labelDescription)
	if !ok {
		return nil, fmt.Errorf("%w: missing description line", ErrMalformed)
	}

	date, err := time.Parse(DateLayout, rawDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date %q", ErrMalformed, rawDate)
	}
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return nil, fmt.Errorf("%w: bad amount %q", ErrMalformed, rawAmount)
	}

	return &Fields{Date: date, Amount: amount, Description: description}, nil
}
