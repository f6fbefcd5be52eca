// Package token encodes and decodes the action tokens carried by message
// button custom IDs. The token is the only link between a published
// notification and the decision made on it, so it must round-trip exactly.
package token

import (
	"errors"
	"fmt"
	"strings"
)

// Delimiter separates the action from the transaction id inside a token.
const Delimiter = ":"

// Action is a decision offered on a published transaction.
type Action string

const (
	ActionAccept Action = "accept"
	ActionIgnore Action = "ignore"
)

// ErrNoDelimiter is returned when a token contains no delimiter at all.
var ErrNoDelimiter = errors.New("token has no delimiter")

// ErrEmptyField is returned when the action or transaction id half of a token is empty.
var ErrEmptyField = errors.New("token field is empty")

// ErrUnknownAction is returned when the action half is not a known action.
var ErrUnknownAction = errors.New("unknown action")

// ErrReservedDelimiter is returned by Encode when the transaction id itself
// contains the delimiter, which would make the token ambiguous on decode.
var ErrReservedDelimiter = errors.New("transaction id contains reserved delimiter")

// Token pairs a decision with the transaction it applies to.
type Token struct {
	Action        Action
	TransactionId string
}

// Encode builds the "<action>:<transactionId>" string carried by a button.
func Encode(action Action, transactionId string) (string, error) {
	if transactionId == "" {
		return "", ErrEmptyField
	}
	if strings.Contains(transactionId, Delimiter) {
		return "", fmt.Errorf("%w: %q", ErrReservedDelimiter, transactionId)
	}
	switch action {
	case ActionAccept, ActionIgnore:
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	return string(action) + Delimiter + transactionId, nil
}

// Decode splits a token on its first delimiter and validates both halves.
func Decode(raw string) (Token, error) {
	action, id, found := strings.Cut(raw, Delimiter)
	if !found {
		return Token{}, fmt.Errorf("%w: %q", ErrNoDelimiter, raw)
	}
	if action == "" || id == "" {
		return Token{}, fmt.Errorf("%w: %q", ErrEmptyField, raw)
	}
	switch Action(action) {
	case ActionAccept, ActionIgnore:
	default:
		return Token{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	return Token{Action: Action(action), TransactionId: id}, nil
}
