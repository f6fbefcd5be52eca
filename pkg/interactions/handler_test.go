package interactions_test

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chris/splitwise-sync/pkg/approval"
	"github.com/chris/splitwise-sync/pkg/dispatch"
	"github.com/chris/splitwise-sync/pkg/interactions"
	"github.com/chris/splitwise-sync/pkg/ledger"
	ledger_mocks "github.com/chris/splitwise-sync/pkg/ledger/mocks"
	"github.com/chris/splitwise-sync/pkg/message"
	messenger_mocks "github.com/chris/splitwise-sync/pkg/messenger/mocks"
	"github.com/chris/splitwise-sync/pkg/models"
	"github.com/chris/splitwise-sync/pkg/token"
)

// captureDispatcher records enqueued decisions instead of running them.
type captureDispatcher struct {
	decisions []approval.Decision
	err       error
}

func (c *captureDispatcher) Enqueue(ctx context.Context, d approval.Decision) error {
	if c.err != nil {
		return c.err
	}
	c.decisions = append(c.decisions, d)
	return nil
}

type fixture struct {
	handler    *interactions.Handler
	dispatcher *captureDispatcher
	priv       ed25519.PrivateKey
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	pub, priv := newKeyPair(t)
	verifier, err := interactions.NewVerifier(hex.EncodeToString(pub))
	require.NoError(t, err)

	dispatcher := &captureDispatcher{}
	return &fixture{
		handler:    interactions.NewHandler(verifier, dispatcher, zerolog.Nop()),
		dispatcher: dispatcher,
		priv:       priv,
	}
}

// post signs body with priv and posts it to the handler.
func (f *fixture) post(t *testing.T, priv ed25519.PrivateKey, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/interactions", bytes.NewReader(body))
	req.Header = signedHeaders(t, priv, "1693517401", body)
	rr := httptest.NewRecorder()
	f.handler.Interactions(rr, req)
	return rr
}

func marshal(t *testing.T, v any) []byte {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return body
}

func componentBody(t *testing.T, customID, content string) []byte {
	t.Helper()
	return marshal(t, interactions.Interaction{
		Type:    interactions.TypeMessageComponent,
		Data:    &interactions.Data{CustomID: customID},
		Message: &interactions.Message{ID: "msg-1", Content: content},
		Channel: &interactions.Channel{ID: "chan-1"},
	})
}

func TestInteractions_Ping(t *testing.T) {
	f := newFixture(t)

	rr := f.post(t, f.priv, marshal(t, interactions.Interaction{Type: interactions.TypePing}))

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp interactions.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, interactions.ResponsePong, resp.Type)
	assert.Empty(t, f.dispatcher.decisions)
}

func TestInteractions_MessageComponent(t *testing.T) {
	t.Run("Deferred Ack And Enqueue", func(t *testing.T) {
		f := newFixture(t)

		rr := f.post(t, f.priv, componentBody(t, "accept:tx-42", "whatever"))

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp interactions.Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, interactions.ResponseDeferredUpdateMessage, resp.Type)

		require.Len(t, f.dispatcher.decisions, 1)
		d := f.dispatcher.decisions[0]
		assert.Equal(t, token.ActionAccept, d.Token.Action)
		assert.Equal(t, "tx-42", d.Token.TransactionId)
		assert.Equal(t, "chan-1", d.ChannelID)
		assert.Equal(t, "msg-1", d.MessageID)
		assert.Equal(t, "whatever", d.MessageContent)
	})

	t.Run("Bad Action Token", func(t *testing.T) {
		f := newFixture(t)

		rr := f.post(t, f.priv, componentBody(t, "no-delimiter-here", "whatever"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, f.dispatcher.decisions)
	})

	t.Run("Missing Message", func(t *testing.T) {
		f := newFixture(t)
		body := marshal(t, interactions.Interaction{
			Type:    interactions.TypeMessageComponent,
			Data:    &interactions.Data{CustomID: "accept:tx-42"},
			Channel: &interactions.Channel{ID: "chan-1"},
		})

		rr := f.post(t, f.priv, body)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Enqueue Failure", func(t *testing.T) {
		f := newFixture(t)
		f.dispatcher.err = dispatch.ErrQueueClosed

		rr := f.post(t, f.priv, componentBody(t, "accept:tx-42", "whatever"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestInteractions_UnimplementedKinds(t *testing.T) {
	f := newFixture(t)

	for _, kind := range []interactions.Type{
		interactions.TypeApplicationCommand,
		interactions.TypeAutocomplete,
		interactions.TypeModalSubmit,
	} {
		body := marshal(t, interactions.Interaction{Type: kind, Data: &interactions.Data{Name: "sync"}})
		rr := f.post(t, f.priv, body)
		assert.Equal(t, http.StatusNotImplemented, rr.Code, "type %d", kind)
	}
	assert.Empty(t, f.dispatcher.decisions)
}

func TestInteractions_BadPayloads(t *testing.T) {
	t.Run("Invalid JSON", func(t *testing.T) {
		f := newFixture(t)
		rr := f.post(t, f.priv, []byte("{not json"))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Unknown Kind", func(t *testing.T) {
		f := newFixture(t)
		rr := f.post(t, f.priv, marshal(t, interactions.Interaction{Type: interactions.Type(99)}))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Recognized Kind Without Payload", func(t *testing.T) {
		f := newFixture(t)
		rr := f.post(t, f.priv, marshal(t, interactions.Interaction{Type: interactions.TypeApplicationCommand}))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestInteractions_Unauthenticated(t *testing.T) {
	t.Run("Wrong Key", func(t *testing.T) {
		f := newFixture(t)
		_, otherPriv := newKeyPair(t)

		rr := f.post(t, otherPriv, marshal(t, interactions.Interaction{Type: interactions.TypePing}))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Empty(t, f.dispatcher.decisions)
	})

	t.Run("Missing Headers", func(t *testing.T) {
		f := newFixture(t)
		body := marshal(t, interactions.Interaction{Type: interactions.TypePing})
		req := httptest.NewRequest(http.MethodPost, "/interactions", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		f.handler.Interactions(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

// TestInteractions_EndToEnd wires the handler to a real dispatch queue and
// the approval processor, and checks that an accept callback leads to the
// expense being committed and the message deleted after the ack.
func TestInteractions_EndToEnd(t *testing.T) {
	pub, priv := newKeyPair(t)
	verifier, err := interactions.NewVerifier(hex.EncodeToString(pub))
	require.NoError(t, err)

	txn := &models.Transaction{
		Id:          "tx-42",
		Date:        "2023-08-31",
		Description: "COFFEE SHOP",
		Amount:      decimal.NewFromFloat(-4.5),
	}

	t.Run("Accept Commits Then Deletes", func(t *testing.T) {
		mockLedger := ledger_mocks.NewLedger(t)
		mockMessenger := messenger_mocks.NewMessenger(t)
		mockLedger.On("CreateExpense", mock.Anything, mock.MatchedBy(func(e *ledger.Expense) bool {
			return e.Details == "mint:tx-42" && e.Cost.Equal(decimal.NewFromFloat(4.5))
		})).Return(nil)
		mockMessenger.On("DeleteMessage", mock.Anything, "chan-1", "msg-1").Return(nil)

		processor := approval.NewProcessor(mockLedger, mockMessenger, 77, zerolog.Nop())
		queue := dispatch.NewQueue(4, 1, processor, zerolog.Nop())
		handler := interactions.NewHandler(verifier, queue, zerolog.Nop())

		body := marshal(t, interactions.Interaction{
			Type:    interactions.TypeMessageComponent,
			Data:    &interactions.Data{CustomID: "accept:tx-42"},
			Message: &interactions.Message{ID: "msg-1", Content: message.Render(txn)},
			Channel: &interactions.Channel{ID: "chan-1"},
		})
		req := httptest.NewRequest(http.MethodPost, "/interactions", bytes.NewReader(body))
		req.Header = signedHeaders(t, priv, "1693517401", body)
		rr := httptest.NewRecorder()

		handler.Interactions(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)

		// Close drains the queue, so by the time it returns the decision has run.
		queue.Close()
	})

	t.Run("Ledger Failure Leaves Message", func(t *testing.T) {
		mockLedger := ledger_mocks.NewLedger(t)
		mockMessenger := messenger_mocks.NewMessenger(t)
		mockLedger.On("CreateExpense", mock.Anything, mock.Anything).Return(assert.AnError)

		processor := approval.NewProcessor(mockLedger, mockMessenger, 77, zerolog.Nop())
		queue := dispatch.NewQueue(4, 1, processor, zerolog.Nop())
		handler := interactions.NewHandler(verifier, queue, zerolog.Nop())

		body := marshal(t, interactions.Interaction{
			Type:    interactions.TypeMessageComponent,
			Data:    &interactions.Data{CustomID: "accept:tx-42"},
			Message: &interactions.Message{ID: "msg-1", Content: message.Render(txn)},
			Channel: &interactions.Channel{ID: "chan-1"},
		})
		req := httptest.NewRequest(http.MethodPost, "/interactions", bytes.NewReader(body))
		req.Header = signedHeaders(t, priv, "1693517401", body)
		rr := httptest.NewRecorder()

		handler.Interactions(rr, req)

		// The deferred ack is returned regardless of the ledger outcome.
		assert.Equal(t, http.StatusOK, rr.Code)

		queue.Close()
		mockMessenger.AssertNotCalled(t, "DeleteMessage", mock.Anything, mock.Anything, mock.Anything)
	})
}
