package interactions

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/chris/splitwise-sync/pkg/approval"
	"github.com/chris/splitwise-sync/pkg/dispatch"
	"github.com/chris/splitwise-sync/pkg/token"
)

// Handler serves the interactions webhook. Verification and classification
// run synchronously on the request; everything that can block on network
// I/O is handed to the dispatcher, so the provider always gets its
// acknowledgment inside its response-latency budget.
type Handler struct {
	verifier   *Verifier
	dispatcher dispatch.Dispatcher
	log        zerolog.Logger
}

// NewHandler creates a Handler.
func NewHandler(verifier *Verifier, dispatcher dispatch.Dispatcher, log zerolog.Logger) *Handler {
	return &Handler{verifier: verifier, dispatcher: dispatcher, log: log}
}

// Interactions handles POST /interactions.
func (h *Handler) Interactions(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	// Authentication comes first: untrusted bytes are never parsed.
	if err := h.verifier.Verify(r.Header, body); err != nil {
		if errors.Is(err, ErrInvalidSignature) {
			http.Error(w, "invalid signature", http.StatusUnauthorized)
			return
		}
		h.log.Debug().Err(err).Msg("rejected unauthenticated interaction")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var interaction Interaction
	if err := json.Unmarshal(body, &interaction); err != nil {
		h.log.Debug().Err(err).Msg("rejected malformed interaction payload")
		http.Error(w, "malformed payload", http.StatusBadRequest)
		return
	}

	switch {
	case interaction.Type == TypePing:
		h.log.Debug().Msg("received ping interaction")
		h.respond(w, Response{Type: ResponsePong})

	case interaction.Type == TypeMessageComponent && interaction.Data != nil:
		h.handleMessageComponent(w, r, &interaction)

	case interaction.Type == TypeApplicationCommand && interaction.Data != nil,
		interaction.Type == TypeAutocomplete && interaction.Data != nil,
		interaction.Type == TypeModalSubmit && interaction.Data != nil:
		// Recognized kinds this service deliberately does not handle.
		h.log.Debug().Int("type", int(interaction.Type)).Msg("received unimplemented interaction kind")
		http.Error(w, "not implemented", http.StatusNotImplemented)

	default:
		h.log.Debug().Int("type", int(interaction.Type)).Msg("received unclassifiable interaction")
		http.Error(w, "unrecognized interaction", http.StatusBadRequest)
	}
}

// handleMessageComponent enqueues the decision and acknowledges. The ack is
// written only after a successful enqueue, but the decision itself runs on a
// background worker: the client sees the deferred ack before any ledger
// side effect can happen.
func (h *Handler) handleMessageComponent(w http.ResponseWriter, r *http.Request, interaction *Interaction) {
	if interaction.Message == nil || interaction.Channel == nil {
		http.Error(w, "component interaction missing message or channel", http.StatusBadRequest)
		return
	}

	decoded, err := token.Decode(interaction.Data.CustomID)
	if err != nil {
		h.log.Error().Err(err).Str("custom_id", interaction.Data.CustomID).Msg("component carried an undecodable action token")
		http.Error(w, "malformed action token", http.StatusBadRequest)
		return
	}

	decision := approval.Decision{
		Token:          decoded,
		ChannelID:      interaction.Channel.ID,
		MessageID:      interaction.Message.ID,
		MessageContent: interaction.Message.Content,
	}

	if err := h.dispatcher.Enqueue(r.Context(), decision); err != nil {
		h.log.Error().Err(err).Str("transaction_id", decoded.TransactionId).Msg("failed to enqueue decision")
		http.Error(w, "failed to schedule decision", http.StatusInternalServerError)
		return
	}

	h.log.Info().
		Str("transaction_id", decoded.TransactionId).
		Str("action", string(decoded.Action)).
		Msg("decision accepted for processing")

	h.respond(w, Response{Type: ResponseDeferredUpdateMessage})
}

// Healthz handles GET / as a trivial liveness check.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Hello, World!"))
}

func (h *Handler) respond(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.log.Error().Err(err).Msg("failed to write interaction response")
	}
}
