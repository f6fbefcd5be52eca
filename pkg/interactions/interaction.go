package interactions

// Wire types for the provider's interaction payloads. Only the fields this
// service reads are modeled; the rest of the payload is ignored on decode.

// Type tags an inbound interaction.
type Type int

const (
	TypePing               Type = 1
	TypeApplicationCommand Type = 2
	TypeMessageComponent   Type = 3
	TypeAutocomplete       Type = 4
	TypeModalSubmit        Type = 5
)

// Interaction is the decoded webhook body.
type Interaction struct {
	Type    Type     `json:"type"`
	Data    *Data    `json:"data,omitempty"`
	Message *Message `json:"message,omitempty"`
	Channel *Channel `json:"channel,omitempty"`
}

// Data is the interaction's payload. For message components CustomID
// carries the action token the button was published with.
type Data struct {
	CustomID string `json:"custom_id,omitempty"`
	Name     string `json:"name,omitempty"`
}

// Message identifies the message whose component was used, including its
// text, from which the approval flow re-derives the transaction fields.
type Message struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// Channel identifies the channel the message lives in.
type Channel struct {
	ID string `json:"id"`
}

// Response kinds returned to the provider.
const (
	// ResponsePong acknowledges a ping.
	ResponsePong = 1
	// ResponseDeferredUpdateMessage acknowledges a component interaction and
	// signals that any visible result will arrive asynchronously.
	ResponseDeferredUpdateMessage = 6
)

// Response is the JSON body returned for recognized interactions.
type Response struct {
	Type int `json:"type"`
}
