package interactions

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
)

// Header names are part of the provider's signed-webhook contract.
const (
	HeaderSignature = "X-Signature-Ed25519"
	HeaderTimestamp = "X-Signature-Timestamp"
)

// ErrMissingHeader is returned when the timestamp or signature header is absent.
var ErrMissingHeader = errors.New("missing signature header")

// ErrMalformedSignature is returned when the signature header is not a valid
// hex-encoded ed25519 signature.
var ErrMalformedSignature = errors.New("malformed signature")

// ErrInvalidSignature is returned when the signature does not verify against
// the configured public key.
var ErrInvalidSignature = errors.New("invalid signature")

// Verifier authenticates inbound webhook requests. The provider signs
// timestamp||body with the application's ed25519 key; anything that fails
// verification is rejected before its body is ever parsed.
type Verifier struct {
	publicKey ed25519.PublicKey
}

// NewVerifier parses a hex-encoded ed25519 public key.
func NewVerifier(hexKey string) (*Verifier, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("public key is not valid hex: %w", err)
	}
	if len(key) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(key))
	}
	return &Verifier{publicKey: ed25519.PublicKey(key)}, nil
}

// Verify checks the request signature over timestamp||body. It mutates
// nothing; on success the caller proceeds to parse the same body bytes.
func (v *Verifier) Verify(headers http.Header, body []byte) error {
	timestamp := headers.Get(HeaderTimestamp)
	rawSignature := headers.Get(HeaderSignature)
	if timestamp == "" || rawSignature == "" {
		return ErrMissingHeader
	}

	signature, err := hex.DecodeString(rawSignature)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}
	if len(signature) != ed25519.SignatureSize {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformedSignature, ed25519.SignatureSize, len(signature))
	}

	msg := make([]byte, 0, len(timestamp)+len(body))
	msg = append(msg, timestamp...)
	msg = append(msg, body...)

	if !ed25519.Verify(v.publicKey, msg, signature) {
		return ErrInvalidSignature
	}
	return nil
}
