// Package noiseapi drives the encrypted transport handshake: Noise NN_psk0
// over X25519/ChaCha20-Poly1305/SHA-256, exactly as ESPHome's native API
// negotiates a session key from a 32-byte pre-shared key before any
// application traffic flows.
package noiseapi

import (
	"encoding/base64"
	"errors"

	"github.com/flynn/noise"
)

// Prologue binds the handshake to this protocol; it must match byte for
// byte on both ends or the handshake fails at the transcript hash level.
const Prologue = "NoiseAPIInit\x00\x00"

var cipherSuite = noise.NewCipherSuite(noise.DH25519, noise.CipherChaChaPoly, noise.HashSHA256)

var (
	// ErrHandshakeMAC is returned when the client's handshake message fails
	// authentication, almost always because it was built with the wrong PSK.
	ErrHandshakeMAC = errors.New("noiseapi: handshake MAC failure")
	// ErrBadPSK is returned when a configured encryption key does not
	// base64-decode to exactly 32 bytes.
	ErrBadPSK = errors.New("noiseapi: pre-shared key must be 32 bytes")
)

// DecodePSK turns a configured base64 encryption key into the raw 32-byte
// pre-shared key flynn/noise expects.
func DecodePSK(encoded string) ([]byte, error) {
	psk, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrBadPSK
	}
	if len(psk) != 32 {
		return nil, ErrBadPSK
	}
	return psk, nil
}

// Responder drives the server (responder) side of one NN_psk0 exchange. The
// pattern has exactly two Noise messages: client handshake (-> psk, e) and
// server handshake (<- e, ee); the two pre-handshake "hello" frames over the
// wire are framing-level, not part of the Noise transcript.
type Responder struct {
	hs *noise.HandshakeState
}

// NewResponder builds a fresh responder state for a single connection. hs
// cannot be reused across connections: each needs its own ephemeral keys.
func NewResponder(psk []byte) (*Responder, error) {
	hs, err := noise.NewHandshakeState(noise.Config{
		CipherSuite:           cipherSuite,
		Pattern:               noise.HandshakeNN,
		Initiator:             false,
		Prologue:              []byte(Prologue),
		PresharedKey:          psk,
		PresharedKeyPlacement: 0,
	})
	if err != nil {
		return nil, err
	}
	return &Responder{hs: hs}, nil
}

// ReadClientHandshake processes the Noise message 1 bytes (the client
// handshake frame payload with its one-byte sub-type already stripped). A
// PSK mismatch here is indistinguishable from any other MAC failure and
// always surfaces as ErrHandshakeMAC.
func (r *Responder) ReadClientHandshake(msg []byte) error {
	if _, _, _, err := r.hs.ReadMessage(nil, msg); err != nil {
		return ErrHandshakeMAC
	}
	return nil
}

// WriteServerHandshake produces the Noise message 2 bytes and, since this is
// the last message of the pattern, the split cipher pair for the session.
func (r *Responder) WriteServerHandshake() (msg []byte, send, recv *noise.CipherState, err error) {
	out, csInitToResp, csRespToInit, err := r.hs.WriteMessage(nil, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return out, csRespToInit, csInitToResp, nil
}
