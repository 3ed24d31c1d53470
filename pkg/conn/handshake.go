package conn

import (
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/flynn/noise"

	"github.com/esphome-native/api-server/internal/config"
	"github.com/esphome-native/api-server/pkg/frame"
	"github.com/esphome-native/api-server/pkg/noiseapi"
)

// ErrModeMismatch is returned when the inbound marker byte conflicts with
// whether an encryption key is configured. negotiate has already written
// an inline error frame to the peer before this is returned.
var ErrModeMismatch = errors.New("conn: wire mode does not match configured authentication")

// negotiate fixes the wire mode from the first byte, runs the Noise
// handshake when the connection is encrypted, and returns a frame stream
// ready for steady-state traffic plus any installed session ciphers.
func negotiate(netConn net.Conn, cfg *config.Config) (*frameStream, frame.Mode, *noise.CipherState, *noise.CipherState, error) {
	mode, marker, err := detectMode(netConn)
	if err != nil {
		return nil, 0, nil, nil, err
	}

	if mode == frame.ModePlaintext && cfg.UsesEncryption() {
		sendModeMismatch(netConn, "Only key encryption is enabled")
		return nil, 0, nil, nil, ErrModeMismatch
	}
	if mode == frame.ModeEncrypted && !cfg.UsesEncryption() {
		sendModeMismatch(netConn, "No encrypted communication allowed")
		return nil, 0, nil, nil, ErrModeMismatch
	}

	codec := frame.New(mode)
	stream := newFrameStream(netConn, codec, []byte{marker})

	if mode == frame.ModePlaintext {
		return stream, mode, nil, nil, nil
	}

	psk, err := noiseapi.DecodePSK(cfg.EncryptionKey)
	if err != nil {
		return nil, 0, nil, nil, err
	}
	responder, err := noiseapi.NewResponder(psk)
	if err != nil {
		return nil, 0, nil, nil, err
	}

	// Client hello frame: framing-level only, its one sub-type byte carries
	// no information the responder needs.
	if _, err := stream.next(); err != nil {
		return nil, 0, nil, nil, err
	}

	serverHello := noiseapi.BuildServerHello(cfg.Name, cfg.MAC)
	if err := writeFrame(netConn, codec, serverHello); err != nil {
		return nil, 0, nil, nil, err
	}

	clientHandshake, err := stream.next()
	if err != nil {
		return nil, 0, nil, nil, err
	}
	if len(clientHandshake) < 1 {
		return nil, 0, nil, nil, fmt.Errorf("conn: empty client handshake frame")
	}
	if err := responder.ReadClientHandshake(clientHandshake[1:]); err != nil {
		writeFrame(netConn, codec, noiseapi.InlineError("Handshake MAC failure"))
		return nil, 0, nil, nil, err
	}

	noiseMsg, send, recv, err := responder.WriteServerHandshake()
	if err != nil {
		return nil, 0, nil, nil, err
	}
	if err := writeFrame(netConn, codec, noiseapi.BuildServerHandshake(noiseMsg)); err != nil {
		return nil, 0, nil, nil, err
	}

	return stream, mode, send, recv, nil
}

func sendModeMismatch(netConn net.Conn, message string) {
	codec := frame.New(frame.ModeEncrypted)
	writeFrame(netConn, codec, noiseapi.InlineError(message))
}

func writeFrame(w io.Writer, codec *frame.Codec, payload []byte) error {
	encoded, err := codec.Encode(payload)
	if err != nil {
		return err
	}
	_, err = w.Write(encoded)
	return err
}
