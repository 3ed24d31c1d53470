package conn

import (
	"errors"
	"io"

	"github.com/esphome-native/api-server/pkg/frame"
)

// ErrInvalidMarkerByte is returned when the first byte on a new connection
// is neither the plaintext (0x00) nor encrypted (0x01) marker.
var ErrInvalidMarkerByte = errors.New("conn: first byte is neither plaintext nor encrypted marker")

// frameStream accumulates bytes off a reader and yields whole frame
// payloads, buffering partial reads across calls to next.
type frameStream struct {
	r     io.Reader
	codec *frame.Codec
	buf   []byte
}

func newFrameStream(r io.Reader, codec *frame.Codec, seed []byte) *frameStream {
	return &frameStream{r: r, codec: codec, buf: append([]byte(nil), seed...)}
}

// next blocks until one full frame is available and returns its payload.
func (fs *frameStream) next() ([]byte, error) {
	for {
		payload, consumed, err := fs.codec.Decode(fs.buf)
		if err != nil {
			return nil, err
		}
		if consumed > 0 {
			out := append([]byte(nil), payload...)
			fs.buf = append([]byte(nil), fs.buf[consumed:]...)
			return out, nil
		}
		tmp := make([]byte, 4096)
		n, err := fs.r.Read(tmp)
		if n > 0 {
			fs.buf = append(fs.buf, tmp[:n]...)
		}
		if err != nil {
			return nil, err
		}
	}
}

// detectMode reads the single marker byte that fixes a connection's wire
// mode for its lifetime and returns it alongside the byte itself, which
// the caller must seed back into the frame stream.
func detectMode(r io.Reader) (frame.Mode, byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, 0, err
	}
	switch b[0] {
	case 0x00:
		return frame.ModePlaintext, b[0], nil
	case 0x01:
		return frame.ModeEncrypted, b[0], nil
	default:
		return 0, 0, ErrInvalidMarkerByte
	}
}
