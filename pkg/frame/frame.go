// Package frame implements the length-prefixed framing used by the ESPHome
// native API, in both its plaintext and Noise-encrypted forms.
package frame

import (
	"encoding/binary"
	"errors"
)

// Mode fixes, for the lifetime of a Codec, which of the two wire layouts it
// speaks. The mode is decided once per connection from the first inbound
// byte and never changes afterwards.
type Mode int

const (
	ModePlaintext Mode = iota
	ModeEncrypted
)

func (m Mode) String() string {
	if m == ModeEncrypted {
		return "encrypted"
	}
	return "plaintext"
}

// MaxFrameSize rejects pathologically large frames before they are fully
// buffered.
const MaxFrameSize = 8 * 1024 * 1024

// maxEncryptedFrameSize is the largest encrypted frame the u16 length field
// can express, not merely a policy choice.
const maxEncryptedFrameSize = 0xFFFF

var (
	ErrInvalidPreamble = errors.New("frame: preamble does not match codec mode")
	ErrVarintTooLong   = errors.New("frame: varint length marker longer than 4 bytes")
	ErrFrameTooLarge   = errors.New("frame: frame exceeds maximum size")
)

// Codec streams frame boundaries out of an accumulating byte buffer and
// serializes outbound payloads into complete frames. It holds no buffered
// bytes itself; callers own the buffer and pass it to Decode on every
// attempt.
type Codec struct {
	mode Mode
}

// New returns a Codec fixed to the given mode.
func New(mode Mode) *Codec {
	return &Codec{mode: mode}
}

// Decode looks for one complete frame at the start of buf. It returns the
// frame's payload and the number of bytes that frame occupied. If buf does
// not yet contain a whole frame, it returns (nil, 0, nil) — "need more
// bytes" is not an error.
//
// For plaintext, payload is msgType-byte followed by the protobuf bytes.
// For encrypted, payload is the raw ciphertext (or, during handshake, the
// protocol-specific handshake bytes).
func (c *Codec) Decode(buf []byte) (payload []byte, consumed int, err error) {
	if len(buf) < 1 {
		return nil, 0, nil
	}

	switch c.mode {
	case ModeEncrypted:
		return decodeEncrypted(buf)
	default:
		return decodePlaintext(buf)
	}
}

func decodeEncrypted(buf []byte) ([]byte, int, error) {
	if buf[0] != 0x01 {
		return nil, 0, ErrInvalidPreamble
	}
	if len(buf) < 3 {
		return nil, 0, nil
	}
	length := int(binary.BigEndian.Uint16(buf[1:3]))
	total := 3 + length
	if length > MaxFrameSize {
		return nil, 0, ErrFrameTooLarge
	}
	if len(buf) < total {
		return nil, 0, nil
	}
	return buf[3:total], total, nil
}

func decodePlaintext(buf []byte) ([]byte, int, error) {
	if buf[0] != 0x00 {
		return nil, 0, ErrInvalidPreamble
	}

	varintLen := 0
	var protoLen uint64
	for {
		if varintLen >= 4 {
			return nil, 0, ErrVarintTooLong
		}
		idx := 1 + varintLen
		if len(buf) < idx+1 {
			return nil, 0, nil
		}
		b := buf[idx]
		protoLen |= uint64(b&0x7f) << (7 * varintLen)
		varintLen++
		if b&0x80 == 0 {
			break
		}
	}

	// The varint counts the protobuf bytes only; the frame also carries one
	// extra message-type byte that is not included in the length.
	dataLen := int(protoLen) + 1
	if dataLen > MaxFrameSize {
		return nil, 0, ErrFrameTooLarge
	}

	dataStart := 1 + varintLen
	total := dataStart + dataLen
	if len(buf) < total {
		return nil, 0, nil
	}
	return buf[dataStart:total], total, nil
}

// Encode serializes payload into a complete frame for the codec's mode.
// For plaintext, payload must be msgType-byte followed by protobuf bytes.
// For encrypted, payload must be the ciphertext (or handshake bytes) to
// send verbatim.
func (c *Codec) Encode(payload []byte) ([]byte, error) {
	switch c.mode {
	case ModeEncrypted:
		if len(payload) > maxEncryptedFrameSize {
			return nil, ErrFrameTooLarge
		}
		out := make([]byte, 0, 3+len(payload))
		out = append(out, 0x01)
		var lenBuf [2]byte
		binary.BigEndian.PutUint16(lenBuf[:], uint16(len(payload)))
		out = append(out, lenBuf[:]...)
		out = append(out, payload...)
		return out, nil
	default:
		if len(payload) > MaxFrameSize {
			return nil, ErrFrameTooLarge
		}
		protoLen := len(payload) - 1
		if protoLen < 0 {
			protoLen = 0
		}
		lenBuf := appendVarint(nil, uint64(protoLen))
		out := make([]byte, 0, 1+len(lenBuf)+len(payload))
		out = append(out, 0x00)
		out = append(out, lenBuf...)
		out = append(out, payload...)
		return out, nil
	}
}

// appendVarint appends a protobuf base-128 varint encoding of v to dst.
func appendVarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}
