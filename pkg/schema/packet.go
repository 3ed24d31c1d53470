package schema

import (
	"encoding/binary"
	"errors"
)

// ErrUnknownMessageType is returned by DecodePlaintext and DecodeEncrypted
// when the wire carries a message-type id that is not part of this schema
// build. Callers treat this
// as a drop-and-log condition, not a fatal protocol error: ESPHome clients
// and servers are expected to tolerate schema drift in either direction.
var ErrUnknownMessageType = errors.New("schema: unknown message type")

// EncodePlaintext serializes msg into the msgType-byte + protobuf-bytes form
// carried inside a plaintext frame's payload. Message ids above 255 cannot
// be represented in the single-byte plaintext form; callers needing those
// must use the encrypted connection path.
func EncodePlaintext(msg Message) ([]byte, error) {
	t := msg.Type()
	if t > 0xFF {
		return nil, errors.New("schema: message type does not fit the plaintext single-byte id space")
	}
	body := msg.Marshal()
	out := make([]byte, 0, 1+len(body))
	out = append(out, byte(t))
	out = append(out, body...)
	return out, nil
}

// DecodePlaintext parses a plaintext frame payload (msgType byte + protobuf
// bytes) into a typed Message.
func DecodePlaintext(payload []byte) (Message, error) {
	if len(payload) < 1 {
		return nil, errors.New("schema: empty plaintext payload")
	}
	return decodeByType(MessageType(payload[0]), payload[1:])
}

// EncodeEncrypted serializes msg into the msgType(u16, big-endian) +
// length(u16, big-endian) + protobuf-bytes form carried inside an encrypted frame's plaintext
// (pre-cipher) payload.
func EncodeEncrypted(msg Message) []byte {
	body := msg.Marshal()
	out := make([]byte, 4, 4+len(body))
	binary.BigEndian.PutUint16(out[0:2], uint16(msg.Type()))
	binary.BigEndian.PutUint16(out[2:4], uint16(len(body)))
	return append(out, body...)
}

// DecodeEncrypted parses the inner (post-decryption) payload of an encrypted
// connection's message envelope.
func DecodeEncrypted(payload []byte) (Message, error) {
	if len(payload) < 4 {
		return nil, errors.New("schema: encrypted payload shorter than envelope header")
	}
	msgType := binary.BigEndian.Uint16(payload[0:2])
	length := binary.BigEndian.Uint16(payload[2:4])
	if int(length) != len(payload)-4 {
		return nil, ErrMalformed
	}
	return decodeByType(MessageType(msgType), payload[4:])
}

func decodeByType(t MessageType, body []byte) (Message, error) {
	msg, ok := New(t)
	if !ok {
		return nil, ErrUnknownMessageType
	}
	if err := msg.Unmarshal(body); err != nil {
		return nil, err
	}
	return msg, nil
}
