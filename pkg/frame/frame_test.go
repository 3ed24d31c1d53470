package frame

import (
	"bytes"
	"testing"
)

func TestDecodePlaintextHelloFrame(t *testing.T) {
	msg := []byte{
		0x00, 0x13, 0x01, 0x0A, 0x0D, 0x61, 0x69, 0x6F, 0x65, 0x73, 0x70, 0x68, 0x6F, 0x6D,
		0x65, 0x61, 0x70, 0x69, 0x10, 0x01, 0x18, 0x0A,
	}

	c := New(ModePlaintext)
	payload, consumed, err := c.Decode(msg)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if consumed != len(msg) {
		t.Fatalf("consumed = %d, want %d", consumed, len(msg))
	}
	want := msg[2:]
	if !bytes.Equal(payload, want) {
		t.Fatalf("payload = %x, want %x", payload, want)
	}
}

func TestDecodePlaintextNeedMoreBytes(t *testing.T) {
	c := New(ModePlaintext)

	payload, consumed, err := c.Decode([]byte{0x00})
	if err != nil || payload != nil || consumed != 0 {
		t.Fatalf("partial preamble: got (%v, %d, %v)", payload, consumed, err)
	}

	payload, consumed, err = c.Decode([]byte{0x00, 0x05, 1, 2})
	if err != nil || payload != nil || consumed != 0 {
		t.Fatalf("partial body: got (%v, %d, %v)", payload, consumed, err)
	}
}

func TestDecodePlaintextMultipleFrames(t *testing.T) {
	msg := []byte{0, 5, 1, 4, 3, 2, 1, 0, 0, 2, 'a', 'b', 'c'}
	c := New(ModePlaintext)

	p1, n1, err := c.Decode(msg)
	if err != nil {
		t.Fatalf("frame 1: %v", err)
	}
	if !bytes.Equal(p1, []byte{1, 4, 3, 2, 1, 0}) {
		t.Fatalf("frame 1 payload = %x", p1)
	}

	p2, n2, err := c.Decode(msg[n1:])
	if err != nil {
		t.Fatalf("frame 2: %v", err)
	}
	if !bytes.Equal(p2, []byte{'a', 'b', 'c'}) {
		t.Fatalf("frame 2 payload = %x", p2)
	}
	if n1+n2 != len(msg) {
		t.Fatalf("did not consume whole stream: %d + %d != %d", n1, n2, len(msg))
	}
}

func TestDecodePlaintextRejectsEncryptedPreamble(t *testing.T) {
	c := New(ModePlaintext)
	_, _, err := c.Decode([]byte{0x01, 0x00, 0x01, 0x03})
	if err != ErrInvalidPreamble {
		t.Fatalf("err = %v, want ErrInvalidPreamble", err)
	}
}

func TestDecodeEncryptedRejectsPlaintextPreamble(t *testing.T) {
	c := New(ModeEncrypted)
	_, _, err := c.Decode([]byte{0x00, 0x01})
	if err != ErrInvalidPreamble {
		t.Fatalf("err = %v, want ErrInvalidPreamble", err)
	}
}

func TestDecodeEncryptedFrame(t *testing.T) {
	c := New(ModeEncrypted)
	payload, consumed, err := c.Decode([]byte{0x01, 0x00, 0x01, 0x03})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if consumed != 4 {
		t.Fatalf("consumed = %d, want 4", consumed)
	}
	if !bytes.Equal(payload, []byte{0x03}) {
		t.Fatalf("payload = %x", payload)
	}
}

func TestVarintTooLong(t *testing.T) {
	c := New(ModePlaintext)
	msg := []byte{0x00, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	_, _, err := c.Decode(msg)
	if err != ErrVarintTooLong {
		t.Fatalf("err = %v, want ErrVarintTooLong", err)
	}
}

// TestVarintFiveBytesRejected covers a non-canonical 5-byte varint whose
// final byte terminates the sequence (no continuation bit set). Even though
// byte 5 itself is a valid terminator, 4 continuation bytes already came
// before it, so the varint as a whole is still too long.
func TestVarintFiveBytesRejected(t *testing.T) {
	c := New(ModePlaintext)
	msg := []byte{0x00, 0x80, 0x80, 0x80, 0x80, 0x00}
	_, _, err := c.Decode(msg)
	if err != ErrVarintTooLong {
		t.Fatalf("err = %v, want ErrVarintTooLong", err)
	}
}

func TestRoundTripPlaintextVarintBoundaries(t *testing.T) {
	c := New(ModePlaintext)

	for _, size := range []int{1, 127, 128, 16383, 16384, 2097151, 2097152} {
		payload := make([]byte, size+1) // +1 for the message-type byte
		for i := range payload {
			payload[i] = byte(i)
		}

		encoded, err := c.Encode(payload)
		if err != nil {
			t.Fatalf("size %d: Encode() error = %v", size, err)
		}

		decoded, consumed, err := c.Decode(encoded)
		if err != nil {
			t.Fatalf("size %d: Decode() error = %v", size, err)
		}
		if consumed != len(encoded) {
			t.Fatalf("size %d: consumed = %d, want %d", size, consumed, len(encoded))
		}
		if !bytes.Equal(decoded, payload) {
			t.Fatalf("size %d: round trip mismatch", size)
		}
	}
}

func TestEncodeZeroLengthPlaintextPayload(t *testing.T) {
	c := New(ModePlaintext)
	encoded, err := c.Encode([]byte{0x08})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := []byte{0x00, 0x00, 0x08}
	if !bytes.Equal(encoded, want) {
		t.Fatalf("encoded = %x, want %x", encoded, want)
	}
}

func TestEncryptedMaxFrameSize(t *testing.T) {
	c := New(ModeEncrypted)

	ok := make([]byte, 0xFFFF)
	encoded, err := c.Encode(ok)
	if err != nil {
		t.Fatalf("Encode() at max size: %v", err)
	}
	if _, _, err := c.Decode(encoded); err != nil {
		t.Fatalf("Decode() at max size: %v", err)
	}

	tooBig := make([]byte, 0x10000)
	if _, err := c.Encode(tooBig); err == nil {
		t.Fatalf("expected error encoding oversized encrypted payload")
	}
}
