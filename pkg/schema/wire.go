package schema

import (
	"errors"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrMalformed is returned when a message's bytes do not parse as valid
// protobuf wire format for its known field set.
var ErrMalformed = errors.New("schema: malformed protobuf bytes")

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	return appendVarint(b, num, 1)
}

func appendFloat32(b []byte, num protowire.Number, v float32) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, math.Float32bits(v))
}

// walkFields iterates every (number, wire type, value-bytes) field in b,
// calling fn for each. Unknown field numbers are simply not matched by the
// caller's switch and are skipped, matching the wire's forward-compatible
// "unknown fields are ignored" rule.
func walkFields(b []byte, fn func(num protowire.Number, typ protowire.Type, v []byte) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return ErrMalformed
		}
		b = b[n:]

		var value []byte
		m := protowire.ConsumeFieldValue(num, typ, b)
		if m < 0 {
			return ErrMalformed
		}
		value = b[:m]
		b = b[m:]

		if err := fn(num, typ, value); err != nil {
			return err
		}
	}
	return nil
}

func consumeString(typ protowire.Type, v []byte) (string, bool) {
	if typ != protowire.BytesType {
		return "", false
	}
	s, _ := protowire.ConsumeString(v)
	return s, true
}

func consumeBytes(typ protowire.Type, v []byte) ([]byte, bool) {
	if typ != protowire.BytesType {
		return nil, false
	}
	bs, _ := protowire.ConsumeBytes(v)
	return bs, true
}

func consumeVarint(typ protowire.Type, v []byte) (uint64, bool) {
	if typ != protowire.VarintType {
		return 0, false
	}
	n, _ := protowire.ConsumeVarint(v)
	return n, true
}

func consumeFloat32(typ protowire.Type, v []byte) (float32, bool) {
	if typ != protowire.Fixed32Type {
		return 0, false
	}
	bits, _ := protowire.ConsumeFixed32(v)
	return math.Float32frombits(bits), true
}
