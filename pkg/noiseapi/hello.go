package noiseapi

// BuildServerHello constructs the sub-type-0x01 payload sent in the clear
// (inside the encrypted frame wrapper, before any cipher is installed) in
// response to the client's hello. The mac section is omitted entirely when
// mac is empty rather than encoded as a zero-length field.
func BuildServerHello(name, mac string) []byte {
	out := make([]byte, 0, 3+len(name)+len(mac))
	out = append(out, 0x01)
	out = append(out, name...)
	out = append(out, 0x00)
	if mac != "" {
		out = append(out, mac...)
		out = append(out, 0x00)
	}
	return out
}

// BuildServerHandshake wraps the Noise message 2 bytes in the sub-type-0x00
// payload expected on the wire.
func BuildServerHandshake(noiseMsg []byte) []byte {
	out := make([]byte, 0, 1+len(noiseMsg))
	out = append(out, 0x00)
	return append(out, noiseMsg...)
}

// InlineError builds the sub-type-0x01 diagnostic payload sent, still inside
// encrypted framing but before or instead of cipher installation, whenever a
// crypto or mode-mismatch error forces the connection closed.
func InlineError(message string) []byte {
	out := make([]byte, 0, 1+len(message))
	out = append(out, 0x01)
	return append(out, message...)
}
