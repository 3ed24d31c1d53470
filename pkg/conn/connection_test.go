package conn

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/esphome-native/api-server/internal/config"
	"github.com/esphome-native/api-server/pkg/frame"
	"github.com/esphome-native/api-server/pkg/schema"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("", map[string]any{
		"name": "kitchen-sensor",
		"mac":  "AA:BB:CC:DD:EE:FF",
	})
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	return cfg
}

func readFrame(t *testing.T, r net.Conn, codec *frame.Codec) []byte {
	t.Helper()
	var buf []byte
	tmp := make([]byte, 256)
	for {
		payload, consumed, err := codec.Decode(buf)
		if err != nil {
			t.Fatalf("frame decode error = %v", err)
		}
		if consumed > 0 {
			return payload
		}
		n, err := r.Read(tmp)
		if err != nil {
			t.Fatalf("read error = %v", err)
		}
		buf = append(buf, tmp[:n]...)
	}
}

// TestPlaintextHello exercises the protocol-intrinsic path end to end over a
// plaintext connection with no password configured.
func TestPlaintextHello(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	cfg := testConfig(t)

	go func() {
		codec := frame.New(frame.ModePlaintext)
		payload, _ := schema.EncodePlaintext(&schema.HelloRequest{ClientInfo: "test-client"})
		framed, _ := codec.Encode(payload)
		clientConn.Write(framed)
	}()

	c, err := Open("test-1", serverConn, cfg, schema.V2025_12_1, NewBus())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !c.isAuthenticated() {
		t.Fatalf("expected connection with no password to be authenticated from open")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	codec := frame.New(frame.ModePlaintext)
	payload := readFrame(t, clientConn, codec)
	msg, err := schema.DecodePlaintext(payload)
	if err != nil {
		t.Fatalf("DecodePlaintext() error = %v", err)
	}
	hello, ok := msg.(*schema.HelloResponse)
	if !ok {
		t.Fatalf("got %T, want *schema.HelloResponse", msg)
	}
	if hello.Name != "kitchen-sensor" {
		t.Fatalf("HelloResponse.Name = %q, want kitchen-sensor", hello.Name)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run() did not return after cancellation")
	}
}

// TestUnauthenticatedMessagesAreDropped verifies that a non-intrinsic
// message arriving before authentication never reaches the application bus.
func TestUnauthenticatedMessagesAreDropped(t *testing.T) {
	cfg := testConfig(t)
	cfg.Password = "secret"

	c := newUnopenedConnection(cfg, frame.ModePlaintext, schema.V2025_12_1)
	if c.isAuthenticated() {
		t.Fatalf("connection with a password must not be pre-authenticated")
	}

	result := c.handleInbound(&schema.ListEntitiesRequest{})
	if result.forwardToApp {
		t.Fatalf("expected unauthenticated non-intrinsic message to be dropped")
	}
}

// TestConnectRequestAuthenticates verifies the legacy password path.
func TestConnectRequestAuthenticates(t *testing.T) {
	cfg := testConfig(t)
	cfg.Password = "secret"

	c := newUnopenedConnection(cfg, frame.ModePlaintext, schema.V2025_12_1)

	result := c.handleInbound(&schema.ConnectRequest{Password: "wrong"})
	resp := result.replies[0].(*schema.ConnectResponse)
	if !resp.InvalidPassword {
		t.Fatalf("expected InvalidPassword=true for wrong password")
	}
	if c.isAuthenticated() {
		t.Fatalf("wrong password must not authenticate")
	}

	result = c.handleInbound(&schema.ConnectRequest{Password: "secret"})
	resp = result.replies[0].(*schema.ConnectResponse)
	if resp.InvalidPassword {
		t.Fatalf("expected InvalidPassword=false for correct password")
	}
	if !c.isAuthenticated() {
		t.Fatalf("correct password must authenticate")
	}
}

// TestDisconnectClosesAfterResponse verifies S-style graceful close: the
// DisconnectResponse is sent before the writer exits.
func TestDisconnectClosesAfterResponse(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	cfg := testConfig(t)

	go func() {
		codec := frame.New(frame.ModePlaintext)
		payload, _ := schema.EncodePlaintext(&schema.DisconnectRequest{})
		framed, _ := codec.Encode(payload)
		clientConn.Write(framed)
	}()

	c, err := Open("test-4", serverConn, cfg, schema.V2025_12_1, NewBus())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background()) }()

	codec := frame.New(frame.ModePlaintext)
	payload := readFrame(t, clientConn, codec)
	msg, err := schema.DecodePlaintext(payload)
	if err != nil {
		t.Fatalf("DecodePlaintext() error = %v", err)
	}
	if _, ok := msg.(*schema.DisconnectResponse); !ok {
		t.Fatalf("got %T, want *schema.DisconnectResponse", msg)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run() did not return after disconnect")
	}
}
