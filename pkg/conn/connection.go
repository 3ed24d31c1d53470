// Package conn implements the per-socket connection engine: mode and
// Noise session negotiation, the protocol state machine, and the
// reader/writer pump that drives them against a live net.Conn.
package conn

import (
	"crypto/subtle"
	"net"
	"sync"

	"github.com/flynn/noise"

	"github.com/esphome-native/api-server/internal/config"
	"github.com/esphome-native/api-server/pkg/frame"
	"github.com/esphome-native/api-server/pkg/schema"
)

// Stage is the coarse lifecycle state of a Connection.
type Stage int

const (
	StageOpen Stage = iota
	StageClosed
)

const outboundQueueCapacity = 16

// Connection is the per-socket record the protocol engine maintains once
// mode detection and (if applicable) the Noise handshake have completed:
// a bounded outbound queue feeding the writer, and an application inbound
// bus fanning decoded non-intrinsic messages out to subscribers.
type Connection struct {
	ID         string
	RemoteAddr string

	netConn net.Conn
	stream  *frameStream
	mode    frame.Mode
	version schema.Version
	cfg     *config.Config

	sendCipher *noise.CipherState
	recvCipher *noise.CipherState

	helloResponse *schema.HelloResponse
	deviceInfo    *schema.DeviceInfoResponse

	mu            sync.Mutex
	stage         Stage
	authenticated bool

	outboundQueue chan schema.Message
	appInbound    *Bus
}

// Open runs mode detection and, for encrypted connections, the Noise
// handshake on netConn, then returns a Connection ready for Run. Once the
// connection is authenticated, app receives every inbound message that is
// not handled at the protocol level (Hello, Connect, Disconnect, Ping,
// DeviceInfo); before that such messages are dropped.
func Open(id string, netConn net.Conn, cfg *config.Config, version schema.Version, app *Bus) (*Connection, error) {
	stream, mode, send, recv, err := negotiate(netConn, cfg)
	if err != nil {
		return nil, err
	}

	c := &Connection{
		ID:            id,
		RemoteAddr:    netConn.RemoteAddr().String(),
		netConn:       netConn,
		stream:        stream,
		mode:          mode,
		version:       version,
		cfg:           cfg,
		sendCipher:    send,
		recvCipher:    recv,
		helloResponse: BuildHelloResponse(cfg),
		deviceInfo:    BuildDeviceInfo(cfg, version),
		stage:         StageOpen,
		outboundQueue: make(chan schema.Message, outboundQueueCapacity),
		appInbound:    app,
	}
	// A successful Noise handshake already proves PSK possession; password
	// auth only applies on the legacy plaintext path.
	c.authenticated = mode == frame.ModeEncrypted || cfg.Password == ""
	return c, nil
}

// Mode reports the wire mode this connection negotiated.
func (c *Connection) Mode() frame.Mode {
	return c.mode
}

func (c *Connection) isAuthenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authenticated
}

func (c *Connection) markAuthenticated() {
	c.mu.Lock()
	c.authenticated = true
	c.mu.Unlock()
}

func (c *Connection) checkPassword(candidate string) bool {
	if c.cfg.Password == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(c.cfg.Password)) == 1
}

// Subscribe registers a new application-side subscriber to this
// connection's inbound message bus.
func (c *Connection) Subscribe(buffer int) <-chan schema.Message {
	return c.appInbound.Subscribe(buffer)
}

// Send enqueues an application-originated message for the write pump. It
// blocks if the outbound queue is full, propagating backpressure to the
// caller rather than dropping traffic silently.
func (c *Connection) Send(msg schema.Message) {
	c.outboundQueue <- msg
}
