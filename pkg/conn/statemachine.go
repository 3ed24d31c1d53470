package conn

import (
	"github.com/esphome-native/api-server/pkg/frame"
	"github.com/esphome-native/api-server/pkg/schema"
)

// dispatchResult is the outcome of handling one inbound message: zero or
// more replies to enqueue, whether to forward the message to the
// application bus, and whether the connection should close once the
// replies have been sent.
type dispatchResult struct {
	replies      []schema.Message
	forwardToApp bool
	closeAfter   bool
}

// handleInbound answers the protocol-intrinsic messages directly and
// gates everything else behind authentication. Messages that arrive
// before authentication is established are dropped, not rejected: a
// client that never authenticates simply never sees application traffic.
func (c *Connection) handleInbound(msg schema.Message) dispatchResult {
	switch m := msg.(type) {
	case *schema.HelloRequest:
		return dispatchResult{replies: []schema.Message{c.helloResponse}}

	case *schema.ConnectRequest:
		var ok bool
		if c.mode == frame.ModeEncrypted {
			ok = true
		} else {
			ok = c.checkPassword(m.Password)
		}
		if ok {
			c.markAuthenticated()
		}
		return dispatchResult{replies: []schema.Message{&schema.ConnectResponse{InvalidPassword: !ok}}}

	case *schema.DisconnectRequest:
		return dispatchResult{
			replies:    []schema.Message{&schema.DisconnectResponse{}},
			closeAfter: true,
		}

	case *schema.PingRequest:
		return dispatchResult{replies: []schema.Message{&schema.PingResponse{}}}

	case *schema.DeviceInfoRequest:
		return dispatchResult{replies: []schema.Message{c.deviceInfo}}

	default:
		if !c.isAuthenticated() {
			return dispatchResult{}
		}
		return dispatchResult{forwardToApp: true}
	}
}
