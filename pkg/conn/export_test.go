package conn

import (
	"github.com/esphome-native/api-server/internal/config"
	"github.com/esphome-native/api-server/pkg/frame"
	"github.com/esphome-native/api-server/pkg/schema"
)

// newUnopenedConnection builds a Connection without touching a socket, for
// tests that only exercise state-machine logic and never call Run.
func newUnopenedConnection(cfg *config.Config, mode frame.Mode, version schema.Version) *Connection {
	c := &Connection{
		ID:            "test",
		cfg:           cfg,
		mode:          mode,
		version:       version,
		helloResponse: BuildHelloResponse(cfg),
		deviceInfo:    BuildDeviceInfo(cfg, version),
		stage:         StageOpen,
		outboundQueue: make(chan schema.Message, outboundQueueCapacity),
		appInbound:    NewBus(),
	}
	c.authenticated = mode == frame.ModeEncrypted || cfg.Password == ""
	return c
}
