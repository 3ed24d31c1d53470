package entities

import (
	"context"

	"github.com/esphome-native/api-server/pkg/conn"
	"github.com/esphome-native/api-server/pkg/schema"
)

// Serve subscribes to c's application inbound bus and answers
// ListEntitiesRequest, SubscribeStatesRequest, and entity command traffic
// until ctx is cancelled or the bus channel closes.
func Serve(ctx context.Context, c *conn.Connection, reg *Registry) {
	inbound := c.Subscribe(16)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-inbound:
			if !ok {
				return
			}
			handle(c, reg, msg)
		}
	}
}

func handle(c *conn.Connection, reg *Registry, msg schema.Message) {
	switch msg.(type) {
	case *schema.ListEntitiesRequest:
		for _, m := range reg.ListEntitiesMessages() {
			c.Send(m)
		}
		c.Send(&schema.ListEntitiesDoneResponse{})

	case *schema.SubscribeStatesRequest:
		for _, m := range reg.InitialStates() {
			c.Send(m)
		}

	case *schema.SwitchCommandRequest, *schema.ButtonCommandRequest:
		if reply, ok := reg.Dispatch(msg); ok {
			c.Send(reply)
		}
	}
}
