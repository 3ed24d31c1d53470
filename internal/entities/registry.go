package entities

import "github.com/esphome-native/api-server/pkg/schema"

// Registry holds every entity a device exposes and answers the
// enumeration and state-subscription traffic the connection engine
// forwards to it.
type Registry struct {
	sensors  []*Sensor
	switches []*Switch
	buttons  []*Button
}

// NewRegistry returns an empty entity registry.
func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) AddSensor(s *Sensor) { r.sensors = append(r.sensors, s) }
func (r *Registry) AddSwitch(s *Switch) { r.switches = append(r.switches, s) }
func (r *Registry) AddButton(b *Button) { r.buttons = append(r.buttons, b) }

// ListEntitiesMessages returns every entity's announcement, in
// registration order, not including the terminating
// ListEntitiesDoneResponse.
func (r *Registry) ListEntitiesMessages() []schema.Message {
	out := make([]schema.Message, 0, len(r.sensors)+len(r.switches)+len(r.buttons))
	for _, s := range r.sensors {
		out = append(out, s.listEntities())
	}
	for _, sw := range r.switches {
		out = append(out, sw.listEntities())
	}
	for _, b := range r.buttons {
		out = append(out, b.listEntities())
	}
	return out
}

// InitialStates returns the current state of every stateful entity, for
// the snapshot sent in reply to SubscribeStatesRequest.
func (r *Registry) InitialStates() []schema.Message {
	out := make([]schema.Message, 0, len(r.sensors)+len(r.switches))
	for _, s := range r.sensors {
		out = append(out, s.state())
	}
	for _, sw := range r.switches {
		out = append(out, sw.state())
	}
	return out
}

// Dispatch routes a command message to the entity it targets and returns
// the resulting state message, if any.
func (r *Registry) Dispatch(msg schema.Message) (schema.Message, bool) {
	switch cmd := msg.(type) {
	case *schema.SwitchCommandRequest:
		for _, sw := range r.switches {
			if reply, ok := sw.handleCommand(cmd); ok {
				return reply, true
			}
		}
	case *schema.ButtonCommandRequest:
		for _, b := range r.buttons {
			if b.handleCommand(cmd) {
				return nil, false
			}
		}
	}
	return nil, false
}
