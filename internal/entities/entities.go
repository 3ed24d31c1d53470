// Package entities is a small reference application layer: a sensor, a
// switch, and a button, wired to a connection's message bus so the
// protocol engine has real ListEntities/State/Command traffic to carry
// end to end.
package entities

import (
	"github.com/esphome-native/api-server/pkg/hashutil"
	"github.com/esphome-native/api-server/pkg/schema"
)

// Sensor is a read-only numeric entity (temperature, humidity, and so on).
type Sensor struct {
	ObjectID         string
	Name             string
	Unit             string
	Icon             string
	AccuracyDecimals uint32
	Key              uint32

	value float32
}

// NewSensor derives the entity's key from its object id and returns a
// sensor with no state yet reported.
func NewSensor(objectID, name, unit, icon string, accuracyDecimals uint32) *Sensor {
	return &Sensor{
		ObjectID:         objectID,
		Name:             name,
		Unit:             unit,
		Icon:             icon,
		AccuracyDecimals: accuracyDecimals,
		Key:              hashutil.EntityKey(objectID),
	}
}

func (s *Sensor) listEntities() schema.Message {
	return &schema.ListEntitiesSensorResponse{
		ObjectID:          s.ObjectID,
		Key:               s.Key,
		Name:              s.Name,
		UnitOfMeasurement: s.Unit,
		Icon:              s.Icon,
		AccuracyDecimals:  s.AccuracyDecimals,
	}
}

// SetValue records a new reading and returns the state message to publish
// to subscribed clients.
func (s *Sensor) SetValue(value float32) schema.Message {
	s.value = value
	return &schema.SensorStateResponse{Key: s.Key, State: value}
}

func (s *Sensor) state() schema.Message {
	return &schema.SensorStateResponse{Key: s.Key, State: s.value}
}

// Switch is a boolean entity a client can command.
type Switch struct {
	ObjectID string
	Name     string
	Icon     string
	Key      uint32

	on       bool
	OnChange func(on bool)
}

// NewSwitch derives the entity's key from its object id.
func NewSwitch(objectID, name, icon string) *Switch {
	return &Switch{
		ObjectID: objectID,
		Name:     name,
		Icon:     icon,
		Key:      hashutil.EntityKey(objectID),
	}
}

func (sw *Switch) listEntities() schema.Message {
	return &schema.ListEntitiesSwitchResponse{
		ObjectID: sw.ObjectID,
		Key:      sw.Key,
		Name:     sw.Name,
		Icon:     sw.Icon,
	}
}

func (sw *Switch) state() schema.Message {
	return &schema.SwitchStateResponse{Key: sw.Key, State: sw.on}
}

// handleCommand applies cmd if it targets this switch and returns the
// resulting state message.
func (sw *Switch) handleCommand(cmd *schema.SwitchCommandRequest) (schema.Message, bool) {
	if cmd.Key != sw.Key {
		return nil, false
	}
	sw.on = cmd.State
	if sw.OnChange != nil {
		sw.OnChange(sw.on)
	}
	return sw.state(), true
}

// Button is a stateless, momentary entity: pressing it fires OnPress and
// produces no state traffic.
type Button struct {
	ObjectID string
	Name     string
	Icon     string
	Key      uint32

	OnPress func()
}

// NewButton derives the entity's key from its object id.
func NewButton(objectID, name, icon string) *Button {
	return &Button{
		ObjectID: objectID,
		Name:     name,
		Icon:     icon,
		Key:      hashutil.EntityKey(objectID),
	}
}

func (b *Button) listEntities() schema.Message {
	return &schema.ListEntitiesButtonResponse{
		ObjectID: b.ObjectID,
		Key:      b.Key,
		Name:     b.Name,
		Icon:     b.Icon,
	}
}

func (b *Button) handleCommand(cmd *schema.ButtonCommandRequest) bool {
	if cmd.Key != b.Key {
		return false
	}
	if b.OnPress != nil {
		b.OnPress()
	}
	return true
}
