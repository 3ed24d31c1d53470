package entities

import (
	"testing"

	"github.com/esphome-native/api-server/pkg/hashutil"
	"github.com/esphome-native/api-server/pkg/schema"
)

func TestListEntitiesMessagesOrderAndKeys(t *testing.T) {
	reg := NewRegistry()
	reg.AddSensor(NewSensor("temperature", "Temperature", "°C", "mdi:thermometer", 1))
	reg.AddSwitch(NewSwitch("porch_light", "Porch Light", "mdi:lightbulb"))
	reg.AddButton(NewButton("restart", "Restart", "mdi:restart"))

	msgs := reg.ListEntitiesMessages()
	if len(msgs) != 3 {
		t.Fatalf("len(msgs) = %d, want 3", len(msgs))
	}

	sensor, ok := msgs[0].(*schema.ListEntitiesSensorResponse)
	if !ok {
		t.Fatalf("msgs[0] = %T, want *schema.ListEntitiesSensorResponse", msgs[0])
	}
	if sensor.Key != hashutil.EntityKey("temperature") {
		t.Fatalf("sensor key = %#x, want %#x", sensor.Key, hashutil.EntityKey("temperature"))
	}

	sw, ok := msgs[1].(*schema.ListEntitiesSwitchResponse)
	if !ok {
		t.Fatalf("msgs[1] = %T, want *schema.ListEntitiesSwitchResponse", msgs[1])
	}
	if sw.Key != hashutil.EntityKey("porch_light") {
		t.Fatalf("switch key mismatch")
	}

	if _, ok := msgs[2].(*schema.ListEntitiesButtonResponse); !ok {
		t.Fatalf("msgs[2] = %T, want *schema.ListEntitiesButtonResponse", msgs[2])
	}
}

func TestDispatchSwitchCommand(t *testing.T) {
	reg := NewRegistry()
	sw := NewSwitch("porch_light", "Porch Light", "mdi:lightbulb")
	var observed bool
	sw.OnChange = func(on bool) { observed = on }
	reg.AddSwitch(sw)

	reply, ok := reg.Dispatch(&schema.SwitchCommandRequest{Key: sw.Key, State: true})
	if !ok {
		t.Fatalf("expected command to be handled")
	}
	state, ok := reply.(*schema.SwitchStateResponse)
	if !ok {
		t.Fatalf("reply = %T, want *schema.SwitchStateResponse", reply)
	}
	if !state.State {
		t.Fatalf("expected switch state true")
	}
	if !observed {
		t.Fatalf("OnChange callback not invoked")
	}
}

func TestDispatchIgnoresUnknownKey(t *testing.T) {
	reg := NewRegistry()
	reg.AddSwitch(NewSwitch("porch_light", "Porch Light", ""))

	if _, ok := reg.Dispatch(&schema.SwitchCommandRequest{Key: 0xDEADBEEF, State: true}); ok {
		t.Fatalf("expected dispatch to an unknown key to be a no-op")
	}
}

func TestDispatchButtonPress(t *testing.T) {
	reg := NewRegistry()
	b := NewButton("restart", "Restart", "")
	pressed := false
	b.OnPress = func() { pressed = true }
	reg.AddButton(b)

	if _, ok := reg.Dispatch(&schema.ButtonCommandRequest{Key: b.Key}); ok {
		t.Fatalf("button dispatch should never report a state reply")
	}
	if !pressed {
		t.Fatalf("OnPress callback not invoked")
	}
}
