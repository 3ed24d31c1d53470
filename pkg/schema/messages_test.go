package schema

import "testing"

// roundTrip marshals m, unmarshals into a fresh zero value of the same
// concrete type via the registry, and returns the result for comparison.
func roundTrip(t *testing.T, m Message) Message {
	t.Helper()
	raw := m.Marshal()
	got, ok := New(m.Type())
	if !ok {
		t.Fatalf("type %d not registered", m.Type())
	}
	if err := got.Unmarshal(raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	return got
}

func TestRoundTripHello(t *testing.T) {
	in := &HelloRequest{ClientInfo: "aioesphomeapi", APIVersionMajor: 1, APIVersionMinor: 10}
	out := roundTrip(t, in).(*HelloRequest)
	if *out != *in {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestRoundTripDeviceInfoResponse(t *testing.T) {
	in := &DeviceInfoResponse{
		Name:                   "kitchen-sensor",
		MacAddress:             "AA:BB:CC:DD:EE:FF",
		ESPHomeVersion:         "2025.12.1",
		Model:                  "esp32-devkit",
		Manufacturer:           "Espressif",
		FriendlyName:           "Kitchen Sensor",
		WebserverPort:          80,
		APIEncryptionSupported: true,
	}
	out := roundTrip(t, in).(*DeviceInfoResponse)
	if *out != *in {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestRoundTripSensorStateResponse(t *testing.T) {
	in := &SensorStateResponse{Key: 12345, State: 21.5}
	out := roundTrip(t, in).(*SensorStateResponse)
	if *out != *in {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestRoundTripEmptyMessages(t *testing.T) {
	cases := []Message{
		&DisconnectRequest{}, &DisconnectResponse{},
		&PingRequest{}, &PingResponse{},
		&DeviceInfoRequest{}, &ListEntitiesRequest{}, &ListEntitiesDoneResponse{},
		&SubscribeStatesRequest{}, &GetTimeRequest{},
		&UnsubscribeBluetoothLEAdvertisementsRequest{},
	}
	for _, m := range cases {
		if len(m.Marshal()) != 0 {
			t.Fatalf("%T: expected empty encoding", m)
		}
		out, ok := New(m.Type())
		if !ok {
			t.Fatalf("%T: type not registered", m)
		}
		if err := out.Unmarshal(nil); err != nil {
			t.Fatalf("%T: Unmarshal(nil) error = %v", m, err)
		}
	}
}

func TestRoundTripSwitchCommand(t *testing.T) {
	in := &SwitchCommandRequest{Key: 99, State: true}
	out := roundTrip(t, in).(*SwitchCommandRequest)
	if *out != *in {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestRoundTripBluetoothLEAdvertisement(t *testing.T) {
	in := &BluetoothLEAdvertisementResponse{Address: 0xAABBCCDDEEFF, Name: []byte("beacon"), RSSI: -62}
	raw := in.Marshal()
	out := &BluetoothLEAdvertisementResponse{}
	if err := out.Unmarshal(raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if out.Address != in.Address || string(out.Name) != string(in.Name) || out.RSSI != in.RSSI {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestDecodePlaintextUnknownType(t *testing.T) {
	_, err := DecodePlaintext([]byte{0xFE, 0x00})
	if err != ErrUnknownMessageType {
		t.Fatalf("err = %v, want ErrUnknownMessageType", err)
	}
}

func TestPlaintextPacketRoundTrip(t *testing.T) {
	in := &PingRequest{}
	raw, err := EncodePlaintext(in)
	if err != nil {
		t.Fatalf("EncodePlaintext() error = %v", err)
	}
	if raw[0] != byte(MsgPingRequest) {
		t.Fatalf("msg type byte = %d, want %d", raw[0], MsgPingRequest)
	}
	out, err := DecodePlaintext(raw)
	if err != nil {
		t.Fatalf("DecodePlaintext() error = %v", err)
	}
	if out.Type() != MsgPingRequest {
		t.Fatalf("decoded type = %d, want %d", out.Type(), MsgPingRequest)
	}
}

func TestEncryptedPacketRoundTrip(t *testing.T) {
	in := &SwitchStateResponse{Key: 7, State: true}
	raw := EncodeEncrypted(in)
	out, err := DecodeEncrypted(raw)
	if err != nil {
		t.Fatalf("DecodeEncrypted() error = %v", err)
	}
	got := out.(*SwitchStateResponse)
	if *got != *in {
		t.Fatalf("got %+v, want %+v", got, in)
	}
}
