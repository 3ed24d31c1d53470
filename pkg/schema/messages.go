package schema

import "google.golang.org/protobuf/encoding/protowire"

// --- Hello -----------------------------------------------------------------

type HelloRequest struct {
	ClientInfo      string
	APIVersionMajor uint32
	APIVersionMinor uint32
}

func (m *HelloRequest) Type() MessageType { return MsgHelloRequest }

func (m *HelloRequest) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.ClientInfo)
	b = appendVarint(b, 2, uint64(m.APIVersionMajor))
	b = appendVarint(b, 3, uint64(m.APIVersionMinor))
	return b
}

func (m *HelloRequest) Unmarshal(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			m.ClientInfo, _ = consumeString(typ, v)
		case 2:
			n, _ := consumeVarint(typ, v)
			m.APIVersionMajor = uint32(n)
		case 3:
			n, _ := consumeVarint(typ, v)
			m.APIVersionMinor = uint32(n)
		}
		return nil
	})
}

type HelloResponse struct {
	APIVersionMajor uint32
	APIVersionMinor uint32
	ServerInfo      string
	Name            string
}

func (m *HelloResponse) Type() MessageType { return MsgHelloResponse }

func (m *HelloResponse) Marshal() []byte {
	var b []byte
	b = appendVarint(b, 1, uint64(m.APIVersionMajor))
	b = appendVarint(b, 2, uint64(m.APIVersionMinor))
	b = appendString(b, 3, m.ServerInfo)
	b = appendString(b, 4, m.Name)
	return b
}

func (m *HelloResponse) Unmarshal(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			n, _ := consumeVarint(typ, v)
			m.APIVersionMajor = uint32(n)
		case 2:
			n, _ := consumeVarint(typ, v)
			m.APIVersionMinor = uint32(n)
		case 3:
			m.ServerInfo, _ = consumeString(typ, v)
		case 4:
			m.Name, _ = consumeString(typ, v)
		}
		return nil
	})
}

// --- Connect -----------------------------------------------------------------

type ConnectRequest struct {
	Password string
}

func (m *ConnectRequest) Type() MessageType { return MsgConnectRequest }
func (m *ConnectRequest) Marshal() []byte   { return appendString(nil, 1, m.Password) }
func (m *ConnectRequest) Unmarshal(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			m.Password, _ = consumeString(typ, v)
		}
		return nil
	})
}

type ConnectResponse struct {
	InvalidPassword bool
}

func (m *ConnectResponse) Type() MessageType { return MsgConnectResponse }
func (m *ConnectResponse) Marshal() []byte   { return appendBool(nil, 1, m.InvalidPassword) }
func (m *ConnectResponse) Unmarshal(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			n, _ := consumeVarint(typ, v)
			m.InvalidPassword = n != 0
		}
		return nil
	})
}

// --- Disconnect / Ping / DeviceInfoRequest: empty bodies --------------------

type DisconnectRequest struct{}

func (m *DisconnectRequest) Type() MessageType       { return MsgDisconnectRequest }
func (m *DisconnectRequest) Marshal() []byte         { return nil }
func (m *DisconnectRequest) Unmarshal([]byte) error  { return nil }

type DisconnectResponse struct{}

func (m *DisconnectResponse) Type() MessageType      { return MsgDisconnectResponse }
func (m *DisconnectResponse) Marshal() []byte        { return nil }
func (m *DisconnectResponse) Unmarshal([]byte) error { return nil }

type PingRequest struct{}

func (m *PingRequest) Type() MessageType      { return MsgPingRequest }
func (m *PingRequest) Marshal() []byte        { return nil }
func (m *PingRequest) Unmarshal([]byte) error { return nil }

type PingResponse struct{}

func (m *PingResponse) Type() MessageType      { return MsgPingResponse }
func (m *PingResponse) Marshal() []byte        { return nil }
func (m *PingResponse) Unmarshal([]byte) error { return nil }

type DeviceInfoRequest struct{}

func (m *DeviceInfoRequest) Type() MessageType      { return MsgDeviceInfoRequest }
func (m *DeviceInfoRequest) Marshal() []byte        { return nil }
func (m *DeviceInfoRequest) Unmarshal([]byte) error { return nil }

type ListEntitiesRequest struct{}

func (m *ListEntitiesRequest) Type() MessageType      { return MsgListEntitiesRequest }
func (m *ListEntitiesRequest) Marshal() []byte        { return nil }
func (m *ListEntitiesRequest) Unmarshal([]byte) error { return nil }

type ListEntitiesDoneResponse struct{}

func (m *ListEntitiesDoneResponse) Type() MessageType      { return MsgListEntitiesDoneResponse }
func (m *ListEntitiesDoneResponse) Marshal() []byte        { return nil }
func (m *ListEntitiesDoneResponse) Unmarshal([]byte) error { return nil }

type SubscribeStatesRequest struct{}

func (m *SubscribeStatesRequest) Type() MessageType      { return MsgSubscribeStatesRequest }
func (m *SubscribeStatesRequest) Marshal() []byte        { return nil }
func (m *SubscribeStatesRequest) Unmarshal([]byte) error { return nil }

type GetTimeRequest struct{}

func (m *GetTimeRequest) Type() MessageType      { return MsgGetTimeRequest }
func (m *GetTimeRequest) Marshal() []byte        { return nil }
func (m *GetTimeRequest) Unmarshal([]byte) error { return nil }

type GetTimeResponse struct {
	EpochSeconds uint32
}

func (m *GetTimeResponse) Type() MessageType { return MsgGetTimeResponse }
func (m *GetTimeResponse) Marshal() []byte   { return appendVarint(nil, 1, uint64(m.EpochSeconds)) }
func (m *GetTimeResponse) Unmarshal(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			n, _ := consumeVarint(typ, v)
			m.EpochSeconds = uint32(n)
		}
		return nil
	})
}

// --- DeviceInfo --------------------------------------------------------------

type DeviceInfoResponse struct {
	UsesPassword                bool
	Name                        string
	MacAddress                  string
	ESPHomeVersion              string
	CompilationTime             string
	Model                       string
	HasDeepSleep                bool
	ProjectName                 string
	ProjectVersion              string
	WebserverPort               uint32
	LegacyBluetoothProxyVersion uint32
	BluetoothProxyFeatureFlags  uint32
	Manufacturer                string
	FriendlyName                string
	LegacyVoiceAssistantVersion uint32
	VoiceAssistantFeatureFlags  uint32
	SuggestedArea               string
	BluetoothMacAddress         string
	APIEncryptionSupported      bool
}

func (m *DeviceInfoResponse) Type() MessageType { return MsgDeviceInfoResponse }

func (m *DeviceInfoResponse) Marshal() []byte {
	var b []byte
	b = appendBool(b, 1, m.UsesPassword)
	b = appendString(b, 2, m.Name)
	b = appendString(b, 3, m.MacAddress)
	b = appendString(b, 4, m.ESPHomeVersion)
	b = appendString(b, 5, m.CompilationTime)
	b = appendString(b, 6, m.Model)
	b = appendBool(b, 7, m.HasDeepSleep)
	b = appendString(b, 8, m.ProjectName)
	b = appendString(b, 9, m.ProjectVersion)
	b = appendVarint(b, 10, uint64(m.WebserverPort))
	b = appendVarint(b, 11, uint64(m.LegacyBluetoothProxyVersion))
	b = appendVarint(b, 12, uint64(m.BluetoothProxyFeatureFlags))
	b = appendString(b, 13, m.Manufacturer)
	b = appendString(b, 14, m.FriendlyName)
	b = appendVarint(b, 15, uint64(m.LegacyVoiceAssistantVersion))
	b = appendVarint(b, 16, uint64(m.VoiceAssistantFeatureFlags))
	b = appendString(b, 17, m.SuggestedArea)
	b = appendString(b, 18, m.BluetoothMacAddress)
	b = appendBool(b, 19, m.APIEncryptionSupported)
	return b
}

func (m *DeviceInfoResponse) Unmarshal(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			n, _ := consumeVarint(typ, v)
			m.UsesPassword = n != 0
		case 2:
			m.Name, _ = consumeString(typ, v)
		case 3:
			m.MacAddress, _ = consumeString(typ, v)
		case 4:
			m.ESPHomeVersion, _ = consumeString(typ, v)
		case 5:
			m.CompilationTime, _ = consumeString(typ, v)
		case 6:
			m.Model, _ = consumeString(typ, v)
		case 7:
			n, _ := consumeVarint(typ, v)
			m.HasDeepSleep = n != 0
		case 8:
			m.ProjectName, _ = consumeString(typ, v)
		case 9:
			m.ProjectVersion, _ = consumeString(typ, v)
		case 10:
			n, _ := consumeVarint(typ, v)
			m.WebserverPort = uint32(n)
		case 11:
			n, _ := consumeVarint(typ, v)
			m.LegacyBluetoothProxyVersion = uint32(n)
		case 12:
			n, _ := consumeVarint(typ, v)
			m.BluetoothProxyFeatureFlags = uint32(n)
		case 13:
			m.Manufacturer, _ = consumeString(typ, v)
		case 14:
			m.FriendlyName, _ = consumeString(typ, v)
		case 15:
			n, _ := consumeVarint(typ, v)
			m.LegacyVoiceAssistantVersion = uint32(n)
		case 16:
			n, _ := consumeVarint(typ, v)
			m.VoiceAssistantFeatureFlags = uint32(n)
		case 17:
			m.SuggestedArea, _ = consumeString(typ, v)
		case 18:
			m.BluetoothMacAddress, _ = consumeString(typ, v)
		case 19:
			n, _ := consumeVarint(typ, v)
			m.APIEncryptionSupported = n != 0
		}
		return nil
	})
}

// --- Sensor entity -----------------------------------------------------------

type ListEntitiesSensorResponse struct {
	ObjectID          string
	Key               uint32
	Name              string
	UnitOfMeasurement string
	Icon              string
	AccuracyDecimals  uint32
}

func (m *ListEntitiesSensorResponse) Type() MessageType { return MsgListEntitiesSensorResponse }

func (m *ListEntitiesSensorResponse) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.ObjectID)
	b = appendVarint(b, 2, uint64(m.Key))
	b = appendString(b, 3, m.Name)
	b = appendString(b, 4, m.UnitOfMeasurement)
	b = appendString(b, 5, m.Icon)
	b = appendVarint(b, 6, uint64(m.AccuracyDecimals))
	return b
}

func (m *ListEntitiesSensorResponse) Unmarshal(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			m.ObjectID, _ = consumeString(typ, v)
		case 2:
			n, _ := consumeVarint(typ, v)
			m.Key = uint32(n)
		case 3:
			m.Name, _ = consumeString(typ, v)
		case 4:
			m.UnitOfMeasurement, _ = consumeString(typ, v)
		case 5:
			m.Icon, _ = consumeString(typ, v)
		case 6:
			n, _ := consumeVarint(typ, v)
			m.AccuracyDecimals = uint32(n)
		}
		return nil
	})
}

type SensorStateResponse struct {
	Key          uint32
	State        float32
	MissingState bool
}

func (m *SensorStateResponse) Type() MessageType { return MsgSensorStateResponse }

func (m *SensorStateResponse) Marshal() []byte {
	var b []byte
	b = appendVarint(b, 1, uint64(m.Key))
	b = appendFloat32(b, 2, m.State)
	b = appendBool(b, 3, m.MissingState)
	return b
}

func (m *SensorStateResponse) Unmarshal(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			n, _ := consumeVarint(typ, v)
			m.Key = uint32(n)
		case 2:
			f, _ := consumeFloat32(typ, v)
			m.State = f
		case 3:
			n, _ := consumeVarint(typ, v)
			m.MissingState = n != 0
		}
		return nil
	})
}

// --- Switch entity -------------------------------------------------------------

type ListEntitiesSwitchResponse struct {
	ObjectID string
	Key      uint32
	Name     string
	Icon     string
}

func (m *ListEntitiesSwitchResponse) Type() MessageType { return MsgListEntitiesSwitchResponse }

func (m *ListEntitiesSwitchResponse) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.ObjectID)
	b = appendVarint(b, 2, uint64(m.Key))
	b = appendString(b, 3, m.Name)
	b = appendString(b, 4, m.Icon)
	return b
}

func (m *ListEntitiesSwitchResponse) Unmarshal(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			m.ObjectID, _ = consumeString(typ, v)
		case 2:
			n, _ := consumeVarint(typ, v)
			m.Key = uint32(n)
		case 3:
			m.Name, _ = consumeString(typ, v)
		case 4:
			m.Icon, _ = consumeString(typ, v)
		}
		return nil
	})
}

type SwitchStateResponse struct {
	Key   uint32
	State bool
}

func (m *SwitchStateResponse) Type() MessageType { return MsgSwitchStateResponse }
func (m *SwitchStateResponse) Marshal() []byte {
	var b []byte
	b = appendVarint(b, 1, uint64(m.Key))
	b = appendBool(b, 2, m.State)
	return b
}
func (m *SwitchStateResponse) Unmarshal(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			n, _ := consumeVarint(typ, v)
			m.Key = uint32(n)
		case 2:
			n, _ := consumeVarint(typ, v)
			m.State = n != 0
		}
		return nil
	})
}

type SwitchCommandRequest struct {
	Key   uint32
	State bool
}

func (m *SwitchCommandRequest) Type() MessageType { return MsgSwitchCommandRequest }
func (m *SwitchCommandRequest) Marshal() []byte {
	var b []byte
	b = appendVarint(b, 1, uint64(m.Key))
	b = appendBool(b, 2, m.State)
	return b
}
func (m *SwitchCommandRequest) Unmarshal(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			n, _ := consumeVarint(typ, v)
			m.Key = uint32(n)
		case 2:
			n, _ := consumeVarint(typ, v)
			m.State = n != 0
		}
		return nil
	})
}

// --- Button entity ---------------------------------------------------------

type ListEntitiesButtonResponse struct {
	ObjectID string
	Key      uint32
	Name     string
	Icon     string
}

func (m *ListEntitiesButtonResponse) Type() MessageType { return MsgListEntitiesButtonResponse }
func (m *ListEntitiesButtonResponse) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.ObjectID)
	b = appendVarint(b, 2, uint64(m.Key))
	b = appendString(b, 3, m.Name)
	b = appendString(b, 4, m.Icon)
	return b
}
func (m *ListEntitiesButtonResponse) Unmarshal(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			m.ObjectID, _ = consumeString(typ, v)
		case 2:
			n, _ := consumeVarint(typ, v)
			m.Key = uint32(n)
		case 3:
			m.Name, _ = consumeString(typ, v)
		case 4:
			m.Icon, _ = consumeString(typ, v)
		}
		return nil
	})
}

type ButtonCommandRequest struct {
	Key uint32
}

func (m *ButtonCommandRequest) Type() MessageType { return MsgButtonCommandRequest }
func (m *ButtonCommandRequest) Marshal() []byte   { return appendVarint(nil, 1, uint64(m.Key)) }
func (m *ButtonCommandRequest) Unmarshal(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			n, _ := consumeVarint(typ, v)
			m.Key = uint32(n)
		}
		return nil
	})
}

// --- Logs --------------------------------------------------------------------

type SubscribeLogsRequest struct {
	Level      int32
	DumpConfig bool
}

func (m *SubscribeLogsRequest) Type() MessageType { return MsgSubscribeLogsRequest }
func (m *SubscribeLogsRequest) Marshal() []byte {
	var b []byte
	b = appendVarint(b, 1, uint64(m.Level))
	b = appendBool(b, 2, m.DumpConfig)
	return b
}
func (m *SubscribeLogsRequest) Unmarshal(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			n, _ := consumeVarint(typ, v)
			m.Level = int32(n)
		case 2:
			n, _ := consumeVarint(typ, v)
			m.DumpConfig = n != 0
		}
		return nil
	})
}

type SubscribeLogsResponse struct {
	Level      int32
	Message    []byte
	SendFailed bool
}

func (m *SubscribeLogsResponse) Type() MessageType { return MsgSubscribeLogsResponse }
func (m *SubscribeLogsResponse) Marshal() []byte {
	var b []byte
	b = appendVarint(b, 1, uint64(m.Level))
	b = appendBytes(b, 3, m.Message)
	b = appendBool(b, 4, m.SendFailed)
	return b
}
func (m *SubscribeLogsResponse) Unmarshal(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			n, _ := consumeVarint(typ, v)
			m.Level = int32(n)
		case 3:
			m.Message, _ = consumeBytes(typ, v)
		case 4:
			n, _ := consumeVarint(typ, v)
			m.SendFailed = n != 0
		}
		return nil
	})
}

// --- Bluetooth LE proxy --------------------------------------------------------

type SubscribeBluetoothLEAdvertisementsRequest struct {
	Flags uint32
}

func (m *SubscribeBluetoothLEAdvertisementsRequest) Type() MessageType {
	return MsgSubscribeBluetoothLEAdvertisementsRequest
}
func (m *SubscribeBluetoothLEAdvertisementsRequest) Marshal() []byte {
	return appendVarint(nil, 1, uint64(m.Flags))
}
func (m *SubscribeBluetoothLEAdvertisementsRequest) Unmarshal(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			n, _ := consumeVarint(typ, v)
			m.Flags = uint32(n)
		}
		return nil
	})
}

type UnsubscribeBluetoothLEAdvertisementsRequest struct{}

func (m *UnsubscribeBluetoothLEAdvertisementsRequest) Type() MessageType {
	return MsgUnsubscribeBluetoothLEAdvertisementsRequest
}
func (m *UnsubscribeBluetoothLEAdvertisementsRequest) Marshal() []byte        { return nil }
func (m *UnsubscribeBluetoothLEAdvertisementsRequest) Unmarshal([]byte) error { return nil }

type BluetoothLEAdvertisementResponse struct {
	Address uint64
	Name    []byte
	RSSI    int32
}

func (m *BluetoothLEAdvertisementResponse) Type() MessageType {
	return MsgBluetoothLEAdvertisementResponse
}
func (m *BluetoothLEAdvertisementResponse) Marshal() []byte {
	var b []byte
	b = appendVarint(b, 1, m.Address)
	b = appendBytes(b, 2, m.Name)
	b = appendVarint(b, 3, uint64(uint32(m.RSSI)))
	return b
}
func (m *BluetoothLEAdvertisementResponse) Unmarshal(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			m.Address, _ = consumeVarint(typ, v)
		case 2:
			m.Name, _ = consumeBytes(typ, v)
		case 3:
			n, _ := consumeVarint(typ, v)
			m.RSSI = int32(n)
		}
		return nil
	})
}

// --- Voice assistant ------------------------------------------------------------

type VoiceAssistantRequest struct {
	Start          bool
	ConversationID string
}

func (m *VoiceAssistantRequest) Type() MessageType { return MsgVoiceAssistantRequest }
func (m *VoiceAssistantRequest) Marshal() []byte {
	var b []byte
	b = appendBool(b, 1, m.Start)
	b = appendString(b, 2, m.ConversationID)
	return b
}
func (m *VoiceAssistantRequest) Unmarshal(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			n, _ := consumeVarint(typ, v)
			m.Start = n != 0
		case 2:
			m.ConversationID, _ = consumeString(typ, v)
		}
		return nil
	})
}

type VoiceAssistantResponse struct {
	Port  uint32
	Error bool
}

func (m *VoiceAssistantResponse) Type() MessageType { return MsgVoiceAssistantResponse }
func (m *VoiceAssistantResponse) Marshal() []byte {
	var b []byte
	b = appendVarint(b, 1, uint64(m.Port))
	b = appendBool(b, 2, m.Error)
	return b
}
func (m *VoiceAssistantResponse) Unmarshal(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			n, _ := consumeVarint(typ, v)
			m.Port = uint32(n)
		case 2:
			n, _ := consumeVarint(typ, v)
			m.Error = n != 0
		}
		return nil
	})
}

type VoiceAssistantAudio struct {
	Data []byte
	End  bool
}

func (m *VoiceAssistantAudio) Type() MessageType { return MsgVoiceAssistantAudio }
func (m *VoiceAssistantAudio) Marshal() []byte {
	var b []byte
	b = appendBytes(b, 1, m.Data)
	b = appendBool(b, 2, m.End)
	return b
}
func (m *VoiceAssistantAudio) Unmarshal(b []byte) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			m.Data, _ = consumeBytes(typ, v)
		case 2:
			n, _ := consumeVarint(typ, v)
			m.End = n != 0
		}
		return nil
	})
}
