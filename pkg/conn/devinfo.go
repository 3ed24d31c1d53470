package conn

import (
	"github.com/esphome-native/api-server/internal/config"
	"github.com/esphome-native/api-server/pkg/schema"
)

// BuildHelloResponse snapshots cfg into the HelloResponse served on every
// connection's HelloRequest.
func BuildHelloResponse(cfg *config.Config) *schema.HelloResponse {
	return &schema.HelloResponse{
		APIVersionMajor: cfg.APIVersionMajor,
		APIVersionMinor: cfg.APIVersionMinor,
		ServerInfo:      cfg.ServerInfo,
		Name:            cfg.Name,
	}
}

// BuildDeviceInfo snapshots the configuration into the response served for
// every DeviceInfoRequest on a connection. It is built once at open time;
// a device's identity does not change mid-session.
func BuildDeviceInfo(cfg *config.Config, version schema.Version) *schema.DeviceInfoResponse {
	info := &schema.DeviceInfoResponse{
		UsesPassword:               cfg.Password != "",
		Name:                       cfg.Name,
		MacAddress:                 cfg.MAC,
		ESPHomeVersion:             cfg.ESPHomeVersion,
		CompilationTime:            cfg.CompilationTime,
		Model:                      cfg.Model,
		ProjectName:                cfg.ProjectName,
		ProjectVersion:             cfg.ProjectVersion,
		BluetoothProxyFeatureFlags: cfg.BluetoothProxyFeatureFlags,
		Manufacturer:               cfg.Manufacturer,
		FriendlyName:               cfg.FriendlyName,
		SuggestedArea:              cfg.SuggestedArea,
	}

	if version.SupportsVoiceAssistantFeatureFlags() {
		info.VoiceAssistantFeatureFlags = cfg.VoiceAssistantFeatureFlags
	} else {
		info.LegacyVoiceAssistantVersion = 1
	}
	if version.SupportsBluetoothMacAddress() {
		info.BluetoothMacAddress = cfg.BluetoothMAC
	}
	if version.SupportsAPIEncryption() {
		info.APIEncryptionSupported = cfg.UsesEncryption()
	}
	return info
}
