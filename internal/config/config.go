// Package config loads the device metadata and server configuration the
// protocol engine is built around: everything in the base specification's
// configuration surface, layered from defaults, an optional YAML file, and
// command-line flags.
package config

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/esphome-native/api-server/pkg/schema"
)

// Config is the full configuration surface a device exposes to the
// protocol engine: identity, auth, and the feature flags advertised in
// DeviceInfoResponse.
type Config struct {
	Name                string `mapstructure:"name"`
	FriendlyName        string `mapstructure:"friendly_name"`
	MAC                 string `mapstructure:"mac"`
	Model               string `mapstructure:"model"`
	Manufacturer        string `mapstructure:"manufacturer"`
	SuggestedArea       string `mapstructure:"suggested_area"`
	BluetoothMAC        string `mapstructure:"bluetooth_mac_address"`
	ProjectName         string `mapstructure:"project_name"`
	ProjectVersion      string `mapstructure:"project_version"`
	CompilationTime     string `mapstructure:"compilation_time"`
	ESPHomeVersion      string `mapstructure:"esphome_version"`

	APIVersionMajor uint32 `mapstructure:"api_version_major"`
	APIVersionMinor uint32 `mapstructure:"api_version_minor"`
	ServerInfo      string `mapstructure:"server_info"`

	Password      string `mapstructure:"password"`
	EncryptionKey string `mapstructure:"encryption_key"`

	BluetoothProxyFeatureFlags uint32 `mapstructure:"bluetooth_proxy_feature_flags"`
	VoiceAssistantFeatureFlags uint32 `mapstructure:"voice_assistant_feature_flags"`

	Listen        string         `mapstructure:"listen"`
	SchemaVersion schema.Version `mapstructure:"-"`

	MetricsListen string `mapstructure:"metrics_listen"`
	StatusListen  string `mapstructure:"status_listen"`
	AuditDBPath   string `mapstructure:"audit_db_path"`
	LogLevel      string `mapstructure:"log_level"`
}

const defaultAPIVersionMajor = 1
const defaultAPIVersionMinor = 10

func setDefaults(v *viper.Viper) {
	v.SetDefault("name", "esphome-api-server")
	v.SetDefault("api_version_major", defaultAPIVersionMajor)
	v.SetDefault("api_version_minor", defaultAPIVersionMinor)
	v.SetDefault("server_info", "esphome-api-server 1.0.0")
	v.SetDefault("esphome_version", "2025.4.0")
	v.SetDefault("listen", ":6053")
	v.SetDefault("metrics_listen", ":9090")
	v.SetDefault("status_listen", ":8080")
	v.SetDefault("audit_db_path", "esphome-audit.db")
	v.SetDefault("log_level", "info")
}

// Load merges built-in defaults, an optional YAML config file, and explicit
// overrides (typically from command-line flags) into a validated Config.
// configPath may be empty, meaning "defaults plus overrides only".
func Load(configPath string, overrides map[string]any) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", configPath, err)
		}
	}

	for key, val := range overrides {
		v.Set(key, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("config: name is required")
	}
	if c.Password != "" && c.EncryptionKey != "" {
		logrus.WithFields(logrus.Fields{
			"name": c.Name,
		}).Warn("both password and encryption_key configured; encryption_key takes precedence on the wire")
	}
	if c.EncryptionKey != "" {
		raw, err := base64.StdEncoding.DecodeString(c.EncryptionKey)
		if err != nil || len(raw) != 32 {
			return fmt.Errorf("config: encryption_key must be base64 of exactly 32 bytes")
		}
	}
	return nil
}

// UsesEncryption reports whether a pre-shared key is configured, which
// forces every incoming connection onto the Noise-encrypted path.
func (c *Config) UsesEncryption() bool {
	return c.EncryptionKey != ""
}
