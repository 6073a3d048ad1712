package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the virtual drive application.
// Configuration is loaded from YAML (or JSON, which parses as YAML) and can be
// overridden by environment variables.
type Config struct {
	App         AppConfig          `yaml:"app"`
	MQTT        MQTTConfig         `yaml:"mqtt"`
	Database    DatabaseConfig     `yaml:"database"`
	InfluxDB    InfluxDBConfig     `yaml:"influxdb"`
	Logging     LoggingConfig      `yaml:"logging"`
	Controllers []ControllerConfig `yaml:"controllers"`
	Measures    []MeasureConfig    `yaml:"measures"`
}

// AppConfig contains application identity and publishing settings.
type AppConfig struct {
	Name            string `yaml:"name"`
	Vendor          string `yaml:"vendor"`
	PublishInterval int    `yaml:"publish_interval"`
	QoS             int    `yaml:"qos"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Broker            MQTTBrokerConfig    `yaml:"broker"`
	Auth              MQTTAuthConfig      `yaml:"auth"`
	KeepAlive         int                 `yaml:"keepalive"`
	CleanSession      bool                `yaml:"clean_session"`
	ProtocolVersion   uint                `yaml:"protocol_version"`
	MaxQueuedMessages int                 `yaml:"max_queued_messages"`
	ConnectTimeout    int                 `yaml:"connect_timeout"`
	Reconnect         MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
//
// A zero Port means the port is read from PortFile.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	PortFile string `yaml:"port_file"`
	ClientID string `yaml:"client_id"`
	TLS      bool   `yaml:"tls"`
	CAPath   string `yaml:"ca_path"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains the housekeeping and reconnection cadence, in seconds.
type MQTTReconnectConfig struct {
	Interval       int `yaml:"interval"`
	RetryInterval  int `yaml:"retry_interval"`
	ProbeTimeout   int `yaml:"probe_timeout"`
	ResolveBackoff int `yaml:"resolve_backoff"`
}

// DatabaseConfig contains SQLite database settings.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// InfluxDBConfig contains InfluxDB connection settings.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// ControllerConfig describes one simulated controller.
type ControllerConfig struct {
	Name string `yaml:"name"`
}

// MeasureConfig describes one measure point belonging to a controller.
type MeasureConfig struct {
	Name     string `yaml:"name"`
	CtrlName string `yaml:"ctrlName"`
	DataType string `yaml:"dataType"`
}

// Load reads configuration from a YAML or JSON file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. File values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: VIRTUALDRIVE_SECTION_KEY
// For example: VIRTUALDRIVE_MQTT_HOST, VIRTUALDRIVE_DATABASE_PATH
//
// Parameters:
//   - path: Path to the configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Locate returns the configuration file for an application installed under base.
//
// The deployed file <base>/cfg/<app>/<app>.cfg is preferred; when it does not
// exist the packaged default <base>/app/<app>/config.ini is returned.
func Locate(base, app string) string {
	deployed := filepath.Join(base, "cfg", app, app+".cfg")
	if _, err := os.Stat(deployed); err == nil {
		return deployed
	}
	return filepath.Join(base, "app", app, "config.ini")
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:            "Virtual_Drive_Demo",
			Vendor:          "inhand",
			PublishInterval: 5,
			QoS:             0,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "127.0.0.1",
				Port:     0,
				PortFile: "/var/run/python/mqtt_broker_local.port",
				ClientID: "inhand",
			},
			KeepAlive:         240,
			CleanSession:      true,
			ProtocolVersion:   4,
			MaxQueuedMessages: 1024,
			ConnectTimeout:    2,
			Reconnect: MQTTReconnectConfig{
				Interval:       1,
				RetryInterval:  15,
				ProbeTimeout:   1,
				ResolveBackoff: 5,
			},
		},
		Database: DatabaseConfig{
			Path:        "./data/virtualdrive.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		InfluxDB: InfluxDBConfig{
			BatchSize:     100,
			FlushInterval: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: VIRTUALDRIVE_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// MQTT
	if v := os.Getenv("VIRTUALDRIVE_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("VIRTUALDRIVE_MQTT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.MQTT.Broker.Port = port
		}
	}
	if v := os.Getenv("VIRTUALDRIVE_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("VIRTUALDRIVE_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// Database
	if v := os.Getenv("VIRTUALDRIVE_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// InfluxDB
	if v := os.Getenv("VIRTUALDRIVE_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}

	// Logging
	if v := os.Getenv("VIRTUALDRIVE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of every validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.App.Name == "" {
		errs = append(errs, "app.name is required")
	}
	if c.App.PublishInterval < 1 {
		errs = append(errs, "app.publish_interval must be at least 1 second")
	}
	if c.App.QoS < 0 || c.App.QoS > 2 {
		errs = append(errs, "app.qos must be 0, 1, or 2")
	}

	// MQTT validation
	if c.MQTT.Broker.Host == "" {
		errs = append(errs, "mqtt.broker.host is required")
	}
	if c.MQTT.Broker.Port < 0 || c.MQTT.Broker.Port > 65535 {
		errs = append(errs, "mqtt.broker.port must be between 0 and 65535")
	}
	if c.MQTT.Broker.ClientID == "" {
		errs = append(errs, "mqtt.broker.client_id is required")
	}
	if c.MQTT.Broker.TLS && c.MQTT.Broker.CAPath == "" {
		errs = append(errs, "mqtt.broker.ca_path is required when tls is enabled")
	}
	if c.MQTT.ProtocolVersion != 3 && c.MQTT.ProtocolVersion != 4 {
		errs = append(errs, "mqtt.protocol_version must be 3 (MQTT 3.1) or 4 (MQTT 3.1.1)")
	}
	if c.MQTT.MaxQueuedMessages < 0 {
		errs = append(errs, "mqtt.max_queued_messages must not be negative")
	}
	if c.MQTT.KeepAlive < 0 {
		errs = append(errs, "mqtt.keepalive must not be negative")
	}
	if c.MQTT.Reconnect.Interval < 1 || c.MQTT.Reconnect.RetryInterval < 1 {
		errs = append(errs, "mqtt.reconnect intervals must be at least 1 second")
	}

	// Database validation
	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	// InfluxDB validation
	if c.InfluxDB.Enabled && c.InfluxDB.URL == "" {
		errs = append(errs, "influxdb.url is required when influxdb is enabled")
	}

	// Measure table validation
	controllers := make(map[string]bool, len(c.Controllers))
	for i, ctrl := range c.Controllers {
		if ctrl.Name == "" {
			errs = append(errs, fmt.Sprintf("controllers[%d].name is required", i))
			continue
		}
		if controllers[ctrl.Name] {
			errs = append(errs, fmt.Sprintf("controllers[%d].name %q is duplicated", i, ctrl.Name))
		}
		controllers[ctrl.Name] = true
	}
	for i, m := range c.Measures {
		if m.Name == "" {
			errs = append(errs, fmt.Sprintf("measures[%d].name is required", i))
		}
		if !controllers[m.CtrlName] {
			errs = append(errs, fmt.Sprintf("measures[%d].ctrlName %q does not name a controller", i, m.CtrlName))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetPublishInterval returns the measure snapshot interval as a Duration.
func (c *Config) GetPublishInterval() time.Duration {
	return time.Duration(c.App.PublishInterval) * time.Second
}

// GetKeepAlive returns the MQTT keepalive as a Duration.
func (m MQTTConfig) GetKeepAlive() time.Duration {
	return time.Duration(m.KeepAlive) * time.Second
}

// GetConnectTimeout returns the MQTT connect timeout as a Duration.
func (m MQTTConfig) GetConnectTimeout() time.Duration {
	return time.Duration(m.ConnectTimeout) * time.Second
}
