package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
app:
  name: "Virtual_Drive_Demo"
  publish_interval: 5
mqtt:
  broker:
    host: "localhost"
    port: 1883
    client_id: "test-client"
  keepalive: 60
database:
  path: "/tmp/test.db"
controllers:
  - name: "ctrl1"
measures:
  - name: "temp"
    ctrlName: "ctrl1"
    dataType: "FLOAT"
`
	cfg, err := Load(writeConfig(t, "config.yaml", content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MQTT.Broker.Host != "localhost" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "localhost")
	}
	if cfg.MQTT.KeepAlive != 60 {
		t.Errorf("MQTT.KeepAlive = %d, want 60", cfg.MQTT.KeepAlive)
	}
	if len(cfg.Measures) != 1 || cfg.Measures[0].CtrlName != "ctrl1" || cfg.Measures[0].DataType != "FLOAT" {
		t.Errorf("Measures = %+v, want one FLOAT measure on ctrl1", cfg.Measures)
	}
	// Untouched sections keep their defaults.
	if cfg.MQTT.MaxQueuedMessages != 1024 {
		t.Errorf("MQTT.MaxQueuedMessages = %d, want 1024", cfg.MQTT.MaxQueuedMessages)
	}
}

func TestLoad_JSONDocument(t *testing.T) {
	content := `{
  "controllers": [{"name": "PLC1"}, {"name": "PLC2"}],
  "measures": [
    {"name": "speed", "ctrlName": "PLC1", "dataType": "INT"},
    {"name": "label", "ctrlName": "PLC2", "dataType": "STRING"}
  ]
}`
	cfg, err := Load(writeConfig(t, "Virtual_Drive_Demo.cfg", content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Controllers) != 2 {
		t.Fatalf("len(Controllers) = %d, want 2", len(cfg.Controllers))
	}
	if cfg.Measures[1].Name != "label" || cfg.Measures[1].DataType != "STRING" {
		t.Errorf("Measures[1] = %+v", cfg.Measures[1])
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "config.yaml", "invalid: [yaml: content"))
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	content := `
mqtt:
  broker:
    host: ""
`
	_, err := Load(writeConfig(t, "config.yaml", content))
	if err == nil {
		t.Error("Load() expected validation error for empty mqtt.broker.host, got nil")
	}
}

func TestLocate(t *testing.T) {
	base := t.TempDir()

	got := Locate(base, "Virtual_Drive_Demo")
	want := filepath.Join(base, "app", "Virtual_Drive_Demo", "config.ini")
	if got != want {
		t.Errorf("Locate() without deployed file = %q, want %q", got, want)
	}

	deployed := filepath.Join(base, "cfg", "Virtual_Drive_Demo", "Virtual_Drive_Demo.cfg")
	if err := os.MkdirAll(filepath.Dir(deployed), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(deployed, []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}

	if got := Locate(base, "Virtual_Drive_Demo"); got != deployed {
		t.Errorf("Locate() with deployed file = %q, want %q", got, deployed)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:    "empty app name",
			modify:  func(c *Config) { c.App.Name = "" },
			wantErr: "app.name is required",
		},
		{
			name:    "publish interval zero",
			modify:  func(c *Config) { c.App.PublishInterval = 0 },
			wantErr: "app.publish_interval",
		},
		{
			name:    "qos too high",
			modify:  func(c *Config) { c.App.QoS = 3 },
			wantErr: "app.qos",
		},
		{
			name:    "port out of range",
			modify:  func(c *Config) { c.MQTT.Broker.Port = 70000 },
			wantErr: "mqtt.broker.port",
		},
		{
			name:    "tls without ca path",
			modify:  func(c *Config) { c.MQTT.Broker.TLS = true },
			wantErr: "mqtt.broker.ca_path",
		},
		{
			name:    "unsupported protocol version",
			modify:  func(c *Config) { c.MQTT.ProtocolVersion = 5 },
			wantErr: "mqtt.protocol_version",
		},
		{
			name:    "negative queue size",
			modify:  func(c *Config) { c.MQTT.MaxQueuedMessages = -1 },
			wantErr: "mqtt.max_queued_messages",
		},
		{
			name:    "influx enabled without url",
			modify:  func(c *Config) { c.InfluxDB.Enabled = true },
			wantErr: "influxdb.url",
		},
		{
			name: "measure on unknown controller",
			modify: func(c *Config) {
				c.Controllers = []ControllerConfig{{Name: "a"}}
				c.Measures = []MeasureConfig{{Name: "m", CtrlName: "b"}}
			},
			wantErr: `measures[0].ctrlName "b"`,
		},
		{
			name: "duplicate controller",
			modify: func(c *Config) {
				c.Controllers = []ControllerConfig{{Name: "a"}, {Name: "a"}}
			},
			wantErr: "duplicated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := defaultConfig()
	cfg.App.Name = ""
	cfg.MQTT.Broker.Host = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error, got nil")
	}
	for _, want := range []string{"app.name", "mqtt.broker.host"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error = %v, missing %q", err, want)
		}
	}
}

func TestConfig_Durations(t *testing.T) {
	cfg := defaultConfig()

	if got := cfg.GetPublishInterval(); got != 5*time.Second {
		t.Errorf("GetPublishInterval() = %v, want 5s", got)
	}
	if got := cfg.MQTT.GetKeepAlive(); got != 240*time.Second {
		t.Errorf("GetKeepAlive() = %v, want 240s", got)
	}
	if got := cfg.MQTT.GetConnectTimeout(); got != 2*time.Second {
		t.Errorf("GetConnectTimeout() = %v, want 2s", got)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := defaultConfig()

	t.Setenv("VIRTUALDRIVE_MQTT_HOST", "mqtt.example.com")
	t.Setenv("VIRTUALDRIVE_MQTT_PORT", "8883")
	t.Setenv("VIRTUALDRIVE_MQTT_USERNAME", "testuser")
	t.Setenv("VIRTUALDRIVE_MQTT_PASSWORD", "testpass")
	t.Setenv("VIRTUALDRIVE_DATABASE_PATH", "/custom/path.db")
	t.Setenv("VIRTUALDRIVE_INFLUXDB_TOKEN", "secret-token")
	t.Setenv("VIRTUALDRIVE_LOG_LEVEL", "debug")

	applyEnvOverrides(cfg)

	if cfg.MQTT.Broker.Host != "mqtt.example.com" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "mqtt.example.com")
	}
	if cfg.MQTT.Broker.Port != 8883 {
		t.Errorf("MQTT.Broker.Port = %d, want 8883", cfg.MQTT.Broker.Port)
	}
	if cfg.MQTT.Auth.Username != "testuser" || cfg.MQTT.Auth.Password != "testpass" {
		t.Errorf("MQTT.Auth = %+v", cfg.MQTT.Auth)
	}
	if cfg.Database.Path != "/custom/path.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/custom/path.db")
	}
	if cfg.InfluxDB.Token != "secret-token" {
		t.Errorf("InfluxDB.Token = %q, want %q", cfg.InfluxDB.Token, "secret-token")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestApplyEnvOverrides_InvalidPortIgnored(t *testing.T) {
	cfg := defaultConfig()
	t.Setenv("VIRTUALDRIVE_MQTT_PORT", "not-a-port")

	applyEnvOverrides(cfg)

	if cfg.MQTT.Broker.Port != 0 {
		t.Errorf("MQTT.Broker.Port = %d, want 0", cfg.MQTT.Broker.Port)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.MQTT.Broker.Port != 0 {
		t.Errorf("defaultConfig MQTT.Broker.Port = %d, want 0 (resolved from port file)", cfg.MQTT.Broker.Port)
	}
	if cfg.MQTT.Broker.PortFile == "" {
		t.Error("defaultConfig should have non-empty MQTT.Broker.PortFile")
	}
	if cfg.MQTT.ProtocolVersion != 4 {
		t.Errorf("defaultConfig MQTT.ProtocolVersion = %d, want 4", cfg.MQTT.ProtocolVersion)
	}
	if cfg.MQTT.Reconnect.RetryInterval != 15 {
		t.Errorf("defaultConfig MQTT.Reconnect.RetryInterval = %d, want 15", cfg.MQTT.Reconnect.RetryInterval)
	}
}

func TestLoad_SampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "..", "configs", "config.yaml"))
	if err != nil {
		t.Fatalf("Load(sample) error = %v", err)
	}
	if got := cfg.MQTT.GetConnectTimeout(); got > 2*time.Second {
		t.Errorf("sample connect timeout = %v, want at most 2s", got)
	}
	if len(cfg.Measures) == 0 {
		t.Error("sample config defines no measures")
	}
}
