package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Thermoquad/hopper/pkg/adapter"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hopper.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// testFlags binds the persistent flag variables to a fresh flag set
func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringVar(&portName, "port", "", "")
	fs.IntVar(&baudRate, "baud", 0, "")
	fs.StringVar(&timeout, "timeout", "", "")
	fs.StringVar(&wsURL, "url", "", "")
	fs.StringVar(&wsUsername, "username", "", "")
	fs.BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "")
	fs.StringVar(&logLevel, "log-level", "", "")
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs
}

func withConfigPath(t *testing.T, path string) {
	t.Helper()
	old := configPath
	configPath = path
	t.Cleanup(func() { configPath = old })
}

func TestResolveSettings_Defaults(t *testing.T) {
	withConfigPath(t, "")

	s, err := resolveSettings(testFlags(t))
	if err != nil {
		t.Fatalf("resolveSettings failed: %v", err)
	}
	if s.Adapter != adapter.DefaultConfig() {
		t.Errorf("Adapter = %+v, want defaults", s.Adapter)
	}
	if s.LogLevel != zerolog.WarnLevel {
		t.Errorf("LogLevel = %s, want warn", s.LogLevel)
	}
}

func TestLoadSettingsFile(t *testing.T) {
	path := writeConfig(t, `
port = "/dev/ttyUSB0"
baud = 9600
timeout = "250ms"
log_level = "DEBUG"
`)

	s, err := loadSettingsFile(path, defaultSettings())
	if err != nil {
		t.Fatalf("loadSettingsFile failed: %v", err)
	}
	if s.Adapter.Port != "/dev/ttyUSB0" {
		t.Errorf("Port = %q", s.Adapter.Port)
	}
	if s.Adapter.BaudRate != 9600 {
		t.Errorf("BaudRate = %d", s.Adapter.BaudRate)
	}
	if s.Adapter.Timeout != 250*time.Millisecond {
		t.Errorf("Timeout = %s", s.Adapter.Timeout)
	}
	if s.LogLevel != zerolog.DebugLevel {
		t.Errorf("LogLevel = %s", s.LogLevel)
	}
}

func TestLoadSettingsFile_KeepsUndefinedKeys(t *testing.T) {
	path := writeConfig(t, `timeout_ms = 1500`)

	s, err := loadSettingsFile(path, defaultSettings())
	if err != nil {
		t.Fatalf("loadSettingsFile failed: %v", err)
	}
	if s.Adapter.Timeout != 1500*time.Millisecond {
		t.Errorf("Timeout = %s, want 1.5s", s.Adapter.Timeout)
	}
	if s.Adapter.Port != adapter.DefaultPort || s.Adapter.BaudRate != adapter.DefaultBaudRate {
		t.Errorf("Adapter = %+v, want default port and baud", s.Adapter)
	}
}

func TestLoadSettingsFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantKey string
	}{
		{"unknown key", `parity = "none"`, "parity"},
		{"bad timeout", `timeout = "soon"`, "timeout"},
		{"bad level", `log_level = "loud"`, "log_level"},
		{"syntax", `port = `, "config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadSettingsFile(writeConfig(t, tt.body), defaultSettings())
			var cfgErr *adapter.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error = %v, want ConfigError", err)
			}
			if cfgErr.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", cfgErr.Key, tt.wantKey)
			}
		})
	}
}

func TestLoadSettingsFile_Missing(t *testing.T) {
	_, err := loadSettingsFile(filepath.Join(t.TempDir(), "nope.toml"), defaultSettings())
	var cfgErr *adapter.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %v, want ConfigError", err)
	}
}

func TestResolveSettings_FlagsOverrideFile(t *testing.T) {
	withConfigPath(t, writeConfig(t, `
port = "/dev/ttyUSB0"
baud = 9600
`))

	s, err := resolveSettings(testFlags(t, "--baud", "57600", "--timeout", "2s"))
	if err != nil {
		t.Fatalf("resolveSettings failed: %v", err)
	}
	if s.Adapter.Port != "/dev/ttyUSB0" {
		t.Errorf("Port = %q, want file value", s.Adapter.Port)
	}
	if s.Adapter.BaudRate != 57600 {
		t.Errorf("BaudRate = %d, want flag value", s.Adapter.BaudRate)
	}
	if s.Adapter.Timeout != 2*time.Second {
		t.Errorf("Timeout = %s, want 2s", s.Adapter.Timeout)
	}
}

func TestResolveSettings_URLBecomesPort(t *testing.T) {
	withConfigPath(t, "")

	s, err := resolveSettings(testFlags(t, "--url", "ws://bridge.local/hopper", "--username", "feed"))
	if err != nil {
		t.Fatalf("resolveSettings failed: %v", err)
	}
	if s.Adapter.Port != "ws://bridge.local/hopper" {
		t.Errorf("Port = %q, want URL", s.Adapter.Port)
	}
	if s.Username != "feed" {
		t.Errorf("Username = %q", s.Username)
	}
}

func TestResolveSettings_Invalid(t *testing.T) {
	withConfigPath(t, "")

	tests := []struct {
		name    string
		args    []string
		wantKey string
	}{
		{"zero baud", []string{"--baud", "0"}, "baud"},
		{"empty port", []string{"--port", "  "}, "port"},
		{"negative timeout", []string{"--timeout", "-1s"}, "timeout"},
		{"unparsable timeout", []string{"--timeout", "1 sec"}, "timeout"},
		{"bad level", []string{"--log-level", "chatty"}, "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveSettings(testFlags(t, tt.args...))
			var cfgErr *adapter.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error = %v, want ConfigError", err)
			}
			if cfgErr.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", cfgErr.Key, tt.wantKey)
			}
		})
	}
}
