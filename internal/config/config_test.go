package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Transcriber.Backend != "whisper" {
		t.Errorf("expected Backend=whisper, got %s", cfg.Transcriber.Backend)
	}

	if cfg.Transcriber.MaxAudioMB != 25 {
		t.Errorf("expected MaxAudioMB=25, got %d", cfg.Transcriber.MaxAudioMB)
	}

	if cfg.Scoring.MinScoreThreshold != 3.0 {
		t.Errorf("expected MinScoreThreshold=3.0, got %v", cfg.Scoring.MinScoreThreshold)
	}

	if cfg.Scoring.ContextBoost != 1.3 {
		t.Errorf("expected ContextBoost=1.3, got %v", cfg.Scoring.ContextBoost)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "invalid backend",
			modify: func(c *Config) {
				c.Transcriber.Backend = "azure"
			},
			wantErr: true,
		},
		{
			name: "invalid model size",
			modify: func(c *Config) {
				c.Transcriber.ModelSize = "huge"
			},
			wantErr: true,
		},
		{
			name: "invalid whisper port",
			modify: func(c *Config) {
				c.Transcriber.Whisper.Port = 0
			},
			wantErr: true,
		},
		{
			name: "context boost below one",
			modify: func(c *Config) {
				c.Scoring.ContextBoost = 0.5
			},
			wantErr: true,
		},
		{
			name: "cache without path",
			modify: func(c *Config) {
				c.Cache.Path = ""
			},
			wantErr: true,
		},
		{
			name: "disabled cache without path",
			modify: func(c *Config) {
				c.Cache.Enabled = false
				c.Cache.Path = ""
			},
			wantErr: false,
		},
		{
			name: "invalid log level",
			modify: func(c *Config) {
				c.Log.Level = "verbose"
			},
			wantErr: true,
		},
		{
			name: "invalid mcp transport",
			modify: func(c *Config) {
				c.MCP.Transport = "http"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input    string
		expected string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		result, err := expandPath(tt.input)
		if err != nil {
			t.Errorf("expandPath(%q) error: %v", tt.input, err)
		}
		if result != tt.expected {
			t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestLoad_Template(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(Template), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".local/share/voiceprofile/transcripts.db"); cfg.Cache.Path != want {
		t.Errorf("Cache.Path = %q, want %q", cfg.Cache.Path, want)
	}
	if cfg.Transcriber.Whisper.Auth.Enabled() {
		t.Error("expected whisper auth to be disabled by the template")
	}
}

func TestLoad_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[transcriber]
backend = "google"
model_size = "tiny"

[transcriber.whisper.auth]
token_url = "https://auth.example.com/token"
client_id = "voiceprofile"

[scoring]
min_score_threshold = 5.0

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ClientSecretEnv, "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Transcriber.Backend != "google" || cfg.Transcriber.ModelSize != "tiny" {
		t.Errorf("transcriber = %+v", cfg.Transcriber)
	}
	// Unset keys keep their defaults
	if cfg.Transcriber.ComputeType != "int8" {
		t.Errorf("ComputeType = %q, want int8", cfg.Transcriber.ComputeType)
	}
	if cfg.Scoring.MinScoreThreshold != 5.0 || cfg.Scoring.NegationWindow != 3 {
		t.Errorf("scoring = %+v", cfg.Scoring)
	}
	if cfg.Transcriber.Whisper.Auth.ClientSecret != "from-env" {
		t.Errorf("ClientSecret = %q, want from-env", cfg.Transcriber.Whisper.Auth.ClientSecret)
	}
	if !cfg.Transcriber.Whisper.Auth.Enabled() {
		t.Error("expected whisper auth to be enabled")
	}
	if level, _ := cfg.Log.SlogLevel(); level != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, want debug", level)
	}
}

func TestLoad_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")

	if _, err := Load(missing); err == nil {
		t.Error("expected error for missing config file")
	}

	cfg, err := LoadOrDefault(missing)
	if err != nil {
		t.Fatalf("LoadOrDefault() error: %v", err)
	}
	if cfg.Transcriber.Backend != "whisper" {
		t.Errorf("LoadOrDefault() Backend = %q, want whisper", cfg.Transcriber.Backend)
	}
}

func TestWhisperURL(t *testing.T) {
	cfg := Default()
	expected := "http://localhost:8643"

	if got := cfg.WhisperURL(); got != expected {
		t.Errorf("WhisperURL() = %q, want %q", got, expected)
	}
}

func TestTimeout(t *testing.T) {
	cfg := Default()

	if got := cfg.Transcriber.Timeout(); got != 300*time.Second {
		t.Errorf("Timeout() = %v, want 5m", got)
	}
}
