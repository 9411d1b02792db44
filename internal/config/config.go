package config

import "time"

// Config represents the application configuration
type Config struct {
	Transcriber TranscriberConfig `toml:"transcriber"`
	Scoring     ScoringConfig     `toml:"scoring"`
	Taxonomy    TaxonomyConfig    `toml:"taxonomy"`
	Cache       CacheConfig       `toml:"cache"`
	Server      ServerConfig      `toml:"server"`
	Log         LogConfig         `toml:"log"`
	MCP         MCPConfig         `toml:"mcp"`
}

// TranscriberConfig contains speech-to-text settings
type TranscriberConfig struct {
	Backend        string        `toml:"backend"`
	ModelSize      string        `toml:"model_size"`
	Device         string        `toml:"device"`
	ComputeType    string        `toml:"compute_type"`
	VADFilter      bool          `toml:"vad_filter"`
	Language       string        `toml:"language"`
	MaxAudioMB     int           `toml:"max_audio_mb"`
	TimeoutSeconds int           `toml:"timeout_seconds"`
	Concurrency    int           `toml:"concurrency"`
	Whisper        WhisperConfig `toml:"whisper"`
	Google         GoogleConfig  `toml:"google"`
}

// Timeout returns the per-request timeout as a duration
func (t TranscriberConfig) Timeout() time.Duration {
	return time.Duration(t.TimeoutSeconds) * time.Second
}

// WhisperConfig contains faster-whisper service settings
type WhisperConfig struct {
	Host string            `toml:"host"`
	Port int               `toml:"port"`
	Auth WhisperAuthConfig `toml:"auth"`
}

// WhisperAuthConfig enables OAuth2 client credentials for the whisper service
type WhisperAuthConfig struct {
	TokenURL     string   `toml:"token_url"`
	ClientID     string   `toml:"client_id"`
	ClientSecret string   `toml:"client_secret"` // Falls back to VOICEPROFILE_CLIENT_SECRET
	Scopes       []string `toml:"scopes"`
}

// Enabled reports whether client-credentials auth is configured
func (a WhisperAuthConfig) Enabled() bool {
	return a.TokenURL != "" && a.ClientID != ""
}

// GoogleConfig contains Cloud Speech-to-Text settings
type GoogleConfig struct {
	CredentialsPath string `toml:"credentials_path"`
	TokenPath       string `toml:"token_path"`
	SampleRateHertz int64  `toml:"sample_rate_hertz"`
	Encoding        string `toml:"encoding"`
}

// ScoringConfig contains keyword scoring parameters
type ScoringConfig struct {
	MinScoreThreshold float64 `toml:"min_score_threshold"`
	NegationWindow    int     `toml:"negation_window"`
	ContextWindow     int     `toml:"context_window"`
	ContextBoost      float64 `toml:"context_boost"`
}

// TaxonomyConfig points at an optional taxonomy file
type TaxonomyConfig struct {
	Path string `toml:"path"`
}

// CacheConfig contains transcript cache settings
type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `toml:"level"`
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Transcriber: TranscriberConfig{
			Backend:        "whisper",
			ModelSize:      "small",
			Device:         "auto",
			ComputeType:    "int8",
			VADFilter:      true,
			MaxAudioMB:     25,
			TimeoutSeconds: 300,
			Concurrency:    2,
			Whisper: WhisperConfig{
				Host: "http://localhost",
				Port: 8643,
			},
			Google: GoogleConfig{
				CredentialsPath: "~/.config/voiceprofile/google_credentials.json",
				TokenPath:       "~/.config/voiceprofile/google_token.json",
				SampleRateHertz: 16000,
			},
		},
		Scoring: ScoringConfig{
			MinScoreThreshold: 3.0,
			NegationWindow:    3,
			ContextWindow:     5,
			ContextBoost:      1.3,
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    "~/.local/share/voiceprofile/transcripts.db",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8640",
		},
		Log: LogConfig{
			Level: "info",
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}
