package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ClientSecretEnv holds the whisper client secret when the file does not
const ClientSecretEnv = "VOICEPROFILE_CLIENT_SECRET"

// DefaultPath is the config file used when --config is not given
const DefaultPath = "~/.config/voiceprofile/config.toml"

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	data, err := os.ReadFile(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s (run 'voiceprofile config init' to create)", expandedPath)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parse(data)
}

// LoadOrDefault loads the config file, or returns defaults when it does not exist
func LoadOrDefault(path string) (*Config, error) {
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	if _, err := os.Stat(expandedPath); os.IsNotExist(err) {
		slog.Debug("no config file, using defaults", "path", expandedPath)
		return parse(nil)
	}

	return Load(path)
}

func parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Transcriber.Whisper.Auth.ClientSecret == "" {
		cfg.Transcriber.Whisper.Auth.ClientSecret = os.Getenv(ClientSecretEnv)
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ExpandPath expands ~ to the home directory
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

// expandPaths expands ~ in all path fields
func (c *Config) expandPaths() error {
	paths := []*string{
		&c.Transcriber.Google.CredentialsPath,
		&c.Transcriber.Google.TokenPath,
		&c.Taxonomy.Path,
		&c.Cache.Path,
	}

	for _, p := range paths {
		expanded, err := expandPath(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}

	return nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	// Transcriber validation
	t := c.Transcriber
	if t.Backend != "whisper" && t.Backend != "google" {
		errs = append(errs, fmt.Errorf("transcriber.backend must be 'whisper' or 'google', got '%s'", t.Backend))
	}
	if !oneOf(t.ModelSize, "tiny", "base", "small", "medium", "large-v2") {
		errs = append(errs, fmt.Errorf("transcriber.model_size must be one of tiny, base, small, medium, large-v2, got '%s'", t.ModelSize))
	}
	if !oneOf(t.ComputeType, "int8", "float16", "float32") {
		errs = append(errs, fmt.Errorf("transcriber.compute_type must be one of int8, float16, float32, got '%s'", t.ComputeType))
	}
	if !oneOf(t.Device, "auto", "cpu", "cuda") {
		errs = append(errs, fmt.Errorf("transcriber.device must be one of auto, cpu, cuda, got '%s'", t.Device))
	}
	if t.MaxAudioMB < 1 {
		errs = append(errs, errors.New("transcriber.max_audio_mb must be at least 1"))
	}
	if t.TimeoutSeconds < 1 {
		errs = append(errs, errors.New("transcriber.timeout_seconds must be at least 1"))
	}
	if t.Concurrency < 1 || t.Concurrency > 16 {
		errs = append(errs, errors.New("transcriber.concurrency must be between 1 and 16"))
	}
	if t.Whisper.Port < 1 || t.Whisper.Port > 65535 {
		errs = append(errs, errors.New("transcriber.whisper.port must be between 1 and 65535"))
	}
	if t.Backend == "google" && t.Google.CredentialsPath == "" {
		errs = append(errs, errors.New("transcriber.google.credentials_path is required for the google backend"))
	}

	// Scoring validation
	s := c.Scoring
	if s.MinScoreThreshold < 0 || s.MinScoreThreshold >= 100 {
		errs = append(errs, errors.New("scoring.min_score_threshold must be between 0 and 100"))
	}
	if s.NegationWindow < 0 {
		errs = append(errs, errors.New("scoring.negation_window must not be negative"))
	}
	if s.ContextWindow < 0 {
		errs = append(errs, errors.New("scoring.context_window must not be negative"))
	}
	if s.ContextBoost < 1 {
		errs = append(errs, errors.New("scoring.context_boost must be at least 1"))
	}

	// Cache validation
	if c.Cache.Enabled && c.Cache.Path == "" {
		errs = append(errs, errors.New("cache.path is required when the cache is enabled"))
	}

	// Log validation
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	// MCP validation
	if c.MCP.Transport != "stdio" {
		errs = append(errs, fmt.Errorf("mcp.transport must be 'stdio', got '%s'", c.MCP.Transport))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// SlogLevel returns the configured log level
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level must be one of debug, info, warn, error, got '%s'", l.Level)
	}
	return level, nil
}

// WhisperURL returns the full URL for the whisper service
func (c *Config) WhisperURL() string {
	return fmt.Sprintf("%s:%d", c.Transcriber.Whisper.Host, c.Transcriber.Whisper.Port)
}

// EnsureDirectories creates necessary directories for the cache and tokens
func (c *Config) EnsureDirectories() error {
	var dirs []string
	if c.Cache.Enabled {
		dirs = append(dirs, filepath.Dir(c.Cache.Path))
	}
	if c.Transcriber.Backend == "google" {
		dirs = append(dirs, filepath.Dir(c.Transcriber.Google.TokenPath))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

func oneOf(s string, options ...string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}
