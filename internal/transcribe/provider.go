// Package transcribe defines the speech-to-text boundary: the Provider
// interface, audio validation, and a caching decorator.
package transcribe

import (
	"context"
	"fmt"
	"strings"
)

// Provider turns recorded audio into text
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// Transcribe converts audio to text
	Transcribe(ctx context.Context, audio Audio, opts Options) (*Transcript, error)

	// Health reports whether the backend is reachable
	Health(ctx context.Context) error
}

// Audio is an uploaded recording
type Audio struct {
	Filename string
	Data     []byte
}

// Options configures a transcription
type Options struct {
	ModelSize   string // Whisper model: tiny, base, small, medium or large-v2
	Device      string // cpu, cuda or auto
	ComputeType string // int8, float16 or float32
	Language    string // Language hint; empty means auto-detect
	VADFilter   bool   // Skip silence with voice activity detection
}

// Supported model sizes and compute types
var (
	ModelSizes   = []string{"tiny", "base", "small", "medium", "large-v2"}
	ComputeTypes = []string{"int8", "float16", "float32"}
	Devices      = []string{"auto", "cpu", "cuda"}
)

// DefaultOptions returns the standard transcription settings
func DefaultOptions() Options {
	return Options{
		ModelSize:   "small",
		Device:      "auto",
		ComputeType: "int8",
		VADFilter:   true,
	}
}

// Validate checks the options against the supported values
func (o Options) Validate() error {
	if !contains(ModelSizes, o.ModelSize) {
		return fmt.Errorf("unsupported model size %q (want one of %s)", o.ModelSize, strings.Join(ModelSizes, ", "))
	}
	if !contains(ComputeTypes, o.ComputeType) {
		return fmt.Errorf("unsupported compute type %q (want one of %s)", o.ComputeType, strings.Join(ComputeTypes, ", "))
	}
	if o.Device != "" && !contains(Devices, o.Device) {
		return fmt.Errorf("unsupported device %q (want one of %s)", o.Device, strings.Join(Devices, ", "))
	}
	return nil
}

// Key identifies the settings that affect transcript content
func (o Options) Key() string {
	lang := o.Language
	if lang == "" {
		lang = "auto"
	}
	return fmt.Sprintf("%s/%s/%s/vad=%t", o.ModelSize, o.ComputeType, lang, o.VADFilter)
}

// Transcript is the output of a provider
type Transcript struct {
	Text     string   `json:"text" yaml:"text"`
	Metadata Metadata `json:"metadata" yaml:"metadata"`
	Cached   bool     `json:"cached,omitempty" yaml:"cached,omitempty"`
}

// Metadata describes a transcript. Providers fill in what they know.
type Metadata struct {
	Language            string   `json:"language,omitempty" yaml:"language,omitempty"`
	LanguageProbability *float64 `json:"language_probability,omitempty" yaml:"language_probability,omitempty"`
	Duration            *float64 `json:"duration,omitempty" yaml:"duration,omitempty"`
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
