// Package google transcribes audio with the Cloud Speech-to-Text v1 API.
// Synchronous recognition accepts up to one minute of audio per request.
package google

import (
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/speech/v1"

	"github.com/vijay-prabhu/voiceprofile/internal/transcribe"
)

// DefaultLanguage is used when no language hint is given
const DefaultLanguage = "en-US"

// Config configures the Speech-to-Text provider
type Config struct {
	CredentialsPath string
	TokenPath       string
	SampleRateHertz int64
	Encoding        string // Overrides detection from the file extension
}

// Provider implements transcribe.Provider for Google Speech-to-Text
type Provider struct {
	config Config

	mu      sync.Mutex
	service *speech.Service
}

// New creates a new Speech-to-Text provider
func New(config Config) *Provider {
	return &Provider{config: config}
}

// NewWithService creates a provider around an existing service
func NewWithService(config Config, service *speech.Service) *Provider {
	return &Provider{config: config, service: service}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "google"
}

// IsAuthenticated checks if a saved token exists
func (p *Provider) IsAuthenticated() bool {
	_, err := loadToken(p.config.TokenPath)
	return err == nil
}

// Authenticate runs the browser OAuth flow if needed and creates the service
func (p *Provider) Authenticate(ctx context.Context) error {
	_, err := p.connect(ctx, true)
	return err
}

// Health reports whether credentials are available
func (p *Provider) Health(ctx context.Context) error {
	_, err := p.connect(ctx, false)
	return err
}

func (p *Provider) connect(ctx context.Context, interactive bool) (*speech.Service, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.service != nil {
		return p.service, nil
	}

	config, err := loadCredentials(p.config.CredentialsPath)
	if err != nil {
		return nil, err
	}

	client, err := getClient(ctx, config, p.config.TokenPath, interactive)
	if err != nil {
		return nil, fmt.Errorf("failed to get OAuth client: %w", err)
	}

	service, err := speech.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Speech service: %w", err)
	}

	p.service = service
	return service, nil
}

// Transcribe sends the audio for synchronous recognition
func (p *Provider) Transcribe(ctx context.Context, audio transcribe.Audio, opts transcribe.Options) (*transcribe.Transcript, error) {
	service, err := p.connect(ctx, false)
	if err != nil {
		return nil, err
	}

	language := opts.Language
	if language == "" {
		language = DefaultLanguage
	}

	req := &speech.RecognizeRequest{
		Audio: &speech.RecognitionAudio{
			Content: base64.StdEncoding.EncodeToString(audio.Data),
		},
		Config: &speech.RecognitionConfig{
			Encoding:                   p.encodingFor(audio.Filename),
			SampleRateHertz:            p.config.SampleRateHertz,
			LanguageCode:               language,
			EnableAutomaticPunctuation: true,
		},
	}

	resp, err := service.Speech.Recognize(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("speech recognition failed: %w", err)
	}

	return toTranscript(resp, language), nil
}

// encodingFor picks the RecognitionConfig encoding for a file
func (p *Provider) encodingFor(filename string) string {
	if p.config.Encoding != "" {
		return p.config.Encoding
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return "LINEAR16"
	case ".flac":
		return "FLAC"
	case ".ogg":
		return "OGG_OPUS"
	case ".mp3":
		return "MP3"
	default:
		return "ENCODING_UNSPECIFIED"
	}
}

func toTranscript(resp *speech.RecognizeResponse, requested string) *transcribe.Transcript {
	var parts []string
	var confidenceSum float64
	var confidenceCount int
	language := requested

	for _, result := range resp.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		best := result.Alternatives[0]
		parts = append(parts, strings.TrimSpace(best.Transcript))
		if best.Confidence > 0 {
			confidenceSum += best.Confidence
			confidenceCount++
		}
		if result.LanguageCode != "" {
			language = result.LanguageCode
		}
	}

	t := &transcribe.Transcript{
		Text:     strings.TrimSpace(strings.Join(parts, " ")),
		Metadata: transcribe.Metadata{Language: language},
	}

	// Speech reports recognition confidence rather than language probability
	if confidenceCount > 0 {
		avg := confidenceSum / float64(confidenceCount)
		t.Metadata.LanguageProbability = &avg
	}

	if d, err := time.ParseDuration(resp.TotalBilledTime); err == nil && d > 0 {
		seconds := d.Seconds()
		t.Metadata.Duration = &seconds
	}

	return t
}
