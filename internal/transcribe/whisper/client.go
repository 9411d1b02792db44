// Package whisper is a client for a faster-whisper transcription service.
package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/vijay-prabhu/voiceprofile/internal/transcribe"
)

// DefaultTimeout allows for slow CPU inference on long recordings
const DefaultTimeout = 300 * time.Second

// Client is an HTTP client for the whisper service
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// AuthConfig enables OAuth2 client-credentials authentication
type AuthConfig struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
}

// TranscribeResponse is the response from the service
type TranscribeResponse struct {
	Text                string   `json:"text"`
	Language            string   `json:"language,omitempty"`
	LanguageProbability *float64 `json:"language_probability,omitempty"`
	Duration            *float64 `json:"duration,omitempty"`
}

// HealthResponse is the response from health check
type HealthResponse struct {
	Status      string   `json:"status"`
	Device      string   `json:"device,omitempty"`
	LoadedModel []string `json:"loaded_models,omitempty"`
}

// New creates a new whisper client
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewWithAuth creates a client whose requests carry a client-credentials token
func NewWithAuth(ctx context.Context, baseURL string, timeout time.Duration, auth AuthConfig) *Client {
	c := New(baseURL, timeout)

	cc := clientcredentials.Config{
		ClientID:     auth.ClientID,
		ClientSecret: auth.ClientSecret,
		TokenURL:     auth.TokenURL,
		Scopes:       auth.Scopes,
	}
	httpClient := cc.Client(ctx)
	httpClient.Timeout = c.httpClient.Timeout
	c.httpClient = httpClient

	return c
}

// Name returns the provider identifier
func (c *Client) Name() string {
	return "whisper"
}

// Status fetches the service health report
func (c *Client) Status(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to whisper service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("health check failed: %s", string(body))
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &health, nil
}

// Health returns an error with start instructions when the service is not running
func (c *Client) Health(ctx context.Context) error {
	health, err := c.Status(ctx)
	if err == nil && health.Status == "ok" {
		return nil
	}

	return fmt.Errorf(
		"whisper service not running at %s\n\n"+
			"Start a faster-whisper server exposing /health and /transcribe, e.g.:\n"+
			"  uvicorn whisper_server:app --port 8643",
		c.baseURL,
	)
}

// Transcribe uploads audio and returns the transcript
func (c *Client) Transcribe(ctx context.Context, audio transcribe.Audio, opts transcribe.Options) (*transcribe.Transcript, error) {
	body, contentType, err := encodeRequest(audio, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/transcribe", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("transcription failed (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result TranscribeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &transcribe.Transcript{
		Text: result.Text,
		Metadata: transcribe.Metadata{
			Language:            result.Language,
			LanguageProbability: result.LanguageProbability,
			Duration:            result.Duration,
		},
	}, nil
}

func encodeRequest(audio transcribe.Audio, opts transcribe.Options) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", "audio"+transcribe.SafeSuffix(audio.Filename))
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(audio.Data); err != nil {
		return nil, "", err
	}

	fields := map[string]string{
		"model_size":   opts.ModelSize,
		"device":       opts.Device,
		"compute_type": opts.ComputeType,
		"vad_filter":   strconv.FormatBool(opts.VADFilter),
		"language":     opts.Language,
	}
	for _, name := range []string{"model_size", "device", "compute_type", "vad_filter", "language"} {
		if fields[name] == "" {
			continue
		}
		if err := w.WriteField(name, fields[name]); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}
