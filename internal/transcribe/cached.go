package transcribe

import (
	"context"
	"log/slog"

	"github.com/vijay-prabhu/voiceprofile/internal/database"
)

// Store persists transcripts by audio digest and settings key
type Store interface {
	GetTranscript(ctx context.Context, audioSHA256, settingsKey string) (*database.CachedTranscript, error)
	PutTranscript(ctx context.Context, t *database.CachedTranscript) error
}

// Cached wraps a Provider so identical audio with identical settings is
// transcribed once
type Cached struct {
	provider Provider
	store    Store
}

// NewCached creates a caching Provider
func NewCached(provider Provider, store Store) *Cached {
	return &Cached{provider: provider, store: store}
}

// Name returns the wrapped provider's name
func (c *Cached) Name() string {
	return c.provider.Name()
}

// Health checks the wrapped provider
func (c *Cached) Health(ctx context.Context) error {
	return c.provider.Health(ctx)
}

// Transcribe returns the cached transcript when present, otherwise calls the
// wrapped provider and stores the result. Cache failures are logged and do
// not fail the transcription.
func (c *Cached) Transcribe(ctx context.Context, audio Audio, opts Options) (*Transcript, error) {
	digest := audio.Digest()
	key := c.provider.Name() + ":" + opts.Key()

	hit, err := c.store.GetTranscript(ctx, digest, key)
	if err != nil {
		slog.Warn("transcript cache lookup failed", "error", err)
	}
	if hit != nil {
		slog.Debug("transcript cache hit", "file", audio.Filename, "sha256", digest[:12])
		return fromCache(hit), nil
	}

	t, err := c.provider.Transcribe(ctx, audio, opts)
	if err != nil {
		return nil, err
	}

	if err := c.store.PutTranscript(ctx, toCache(digest, key, audio.Filename, t)); err != nil {
		slog.Warn("failed to cache transcript", "file", audio.Filename, "error", err)
	}

	return t, nil
}

func fromCache(e *database.CachedTranscript) *Transcript {
	t := &Transcript{
		Text:   e.Text,
		Cached: true,
		Metadata: Metadata{
			LanguageProbability: e.LanguageProbability,
			Duration:            e.DurationSeconds,
		},
	}
	if e.Language != nil {
		t.Metadata.Language = *e.Language
	}
	return t
}

func toCache(digest, key, filename string, t *Transcript) *database.CachedTranscript {
	e := &database.CachedTranscript{
		AudioSHA256:         digest,
		SettingsKey:         key,
		Filename:            filename,
		Text:                t.Text,
		LanguageProbability: t.Metadata.LanguageProbability,
		DurationSeconds:     t.Metadata.Duration,
	}
	if t.Metadata.Language != "" {
		lang := t.Metadata.Language
		e.Language = &lang
	}
	return e
}
