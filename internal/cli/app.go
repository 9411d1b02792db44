package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vijay-prabhu/voiceprofile/internal/config"
	"github.com/vijay-prabhu/voiceprofile/internal/database"
	"github.com/vijay-prabhu/voiceprofile/internal/interest"
	"github.com/vijay-prabhu/voiceprofile/internal/pipeline"
	"github.com/vijay-prabhu/voiceprofile/internal/profile"
	"github.com/vijay-prabhu/voiceprofile/internal/taxonomy"
	"github.com/vijay-prabhu/voiceprofile/internal/transcribe"
	"github.com/vijay-prabhu/voiceprofile/internal/transcribe/google"
	"github.com/vijay-prabhu/voiceprofile/internal/transcribe/whisper"
)

// loadTaxonomy returns the configured taxonomy, or the built-in one
func loadTaxonomy(cfg *config.Config) (*taxonomy.Taxonomy, error) {
	if cfg.Taxonomy.Path == "" {
		return taxonomy.Default(), nil
	}

	t, err := taxonomy.Load(cfg.Taxonomy.Path)
	if err != nil {
		return nil, err
	}
	for _, d := range t.Drift() {
		slog.Warn("taxonomy drift", "detail", d)
	}
	return t, nil
}

func scorerConfig(cfg *config.Config) interest.ScorerConfig {
	return interest.ScorerConfig{
		MinScoreThreshold: cfg.Scoring.MinScoreThreshold,
		NegationWindow:    cfg.Scoring.NegationWindow,
		ContextWindow:     cfg.Scoring.ContextWindow,
		ContextBoost:      cfg.Scoring.ContextBoost,
	}
}

func transcribeOptions(cfg *config.Config) transcribe.Options {
	t := cfg.Transcriber
	return transcribe.Options{
		ModelSize:   t.ModelSize,
		Device:      t.Device,
		ComputeType: t.ComputeType,
		Language:    t.Language,
		VADFilter:   t.VADFilter,
	}
}

// newAnalyzer builds the scoring pipeline. provider may be nil for commands
// that only score text.
func newAnalyzer(cfg *config.Config, provider transcribe.Provider) (*pipeline.Analyzer, *taxonomy.Taxonomy, error) {
	tax, err := loadTaxonomy(cfg)
	if err != nil {
		return nil, nil, err
	}

	scorer := interest.NewScorer(interest.BuildIndex(tax), scorerConfig(cfg))
	opts := []pipeline.Option{
		pipeline.WithMaxAudioMB(cfg.Transcriber.MaxAudioMB),
		pipeline.WithConcurrency(cfg.Transcriber.Concurrency),
	}
	if provider != nil {
		opts = append(opts, pipeline.WithProvider(provider))
	}

	return pipeline.New(scorer, profile.NewBuilder(tax), opts...), tax, nil
}

// newProvider builds the configured transcription backend, wrapped by the
// transcript cache when it is enabled. The returned func releases the cache.
func newProvider(ctx context.Context, cfg *config.Config, useCache bool) (transcribe.Provider, func(), error) {
	var provider transcribe.Provider

	t := cfg.Transcriber
	switch t.Backend {
	case "google":
		provider = google.New(google.Config{
			CredentialsPath: t.Google.CredentialsPath,
			TokenPath:       t.Google.TokenPath,
			SampleRateHertz: t.Google.SampleRateHertz,
			Encoding:        t.Google.Encoding,
		})
	default:
		if t.Whisper.Auth.Enabled() {
			provider = whisper.NewWithAuth(ctx, cfg.WhisperURL(), t.Timeout(), whisper.AuthConfig{
				TokenURL:     t.Whisper.Auth.TokenURL,
				ClientID:     t.Whisper.Auth.ClientID,
				ClientSecret: t.Whisper.Auth.ClientSecret,
				Scopes:       t.Whisper.Auth.Scopes,
			})
		} else {
			provider = whisper.New(cfg.WhisperURL(), t.Timeout())
		}
	}

	if !useCache || !cfg.Cache.Enabled {
		return provider, func() {}, nil
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, nil, err
	}
	db, err := database.Open(cfg.Cache.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open transcript cache: %w", err)
	}

	return transcribe.NewCached(provider, db), func() { db.Close() }, nil
}
