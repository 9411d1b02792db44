// Package pipeline ties transcription, scoring and profiling together.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vijay-prabhu/voiceprofile/internal/interest"
	"github.com/vijay-prabhu/voiceprofile/internal/profile"
	"github.com/vijay-prabhu/voiceprofile/internal/taxonomy"
	"github.com/vijay-prabhu/voiceprofile/internal/transcribe"
)

// DefaultConcurrency is the number of files transcribed in parallel
const DefaultConcurrency = 2

// Analysis is the full result for one transcript
type Analysis struct {
	ID         string                                    `json:"id" yaml:"id"`
	Source     string                                    `json:"source,omitempty" yaml:"source,omitempty"`
	Transcript string                                    `json:"transcript" yaml:"transcript"`
	Metadata   *transcribe.Metadata                      `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Cached     bool                                      `json:"cached,omitempty" yaml:"cached,omitempty"`
	Scores     interest.Scores                           `json:"scores" yaml:"scores"`
	Ranked     []interest.Entry                          `json:"ranked" yaml:"ranked"`
	TopTags    []string                                  `json:"top_tags" yaml:"top_tags"`
	Confidence map[taxonomy.Category]interest.Confidence `json:"confidence" yaml:"confidence"`
	Matched    map[taxonomy.Category][]interest.Match    `json:"matched_keywords,omitempty" yaml:"matched_keywords,omitempty"`
	Profile    profile.Profile                           `json:"profile" yaml:"profile"`
}

// FileResult holds the outcome for one file of a batch
type FileResult struct {
	Path     string
	Analysis *Analysis
	Error    error
}

type fileResultView struct {
	Path     string    `json:"path" yaml:"path"`
	Analysis *Analysis `json:"analysis,omitempty" yaml:"analysis,omitempty"`
	Error    string    `json:"error,omitempty" yaml:"error,omitempty"`
}

func (r FileResult) view() fileResultView {
	v := fileResultView{Path: r.Path, Analysis: r.Analysis}
	if r.Error != nil {
		v.Error = r.Error.Error()
	}
	return v
}

// MarshalJSON encodes the result with the error as a message string
func (r FileResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.view())
}

// MarshalYAML encodes the result with the error as a message string
func (r FileResult) MarshalYAML() (interface{}, error) {
	return r.view(), nil
}

// Analyzer runs transcripts through scoring and profiling. The scorer and
// builder are shared read-only, so one Analyzer serves concurrent callers.
type Analyzer struct {
	provider    transcribe.Provider
	scorer      *interest.Scorer
	builder     *profile.Builder
	maxAudioMB  int
	concurrency int
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithProvider sets the transcription provider used for audio
func WithProvider(p transcribe.Provider) Option {
	return func(a *Analyzer) { a.provider = p }
}

// WithMaxAudioMB sets the upload size limit
func WithMaxAudioMB(mb int) Option {
	return func(a *Analyzer) { a.maxAudioMB = mb }
}

// WithConcurrency sets how many files are transcribed at once
func WithConcurrency(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// New creates an Analyzer
func New(scorer *interest.Scorer, builder *profile.Builder, opts ...Option) *Analyzer {
	a := &Analyzer{
		scorer:      scorer,
		builder:     builder,
		maxAudioMB:  transcribe.DefaultMaxAudioMB,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Scorer returns the analyzer's scorer
func (a *Analyzer) Scorer() *interest.Scorer {
	return a.scorer
}

// Builder returns the analyzer's profile builder
func (a *Analyzer) Builder() *profile.Builder {
	return a.builder
}

// Provider returns the transcription provider, or nil when none is set
func (a *Analyzer) Provider() transcribe.Provider {
	return a.provider
}

// MaxAudioMB returns the upload size limit
func (a *Analyzer) MaxAudioMB() int {
	return a.maxAudioMB
}

// AnalyzeText scores text and builds a profile from it
func (a *Analyzer) AnalyzeText(text string) *Analysis {
	detailed := a.scorer.ScoreDetailed(text)

	return &Analysis{
		ID:         uuid.New().String(),
		Transcript: text,
		Scores:     detailed.Scores,
		Ranked:     interest.Ranked(detailed.Scores),
		TopTags:    interest.TopTags(detailed.Scores),
		Confidence: detailed.Confidence,
		Matched:    detailed.Matched,
		Profile:    a.builder.Build(detailed.Scores),
	}
}

// AnalyzeAudio validates and transcribes audio, then analyzes the transcript
func (a *Analyzer) AnalyzeAudio(ctx context.Context, audio transcribe.Audio, opts transcribe.Options) (*Analysis, error) {
	if a.provider == nil {
		return nil, fmt.Errorf("no transcription provider configured")
	}
	if err := transcribe.ValidateAudio(audio, a.maxAudioMB); err != nil {
		return nil, err
	}

	start := time.Now()
	t, err := a.provider.Transcribe(ctx, audio, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to transcribe %s: %w", audio.Filename, err)
	}
	slog.Debug("transcribed audio",
		"file", audio.Filename,
		"provider", a.provider.Name(),
		"cached", t.Cached,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	analysis := a.AnalyzeText(t.Text)
	analysis.Source = audio.Filename
	analysis.Metadata = &t.Metadata
	analysis.Cached = t.Cached
	return analysis, nil
}

// AnalyzeFiles analyzes audio files with bounded concurrency. Failures are
// reported per file and do not stop the batch.
func (a *Analyzer) AnalyzeFiles(ctx context.Context, paths []string, opts transcribe.Options, progress ProgressCallback) []FileResult {
	results := make([]FileResult, len(paths))
	total := len(paths)

	var mu sync.Mutex
	report := func(phase ProgressPhase, current int, startedAt time.Time, desc string) {
		if progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		progress(Progress{
			Phase:       phase,
			Current:     current,
			Total:       total,
			Description: desc,
			StartedAt:   startedAt,
		})
	}

	// Read every file first so size and format problems surface before any
	// transcription work starts
	readStart := time.Now()
	audios := make([]transcribe.Audio, len(paths))
	for i, path := range paths {
		results[i].Path = path
		data, err := os.ReadFile(path)
		if err != nil {
			results[i].Error = fmt.Errorf("failed to read %s: %w", path, err)
		} else {
			audios[i] = transcribe.Audio{Filename: filepath.Base(path), Data: data}
			if err := transcribe.ValidateAudio(audios[i], a.maxAudioMB); err != nil {
				results[i].Error = err
			}
		}
		report(PhaseReading, i+1, readStart, path)
	}

	transcribeStart := time.Now()
	var done int64
	report(PhaseTranscribing, 0, transcribeStart, "")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i := range paths {
		if results[i].Error != nil {
			atomic.AddInt64(&done, 1)
			continue
		}
		i := i
		g.Go(func() error {
			analysis, err := a.AnalyzeAudio(gctx, audios[i], opts)
			results[i].Analysis = analysis
			results[i].Error = err

			current := int(atomic.AddInt64(&done, 1))
			report(PhaseTranscribing, current, transcribeStart, paths[i])
			return nil
		})
	}
	_ = g.Wait()

	scored := 0
	for _, r := range results {
		if r.Analysis != nil {
			scored++
		}
	}
	report(PhaseScoring, total, transcribeStart, fmt.Sprintf("%d of %d files analyzed", scored, total))

	return results
}
