package transcribe

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vijay-prabhu/voiceprofile/internal/database"
)

func TestValidateAudio(t *testing.T) {
	tests := []struct {
		name    string
		audio   Audio
		maxMB   int
		wantErr error
	}{
		{"valid", Audio{Filename: "memo.mp3", Data: []byte("x")}, 25, nil},
		{"uppercase extension", Audio{Filename: "MEMO.WAV", Data: []byte("x")}, 25, nil},
		{"empty", Audio{Filename: "memo.mp3"}, 25, ErrEmptyAudio},
		{"too large", Audio{Filename: "memo.mp3", Data: make([]byte, 2*1024*1024)}, 1, ErrAudioTooLarge},
		{"unsupported", Audio{Filename: "notes.txt", Data: []byte("x")}, 25, ErrUnsupportedFormat},
		{"no extension", Audio{Filename: "memo", Data: []byte("x")}, 25, ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAudio(tt.audio, tt.maxMB)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateAudio() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAudio() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSafeSuffix(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"memo.m4a", ".m4a"},
		{"archive.tar.flac", ".flac"},
		{"noext", ".audio"},
		{"weird.averyveryverylongext", ".audio"},
	}

	for _, tt := range tests {
		if got := SafeSuffix(tt.name); got != tt.want {
			t.Errorf("SafeSuffix(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		in   *float64
		want string
	}{
		{nil, "-"},
		{f(0), "0:00"},
		{f(65.9), "1:05"},
		{f(600), "10:00"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMetadataCaption(t *testing.T) {
	prob, dur := 0.932, 65.0
	m := Metadata{Language: "en", LanguageProbability: &prob, Duration: &dur}

	want := "Language: en • Confidence: 93.2% • Duration: 1:05"
	if got := m.Caption(); got != want {
		t.Errorf("Caption() = %q, want %q", got, want)
	}

	if got := (Metadata{}).Caption(); !strings.HasPrefix(got, "Language: unknown") {
		t.Errorf("Caption() of empty metadata = %q", got)
	}
}

func TestOptions(t *testing.T) {
	opts := DefaultOptions()
	if err := opts.Validate(); err != nil {
		t.Errorf("DefaultOptions().Validate() error: %v", err)
	}

	opts.ModelSize = "huge"
	if err := opts.Validate(); err == nil {
		t.Error("expected error for unsupported model size")
	}

	a := DefaultOptions()
	b := DefaultOptions()
	b.Device = "cpu"
	if a.Key() != b.Key() {
		t.Errorf("device must not change the settings key: %q vs %q", a.Key(), b.Key())
	}
	b.Language = "es"
	if a.Key() == b.Key() {
		t.Error("language must change the settings key")
	}
}

type fakeProvider struct {
	calls int
}

func (f *fakeProvider) Name() string                     { return "fake" }
func (f *fakeProvider) Health(ctx context.Context) error { return nil }

func (f *fakeProvider) Transcribe(ctx context.Context, audio Audio, opts Options) (*Transcript, error) {
	f.calls++
	dur := 3.0
	return &Transcript{
		Text:     "transcript of " + audio.Filename,
		Metadata: Metadata{Language: "en", Duration: &dur},
	}, nil
}

func TestCached(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("database.Open() error: %v", err)
	}
	defer db.Close()

	fake := &fakeProvider{}
	c := NewCached(fake, db)
	ctx := context.Background()
	audio := Audio{Filename: "memo.wav", Data: []byte("same bytes")}

	first, err := c.Transcribe(ctx, audio, DefaultOptions())
	if err != nil {
		t.Fatalf("Transcribe() error: %v", err)
	}
	if first.Cached {
		t.Error("first transcription should not be cached")
	}

	second, err := c.Transcribe(ctx, Audio{Filename: "renamed.wav", Data: audio.Data}, DefaultOptions())
	if err != nil {
		t.Fatalf("Transcribe() error: %v", err)
	}
	if !second.Cached {
		t.Error("second transcription should come from the cache")
	}
	if second.Text != first.Text {
		t.Errorf("cached Text = %q, want %q", second.Text, first.Text)
	}
	if second.Metadata.Language != "en" || second.Metadata.Duration == nil || *second.Metadata.Duration != 3 {
		t.Errorf("cached Metadata = %+v", second.Metadata)
	}
	if fake.calls != 1 {
		t.Errorf("provider called %d times, want 1", fake.calls)
	}

	opts := DefaultOptions()
	opts.ModelSize = "tiny"
	if _, err := c.Transcribe(ctx, audio, opts); err != nil {
		t.Fatal(err)
	}
	if fake.calls != 2 {
		t.Errorf("different settings should miss the cache, calls = %d", fake.calls)
	}
}
