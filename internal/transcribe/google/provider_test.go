package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/api/option"
	"google.golang.org/api/speech/v1"

	"github.com/vijay-prabhu/voiceprofile/internal/transcribe"
)

func TestProvider_Transcribe(t *testing.T) {
	var got speech.RecognizeRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/speech:recognize" {
			http.Error(w, "unexpected path "+r.URL.Path, http.StatusNotFound)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"results": [
				{"alternatives": [{"transcript": "I love coding", "confidence": 0.9}], "languageCode": "en-us"},
				{"alternatives": [{"transcript": " in Python ", "confidence": 0.8}]}
			],
			"totalBilledTime": "15s"
		}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	service, err := speech.NewService(ctx, option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("speech.NewService() error: %v", err)
	}

	p := NewWithService(Config{SampleRateHertz: 16000}, service)
	tr, err := p.Transcribe(ctx, transcribe.Audio{Filename: "memo.flac", Data: []byte("pcm")}, transcribe.DefaultOptions())
	if err != nil {
		t.Fatalf("Transcribe() error: %v", err)
	}

	if tr.Text != "I love coding in Python" {
		t.Errorf("Text = %q", tr.Text)
	}
	if tr.Metadata.Language != "en-us" {
		t.Errorf("Language = %q, want en-us", tr.Metadata.Language)
	}
	if tr.Metadata.LanguageProbability == nil || *tr.Metadata.LanguageProbability < 0.849 || *tr.Metadata.LanguageProbability > 0.851 {
		t.Errorf("LanguageProbability = %v, want 0.85", tr.Metadata.LanguageProbability)
	}
	if tr.Metadata.Duration == nil || *tr.Metadata.Duration != 15 {
		t.Errorf("Duration = %v, want 15", tr.Metadata.Duration)
	}

	if got.Config == nil || got.Config.Encoding != "FLAC" || got.Config.LanguageCode != DefaultLanguage {
		t.Errorf("request config = %+v", got.Config)
	}
	if got.Audio == nil || got.Audio.Content != base64.StdEncoding.EncodeToString([]byte("pcm")) {
		t.Errorf("request audio = %+v", got.Audio)
	}
}

func TestProvider_EncodingFor(t *testing.T) {
	p := New(Config{})

	tests := []struct {
		filename string
		want     string
	}{
		{"a.wav", "LINEAR16"},
		{"a.FLAC", "FLAC"},
		{"a.ogg", "OGG_OPUS"},
		{"a.mp3", "MP3"},
		{"a.m4a", "ENCODING_UNSPECIFIED"},
	}

	for _, tt := range tests {
		if got := p.encodingFor(tt.filename); got != tt.want {
			t.Errorf("encodingFor(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}

	forced := New(Config{Encoding: "MULAW"})
	if got := forced.encodingFor("a.wav"); got != "MULAW" {
		t.Errorf("encodingFor with override = %q, want MULAW", got)
	}
}

func TestProvider_HealthWithoutCredentials(t *testing.T) {
	dir := t.TempDir()
	p := New(Config{CredentialsPath: dir + "/missing.json", TokenPath: dir + "/token.json"})

	if p.IsAuthenticated() {
		t.Error("expected IsAuthenticated() = false without a token")
	}
	if err := p.Health(context.Background()); err == nil {
		t.Error("expected Health() error without credentials")
	}
}
