package whisper

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vijay-prabhu/voiceprofile/internal/transcribe"
)

func newTestServer(t *testing.T, wantAuth string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(HealthResponse{Status: "ok", Device: "cpu"})
	})
	mux.HandleFunc("/transcribe", func(w http.ResponseWriter, r *http.Request) {
		if wantAuth != "" && r.Header.Get("Authorization") != wantAuth {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)

		if r.FormValue("model_size") != "small" || r.FormValue("vad_filter") != "true" {
			http.Error(w, "unexpected options", http.StatusBadRequest)
			return
		}
		if r.FormValue("language") != "" {
			http.Error(w, "language should be omitted", http.StatusBadRequest)
			return
		}

		prob, dur := 0.97, 12.5
		json.NewEncoder(w).Encode(TranscribeResponse{
			Text:                "heard " + string(data) + " from " + header.Filename,
			Language:            "en",
			LanguageProbability: &prob,
			Duration:            &dur,
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Transcribe(t *testing.T) {
	srv := newTestServer(t, "")
	c := New(srv.URL, 0)

	got, err := c.Transcribe(context.Background(), transcribe.Audio{Filename: "memo.m4a", Data: []byte("bytes")}, transcribe.DefaultOptions())
	if err != nil {
		t.Fatalf("Transcribe() error: %v", err)
	}

	if got.Text != "heard bytes from audio.m4a" {
		t.Errorf("Text = %q", got.Text)
	}
	if got.Metadata.Language != "en" {
		t.Errorf("Language = %q, want en", got.Metadata.Language)
	}
	if got.Metadata.Duration == nil || *got.Metadata.Duration != 12.5 {
		t.Errorf("Duration = %v, want 12.5", got.Metadata.Duration)
	}
}

func TestClient_Health(t *testing.T) {
	srv := newTestServer(t, "")

	if err := New(srv.URL, 0).Health(context.Background()); err != nil {
		t.Errorf("Health() error: %v", err)
	}

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "loading", http.StatusServiceUnavailable)
	}))
	defer down.Close()

	err := New(down.URL, 0).Health(context.Background())
	if err == nil || !strings.Contains(err.Error(), "not running") {
		t.Errorf("Health() error = %v, want not running", err)
	}
}

func TestClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model failed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL, 0).Transcribe(context.Background(), transcribe.Audio{Filename: "a.wav", Data: []byte("x")}, transcribe.DefaultOptions())
	if err == nil || !strings.Contains(err.Error(), "status 500") {
		t.Errorf("Transcribe() error = %v, want status 500", err)
	}
}

func TestClient_ClientCredentials(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"secret-token","token_type":"bearer","expires_in":3600}`))
	}))
	defer tokenSrv.Close()

	srv := newTestServer(t, "Bearer secret-token")
	c := NewWithAuth(context.Background(), srv.URL, 0, AuthConfig{
		TokenURL:     tokenSrv.URL,
		ClientID:     "voiceprofile",
		ClientSecret: "s3cret",
	})

	if _, err := c.Transcribe(context.Background(), transcribe.Audio{Filename: "a.wav", Data: []byte("x")}, transcribe.DefaultOptions()); err != nil {
		t.Errorf("Transcribe() with auth error: %v", err)
	}
}
