// Package api serves scoring, profiling and audio analysis over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vijay-prabhu/voiceprofile/internal/interest"
	"github.com/vijay-prabhu/voiceprofile/internal/pipeline"
	"github.com/vijay-prabhu/voiceprofile/internal/taxonomy"
	"github.com/vijay-prabhu/voiceprofile/internal/transcribe"
)

const maxJSONBodySize = 1 << 20 // 1MB

// Deps holds what the handlers share. Everything in it is read-only after
// construction.
type Deps struct {
	Analyzer *pipeline.Analyzer
	Taxonomy *taxonomy.Taxonomy
	Options  transcribe.Options
}

// ScoreRequest is the body of POST /score
type ScoreRequest struct {
	Text    string `json:"text"`
	Verbose bool   `json:"verbose"`
}

// ScoreResponse is the reply to POST /score
type ScoreResponse struct {
	Scores     interest.Scores                           `json:"scores"`
	Ranked     []interest.Entry                          `json:"ranked"`
	TopTags    []string                                  `json:"top_tags"`
	Confidence map[taxonomy.Category]interest.Confidence `json:"confidence,omitempty"`
	Matched    map[taxonomy.Category][]interest.Match    `json:"matched_keywords,omitempty"`
}

// ProfileRequest is the body of POST /profile
type ProfileRequest struct {
	Scores interest.Scores `json:"scores"`
}

// NewHandler returns the HTTP API router
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/health", handleHealth(deps))
	r.Get("/taxonomy", handleTaxonomy(deps))
	r.Post("/score", handleScore(deps))
	r.Post("/profile", handleProfile(deps))
	r.Post("/analyze", handleAnalyze(deps))

	return r
}

func handleHealth(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"status":     "ok",
			"categories": len(deps.Taxonomy.Categories()),
		}
		if p := deps.Analyzer.Provider(); p != nil {
			resp["transcriber"] = p.Name()
			if err := p.Health(r.Context()); err != nil {
				resp["transcriber_error"] = err.Error()
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleTaxonomy(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Taxonomy.Export())
	}
}

func handleScore(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)
		defer r.Body.Close()

		var req ScoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		d := deps.Analyzer.Scorer().ScoreDetailed(req.Text)
		resp := ScoreResponse{
			Scores:  d.Scores,
			Ranked:  interest.Ranked(d.Scores),
			TopTags: interest.TopTags(d.Scores),
		}
		if req.Verbose {
			resp.Confidence = d.Confidence
			resp.Matched = d.Matched
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleProfile(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)
		defer r.Body.Close()

		var req ProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		writeJSON(w, http.StatusOK, deps.Analyzer.Builder().Build(req.Scores))
	}
}

func handleAnalyze(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Analyzer.Provider() == nil {
			httpError(w, http.StatusServiceUnavailable, "api_error", "no transcription backend configured")
			return
		}

		maxBytes := int64(deps.Analyzer.MaxAudioMB()) << 20
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+(1<<20))
		defer r.Body.Close()

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				httpError(w, http.StatusRequestEntityTooLarge, "invalid_request_error",
					"file is too large, upload an audio file under %d MB", deps.Analyzer.MaxAudioMB())
				return
			}
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid multipart body: %v", err)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "file is required")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "failed to read upload: %v", err)
			return
		}

		opts := deps.Options
		if lang := r.FormValue("language"); lang != "" {
			opts.Language = lang
		}
		if size := r.FormValue("model_size"); size != "" {
			opts.ModelSize = size
		}
		if err := opts.Validate(); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}

		analysis, err := deps.Analyzer.AnalyzeAudio(r.Context(), transcribe.Audio{Filename: header.Filename, Data: data}, opts)
		switch {
		case errors.Is(err, transcribe.ErrAudioTooLarge):
			httpError(w, http.StatusRequestEntityTooLarge, "invalid_request_error", "%v", err)
		case errors.Is(err, transcribe.ErrEmptyAudio), errors.Is(err, transcribe.ErrUnsupportedFormat):
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
		case err != nil:
			httpError(w, http.StatusBadGateway, "api_error", "%v", err)
		default:
			writeJSON(w, http.StatusOK, analysis)
		}
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(start).Round(time.Millisecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
