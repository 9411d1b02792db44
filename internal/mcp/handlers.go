package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vijay-prabhu/voiceprofile/internal/interest"
	"github.com/vijay-prabhu/voiceprofile/internal/pipeline"
	"github.com/vijay-prabhu/voiceprofile/internal/profile"
	"github.com/vijay-prabhu/voiceprofile/internal/transcribe"
)

func (s *Server) registerHandlers() {
	s.handlers["score_text"] = s.handleScoreText
	s.handlers["build_profile"] = s.handleBuildProfile
	s.handlers["analyze_text"] = s.handleAnalyzeText
	s.handlers["analyze_audio_file"] = s.handleAnalyzeAudioFile
}

type scoreTextParams struct {
	Text    string `json:"text"`
	Verbose bool   `json:"verbose"`
}

type scoreTextResult struct {
	Scores  interest.Scores    `json:"scores"`
	TopTags []string           `json:"top_tags"`
	Details *interest.Detailed `json:"details,omitempty"`
}

func (s *Server) handleScoreText(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p scoreTextParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	d := s.analyzer.Scorer().ScoreDetailed(p.Text)
	result := scoreTextResult{
		Scores:  interest.Ranked(d.Scores),
		TopTags: interest.TopTags(d.Scores),
	}
	if p.Verbose {
		result.Details = &d
	}
	return result, nil
}

type buildProfileParams struct {
	Scores interest.Scores `json:"scores"`
}

func (s *Server) handleBuildProfile(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p buildProfileParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	return s.analyzer.Builder().Build(p.Scores), nil
}

type analyzeTextParams struct {
	Text string `json:"text"`
}

func (s *Server) handleAnalyzeText(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p analyzeTextParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	return summarize(s.analyzer.AnalyzeText(p.Text)), nil
}

type analyzeAudioParams struct {
	Path      string `json:"path"`
	Language  string `json:"language"`
	ModelSize string `json:"model_size"`
}

func (s *Server) handleAnalyzeAudioFile(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p analyzeAudioParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if p.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	opts := s.options
	if p.Language != "" {
		opts.Language = p.Language
	}
	if p.ModelSize != "" {
		opts.ModelSize = p.ModelSize
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p.Path, err)
	}

	analysis, err := s.analyzer.AnalyzeAudio(ctx, transcribe.Audio{Filename: filepath.Base(p.Path), Data: data}, opts)
	if err != nil {
		return nil, err
	}
	return summarize(analysis), nil
}

type analysisResult struct {
	Transcript string               `json:"transcript"`
	Caption    string               `json:"caption,omitempty"`
	Scores     interest.Scores      `json:"scores"`
	TopTags    []string             `json:"top_tags"`
	Profile    profile.Display      `json:"profile"`
	Metadata   *transcribe.Metadata `json:"metadata,omitempty"`
}

func summarize(a *pipeline.Analysis) analysisResult {
	r := analysisResult{
		Transcript: a.Transcript,
		Scores:     interest.Ranked(a.Scores),
		TopTags:    a.TopTags,
		Profile:    a.Profile.Display(),
		Metadata:   a.Metadata,
	}
	if a.Metadata != nil {
		r.Caption = a.Metadata.Caption()
	}
	return r
}

// Resource handlers

func (s *Server) readResource(uri string) (string, error) {
	switch uri {
	case resourceCategories:
		return s.getResourceCategories(), nil
	case resourceKeywords:
		return s.getResourceKeywords(), nil
	default:
		return "", fmt.Errorf("unknown resource: %s", uri)
	}
}

func (s *Server) getResourceCategories() string {
	var b strings.Builder
	b.WriteString("Interest Categories\n===================\n\n")

	for _, c := range s.taxonomy.Categories() {
		fmt.Fprintf(&b, "%s\n", c)
		if axes, ok := s.taxonomy.AxesFor(c); ok {
			fmt.Fprintf(&b, "  social: %+.1f  activity: %+.1f\n", axes.Social, axes.Activity)
		}
		if suggestions, ok := s.taxonomy.SuggestionsFor(c); ok {
			for _, sug := range suggestions {
				fmt.Fprintf(&b, "  - %s\n", sug)
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (s *Server) getResourceKeywords() string {
	var b strings.Builder
	b.WriteString("Taxonomy Keywords\n=================\n\n")

	for _, c := range s.taxonomy.Categories() {
		kws := s.taxonomy.Keywords(c)
		terms := make([]string, len(kws))
		for i, kw := range kws {
			terms[i] = fmt.Sprintf("%s (%g)", kw.Term, kw.Weight)
		}
		fmt.Fprintf(&b, "%s (%d):\n  %s\n", c, len(kws), strings.Join(terms, ", "))
		if boosters := s.taxonomy.Boosters(c); len(boosters) > 0 {
			fmt.Fprintf(&b, "  boosters: %s\n", strings.Join(boosters, ", "))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Negations: %s\n", strings.Join(s.taxonomy.Negations(), ", "))
	return b.String()
}
