package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vijay-prabhu/voiceprofile/internal/interest"
	"github.com/vijay-prabhu/voiceprofile/internal/pipeline"
	"github.com/vijay-prabhu/voiceprofile/internal/profile"
	"github.com/vijay-prabhu/voiceprofile/internal/taxonomy"
	"github.com/vijay-prabhu/voiceprofile/internal/transcribe"
)

// echoProvider returns the audio bytes as the transcript
type echoProvider struct{}

func (echoProvider) Name() string                     { return "echo" }
func (echoProvider) Health(ctx context.Context) error { return nil }

func (echoProvider) Transcribe(ctx context.Context, audio transcribe.Audio, opts transcribe.Options) (*transcribe.Transcript, error) {
	return &transcribe.Transcript{Text: string(audio.Data), Metadata: transcribe.Metadata{Language: opts.Language}}, nil
}

func newTestServer() *Server {
	tax := taxonomy.Default()
	scorer := interest.NewScorer(interest.BuildIndex(tax), interest.DefaultScorerConfig())
	analyzer := pipeline.New(scorer, profile.NewBuilder(tax), pipeline.WithProvider(echoProvider{}))
	return New(analyzer, tax, transcribe.DefaultOptions(), "test")
}

// roundTrip sends each request line and returns the decoded responses
func roundTrip(t *testing.T, s *Server, lines ...string) []jsonRPCResponse {
	t.Helper()
	var out strings.Builder
	if err := s.Serve(context.Background(), strings.NewReader(strings.Join(lines, "\n")+"\n"), &out); err != nil {
		t.Fatalf("Serve() error: %v", err)
	}

	var responses []jsonRPCResponse
	scanner := bufio.NewScanner(strings.NewReader(out.String()))
	scanner.Buffer(make([]byte, 1<<20), 1<<20)
	for scanner.Scan() {
		var resp jsonRPCResponse
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response %q: %v", scanner.Text(), err)
		}
		responses = append(responses, resp)
	}
	return responses
}

// toolText extracts the text content of a tools/call result
func toolText(t *testing.T, resp jsonRPCResponse) (string, bool) {
	t.Helper()
	raw, err := json.Marshal(resp.Result)
	if err != nil {
		t.Fatal(err)
	}
	var result callToolResult
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatal(err)
	}
	if len(result.Content) != 1 {
		t.Fatalf("content = %v, want one item", result.Content)
	}
	return result.Content[0].Text, result.IsError
}

func callTool(name, args string) string {
	return `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"` + name + `","arguments":` + args + `}}`
}

func TestProtocol(t *testing.T) {
	s := newTestServer()

	responses := roundTrip(t, s,
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
		`{"jsonrpc":"2.0","id":3,"method":"resources/list"}`,
		`{"jsonrpc":"2.0","id":4,"method":"bogus"}`,
		`not json`,
	)

	if len(responses) != 5 {
		t.Fatalf("got %d responses, want 5 (notifications get none)", len(responses))
	}
	if responses[0].Error != nil {
		t.Errorf("initialize error: %v", responses[0].Error)
	}
	if responses[3].Error == nil || responses[3].Error.Code != codeMethodNotFound {
		t.Errorf("bogus method error = %v, want code %d", responses[3].Error, codeMethodNotFound)
	}
	if responses[4].Error == nil || responses[4].Error.Code != codeParseError {
		t.Errorf("parse error = %v, want code %d", responses[4].Error, codeParseError)
	}

	raw, _ := json.Marshal(responses[1].Result)
	var tools toolsListResult
	if err := json.Unmarshal(raw, &tools); err != nil {
		t.Fatal(err)
	}
	if len(tools.Tools) != len(ToolDefinitions) {
		t.Errorf("tools/list returned %d tools, want %d", len(tools.Tools), len(ToolDefinitions))
	}
	for _, tool := range ToolDefinitions {
		if _, ok := s.handlers[tool.Name]; !ok {
			t.Errorf("tool %q has no handler", tool.Name)
		}
	}
}

func TestScoreText(t *testing.T) {
	s := newTestServer()

	responses := roundTrip(t, s,
		callTool("score_text", `{"text":"I spent the weekend coding in python"}`),
		callTool("score_text", `{"text":"nothing here","verbose":true}`),
	)

	text, isErr := toolText(t, responses[0])
	if isErr {
		t.Fatalf("score_text failed: %s", text)
	}
	var result scoreTextResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		t.Fatal(err)
	}
	if len(result.TopTags) == 0 || result.TopTags[0] != string(taxonomy.TechEngineering) {
		t.Errorf("TopTags = %v, want Tech/Engineering first", result.TopTags)
	}
	if result.Details != nil {
		t.Error("expected no details without verbose")
	}

	text, _ = toolText(t, responses[1])
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		t.Fatal(err)
	}
	if len(result.TopTags) != 1 || result.TopTags[0] != interest.NoMatchesMessage {
		t.Errorf("TopTags = %v, want the no-match message", result.TopTags)
	}
	if result.Details == nil {
		t.Error("expected details with verbose")
	}
}

func TestBuildProfile(t *testing.T) {
	s := newTestServer()

	responses := roundTrip(t, s, callTool("build_profile", `{"scores":{"Social/People":80,"Food":20}}`))

	text, isErr := toolText(t, responses[0])
	if isErr {
		t.Fatalf("build_profile failed: %s", text)
	}
	var p profile.Profile
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		t.Fatal(err)
	}
	if p.SocialStyle != profile.Extroverted {
		t.Errorf("SocialStyle = %q, want %q", p.SocialStyle, profile.Extroverted)
	}
}

func TestAnalyzeAudioFile(t *testing.T) {
	s := newTestServer()
	dir := t.TempDir()
	path := filepath.Join(dir, "memo.wav")
	if err := os.WriteFile(path, []byte("pizza and sushi for dinner"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		args    string
		wantErr bool
	}{
		{"valid file", `{"path":"` + path + `","language":"en"}`, false},
		{"missing path", `{}`, true},
		{"missing file", `{"path":"` + filepath.Join(dir, "nope.wav") + `"}`, true},
		{"bad model size", `{"path":"` + path + `","model_size":"huge"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			responses := roundTrip(t, s, callTool("analyze_audio_file", tt.args))
			text, isErr := toolText(t, responses[0])
			if isErr != tt.wantErr {
				t.Fatalf("isError = %v, want %v (%s)", isErr, tt.wantErr, text)
			}
			if tt.wantErr {
				return
			}

			var result analysisResult
			if err := json.Unmarshal([]byte(text), &result); err != nil {
				t.Fatal(err)
			}
			if len(result.TopTags) == 0 || result.TopTags[0] != string(taxonomy.Food) {
				t.Errorf("TopTags = %v, want Food first", result.TopTags)
			}
			if !strings.HasPrefix(result.Caption, "Language: en") {
				t.Errorf("Caption = %q", result.Caption)
			}
		})
	}
}

func TestResources(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		uri      string
		contains string
		wantErr  bool
	}{
		{resourceCategories, "Tech/Engineering", false},
		{resourceKeywords, "Negations:", false},
		{"taxonomy://missing", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			text, err := s.readResource(tt.uri)
			if (err != nil) != tt.wantErr {
				t.Fatalf("readResource() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(text, tt.contains) {
				t.Errorf("resource %s does not contain %q", tt.uri, tt.contains)
			}
		})
	}
}
