package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vijay-prabhu/voiceprofile/internal/database"
	"github.com/vijay-prabhu/voiceprofile/internal/interest"
	"github.com/vijay-prabhu/voiceprofile/internal/pipeline"
	"github.com/vijay-prabhu/voiceprofile/internal/profile"
	"github.com/vijay-prabhu/voiceprofile/internal/taxonomy"
)

func testAnalyzer() *pipeline.Analyzer {
	tax := taxonomy.Default()
	scorer := interest.NewScorer(interest.BuildIndex(tax), interest.DefaultScorerConfig())
	return pipeline.New(scorer, profile.NewBuilder(tax))
}

func TestTableTo_Analysis(t *testing.T) {
	a := testAnalyzer().AnalyzeText("I love coding in python and cooking dinner with friends")

	var buf bytes.Buffer
	if err := TableTo(&buf, a); err != nil {
		t.Fatalf("TableTo() error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"Transcript", "Top Tags", "Tech/Engineering", "Interest Scores", "Profile", "Suggestions", "1. "} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("expected no ANSI styling when not writing to a terminal")
	}
}

func TestTableTo_Scores(t *testing.T) {
	var buf bytes.Buffer
	scores := interest.Scores{{taxonomy.Food, 25}, {taxonomy.TechEngineering, 75}}
	if err := TableTo(&buf, scores); err != nil {
		t.Fatalf("TableTo() error: %v", err)
	}

	out := buf.String()
	tech := strings.Index(out, "Tech/Engineering")
	food := strings.Index(out, "Food")
	if tech < 0 || food < 0 || tech > food {
		t.Errorf("expected Tech/Engineering ranked above Food:\n%s", out)
	}
	if !strings.Contains(out, "75.0%") {
		t.Errorf("expected formatted percentage:\n%s", out)
	}

	buf.Reset()
	if err := TableTo(&buf, interest.Scores{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), interest.NoMatchesMessage) {
		t.Errorf("empty scores output = %q", buf.String())
	}
}

func TestTableTo_Detailed(t *testing.T) {
	scorer := testAnalyzer().Scorer()
	d := scorer.ScoreDetailed("coding coding python")

	var buf bytes.Buffer
	if err := TableTo(&buf, d); err != nil {
		t.Fatalf("TableTo() error: %v", err)
	}
	if !strings.Contains(buf.String(), "coding x2, python") {
		t.Errorf("expected matched keyword summary:\n%s", buf.String())
	}
}

func TestTableTo_Taxonomy(t *testing.T) {
	var buf bytes.Buffer
	if err := TableTo(&buf, taxonomy.Default()); err != nil {
		t.Fatalf("TableTo() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Entertainment/Gaming", "Negations:", "don't"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestTableTo_CacheStats(t *testing.T) {
	var buf bytes.Buffer
	if err := TableTo(&buf, &database.CacheStats{Entries: 3, DistinctAudio: 2, TotalDuration: 3725}); err != nil {
		t.Fatalf("TableTo() error: %v", err)
	}
	if !strings.Contains(buf.String(), "1:02:05") {
		t.Errorf("expected formatted duration:\n%s", buf.String())
	}
}

func TestTableTo_Unsupported(t *testing.T) {
	if err := TableTo(&bytes.Buffer{}, 42); err == nil {
		t.Error("expected error for unsupported type")
	}
}

func TestOutputTo_Formats(t *testing.T) {
	a := testAnalyzer().AnalyzeText("pizza for lunch")

	var buf bytes.Buffer
	if err := OutputTo(&buf, "json", a); err != nil {
		t.Fatalf("OutputTo(json) error: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := decoded["top_tags"]; !ok {
		t.Errorf("JSON missing top_tags: %s", buf.String())
	}

	buf.Reset()
	if err := OutputTo(&buf, "yaml", a.Profile); err != nil {
		t.Fatalf("OutputTo(yaml) error: %v", err)
	}
	if !strings.Contains(buf.String(), "social_style: Extroverted") {
		t.Errorf("YAML output = %s", buf.String())
	}

	if err := OutputTo(&buf, "xml", a); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestFormatMatches(t *testing.T) {
	got := formatMatches([]interest.Match{{Keyword: "gym"}, {Keyword: "gym"}, {Keyword: "cardio"}})
	if got != "gym x2, cardio" {
		t.Errorf("formatMatches() = %q", got)
	}
}

func TestIsFormat(t *testing.T) {
	for _, f := range Formats {
		if !IsFormat(f) {
			t.Errorf("IsFormat(%q) = false, want true", f)
		}
	}
	if IsFormat("csv") {
		t.Error("IsFormat(csv) = true, want false")
	}
}
