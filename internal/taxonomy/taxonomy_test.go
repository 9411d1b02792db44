package taxonomy

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	tax := Default()

	want := []Category{
		TechEngineering, AcademicsSchool, CareerJobs, SportsFitness,
		Food, SocialPeople, EntertainmentGaming,
	}
	got := tax.Categories()
	if len(got) != len(want) {
		t.Fatalf("Categories() returned %d categories, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if drift := tax.Drift(); len(drift) != 0 {
		t.Errorf("expected no drift in built-in taxonomy, got %v", drift)
	}
}

func TestDefault_Lookups(t *testing.T) {
	tax := Default()

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"don't is a negation", tax.IsNegation("don't"), true},
		{"hardly is a negation", tax.IsNegation("hardly"), true},
		{"play is not a negation", tax.IsNegation("play"), false},
		{"learn boosts tech", tax.IsBooster(TechEngineering, "learn"), true},
		{"apply boosts career", tax.IsBooster(CareerJobs, "apply"), true},
		{"learn does not boost food", tax.IsBooster(Food, "learn"), false},
		{"food has no boosters", tax.HasBoosters(Food), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	axes, ok := tax.AxesFor(SocialPeople)
	if !ok || axes.Social != 2 || axes.Activity != 1 {
		t.Errorf("AxesFor(Social/People) = %+v, %v; want {2 1}, true", axes, ok)
	}

	s, ok := tax.SuggestionsFor(Food)
	if !ok || len(s) != SuggestionCount {
		t.Fatalf("SuggestionsFor(Food) = %v, %v", s, ok)
	}
	s[0] = "mutated"
	again, _ := tax.SuggestionsFor(Food)
	if again[0] == "mutated" {
		t.Error("SuggestionsFor must return a copy")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		file    File
		wantErr bool
	}{
		{
			name: "valid",
			file: File{Categories: []CategoryEntry{
				{Name: "Music", Keywords: []Keyword{{"guitar", 1.0}}},
			}},
		},
		{
			name: "duplicate category",
			file: File{Categories: []CategoryEntry{
				{Name: "Music", Keywords: []Keyword{{"guitar", 1.0}}},
				{Name: "Music", Keywords: []Keyword{{"piano", 1.0}}},
			}},
			wantErr: true,
		},
		{
			name: "non-positive weight",
			file: File{Categories: []CategoryEntry{
				{Name: "Music", Keywords: []Keyword{{"guitar", 0}}},
			}},
			wantErr: true,
		},
		{
			name: "wrong suggestion count",
			file: File{Categories: []CategoryEntry{
				{Name: "Music", Keywords: []Keyword{{"guitar", 1}}, Suggestions: []string{"one"}},
			}},
			wantErr: true,
		},
		{
			name: "empty name",
			file: File{Categories: []CategoryEntry{
				{Name: "", Keywords: []Keyword{{"guitar", 1}}},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fromFile(tt.file, File{})
			if (err != nil) != tt.wantErr {
				t.Errorf("fromFile() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDrift(t *testing.T) {
	tax, err := fromFile(File{Categories: []CategoryEntry{
		{Name: "Music", Keywords: []Keyword{{"guitar", 1.0}}},
	}}, defaultFile())
	if err != nil {
		t.Fatalf("fromFile() error: %v", err)
	}

	drift := tax.Drift()
	if len(drift) != 2 {
		t.Errorf("expected 2 drift entries for a category without axes or suggestions, got %v", drift)
	}
}

func TestLoad_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taxonomy.toml")

	content := `
[[categories]]
name = "Food"
keywords = [{ term = "pasta", weight = 2.0 }]

[[categories]]
name = "Music"
keywords = [{ term = "guitar", weight = 1.5 }, { term = "live music", weight = 2.0 }]
boosters = ["play"]
social = 0.5
activity = 0.5
suggestions = ["Practice alone", "Jam with a friend", "Join a band"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	tax, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	cats := tax.Categories()
	if len(cats) != 2 || cats[0] != Food || cats[1] != "Music" {
		t.Fatalf("Categories() = %v", cats)
	}

	// Food keeps its built-in axes and suggestions
	if a, ok := tax.AxesFor(Food); !ok || a.Social != 1 {
		t.Errorf("AxesFor(Food) = %+v, %v; want built-in values", a, ok)
	}
	if !tax.IsBooster("Music", "play") {
		t.Error("expected play to boost Music")
	}
	// Negations fall back to the built-in set
	if !tax.IsNegation("never") {
		t.Error("expected built-in negations when the file has none")
	}
	if kws := tax.Keywords("Music"); len(kws) != 2 || kws[1].Term != "live music" {
		t.Errorf("Keywords(Music) = %v", kws)
	}
}

func TestLoad_YAMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taxonomy.yaml")

	content := `
negations: ["not", "never"]
categories:
  - name: Gardening
    keywords:
      - term: tomatoes
        weight: 1.5
    social: -0.5
    activity: -1
    suggestions: ["Plant herbs", "Visit a garden", "Join a community garden"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	tax, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if tax.IsNegation("hardly") {
		t.Error("file negations must replace the built-in set")
	}

	exported := tax.Export()
	if len(exported.Categories) != 1 {
		t.Fatalf("Export() has %d categories, want 1", len(exported.Categories))
	}
	entry := exported.Categories[0]
	if entry.Social == nil || *entry.Social != -0.5 || entry.Activity == nil || *entry.Activity != -1 {
		t.Errorf("exported axes = %v/%v", entry.Social, entry.Activity)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "taxonomy.json")
	if err := os.WriteFile(bad, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
