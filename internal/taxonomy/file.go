package taxonomy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// File is the on-disk representation of a taxonomy
type File struct {
	Negations  []string       `toml:"negations" yaml:"negations" json:"negations"`
	Categories []CategoryEntry `toml:"categories" yaml:"categories" json:"categories"`
}

// CategoryEntry describes one category in a taxonomy file.
// Axes and suggestions left out fall back to the built-in values for a
// category of the same name.
type CategoryEntry struct {
	Name        string    `toml:"name" yaml:"name" json:"name"`
	Keywords    []Keyword `toml:"keywords" yaml:"keywords" json:"keywords"`
	Boosters    []string  `toml:"boosters,omitempty" yaml:"boosters,omitempty" json:"boosters,omitempty"`
	Social      *float64  `toml:"social,omitempty" yaml:"social,omitempty" json:"social,omitempty"`
	Activity    *float64  `toml:"activity,omitempty" yaml:"activity,omitempty" json:"activity,omitempty"`
	Suggestions []string  `toml:"suggestions,omitempty" yaml:"suggestions,omitempty" json:"suggestions,omitempty"`
}

// Load reads a taxonomy file (.toml, .yaml or .yml). Sections the file
// leaves out are taken from the built-in taxonomy.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy: %w", err)
	}

	var f File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse taxonomy: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse taxonomy: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported taxonomy format %q (use .toml or .yaml)", ext)
	}

	t, err := fromFile(f, defaultFile())
	if err != nil {
		return nil, fmt.Errorf("invalid taxonomy %s: %w", path, err)
	}
	return t, nil
}

// Export returns the taxonomy in its file representation
func (t *Taxonomy) Export() File {
	f := File{Negations: t.Negations()}
	for _, c := range t.categories {
		entry := CategoryEntry{
			Name:     string(c),
			Keywords: t.Keywords(c),
			Boosters: t.Boosters(c),
		}
		if a, ok := t.axes[c]; ok {
			social, activity := a.Social, a.Activity
			entry.Social = &social
			entry.Activity = &activity
		}
		if s, ok := t.SuggestionsFor(c); ok {
			entry.Suggestions = s
		}
		f.Categories = append(f.Categories, entry)
	}
	return f
}
