// Package taxonomy holds the interest categories, their weighted keywords and
// the per-category tables the profile builder reads. A Taxonomy is built once
// at startup and is read-only afterwards.
package taxonomy

import (
	"errors"
	"fmt"
	"sort"
)

// Category is one label of the interest taxonomy
type Category string

// Keyword is a term with its scoring weight
type Keyword struct {
	Term   string  `toml:"term" yaml:"term" json:"term"`
	Weight float64 `toml:"weight" yaml:"weight" json:"weight"`
}

// Axes places a category on the social and activity scales
type Axes struct {
	Social   float64 `json:"social"`
	Activity float64 `json:"activity"`
}

// SuggestionCount is the number of suggestion templates every category carries
const SuggestionCount = 3

// Taxonomy is the immutable set of categories and lookup tables
type Taxonomy struct {
	categories  []Category
	keywords    map[Category][]Keyword
	negations   map[string]struct{}
	boosters    map[Category]map[string]struct{}
	axes        map[Category]Axes
	suggestions map[Category][]string
}

// Default returns the built-in taxonomy
func Default() *Taxonomy {
	t, err := fromFile(defaultFile(), File{})
	if err != nil {
		// The built-in data is fixed; failing here is a programming error.
		panic(fmt.Sprintf("taxonomy: invalid built-in taxonomy: %v", err))
	}
	return t
}

// fromFile builds a Taxonomy from f, taking anything f leaves out from base
func fromFile(f File, base File) (*Taxonomy, error) {
	if len(f.Negations) == 0 {
		f.Negations = base.Negations
	}
	if len(f.Categories) == 0 {
		f.Categories = base.Categories
	}

	baseByName := make(map[string]CategoryEntry, len(base.Categories))
	for _, c := range base.Categories {
		baseByName[c.Name] = c
	}

	t := &Taxonomy{
		keywords:    make(map[Category][]Keyword),
		negations:   make(map[string]struct{}, len(f.Negations)),
		boosters:    make(map[Category]map[string]struct{}),
		axes:        make(map[Category]Axes),
		suggestions: make(map[Category][]string),
	}

	for _, n := range f.Negations {
		t.negations[n] = struct{}{}
	}

	for _, entry := range f.Categories {
		cat := Category(entry.Name)
		fallback, hasFallback := baseByName[entry.Name]

		t.categories = append(t.categories, cat)
		t.keywords[cat] = append([]Keyword(nil), entry.Keywords...)

		boosters := entry.Boosters
		if len(boosters) == 0 && hasFallback {
			boosters = fallback.Boosters
		}
		if len(boosters) > 0 {
			set := make(map[string]struct{}, len(boosters))
			for _, b := range boosters {
				set[b] = struct{}{}
			}
			t.boosters[cat] = set
		}

		social, activity := entry.Social, entry.Activity
		if hasFallback {
			if social == nil {
				social = fallback.Social
			}
			if activity == nil {
				activity = fallback.Activity
			}
		}
		if social != nil || activity != nil {
			var a Axes
			if social != nil {
				a.Social = *social
			}
			if activity != nil {
				a.Activity = *activity
			}
			t.axes[cat] = a
		}

		suggestions := entry.Suggestions
		if len(suggestions) == 0 && hasFallback {
			suggestions = fallback.Suggestions
		}
		if len(suggestions) > 0 {
			t.suggestions[cat] = append([]string(nil), suggestions...)
		}
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the structural rules of the taxonomy
func (t *Taxonomy) Validate() error {
	var errs []error

	if len(t.categories) == 0 {
		errs = append(errs, errors.New("taxonomy has no categories"))
	}

	seen := make(map[Category]bool, len(t.categories))
	for _, c := range t.categories {
		if c == "" {
			errs = append(errs, errors.New("category name is required"))
			continue
		}
		if seen[c] {
			errs = append(errs, fmt.Errorf("duplicate category %q", c))
		}
		seen[c] = true

		for _, kw := range t.keywords[c] {
			if kw.Weight <= 0 {
				errs = append(errs, fmt.Errorf("%s: keyword %q must have a positive weight, got %v", c, kw.Term, kw.Weight))
			}
		}

		if s, ok := t.suggestions[c]; ok && len(s) != SuggestionCount {
			errs = append(errs, fmt.Errorf("%s: expected %d suggestions, got %d", c, SuggestionCount, len(s)))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Drift lists categories that are scored but missing from the axis or
// suggestion tables. Such categories silently drop out of the profile.
func (t *Taxonomy) Drift() []string {
	var drift []string
	for _, c := range t.categories {
		if _, ok := t.axes[c]; !ok {
			drift = append(drift, fmt.Sprintf("%s has no social/activity axes", c))
		}
		if _, ok := t.suggestions[c]; !ok {
			drift = append(drift, fmt.Sprintf("%s has no suggestion templates", c))
		}
	}
	return drift
}

// Categories returns the categories in scoring order
func (t *Taxonomy) Categories() []Category {
	return append([]Category(nil), t.categories...)
}

// Keywords returns the keywords of a category in declaration order
func (t *Taxonomy) Keywords(c Category) []Keyword {
	return append([]Keyword(nil), t.keywords[c]...)
}

// IsNegation reports whether token is a negation word
func (t *Taxonomy) IsNegation(token string) bool {
	_, ok := t.negations[token]
	return ok
}

// Negations returns the negation words, sorted
func (t *Taxonomy) Negations() []string {
	return sortedKeys(t.negations)
}

// IsBooster reports whether token boosts keywords of category c
func (t *Taxonomy) IsBooster(c Category, token string) bool {
	_, ok := t.boosters[c][token]
	return ok
}

// HasBoosters reports whether category c has any context boosters
func (t *Taxonomy) HasBoosters(c Category) bool {
	return len(t.boosters[c]) > 0
}

// Boosters returns the context boosters of a category, sorted
func (t *Taxonomy) Boosters(c Category) []string {
	return sortedKeys(t.boosters[c])
}

// AxesFor returns the social/activity coefficients of a category
func (t *Taxonomy) AxesFor(c Category) (Axes, bool) {
	a, ok := t.axes[c]
	return a, ok
}

// SuggestionsFor returns the suggestion templates of a category
func (t *Taxonomy) SuggestionsFor(c Category) ([]string, bool) {
	s, ok := t.suggestions[c]
	if !ok {
		return nil, false
	}
	return append([]string(nil), s...), true
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
