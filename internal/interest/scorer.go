package interest

import (
	"math"
	"strings"

	"github.com/vijay-prabhu/voiceprofile/internal/taxonomy"
)

// ScorerConfig configures keyword scoring
type ScorerConfig struct {
	MinScoreThreshold float64 // Minimum percentage a category needs to be retained
	NegationWindow    int     // Tokens before a keyword checked for negation
	ContextWindow     int     // Tokens on each side of a keyword checked for boosters
	ContextBoost      float64 // Multiplier applied when a booster is in the context window
}

// DefaultScorerConfig returns the standard scoring parameters
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		MinScoreThreshold: 3.0,
		NegationWindow:    3,
		ContextWindow:     5,
		ContextBoost:      1.3,
	}
}

// renormalizeBelow is the surviving total under which retained percentages
// are rescaled to 100.
const renormalizeBelow = 99.0

// Confidence labels how well supported a retained category is
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// Match is one counted keyword occurrence
type Match struct {
	Keyword      string  `json:"keyword" yaml:"keyword"`
	Contribution float64 `json:"contribution" yaml:"contribution"`
}

// Detailed is a scoring result with the evidence behind it
type Detailed struct {
	Scores     Scores                           `json:"scores" yaml:"scores"`
	Matched    map[taxonomy.Category][]Match    `json:"matched_keywords" yaml:"matched_keywords"`
	Confidence map[taxonomy.Category]Confidence `json:"confidence" yaml:"confidence"`
}

// Scorer turns text into per-category percentages. It holds no per-call
// state and is safe for concurrent use.
type Scorer struct {
	index  *Index
	config ScorerConfig
}

// NewScorer creates a Scorer over a built index
func NewScorer(idx *Index, config ScorerConfig) *Scorer {
	return &Scorer{index: idx, config: config}
}

// Config returns the scorer's configuration
func (s *Scorer) Config() ScorerConfig {
	return s.config
}

// Score returns the retained category percentages for text. Text without
// any keyword yields an empty result.
func (s *Scorer) Score(text string) Scores {
	raw, _ := s.rawScores(text, false)
	return ApplyThreshold(Percentages(raw), s.config.MinScoreThreshold)
}

// ScoreDetailed scores text and also reports matched keywords and a
// confidence label per retained category
func (s *Scorer) ScoreDetailed(text string) Detailed {
	raw, matched := s.rawScores(text, true)
	scores := ApplyThreshold(Percentages(raw), s.config.MinScoreThreshold)

	confidence := make(map[taxonomy.Category]Confidence, len(scores))
	for _, e := range scores {
		confidence[e.Category] = confidenceFor(e.Score, len(matched[e.Category]))
	}

	return Detailed{
		Scores:     scores,
		Matched:    matched,
		Confidence: confidence,
	}
}

// RawScores returns the accumulated keyword weight per category, before any
// normalization
func (s *Scorer) RawScores(text string) Scores {
	raw, _ := s.rawScores(text, false)
	return raw
}

func (s *Scorer) rawScores(text string, withMatches bool) (Scores, map[taxonomy.Category][]Match) {
	normalized := Normalize(text)
	tokens := splitTokens(normalized)

	positions := make(map[string][]int, len(tokens))
	for i, tok := range tokens {
		positions[tok] = append(positions[tok], i)
	}

	var matched map[taxonomy.Category][]Match
	if withMatches {
		matched = make(map[taxonomy.Category][]Match)
	}

	raw := make(Scores, 0, len(s.index.categories))
	for _, cat := range s.index.categories {
		var score float64

		// Single-token keywords
		weights := s.index.tokens[cat]
		for _, kw := range s.index.tokenOrder[cat] {
			for _, i := range positions[kw] {
				contribution, ok := s.contribution(tokens, i, cat, weights[kw])
				if !ok {
					continue
				}
				score += contribution
				if withMatches {
					matched[cat] = append(matched[cat], Match{Keyword: kw, Contribution: contribution})
				}
			}
		}

		// Multi-word phrases
		for _, p := range s.index.phrases[cat] {
			for _, loc := range p.pattern.FindAllStringIndex(normalized, -1) {
				i := tokensBefore(normalized, loc[0])
				contribution, ok := s.contribution(tokens, i, cat, p.weight)
				if !ok {
					continue
				}
				score += contribution
				if withMatches {
					matched[cat] = append(matched[cat], Match{Keyword: normalized[loc[0]:loc[1]], Contribution: contribution})
				}
			}
		}

		raw = append(raw, Entry{Category: cat, Score: score})
	}

	return raw, matched
}

// contribution returns the weight a keyword occurrence at index i adds, or
// false when the occurrence is negated
func (s *Scorer) contribution(tokens []string, i int, cat taxonomy.Category, weight float64) (float64, bool) {
	if s.negated(tokens, i) {
		return 0, false
	}
	if s.boosted(tokens, i, cat) {
		weight *= s.config.ContextBoost
	}
	return weight, true
}

// negated reports whether a negation word appears in the window before index i
func (s *Scorer) negated(tokens []string, i int) bool {
	tax := s.index.taxonomy
	start := max(0, i-s.config.NegationWindow)
	for j := start; j < i && j < len(tokens); j++ {
		if tax.IsNegation(tokens[j]) {
			return true
		}
	}
	return false
}

// boosted reports whether a booster of cat appears around index i
func (s *Scorer) boosted(tokens []string, i int, cat taxonomy.Category) bool {
	tax := s.index.taxonomy
	if !tax.HasBoosters(cat) {
		return false
	}

	start := max(0, i-s.config.ContextWindow)
	end := min(len(tokens), i+s.config.ContextWindow+1)
	for j := start; j < end; j++ {
		if j == i {
			continue
		}
		if tax.IsBooster(cat, tokens[j]) {
			return true
		}
	}
	return false
}

// Percentages converts raw weights into percentages of the total, rounded to
// one decimal. A zero total yields zero for every category.
func Percentages(raw Scores) Scores {
	total := raw.Sum()
	out := make(Scores, 0, len(raw))
	for _, e := range raw {
		pct := 0.0
		if total != 0 {
			pct = round1(e.Score / total * 100)
		}
		out = append(out, Entry{Category: e.Category, Score: pct})
	}
	return out
}

// ApplyThreshold drops categories below threshold and, when the survivors no
// longer add up to about 100, rescales them so they do
func ApplyThreshold(pcts Scores, threshold float64) Scores {
	kept := make(Scores, 0, len(pcts))
	for _, e := range pcts {
		if e.Score >= threshold {
			kept = append(kept, e)
		}
	}

	surviving := kept.Sum()
	if surviving > 0 && surviving < renormalizeBelow {
		for i := range kept {
			kept[i].Score = round1(kept[i].Score / surviving * 100)
		}
	}

	return kept
}

func confidenceFor(pct float64, matches int) Confidence {
	switch {
	case pct > 40 && matches >= 5:
		return ConfidenceHigh
	case pct > 20 && matches >= 3:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func splitTokens(normalized string) []string {
	if normalized == "" {
		return nil
	}
	return strings.Fields(normalized)
}
