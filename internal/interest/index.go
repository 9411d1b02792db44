package interest

import (
	"regexp"
	"strings"

	"github.com/vijay-prabhu/voiceprofile/internal/taxonomy"
)

// phrase is a multi-word keyword matched against the normalized text
type phrase struct {
	term    string
	pattern *regexp.Regexp
	weight  float64
}

// Index is the compiled keyword lookup for a taxonomy. It is built once and
// only read afterwards, so a single Index can serve concurrent scorers.
type Index struct {
	taxonomy   *taxonomy.Taxonomy
	categories []taxonomy.Category
	tokens     map[taxonomy.Category]map[string]float64
	tokenOrder map[taxonomy.Category][]string
	phrases    map[taxonomy.Category][]phrase
}

// BuildIndex compiles the keywords of t. Single-word keywords go into a
// direct lookup; multi-word keywords become word-boundary phrase patterns.
func BuildIndex(t *taxonomy.Taxonomy) *Index {
	idx := &Index{
		taxonomy:   t,
		categories: t.Categories(),
		tokens:     make(map[taxonomy.Category]map[string]float64),
		tokenOrder: make(map[taxonomy.Category][]string),
		phrases:    make(map[taxonomy.Category][]phrase),
	}

	for _, cat := range idx.categories {
		tokens := make(map[string]float64)
		var order []string
		var phrases []phrase

		for _, kw := range t.Keywords(cat) {
			normalized := Normalize(kw.Term)
			if normalized == "" {
				continue
			}

			if strings.Contains(normalized, " ") {
				phrases = append(phrases, phrase{
					term:    normalized,
					pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(normalized) + `\b`),
					weight:  kw.Weight,
				})
				continue
			}

			if _, seen := tokens[normalized]; !seen {
				order = append(order, normalized)
			}
			tokens[normalized] = kw.Weight
		}

		idx.tokens[cat] = tokens
		idx.tokenOrder[cat] = order
		idx.phrases[cat] = phrases
	}

	return idx
}

// Taxonomy returns the taxonomy the index was built from
func (idx *Index) Taxonomy() *taxonomy.Taxonomy {
	return idx.taxonomy
}

// Categories returns the indexed categories in scoring order
func (idx *Index) Categories() []taxonomy.Category {
	return append([]taxonomy.Category(nil), idx.categories...)
}

// TokenWeight returns the weight of a single-word keyword in category c
func (idx *Index) TokenWeight(c taxonomy.Category, token string) (float64, bool) {
	w, ok := idx.tokens[c][token]
	return w, ok
}

// PhraseCount returns the number of phrase keywords of category c
func (idx *Index) PhraseCount(c taxonomy.Category) int {
	return len(idx.phrases[c])
}
