package interest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/vijay-prabhu/voiceprofile/internal/taxonomy"
)

// Entry is the score of one category
type Entry struct {
	Category taxonomy.Category `json:"category" yaml:"category"`
	Score    float64           `json:"score" yaml:"score"`
}

// Scores maps categories to scores and keeps insertion order, which decides
// ties when ranking. It holds either raw weights or percentages.
type Scores []Entry

// Get returns the score of category c
func (s Scores) Get(c taxonomy.Category) (float64, bool) {
	for _, e := range s {
		if e.Category == c {
			return e.Score, true
		}
	}
	return 0, false
}

// Has reports whether category c is present
func (s Scores) Has(c taxonomy.Category) bool {
	_, ok := s.Get(c)
	return ok
}

// Sum returns the total of all scores
func (s Scores) Sum() float64 {
	var total float64
	for _, e := range s {
		total += e.Score
	}
	return total
}

// Map returns the scores as a plain map
func (s Scores) Map() map[taxonomy.Category]float64 {
	m := make(map[taxonomy.Category]float64, len(s))
	for _, e := range s {
		m[e.Category] = e.Score
	}
	return m
}

// MarshalJSON encodes the scores as a JSON object in insertion order
func (s Scores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(e.Category))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Score)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the key order of the document
func (s *Scores) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("scores must be a JSON object, got %v", tok)
	}

	var out Scores
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected key %v", tok)
		}

		var v float64
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("score for %q: %w", key, err)
		}
		out = append(out, Entry{Category: taxonomy.Category(key), Score: v})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = out
	return nil
}

// MarshalYAML encodes the scores as a YAML mapping in insertion order
func (s Scores) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range s {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: string(e.Category)},
			&yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(e.Score, 'f', -1, 64)},
		)
	}
	return node, nil
}

// UnmarshalYAML decodes a YAML mapping, keeping the key order of the document
func (s *Scores) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("scores must be a YAML mapping")
	}

	out := make(Scores, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var v float64
		if err := node.Content[i+1].Decode(&v); err != nil {
			return fmt.Errorf("score for %q: %w", node.Content[i].Value, err)
		}
		out = append(out, Entry{Category: taxonomy.Category(node.Content[i].Value), Score: v})
	}

	*s = out
	return nil
}
