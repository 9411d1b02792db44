// Package profile derives a personality profile from interest scores.
package profile

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/vijay-prabhu/voiceprofile/internal/interest"
	"github.com/vijay-prabhu/voiceprofile/internal/taxonomy"
)

const (
	coreCount      = 3
	secondaryCount = 3

	// FallbackSuggestion pads the suggestion list to three entries
	FallbackSuggestion = "Explore a new activity that combines your interests"

	// FallbackReasoning is the reasoning given when no interest was detected
	FallbackReasoning = "Not enough signal in your transcribed content to identify clear interests yet. Try recording a longer sample that talks about what you enjoy."
)

// Profile is the summary built from a set of interest scores
type Profile struct {
	CoreInterests      []taxonomy.Category `json:"core_interests" yaml:"core_interests"`
	SecondaryInterests []taxonomy.Category `json:"secondary_interests" yaml:"secondary_interests"`
	SocialStyle        SocialStyle         `json:"social_style" yaml:"social_style"`
	ActivityPreference ActivityPreference  `json:"activity_preference" yaml:"activity_preference"`
	SocialConfidence   float64             `json:"social_confidence" yaml:"social_confidence"`
	ActivityConfidence float64             `json:"activity_confidence" yaml:"activity_confidence"`
	Reasoning          string              `json:"reasoning" yaml:"reasoning"`
	Suggestions        []string            `json:"suggestions" yaml:"suggestions"`
}

// Display holds the profile fields formatted for presentation
type Display struct {
	CoreInterests      string   `json:"Core Interests" yaml:"Core Interests"`
	SecondaryInterests string   `json:"Secondary Interests" yaml:"Secondary Interests"`
	SocialStyle        string   `json:"Social Style" yaml:"Social Style"`
	ActivityPreference string   `json:"Activity Preference" yaml:"Activity Preference"`
	Reasoning          string   `json:"Reasoning" yaml:"Reasoning"`
	Suggestions        []string `json:"Suggestions" yaml:"Suggestions"`
}

// Display returns the profile in its presentation form
func (p Profile) Display() Display {
	secondary := "None"
	if len(p.SecondaryInterests) > 0 {
		secondary = joinCategories(p.SecondaryInterests)
	}

	return Display{
		CoreInterests:      joinCategories(p.CoreInterests),
		SecondaryInterests: secondary,
		SocialStyle:        string(p.SocialStyle),
		ActivityPreference: string(p.ActivityPreference),
		Reasoning:          p.Reasoning,
		Suggestions:        append([]string(nil), p.Suggestions...),
	}
}

// Builder builds profiles against one taxonomy's axis and suggestion tables.
// It keeps no state between calls.
type Builder struct {
	taxonomy *taxonomy.Taxonomy
	logger   *slog.Logger
}

// NewBuilder creates a Builder for t
func NewBuilder(t *taxonomy.Taxonomy) *Builder {
	return &Builder{taxonomy: t, logger: slog.Default()}
}

// WithLogger returns a copy of b that reports taxonomy drift to logger
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	return &Builder{taxonomy: b.taxonomy, logger: logger}
}

// Build derives a profile from percentage scores. Empty scores give a
// Balanced, small group profile with fallback text.
func (b *Builder) Build(scores interest.Scores) Profile {
	ranked := interest.Ranked(scores)

	var core, secondary []taxonomy.Category
	for i, e := range ranked {
		switch {
		case i < coreCount:
			core = append(core, e.Category)
		case i < coreCount+secondaryCount:
			secondary = append(secondary, e.Category)
		}
	}

	social, activity := b.axes(scores)
	p := Profile{
		CoreInterests:      core,
		SecondaryInterests: secondary,
		SocialStyle:        classifySocial(social),
		ActivityPreference: classifyActivity(activity),
		SocialConfidence:   axisConfidence(social),
		ActivityConfidence: axisConfidence(activity),
	}

	if len(ranked) == 0 {
		p.Reasoning = FallbackReasoning
	} else {
		p.Reasoning = reasoning(core, ranked[0].Score, p.SocialStyle, p.ActivityPreference)
	}
	p.Suggestions = b.suggestions(core, p.SocialStyle)

	return p
}

// axes returns the score-weighted averages of the social and activity
// coefficients. Categories without coefficients are skipped.
func (b *Builder) axes(scores interest.Scores) (social, activity float64) {
	var socialSum, activitySum, weight float64
	for _, e := range scores {
		a, ok := b.taxonomy.AxesFor(e.Category)
		if !ok {
			b.logger.Warn("category has no social/activity axes", "category", e.Category)
			continue
		}
		w := e.Score / 100
		socialSum += w * a.Social
		activitySum += w * a.Activity
		weight += w
	}

	if weight == 0 {
		return 0, 0
	}
	return socialSum / weight, activitySum / weight
}

func (b *Builder) suggestions(core []taxonomy.Category, style SocialStyle) []string {
	out := make([]string, 0, taxonomy.SuggestionCount)
	for _, c := range core {
		templates, ok := b.taxonomy.SuggestionsFor(c)
		if !ok {
			b.logger.Warn("category has no suggestion templates", "category", c)
			continue
		}
		if s := style.pick(templates); s != "" {
			out = append(out, s)
		}
	}

	for len(out) < taxonomy.SuggestionCount {
		out = append(out, FallbackSuggestion)
	}
	return out
}

func reasoning(core []taxonomy.Category, top float64, social SocialStyle, activity ActivityPreference) string {
	return fmt.Sprintf(
		"Based on your transcribed content, your profile centers on %s. "+
			"With '%s' as your strongest interest (%.1f%%), your social style suggests a preference for %s engagement. "+
			"You appear to thrive with %s, allowing for both focused individual pursuits and meaningful interactions when you choose them.",
		joinCategories(core), core[0], top, strings.ToLower(string(social)), strings.ToLower(string(activity)),
	)
}

func axisConfidence(x float64) float64 {
	return math.Min(math.Abs(x), 1)
}

func joinCategories(cs []taxonomy.Category) string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
