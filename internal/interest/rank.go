package interest

import (
	"sort"

	"github.com/vijay-prabhu/voiceprofile/internal/taxonomy"
)

// NoMatchesMessage is the single top tag shown when nothing was retained
const NoMatchesMessage = "No clear matches. Add more keywords to your taxonomy."

// Ranked returns all entries sorted by score, highest first. Equal scores
// keep their original order.
func Ranked(scores Scores) Scores {
	out := append(Scores(nil), scores...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// TopInterests returns up to n categories with a positive score, highest first
func TopInterests(scores Scores, n int) []taxonomy.Category {
	if n <= 0 {
		return nil
	}

	var top []taxonomy.Category
	for _, e := range Ranked(scores) {
		if e.Score <= 0 {
			break
		}
		top = append(top, e.Category)
		if len(top) == n {
			break
		}
	}
	return top
}

// TopTags returns the names of the top three interests, or NoMatchesMessage
// when there are none
func TopTags(scores Scores) []string {
	top := TopInterests(scores, 3)
	if len(top) == 0 {
		return []string{NoMatchesMessage}
	}

	tags := make([]string, len(top))
	for i, c := range top {
		tags[i] = string(c)
	}
	return tags
}
