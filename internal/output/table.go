package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/vijay-prabhu/voiceprofile/internal/database"
	"github.com/vijay-prabhu/voiceprofile/internal/interest"
	"github.com/vijay-prabhu/voiceprofile/internal/pipeline"
	"github.com/vijay-prabhu/voiceprofile/internal/profile"
	"github.com/vijay-prabhu/voiceprofile/internal/taxonomy"
)

// Table writes data as a formatted table to stdout
func Table(data interface{}) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case *pipeline.Analysis:
		return analysisDetail(w, v)
	case []pipeline.FileResult:
		return fileResults(w, v)
	case interest.Scores:
		return scoresTable(w, v)
	case interest.Detailed:
		return detailedTable(w, v)
	case profile.Profile:
		return profileDetail(w, v)
	case *taxonomy.Taxonomy:
		return taxonomyTable(w, v)
	case *database.CacheStats:
		return cacheStats(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func analysisDetail(w io.Writer, a *pipeline.Analysis) error {
	s := newStyler(w)

	if a.Source != "" {
		fmt.Fprintf(w, "%s %s\n", s.label("Source:"), a.Source)
	}
	if a.Metadata != nil {
		caption := a.Metadata.Caption()
		if a.Cached {
			caption += " (cached)"
		}
		fmt.Fprintln(w, s.note(caption))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, s.heading("Transcript"))
	if strings.TrimSpace(a.Transcript) == "" {
		fmt.Fprintln(w, "(empty)")
	} else {
		fmt.Fprintln(w, a.Transcript)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, s.heading("Top Tags"))
	tags := make([]string, len(a.TopTags))
	for i, t := range a.TopTags {
		tags[i] = s.tag(t)
	}
	fmt.Fprintln(w, strings.Join(tags, "  "))

	fmt.Fprintln(w)
	fmt.Fprintln(w, s.heading("Interest Scores"))
	if err := rankedTable(w, a.Ranked, a.Confidence); err != nil {
		return err
	}

	fmt.Fprintln(w)
	return profileDetail(w, a.Profile)
}

func fileResults(w io.Writer, results []pipeline.FileResult) error {
	if len(results) == 0 {
		fmt.Fprintln(w, "No files analyzed.")
		return nil
	}

	s := newStyler(w)
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w, strings.Repeat("─", 60))
		}
		if r.Error != nil {
			fmt.Fprintf(w, "%s %s\n", s.label("Source:"), r.Path)
			fmt.Fprintf(w, "Error: %v\n", r.Error)
			continue
		}
		if err := analysisDetail(w, r.Analysis); err != nil {
			return err
		}
	}
	return nil
}

func scoresTable(w io.Writer, scores interest.Scores) error {
	if len(scores) == 0 {
		fmt.Fprintln(w, interest.NoMatchesMessage)
		return nil
	}
	return rankedTable(w, interest.Ranked(scores), nil)
}

func detailedTable(w io.Writer, d interest.Detailed) error {
	if len(d.Scores) == 0 {
		fmt.Fprintln(w, interest.NoMatchesMessage)
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Category", "Percentage", "Confidence", "Matched Keywords")
	for _, e := range interest.Ranked(d.Scores) {
		err := table.Append([]string{
			string(e.Category),
			formatPercent(e.Score),
			string(d.Confidence[e.Category]),
			formatMatches(d.Matched[e.Category]),
		})
		if err != nil {
			return err
		}
	}
	return table.Render()
}

func rankedTable(w io.Writer, ranked []interest.Entry, confidence map[taxonomy.Category]interest.Confidence) error {
	if len(ranked) == 0 {
		fmt.Fprintln(w, interest.NoMatchesMessage)
		return nil
	}

	table := tablewriter.NewWriter(w)
	if confidence != nil {
		table.Header("Category", "Percentage", "Confidence")
	} else {
		table.Header("Category", "Percentage")
	}

	for _, e := range ranked {
		row := []string{string(e.Category), formatPercent(e.Score)}
		if confidence != nil {
			row = append(row, string(confidence[e.Category]))
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func profileDetail(w io.Writer, p profile.Profile) error {
	s := newStyler(w)
	d := p.Display()

	fmt.Fprintln(w, s.heading("Profile"))
	fmt.Fprintf(w, "%s %s\n", s.label("Core Interests:     "), orNone(d.CoreInterests))
	fmt.Fprintf(w, "%s %s\n", s.label("Secondary Interests:"), d.SecondaryInterests)
	fmt.Fprintf(w, "%s %s\n", s.label("Social Style:       "), d.SocialStyle)
	fmt.Fprintf(w, "%s %s\n", s.label("Activity Preference:"), d.ActivityPreference)
	fmt.Fprintln(w)
	fmt.Fprintln(w, s.heading("Reasoning"))
	fmt.Fprintln(w, d.Reasoning)
	fmt.Fprintln(w)
	fmt.Fprintln(w, s.heading("Suggestions"))
	for i, sug := range d.Suggestions {
		fmt.Fprintf(w, "  %d. %s\n", i+1, sug)
	}

	return nil
}

func taxonomyTable(w io.Writer, t *taxonomy.Taxonomy) error {
	table := tablewriter.NewWriter(w)
	table.Header("Category", "Keywords", "Boosters", "Social", "Activity")

	for _, c := range t.Categories() {
		social, activity := "-", "-"
		if a, ok := t.AxesFor(c); ok {
			social = fmt.Sprintf("%+.1f", a.Social)
			activity = fmt.Sprintf("%+.1f", a.Activity)
		}
		err := table.Append([]string{
			string(c),
			fmt.Sprintf("%d", len(t.Keywords(c))),
			strings.Join(t.Boosters(c), ", "),
			social,
			activity,
		})
		if err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nNegations: %s\n", strings.Join(t.Negations(), ", "))
	for _, d := range t.Drift() {
		fmt.Fprintf(w, "Warning: %s\n", d)
	}
	return nil
}

func cacheStats(w io.Writer, s *database.CacheStats) error {
	fmt.Fprintf(w, "Cached transcripts:  %d\n", s.Entries)
	fmt.Fprintf(w, "Distinct recordings: %d\n", s.DistinctAudio)
	fmt.Fprintf(w, "Audio duration:      %s\n", formatSeconds(s.TotalDuration))
	fmt.Fprintf(w, "Transcript text:     %d chars\n", s.TotalTextLength)
	if s.Oldest != nil {
		fmt.Fprintf(w, "Oldest entry:        %s\n", s.Oldest.Format("Jan 02, 2006 15:04"))
	}
	if s.Newest != nil {
		fmt.Fprintf(w, "Newest entry:        %s\n", s.Newest.Format("Jan 02, 2006 15:04"))
	}
	return nil
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

func formatMatches(matches []interest.Match) string {
	counts := make(map[string]int)
	var order []string
	for _, m := range matches {
		if counts[m.Keyword] == 0 {
			order = append(order, m.Keyword)
		}
		counts[m.Keyword]++
	}

	parts := make([]string, len(order))
	for i, kw := range order {
		if counts[kw] > 1 {
			parts[i] = fmt.Sprintf("%s x%d", kw, counts[kw])
		} else {
			parts[i] = kw
		}
	}
	return truncate(strings.Join(parts, ", "), 60)
}

func formatSeconds(seconds float64) string {
	total := int(seconds)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
