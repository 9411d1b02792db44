package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vijay-prabhu/voiceprofile/internal/config"
	"github.com/vijay-prabhu/voiceprofile/internal/interest"
	"github.com/vijay-prabhu/voiceprofile/internal/output"
)

var profileFile string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Build a profile from category scores",
	Long: `Profile reads category percentages as a JSON or YAML mapping and prints
the resulting personality profile. The output of 'score -o json' can be piped
in directly, and so can any document with a top-level "scores" mapping.

Examples:
  echo '{"Food": 70, "Sports/Fitness": 30}' | voiceprofile profile
  voiceprofile score "pizza then basketball" -o json | voiceprofile profile
  voiceprofile profile --file=scores.yaml -o yaml`,
	Args: cobra.NoArgs,
	RunE: runProfile,
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().StringVarP(&profileFile, "file", "f", "", "Read scores from a file instead of stdin")
}

func runProfile(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	data, err := readText(cmd.InOrStdin(), nil, profileFile)
	if err != nil {
		return err
	}

	scores, err := parseScores([]byte(data))
	if err != nil {
		return err
	}

	analyzer, _, err := newAnalyzer(cfg, nil)
	if err != nil {
		return err
	}

	return output.Output(outputFmt, analyzer.Builder().Build(scores))
}

// parseScores decodes a category mapping, or the "scores" mapping of a
// larger document. JSON input is read as YAML flow style.
func parseScores(data []byte) (interest.Scores, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse scores: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("no scores given")
	}

	node := doc.Content[0]
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == "scores" && node.Content[i+1].Kind == yaml.MappingNode {
				node = node.Content[i+1]
				break
			}
		}
	}

	var scores interest.Scores
	if err := node.Decode(&scores); err != nil {
		return nil, fmt.Errorf("failed to parse scores: %w", err)
	}
	return scores, nil
}
