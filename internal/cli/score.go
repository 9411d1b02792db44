package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/voiceprofile/internal/config"
	"github.com/vijay-prabhu/voiceprofile/internal/output"
)

var (
	scoreVerbose bool
	scoreFile    string
	scoreProfile bool
)

var scoreCmd = &cobra.Command{
	Use:   "score [text]",
	Short: "Score text against the interest taxonomy",
	Long: `Score reads text from the argument, a file or stdin and prints the
percentage of keyword weight each interest category received.

Examples:
  voiceprofile score "I spent the weekend coding in python"
  voiceprofile score --file=transcript.txt --verbose
  cat transcript.txt | voiceprofile score -o json
  voiceprofile score --profile "dinner with friends, then basketball"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().BoolVar(&scoreVerbose, "verbose", false, "Show matched keywords and confidence per category")
	scoreCmd.Flags().StringVarP(&scoreFile, "file", "f", "", "Read text from a file")
	scoreCmd.Flags().BoolVar(&scoreProfile, "profile", false, "Also build a profile from the scores")
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	text, err := readText(cmd.InOrStdin(), args, scoreFile)
	if err != nil {
		return err
	}

	analyzer, _, err := newAnalyzer(cfg, nil)
	if err != nil {
		return err
	}

	if scoreProfile {
		return output.Output(outputFmt, analyzer.AnalyzeText(text))
	}

	if scoreVerbose {
		return output.Output(outputFmt, analyzer.Scorer().ScoreDetailed(text))
	}
	return output.Output(outputFmt, analyzer.Scorer().Score(text))
}

// readText returns the first argument, the contents of path, or stdin
func readText(stdin io.Reader, args []string, path string) (string, error) {
	switch {
	case len(args) > 0:
		return args[0], nil
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return string(data), nil
	}

	if f, ok := stdin.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return "", fmt.Errorf("no text given: pass it as an argument, with --file, or on stdin")
		}
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
