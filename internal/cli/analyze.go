package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/voiceprofile/internal/config"
	"github.com/vijay-prabhu/voiceprofile/internal/output"
	"github.com/vijay-prabhu/voiceprofile/internal/pipeline"
	"github.com/vijay-prabhu/voiceprofile/internal/transcribe"
)

var (
	analyzeLanguage    string
	analyzeModelSize   string
	analyzeDevice      string
	analyzeComputeType string
	analyzeNoVAD       bool
	analyzeNoCache     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <audio>...",
	Short: "Transcribe audio files and build an interest profile",
	Long: `Analyze transcribes each audio file with the configured backend, scores
the transcript against the interest taxonomy and builds a profile.

Supported formats: mp3, wav, m4a, aac, flac, ogg, mp4.

Examples:
  voiceprofile analyze memo.m4a
  voiceprofile analyze *.wav --language=en -o json
  voiceprofile analyze talk.mp3 --model-size=medium --no-cache`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeLanguage, "language", "", "Spoken language hint, e.g. en (default: from config, or auto-detect)")
	analyzeCmd.Flags().StringVar(&analyzeModelSize, "model-size", "", "Whisper model size (tiny, base, small, medium, large-v2)")
	analyzeCmd.Flags().StringVar(&analyzeDevice, "device", "", "Inference device (auto, cpu, cuda)")
	analyzeCmd.Flags().StringVar(&analyzeComputeType, "compute-type", "", "Compute type (int8, float16, float32)")
	analyzeCmd.Flags().BoolVar(&analyzeNoVAD, "no-vad", false, "Disable the voice activity filter")
	analyzeCmd.Flags().BoolVar(&analyzeNoCache, "no-cache", false, "Always transcribe, ignoring cached transcripts")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	opts := analyzeOptions(cfg)
	if err := opts.Validate(); err != nil {
		return err
	}

	provider, release, err := newProvider(ctx, cfg, !analyzeNoCache)
	if err != nil {
		return err
	}
	defer release()

	if err := provider.Health(ctx); err != nil {
		return fmt.Errorf("transcription backend %s unavailable: %w", provider.Name(), err)
	}

	analyzer, _, err := newAnalyzer(cfg, provider)
	if err != nil {
		return err
	}

	results := analyzer.AnalyzeFiles(ctx, args, opts, progressPrinter(len(args)))

	failed := 0
	for _, r := range results {
		if r.Error != nil {
			failed++
		}
	}

	if len(results) == 1 && failed == 0 {
		err = output.Output(outputFmt, results[0].Analysis)
	} else {
		err = output.Output(outputFmt, results)
	}
	if err != nil {
		return err
	}

	if failed == len(results) {
		return fmt.Errorf("all %d file(s) failed", failed)
	}
	if failed > 0 {
		terminal := NewTerminal()
		fmt.Fprintln(os.Stderr, terminal.Color(ColorYellow, fmt.Sprintf("Warnings: %d of %d file(s) failed", failed, len(results))))
	}
	return nil
}

// analyzeOptions overlays command flags on the configured transcription options
func analyzeOptions(cfg *config.Config) transcribe.Options {
	opts := transcribeOptions(cfg)
	if analyzeLanguage != "" {
		opts.Language = analyzeLanguage
	}
	if analyzeModelSize != "" {
		opts.ModelSize = analyzeModelSize
	}
	if analyzeDevice != "" {
		opts.Device = analyzeDevice
	}
	if analyzeComputeType != "" {
		opts.ComputeType = analyzeComputeType
	}
	if analyzeNoVAD {
		opts.VADFilter = false
	}
	return opts
}

// progressPrinter renders batch progress on stderr. Single files only get a
// spinner line while transcribing.
func progressPrinter(files int) pipeline.ProgressCallback {
	terminal := NewTerminal()
	var lastPhase pipeline.ProgressPhase

	return func(p pipeline.Progress) {
		if !terminal.IsTerminal && p.Phase == lastPhase {
			return
		}
		terminal.ClearLine()

		var msg string
		switch p.Phase {
		case pipeline.PhaseReading:
			msg = fmt.Sprintf("Reading: %d/%d files", p.Current, p.Total)
		case pipeline.PhaseTranscribing:
			if files == 1 {
				msg = fmt.Sprintf("%s Transcribing...", terminal.Spinner())
				break
			}
			var eta string
			if d := p.ETA(); d > 0 {
				eta = fmt.Sprintf(" (ETA: %s)", FormatETA(d))
			}
			msg = fmt.Sprintf("%s Transcribing: %d/%d files (%d%%)%s", terminal.Spinner(), p.Current, p.Total, p.Percentage(), eta)
		case pipeline.PhaseScoring:
			if files > 1 {
				elapsed := time.Since(p.StartedAt).Round(time.Second)
				fmt.Fprintln(os.Stderr, terminal.Color(PhaseColor(p.Phase), fmt.Sprintf("Done: %s in %s", p.Description, elapsed)))
			}
			lastPhase = p.Phase
			return
		}

		msg = terminal.Color(PhaseColor(p.Phase), msg)
		if terminal.IsTerminal {
			fmt.Fprint(os.Stderr, msg)
			terminal.Flush()
		} else {
			fmt.Fprintln(os.Stderr, msg)
		}
		lastPhase = p.Phase
	}
}
