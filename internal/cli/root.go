package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/voiceprofile/internal/config"
	"github.com/vijay-prabhu/voiceprofile/internal/output"
)

var (
	// Version info set from main
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"

	// Global flags
	configPath string
	outputFmt  string
	verbose    bool
)

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, c, b string) {
	version = v
	commit = c
	buildTime = b
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "voiceprofile",
	Short: "Turn voice notes into an interest and personality profile",
	Long: `voiceprofile transcribes spoken audio and scores the transcript against
a weighted interest taxonomy to build a lightweight personality profile.

It provides:
  - Transcription through a local faster-whisper service or Google Speech-to-Text
  - Keyword scoring with negation handling and context boosting
  - Social style, activity preference and activity suggestions
  - An HTTP API and an MCP server for AI assistant integration`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file (default: "+config.DefaultPath+")")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table",
		"output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if configPath == "" {
		path, err := config.ExpandPath(config.DefaultPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}
		configPath = path
	}
}

// setupLogging installs the default slog logger. The level comes from the
// config file when it can be read, and --verbose always forces debug.
func setupLogging(cmd *cobra.Command, args []string) error {
	if !output.IsFormat(outputFmt) {
		return fmt.Errorf("unknown output format %q (use table, json or yaml)", outputFmt)
	}

	level := slog.LevelInfo
	if cfg, err := config.LoadOrDefault(configPath); err == nil {
		if l, err := cfg.Log.SlogLevel(); err == nil {
			level = l
		}
	}
	if verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("voiceprofile %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", buildTime)
	},
}
