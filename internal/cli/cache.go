package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/voiceprofile/internal/config"
	"github.com/vijay-prabhu/voiceprofile/internal/database"
	"github.com/vijay-prabhu/voiceprofile/internal/output"
)

var cacheClearOlderThan string

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the transcript cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show transcript cache statistics",
	Args:  cobra.NoArgs,
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete cached transcripts",
	Long: `Delete cached transcripts so the next analysis transcribes again.

Examples:
  voiceprofile cache clear                  # Delete everything
  voiceprofile cache clear --older-than=30d # Keep the last 30 days`,
	Args: cobra.NoArgs,
	RunE: runCacheClear,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheClearCmd.Flags().StringVar(&cacheClearOlderThan, "older-than", "", "Only delete entries older than this (e.g., 7d, 2w, 1m)")
}

func openCache() (*database.DB, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(cfg.Cache.Path); os.IsNotExist(err) {
		return nil, fmt.Errorf("no transcript cache at %s yet", cfg.Cache.Path)
	}

	db, err := database.Open(cfg.Cache.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	db, err := openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := db.CacheStats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get cache stats: %w", err)
	}

	return output.Output(outputFmt, stats)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	var before time.Time
	if cacheClearOlderThan != "" {
		d, err := parseDuration(cacheClearOlderThan)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
		before = time.Now().Add(-d)
	}

	db, err := openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := db.ClearCache(cmd.Context(), before)
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	fmt.Printf("Deleted %d cached transcript(s)\n", n)
	return nil
}

// parseDuration parses strings like "7d", "2w" or "1m"
func parseDuration(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration format")
	}

	unit := s[len(s)-1]
	valueStr := s[:len(s)-1]

	var value int
	if _, err := fmt.Sscanf(valueStr, "%d", &value); err != nil {
		return 0, fmt.Errorf("invalid duration value")
	}

	switch unit {
	case 'd':
		return time.Duration(value) * 24 * time.Hour, nil
	case 'w':
		return time.Duration(value) * 7 * 24 * time.Hour, nil
	case 'm':
		return time.Duration(value) * 30 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown duration unit: %c (use d, w, or m)", unit)
	}
}
