package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/voiceprofile/internal/config"
	"github.com/vijay-prabhu/voiceprofile/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio transport)",
	Long: `Start the MCP (Model Context Protocol) server using stdio transport.

This lets AI assistants score transcripts, build profiles and analyze local
audio files.

Add to Claude Desktop config (~/Library/Application Support/Claude/claude_desktop_config.json):

{
  "mcpServers": {
    "voiceprofile": {
      "command": "/path/to/voiceprofile",
      "args": ["mcp"]
    }
  }
}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Check if MCP is enabled
	if !cfg.MCP.Enabled {
		return fmt.Errorf("MCP server is disabled in config")
	}

	// Handle interrupt
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		cancel()
	}()

	provider, release, err := newProvider(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer release()

	analyzer, tax, err := newAnalyzer(cfg, provider)
	if err != nil {
		return err
	}

	slog.Debug("mcp server starting", "transcriber", provider.Name())

	// Run server
	server := mcp.New(analyzer, tax, transcribeOptions(cfg), version)
	return server.Start(ctx)
}
