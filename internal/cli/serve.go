package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/voiceprofile/internal/api"
	"github.com/vijay-prabhu/voiceprofile/internal/config"
	"github.com/vijay-prabhu/voiceprofile/internal/transcribe"
)

var (
	serveAddr      string
	serveTextOnly  bool
	serveNoCache   bool
	shutdownPeriod = 5 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start an HTTP server exposing scoring, profiling and audio analysis.

Endpoints:
  GET  /health     service and transcription backend status
  GET  /taxonomy   the taxonomy in use
  POST /score      {"text": "...", "verbose": false}
  POST /profile    {"scores": {"Food": 70, "Sports/Fitness": 30}}
  POST /analyze    multipart upload, field "file" (optional "language", "model_size")

Examples:
  voiceprofile serve
  voiceprofile serve --addr=0.0.0.0:8640
  voiceprofile serve --text-only   # no transcription backend needed`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: from config)")
	serveCmd.Flags().BoolVar(&serveTextOnly, "text-only", false, "Disable /analyze and skip the transcription backend")
	serveCmd.Flags().BoolVar(&serveNoCache, "no-cache", false, "Always transcribe, ignoring cached transcripts")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	var provider transcribe.Provider
	if !serveTextOnly {
		p, release, err := newProvider(ctx, cfg, !serveNoCache)
		if err != nil {
			return err
		}
		defer release()

		if err := p.Health(ctx); err != nil {
			slog.Warn("transcription backend unavailable, /analyze will fail until it is up",
				"backend", p.Name(), "error", err)
		}
		provider = p
	}

	analyzer, tax, err := newAnalyzer(cfg, provider)
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	srv := &http.Server{
		Addr: addr,
		Handler: api.NewHandler(api.Deps{
			Analyzer: analyzer,
			Taxonomy: tax,
			Options:  transcribeOptions(cfg),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine.
	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(os.Stderr, "voiceprofile listening on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for signal or server error.
	select {
	case <-ctx.Done():
		fmt.Fprintln(os.Stderr, "shutting down...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	// Graceful shutdown with timeout.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
