package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/voiceprofile/internal/config"
	"github.com/vijay-prabhu/voiceprofile/internal/transcribe/google"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate with a transcription backend",
}

var authGoogleCmd = &cobra.Command{
	Use:   "google",
	Short: "Authorize Google Speech-to-Text",
	Long: `Run the Google OAuth flow in the browser and save the token to
[transcriber.google] token_path.

Create an OAuth client of type "Desktop app" in the Google Cloud console,
enable the Speech-to-Text API, and save the client JSON to
[transcriber.google] credentials_path first.`,
	Args: cobra.NoArgs,
	RunE: runAuthGoogle,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authGoogleCmd)
}

func runAuthGoogle(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	g := cfg.Transcriber.Google
	provider := google.New(google.Config{
		CredentialsPath: g.CredentialsPath,
		TokenPath:       g.TokenPath,
	})

	if provider.IsAuthenticated() {
		fmt.Printf("Already authenticated (token at %s)\n", g.TokenPath)
		return nil
	}

	fmt.Println("Authenticating with Google...")
	if err := provider.Authenticate(cmd.Context()); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	fmt.Printf("Authenticated. Token saved to %s\n", g.TokenPath)
	return nil
}
