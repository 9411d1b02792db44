package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/speech/v1"
)

// Scopes defines the OAuth scopes required
var Scopes = []string{
	speech.CloudPlatformScope,
}

// callbackAddr is where the local OAuth callback server listens
const callbackAddr = "localhost:8085"

// loadCredentials loads OAuth config from credentials file
func loadCredentials(credPath string) (*oauth2.Config, error) {
	data, err := os.ReadFile(credPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w\n\nTo set up Speech-to-Text:\n1. Go to https://console.cloud.google.com/\n2. Create a project and enable the Cloud Speech-to-Text API\n3. Create OAuth 2.0 credentials (Desktop app)\n4. Download and save to: %s", err, credPath)
	}

	config, err := google.ConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	return config, nil
}

// loadToken loads a saved OAuth token
func loadToken(tokenPath string) (*oauth2.Token, error) {
	data, err := os.ReadFile(tokenPath)
	if err != nil {
		return nil, err
	}

	token := &oauth2.Token{}
	if err := json.Unmarshal(data, token); err != nil {
		return nil, err
	}

	return token, nil
}

// saveToken saves an OAuth token to file
func saveToken(tokenPath string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(tokenPath), 0700); err != nil {
		return err
	}
	return os.WriteFile(tokenPath, data, 0600)
}

// getTokenFromWeb performs the OAuth flow via browser
func getTokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	state := fmt.Sprintf("%d", time.Now().UnixNano())

	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			errChan <- fmt.Errorf("invalid state parameter")
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			errChan <- fmt.Errorf("no code in callback")
			return
		}

		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, `<html><body><h1>Authentication successful!</h1><p>You can close this window.</p></body></html>`)
		codeChan <- code
	})

	listener, err := net.Listen("tcp", callbackAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to start callback server: %w", err)
	}
	server := &http.Server{Handler: mux}
	defer server.Shutdown(context.Background())

	go func() {
		if err := server.Serve(listener); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	config.RedirectURL = "http://" + callbackAddr + "/callback"
	authURL := config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	fmt.Fprintln(os.Stderr, "Opening browser for Google authentication...")
	fmt.Fprintln(os.Stderr, "If browser doesn't open, visit this URL:")
	fmt.Fprintln(os.Stderr, authURL)
	fmt.Fprintln(os.Stderr)

	openBrowser(authURL)

	var code string
	select {
	case code = <-codeChan:
	case err := <-errChan:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(5 * time.Minute):
		return nil, fmt.Errorf("authentication timeout")
	}

	token, err := config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	return token, nil
}

// openBrowser opens the URL in the default browser
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return
	}

	_ = cmd.Start()
}

// getClient returns an authenticated HTTP client, running the browser flow
// when no token is saved and interactive is true
func getClient(ctx context.Context, config *oauth2.Config, tokenPath string, interactive bool) (*http.Client, error) {
	token, err := loadToken(tokenPath)
	if err != nil {
		if !interactive {
			return nil, fmt.Errorf("not authenticated with Google, run: voiceprofile auth google")
		}

		token, err = getTokenFromWeb(ctx, config)
		if err != nil {
			return nil, err
		}

		if err := saveToken(tokenPath, token); err != nil {
			return nil, fmt.Errorf("failed to save token: %w", err)
		}

		fmt.Fprintln(os.Stderr, "Authentication successful!")
	}

	// Token source will auto-refresh expired tokens
	tokenSource := config.TokenSource(ctx, token)

	newToken, err := tokenSource.Token()
	if err == nil && newToken.AccessToken != token.AccessToken {
		_ = saveToken(tokenPath, newToken)
	}

	return oauth2.NewClient(ctx, tokenSource), nil
}
