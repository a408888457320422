package gdrive

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	drivev3 "google.golang.org/api/drive/v3"
)

// Auth locates the OAuth client secrets and the cached user token
type Auth struct {
	CredentialsFile string
	TokenFile       string

	// In and Out are used for the one-time authorization code exchange.
	// In is shared with later prompts, so it must be the process-wide reader.
	In  *bufio.Reader
	Out io.Writer
}

// Client returns an HTTP client authorized for full Drive access. When no
// token is cached the user is asked to visit an URL and paste the code.
func (a Auth) Client(ctx context.Context) (*http.Client, error) {
	b, err := os.ReadFile(a.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read client secrets: %w", err)
	}

	cfg, err := google.ConfigFromJSON(b, drivev3.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("parse client secrets: %w", err)
	}

	tok, err := loadToken(a.TokenFile)
	if err != nil {
		slog.Debug("no cached token", "path", a.TokenFile, "error", err)
		tok, err = a.exchange(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}

	src := cfg.TokenSource(ctx, tok)
	fresh, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}
	if fresh.AccessToken != tok.AccessToken {
		if err := saveToken(a.TokenFile, fresh); err != nil {
			slog.Warn("failed to cache token", "path", a.TokenFile, "error", err)
		}
	}

	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(fresh, src)), nil
}

func (a Auth) exchange(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	if a.In == nil || a.Out == nil {
		return nil, fmt.Errorf("no cached token at %s and no terminal to authorize", a.TokenFile)
	}

	url := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintf(a.Out, "Open the following link in your browser, then paste the authorization code:\n%s\n> ", url)

	code, err := a.In.ReadString('\n')
	if err != nil && code == "" {
		return nil, fmt.Errorf("read authorization code: %w", err)
	}

	tok, err := cfg.Exchange(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	if err := saveToken(a.TokenFile, tok); err != nil {
		return nil, err
	}
	return tok, nil
}

func loadToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tok oauth2.Token
	if err := json.NewDecoder(f).Decode(&tok); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return &tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("cache token: %w", err)
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(tok)
}
