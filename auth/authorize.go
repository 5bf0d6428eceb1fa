package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	placeholderClientSecret = "your_client_secret_here"
	DefaultCallbackTimeout  = 5 * time.Minute
)

var ErrMissingClient = errors.New("STRAVA_CLIENT_ID and STRAVA_CLIENT_SECRET must be set in the env file")

// ValidateClient reports whether the client id and secret are usable.
func ValidateClient(c Credentials) error {
	if c.ClientID == "" || c.ClientSecret == "" || c.ClientSecret == placeholderClientSecret {
		return ErrMissingClient
	}
	return nil
}

// Authorizer runs the one-time authorization code flow and persists the
// resulting token pair.
type Authorizer struct {
	OAuth       *OAuth
	Store       Store
	Credentials Credentials
	Timeout     time.Duration
	// OpenBrowser is called with the authorization URL. Nil skips it.
	OpenBrowser func(string) error
	Out         io.Writer
	Logger      *slog.Logger
}

func (a *Authorizer) Run(ctx context.Context) error {
	if err := ValidateClient(a.Credentials); err != nil {
		return err
	}

	redirect, err := url.Parse(a.OAuth.config.RedirectURL)
	if err != nil {
		return fmt.Errorf("invalid redirect URL: %w", err)
	}

	state := uuid.NewString()
	authURL := a.OAuth.AuthCodeURL(state)

	fmt.Fprintln(a.Out, strings.Repeat("=", 60))
	fmt.Fprintln(a.Out, "Strava OAuth Authentication")
	fmt.Fprintln(a.Out, strings.Repeat("=", 60))
	fmt.Fprintln(a.Out)
	fmt.Fprintln(a.Out, "Requesting scopes:", Scopes)
	fmt.Fprintln(a.Out)
	fmt.Fprintln(a.Out, "If browser doesn't open, visit this URL:")
	fmt.Fprintln(a.Out, authURL)
	fmt.Fprintln(a.Out)

	server := NewCallbackServer(redirect.Host, redirect.Path, state)
	if err := server.Start(); err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Stop(shutdownCtx); err != nil {
			a.Logger.Error("Error shutting down callback server", slog.Any("error", err))
		}
	}()

	if a.OpenBrowser != nil {
		if err := a.OpenBrowser(authURL); err != nil {
			a.Logger.Warn("Could not open browser", slog.Any("error", err))
		}
	}

	fmt.Fprintln(a.Out, "Waiting for authorization...")

	timeout := a.Timeout
	if timeout <= 0 {
		timeout = DefaultCallbackTimeout
	}
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	code, err := server.Await(waitCtx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.Out)
	fmt.Fprintln(a.Out, "Got authorization code, exchanging for tokens...")

	grant, err := a.OAuth.Exchange(ctx, code)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.Out)
	fmt.Fprintln(a.Out, "Success! Authenticated as:", grant.Athlete.DisplayName())
	fmt.Fprintln(a.Out)

	creds := a.Credentials
	creds.AccessToken = grant.AccessToken
	creds.RefreshToken = grant.RefreshToken
	if err := a.Store.Save(creds); err != nil {
		return fmt.Errorf("failed to save tokens: %w", err)
	}
	a.Credentials = creds

	fmt.Fprintln(a.Out, "Tokens saved!")
	fmt.Fprintln(a.Out)
	fmt.Fprintln(a.Out, "You can now run: strava-haddock")
	return nil
}
