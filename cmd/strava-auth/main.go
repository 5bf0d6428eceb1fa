package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"strava-haddock/auth"
	"strava-haddock/config"
)

type options struct {
	envFile     string
	redirectURL string
	timeout     time.Duration
	noBrowser   bool
	verbose     bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		cancel()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "strava-auth",
		Short: "Authorize with Strava and save access and refresh tokens",
		Long: `Run once to obtain Strava tokens with the read,activity:read_all,activity:write scopes.
Opens the authorization page, catches the redirect on a local listener, exchanges the
code for tokens and saves them to the env file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.envFile, "env-file", config.DefaultEnvFile, "Path to the env file holding credentials")
	cmd.Flags().StringVar(&opts.redirectURL, "redirect-url", auth.DefaultRedirectURL, "OAuth redirect URL registered with Strava")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", auth.DefaultCallbackTimeout, "How long to wait for the browser callback")
	cmd.Flags().BoolVar(&opts.noBrowser, "no-browser", false, "Print the authorization URL without opening a browser")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")

	return cmd
}

func run(ctx context.Context, w io.Writer, opts options) error {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return err
	}
	if err := cfg.ValidateStravaClient(); err != nil {
		fmt.Fprintln(w, "Copy .env.example to .env and fill in your credentials.")
		return err
	}

	creds := cfg.Strava.Credentials()
	authorizer := &auth.Authorizer{
		OAuth:       auth.NewOAuth(creds.ClientID, creds.ClientSecret, cfg.Strava.OAuthBase, opts.redirectURL, &http.Client{Timeout: cfg.HTTPTimeout}),
		Store:       auth.NewFileStore(opts.envFile),
		Credentials: creds,
		Timeout:     opts.timeout,
		Out:         w,
		Logger:      logger,
	}
	if !opts.noBrowser {
		authorizer.OpenBrowser = browser.OpenURL
	}

	return authorizer.Run(ctx)
}
