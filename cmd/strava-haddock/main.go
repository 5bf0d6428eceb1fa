package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"strava-haddock/auth"
	"strava-haddock/config"
	"strava-haddock/persona"
	"strava-haddock/strava"
	"strava-haddock/transform"
)

type options struct {
	envFile    string
	dryRun     bool
	activityID int64
	count      int
	verbose    bool
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
		Use:   "strava-haddock",
		Short: "Transform Strava activities into Captain Haddock's voice",
		Long: `Fetches your latest Strava activity (or a specific one, or the last N) and
rewrites the title and description in Captain Haddock's voice.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.envFile, "env-file", config.DefaultEnvFile, "Path to the env file holding credentials")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Preview the transformation without updating Strava")
	cmd.Flags().Int64Var(&opts.activityID, "activity", 0, "Specific activity ID to transform (default: latest)")
	cmd.Flags().IntVar(&opts.count, "activities", 0, "Transform the last N activities")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")

	return cmd
}

func run(ctx context.Context, w io.Writer, opts options) error {
	logger := newLogger(opts.verbose)

	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return err
	}
	if err := cfg.ValidateStravaToken(); err != nil {
		return err
	}
	if err := cfg.ValidateAnthropic(); err != nil {
		return err
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	creds := cfg.Strava.Credentials()
	oauth := auth.NewOAuth(creds.ClientID, creds.ClientSecret, cfg.Strava.OAuthBase, "", httpClient)

	client := strava.NewClient(&creds, auth.NewFileStore(opts.envFile), oauth, strava.ClientOptions{
		BaseURL:    cfg.Strava.APIBase,
		HTTPClient: httpClient,
		Timeout:    cfg.HTTPTimeout,
		Logger:     logger,
	})

	generator := persona.NewClient(cfg.Anthropic.APIKey,
		persona.WithBaseURL(cfg.Anthropic.BaseURL),
		persona.WithModel(cfg.Anthropic.Model),
		persona.WithMaxTokens(cfg.Anthropic.MaxTokens),
	)

	runner := transform.NewRunner(client, generator, w, logger)
	return runner.Run(ctx, transform.Options{
		DryRun:     opts.dryRun,
		ActivityID: opts.activityID,
		Count:      opts.count,
	})
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
