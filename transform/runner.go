// Package transform drives one run of the persona rewrite: resolve the target
// activities, summarize each, generate a new title and description, and write
// them back unless previewing.
package transform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"strava-haddock/persona"
	"strava-haddock/strava"
	"strava-haddock/workout"
)

// Activities is the subset of the Strava client the runner uses.
type Activities interface {
	ListActivities(ctx context.Context, n int) ([]strava.Activity, error)
	GetActivity(ctx context.Context, id int64) (*strava.Activity, error)
	UpdateActivity(ctx context.Context, id int64, update strava.ActivityUpdate) error
}

// Generator turns a workout summary into a persona reply.
type Generator interface {
	Generate(ctx context.Context, summary string) (persona.Reply, error)
}

// Options selects the activities and whether to write back. ActivityID wins
// over Count; with neither set the latest activity is used.
type Options struct {
	DryRun     bool
	ActivityID int64
	Count      int
}

type Runner struct {
	activities Activities
	generator  Generator
	out        io.Writer
	logger     *slog.Logger
}

func NewRunner(activities Activities, generator Generator, out io.Writer, logger *slog.Logger) *Runner {
	return &Runner{
		activities: activities,
		generator:  generator,
		out:        out,
		logger:     logger,
	}
}

// Resolve fetches the activities selected by opts. An empty result is not an error.
func (r *Runner) Resolve(ctx context.Context, opts Options) ([]strava.Activity, error) {
	switch {
	case opts.ActivityID > 0:
		activity, err := r.activities.GetActivity(ctx, opts.ActivityID)
		if err != nil {
			return nil, err
		}
		if activity == nil {
			return nil, nil
		}
		return []strava.Activity{*activity}, nil
	case opts.Count > 0:
		return r.activities.ListActivities(ctx, opts.Count)
	default:
		return r.activities.ListActivities(ctx, 1)
	}
}

// Run processes the selected activities in order. The first generation
// failure stops the batch.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	fmt.Fprintln(r.out, "Fetching activity from Strava...")

	activities, err := r.Resolve(ctx, opts)
	if err != nil {
		return err
	}
	if len(activities) == 0 {
		fmt.Fprintln(r.out, "No activities found!")
		return nil
	}

	for _, activity := range activities {
		if err := r.process(ctx, activity, opts.DryRun); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) process(ctx context.Context, activity strava.Activity, dryRun bool) error {
	name := activity.Name
	if name == "" {
		name = "Untitled"
	}

	fmt.Fprintf(r.out, "\nOriginal Activity: %s\n", name)
	fmt.Fprintf(r.out, "ID: %d\n", activity.ID)
	fmt.Fprintf(r.out, "Type: %s\n", activity.Kind())
	if !activity.StartDateLocal.IsZero() {
		fmt.Fprintf(r.out, "Date: %s\n", activity.StartDateLocal.Format("2006-01-02"))
	}

	fmt.Fprintln(r.out, "\nGenerating Captain Haddock version...")
	summary := workout.Summarize(activity)
	r.logger.Debug("Workout summary", slog.Int64("activity_id", activity.ID), slog.String("summary", summary))

	reply, err := r.generator.Generate(ctx, summary)
	if err != nil {
		if !errors.Is(err, persona.ErrTitleAbsent) && !errors.Is(err, persona.ErrDescriptionAbsent) {
			fmt.Fprintf(r.out, "Error calling Claude API: %v\n", err)
			return fmt.Errorf("generating activity %d: %w", activity.ID, err)
		}
		// Absent fields are left out of the update so Strava keeps the originals.
		r.logger.Warn("Incomplete persona reply", slog.Int64("activity_id", activity.ID), slog.Any("error", err))
	}

	rule := strings.Repeat("=", 50)
	fmt.Fprintln(r.out, "\n"+rule)
	fmt.Fprintln(r.out, "HADDOCK VERSION:")
	fmt.Fprintln(r.out, rule)
	fmt.Fprintf(r.out, "Title: %s\n", reply.Title)
	fmt.Fprintf(r.out, "Description: %s\n", reply.Description)
	fmt.Fprintln(r.out, rule)

	if dryRun {
		fmt.Fprintln(r.out, "\n[DRY RUN - No changes made to Strava]")
		return nil
	}

	if reply.Title == "" && reply.Description == "" {
		r.logger.Warn("Nothing to update", slog.Int64("activity_id", activity.ID))
		return nil
	}

	fmt.Fprintln(r.out, "\nUpdating Strava...")
	update := strava.ActivityUpdate{
		Name:        reply.Title,
		Description: reply.Description,
	}
	if err := r.activities.UpdateActivity(ctx, activity.ID, update); err != nil {
		return err
	}
	fmt.Fprintln(r.out, "Done! Activity updated.")
	fmt.Fprintf(r.out, "\nView it at: %s\n", strava.ActivityURL(activity.ID))
	return nil
}
