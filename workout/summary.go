// Package workout renders Strava activity metrics as a plain-text summary in
// imperial units.
package workout

import (
	"fmt"
	"math"
	"strings"

	"strava-haddock/strava"
)

const (
	metersPerMile = 1609.34
	feetPerMeter  = 3.28084
)

var paceTypes = map[string]bool{
	"Run":        true,
	"VirtualRun": true,
	"TrailRun":   true,
}

// FormatPace converts meters per second to a min/mi pace.
func FormatPace(metersPerSecond float64) string {
	if metersPerSecond <= 0 {
		return "N/A"
	}

	secondsPerMile := metersPerMile / metersPerSecond
	minutes := int(secondsPerMile / 60)
	seconds := int(math.Mod(secondsPerMile, 60))
	return fmt.Sprintf("%d:%02d /mi", minutes, seconds)
}

func FormatDistance(meters float64) string {
	return fmt.Sprintf("%.2f mi", meters/metersPerMile)
}

// FormatDuration renders seconds as "Xh Ym Zs", dropping zero hours and
// minutes. Zero renders as "0s".
func FormatDuration(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if secs > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", secs))
	}
	return strings.Join(parts, " ")
}

func FormatElevation(meters float64) string {
	return fmt.Sprintf("%.0f ft", meters*feetPerMeter)
}

// Summarize builds the workout summary handed to the persona prompt.
func Summarize(a strava.Activity) string {
	kind := a.Kind()
	if kind == "" {
		kind = "Workout"
	}
	name := a.Name
	if name == "" {
		name = "Untitled"
	}

	lines := []string{
		"Activity Type: " + kind,
		"Original Title: " + name,
		"Duration: " + FormatDuration(a.ElapsedTime),
	}

	if a.Distance > 0 {
		lines = append(lines, "Distance: "+FormatDistance(a.Distance))
	}
	if a.AverageSpeed > 0 && paceTypes[kind] {
		lines = append(lines, "Pace: "+FormatPace(a.AverageSpeed))
	}
	if a.AverageHeartrate > 0 {
		lines = append(lines, fmt.Sprintf("Average Heart Rate: %.0f bpm", a.AverageHeartrate))
	}
	if a.MaxHeartrate > 0 {
		lines = append(lines, fmt.Sprintf("Max Heart Rate: %.0f bpm", a.MaxHeartrate))
	}
	if a.Calories > 0 {
		lines = append(lines, fmt.Sprintf("Calories: %.0f", a.Calories))
	}
	if a.TotalElevationGain > 0 {
		lines = append(lines, "Elevation Gain: "+FormatElevation(a.TotalElevationGain))
	}
	if a.Description != "" {
		lines = append(lines, "Original Description: "+a.Description)
	}

	return strings.Join(lines, "\n")
}
