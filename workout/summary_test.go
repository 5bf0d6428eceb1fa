package workout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"strava-haddock/strava"
)

func TestFormatPace(t *testing.T) {
	tests := []struct {
		name string
		mps  float64
		want string
	}{
		{"zero", 0, "N/A"},
		{"negative", -1, "N/A"},
		{"ten minute mile", 2.68, "10:00 /mi"},
		{"eight minute mile", 3.35, "8:00 /mi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPace(tt.mps))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{90, "1m 30s"},
		{3600, "1h"},
		{3661, "1h 1m 1s"},
		{7260, "2h 1m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.seconds), "seconds=%v", tt.seconds)
	}
}

func TestFormatDistanceAndElevation(t *testing.T) {
	assert.Equal(t, "1.00 mi", FormatDistance(1609.34))
	assert.Equal(t, "3.11 mi", FormatDistance(5000))
	assert.Equal(t, "328 ft", FormatElevation(100))
}

func TestSummarizeRun(t *testing.T) {
	a := strava.Activity{
		Name:               "Morning Run",
		Type:               "Run",
		ElapsedTime:        3661,
		Distance:           1609.34,
		AverageSpeed:       2.68,
		AverageHeartrate:   151.6,
		MaxHeartrate:       178.2,
		Calories:           412.4,
		TotalElevationGain: 100,
		Description:        "Felt good",
	}

	want := strings.Join([]string{
		"Activity Type: Run",
		"Original Title: Morning Run",
		"Duration: 1h 1m 1s",
		"Distance: 1.00 mi",
		"Pace: 10:00 /mi",
		"Average Heart Rate: 152 bpm",
		"Max Heart Rate: 178 bpm",
		"Calories: 412",
		"Elevation Gain: 328 ft",
		"Original Description: Felt good",
	}, "\n")
	assert.Equal(t, want, Summarize(a))
}

func TestSummarizeOmitsPaceForNonRun(t *testing.T) {
	a := strava.Activity{
		Name:         "Evening Ride",
		Type:         "Ride",
		ElapsedTime:  1800,
		Distance:     16093.4,
		AverageSpeed: 8.9,
	}

	got := Summarize(a)
	assert.NotContains(t, got, "Pace:")
	assert.Contains(t, got, "Distance: 10.00 mi")
}

func TestSummarizeDefaultsAndAbsentFields(t *testing.T) {
	got := Summarize(strava.Activity{})
	assert.Equal(t, "Activity Type: Workout\nOriginal Title: Untitled\nDuration: 0s", got)
}

func TestSummarizeFallsBackToSportType(t *testing.T) {
	got := Summarize(strava.Activity{SportType: "TrailRun", AverageSpeed: 2.68, ElapsedTime: 60})
	assert.Contains(t, got, "Activity Type: TrailRun")
	assert.Contains(t, got, "Pace: 10:00 /mi")
}
