package strava

import (
	"fmt"
	"time"
)

// Activity is a Strava activity as returned by the list and detail endpoints.
// Fields Strava omits decode to their zero value, which callers treat as absent.
type Activity struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	SportType          string    `json:"sport_type"`
	ElapsedTime        float64   `json:"elapsed_time"`
	MovingTime         float64   `json:"moving_time"`
	Distance           float64   `json:"distance"`
	AverageSpeed       float64   `json:"average_speed"`
	AverageHeartrate   float64   `json:"average_heartrate"`
	MaxHeartrate       float64   `json:"max_heartrate"`
	Calories           float64   `json:"calories"`
	TotalElevationGain float64   `json:"total_elevation_gain"`
	Description        string    `json:"description"`
	StartDate          time.Time `json:"start_date"`
	StartDateLocal     time.Time `json:"start_date_local"`
}

// Kind returns the activity type, falling back to the sport type.
func (a Activity) Kind() string {
	if a.Type != "" {
		return a.Type
	}
	return a.SportType
}

type ActivityUpdate struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// ActivityURL is the public web page of an activity.
func ActivityURL(id int64) string {
	return fmt.Sprintf("https://www.strava.com/activities/%d", id)
}
