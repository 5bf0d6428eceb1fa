package strava

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const maxPerPage = 200 // Maximum allowed by Strava API

// ListActivities returns up to n of the athlete's most recent activities,
// newest first. An athlete with no activities yields an empty slice.
func (c *Client) ListActivities(ctx context.Context, n int) ([]Activity, error) {
	if n < 1 {
		n = 1
	}
	perPage := min(n, maxPerPage)

	var all []Activity
	for page := 1; len(all) < n; page++ {
		query := url.Values{}
		query.Set("per_page", strconv.Itoa(perPage))
		query.Set("page", strconv.Itoa(page))

		var activities []Activity
		if err := c.Do(ctx, http.MethodGet, "/athlete/activities", query, nil, &activities); err != nil {
			return nil, fmt.Errorf("failed to get activities: %w", err)
		}

		if len(activities) == 0 {
			break
		}
		all = append(all, activities...)

		// If we got fewer activities than requested, we've reached the end
		if len(activities) < perPage {
			break
		}
	}

	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func (c *Client) GetActivity(ctx context.Context, id int64) (*Activity, error) {
	var activity Activity
	if err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/activities/%d", id), nil, nil, &activity); err != nil {
		return nil, fmt.Errorf("failed to get activity %d: %w", id, err)
	}
	return &activity, nil
}

func (c *Client) UpdateActivity(ctx context.Context, id int64, update ActivityUpdate) error {
	if err := c.Do(ctx, http.MethodPut, fmt.Sprintf("/activities/%d", id), nil, update, nil); err != nil {
		return fmt.Errorf("failed to update activity %d: %w", id, err)
	}
	return nil
}
