package strava

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"strava-haddock/auth"
)

const DefaultBaseURL = "https://www.strava.com/api/v3"

// APIError is any non-2xx reply from the Strava API. A 401 that survives the
// single refresh-and-retry is reported as an APIError too; callers that want
// to prompt for reauthorization can check StatusCode.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("strava %s %s failed: %s - %s", e.Method, e.Path, e.Status, e.Body)
}

type ClientOptions struct {
	BaseURL    string
	HTTPClient *http.Client
	// Timeout bounds each individual HTTP request.
	Timeout time.Duration
	Logger  *slog.Logger
}

// Client is the only way this program talks to the Strava API. It attaches the
// bearer token and recovers from one expired-token reply per call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger

	creds     *auth.Credentials
	store     auth.Store
	refresher auth.Refresher
}

func NewClient(creds *auth.Credentials, store auth.Store, refresher auth.Refresher, opts ClientOptions) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: opts.HTTPClient,
		timeout:    opts.Timeout,
		logger:     opts.Logger,
		creds:      creds,
		store:      store,
		refresher:  refresher,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	if c.timeout <= 0 {
		c.timeout = 10 * time.Second
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// Do sends one request. body, when non-nil, is sent as JSON; out, when
// non-nil, receives the decoded JSON reply.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	resp, err := c.send(ctx, method, path, query, payload)
	if err != nil {
		return err
	}

	if resp.statusCode == http.StatusUnauthorized {
		c.logger.Info("Token expired, refreshing")
		if err := c.refresh(ctx); err != nil {
			return err
		}
		resp, err = c.send(ctx, method, path, query, payload)
		if err != nil {
			return err
		}
	}

	if resp.statusCode < 200 || resp.statusCode >= 300 {
		return &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.statusCode,
			Status:     resp.status,
			Body:       string(resp.body),
		}
	}

	if out != nil && len(resp.body) > 0 {
		if err := json.Unmarshal(resp.body, out); err != nil {
			return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

type response struct {
	statusCode int
	status     string
	body       []byte
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte) (*response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.creds.AccessToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("Strava request", slog.String("method", method), slog.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("strava %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s %s response: %w", method, path, err)
	}

	return &response{statusCode: resp.StatusCode, status: resp.Status, body: body}, nil
}

func (c *Client) refresh(ctx context.Context) error {
	grant, err := c.refresher.Refresh(ctx, c.creds.RefreshToken)
	if err != nil {
		return err
	}

	c.creds.AccessToken = grant.AccessToken
	if grant.RefreshToken != "" {
		c.creds.RefreshToken = grant.RefreshToken
	}

	if err := c.store.Save(*c.creds); err != nil {
		return fmt.Errorf("failed to persist refreshed tokens: %w", err)
	}
	return nil
}
