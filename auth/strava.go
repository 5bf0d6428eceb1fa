package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	DefaultOAuthBase   = "https://www.strava.com/oauth"
	DefaultRedirectURL = "http://localhost:8000/callback"
	Scopes             = "read,activity:read_all,activity:write"
)

// Credentials is the credential set shared by both flows. The Strava client
// owns one and rewrites the token pair in place when it refreshes.
type Credentials struct {
	ClientID     string
	ClientSecret string
	AccessToken  string
	RefreshToken string
}

// Athlete is the subset of the athlete object returned with a token grant.
type Athlete struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

func (a Athlete) DisplayName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Grant is the result of a token request.
type Grant struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	Athlete      Athlete
}

// Refresher mints a new token pair from a refresh token.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (Grant, error)
}

// OAuth talks to the Strava authorize and token endpoints.
type OAuth struct {
	config *oauth2.Config
	client *http.Client
}

func NewOAuth(clientID, clientSecret, oauthBase, redirectURL string, client *http.Client) *OAuth {
	if oauthBase == "" {
		oauthBase = DefaultOAuthBase
	}
	if redirectURL == "" {
		redirectURL = DefaultRedirectURL
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	base := strings.TrimRight(oauthBase, "/")
	return &OAuth{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:   base + "/authorize",
				TokenURL:  base + "/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
			RedirectURL: redirectURL,
			// Strava wants the scopes comma separated in a single parameter.
			Scopes: []string{Scopes},
		},
		client: client,
	}
}

// AuthCodeURL returns the URL the user visits to grant access.
func (o *OAuth) AuthCodeURL(state string) string {
	return o.config.AuthCodeURL(state)
}

// Exchange trades an authorization code for a token pair.
func (o *OAuth) Exchange(ctx context.Context, code string) (Grant, error) {
	tok, err := o.config.Exchange(o.withClient(ctx), code)
	if err != nil {
		return Grant{}, fmt.Errorf("failed to exchange code: %w", err)
	}
	return grantFromToken(tok), nil
}

// Refresh performs the refresh_token grant.
func (o *OAuth) Refresh(ctx context.Context, refreshToken string) (Grant, error) {
	if o.config.ClientID == "" || o.config.ClientSecret == "" {
		return Grant{}, fmt.Errorf("client ID and client secret must be set to refresh the token")
	}

	// An empty access token forces the token source to hit the token endpoint.
	src := o.config.TokenSource(o.withClient(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return Grant{}, fmt.Errorf("failed to refresh token: %w", err)
	}
	return grantFromToken(tok), nil
}

func (o *OAuth) withClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, o.client)
}

func grantFromToken(tok *oauth2.Token) Grant {
	g := Grant{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry,
	}
	if raw, ok := tok.Extra("athlete").(map[string]interface{}); ok {
		g.Athlete.FirstName, _ = raw["firstname"].(string)
		g.Athlete.LastName, _ = raw["lastname"].(string)
	}
	return g
}
