// Package config loads settings from the env file and the process
// environment. Environment variables take precedence over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"strava-haddock/auth"
	"strava-haddock/persona"
	"strava-haddock/strava"
)

const DefaultEnvFile = ".env"

const placeholderAnthropicKey = "your_anthropic_api_key_here"

var (
	ErrMissingAccessToken  = errors.New("no Strava access token, run 'strava-auth' first")
	ErrMissingAnthropicKey = errors.New("set ANTHROPIC_API_KEY in the env file (get a key from https://console.anthropic.com/)")
)

type Config struct {
	EnvFile     string
	Strava      Strava
	Anthropic   Anthropic
	HTTPTimeout time.Duration
}

type Strava struct {
	ClientID     string
	ClientSecret string
	AccessToken  string
	RefreshToken string
	APIBase      string
	OAuthBase    string
}

type Anthropic struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
}

// Load reads envFile (if it exists) and overlays the environment.
func Load(envFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("strava_api_base", strava.DefaultBaseURL)
	v.SetDefault("strava_oauth_base", auth.DefaultOAuthBase)
	v.SetDefault("anthropic_base_url", persona.DefaultBaseURL)
	v.SetDefault("anthropic_model", persona.DefaultModel)
	v.SetDefault("anthropic_max_tokens", persona.DefaultMaxTokens)
	v.SetDefault("http_timeout", 30*time.Second)
	v.AutomaticEnv()

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
			}
		}
	}

	return &Config{
		EnvFile: envFile,
		Strava: Strava{
			ClientID:     v.GetString("strava_client_id"),
			ClientSecret: v.GetString("strava_client_secret"),
			AccessToken:  v.GetString("strava_access_token"),
			RefreshToken: v.GetString("strava_refresh_token"),
			APIBase:      v.GetString("strava_api_base"),
			OAuthBase:    v.GetString("strava_oauth_base"),
		},
		Anthropic: Anthropic{
			APIKey:    v.GetString("anthropic_api_key"),
			BaseURL:   v.GetString("anthropic_base_url"),
			Model:     v.GetString("anthropic_model"),
			MaxTokens: v.GetInt("anthropic_max_tokens"),
		},
		HTTPTimeout: v.GetDuration("http_timeout"),
	}, nil
}

func (s Strava) Credentials() auth.Credentials {
	return auth.Credentials{
		ClientID:     s.ClientID,
		ClientSecret: s.ClientSecret,
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
	}
}

func (c *Config) ValidateStravaClient() error {
	return auth.ValidateClient(c.Strava.Credentials())
}

func (c *Config) ValidateStravaToken() error {
	if c.Strava.AccessToken == "" {
		return ErrMissingAccessToken
	}
	return nil
}

func (c *Config) ValidateAnthropic() error {
	if c.Anthropic.APIKey == "" || c.Anthropic.APIKey == placeholderAnthropicKey {
		return ErrMissingAnthropicKey
	}
	return nil
}
