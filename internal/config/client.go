// Package config provides configuration management for workerctl.
//
// This file handles loading configuration from environment variables and .env
// files, and creating configured cloud SDK clients.
package config

import (
	"errors"
	"os"

	cloud "workerctl/sdk"

	"github.com/joho/godotenv"
)

const (
	APITokenEnv = "WORKERCTL_API_TOKEN"
	BaseURLEnv  = "WORKERCTL_BASE_URL"
	TenantIDEnv = "WORKERCTL_TENANT_ID"
)

var (
	ErrMissingToken  = errors.New(APITokenEnv + " is not set")
	ErrMissingTenant = errors.New(TenantIDEnv + " is not set")
)

// Settings is the resolved environment configuration
type Settings struct {
	APIToken string
	BaseURL  string
	TenantID string
}

// Load reads .env (if present) and the environment. Variables already set in
// the environment take precedence over .env.
func Load() Settings {
	godotenv.Load()

	baseURL := os.Getenv(BaseURLEnv)
	if baseURL == "" {
		baseURL = cloud.DefaultBaseURL
	}

	return Settings{
		APIToken: os.Getenv(APITokenEnv),
		BaseURL:  baseURL,
		TenantID: os.Getenv(TenantIDEnv),
	}
}

// Validate checks the settings needed for network commands
func (s Settings) Validate() error {
	if s.APIToken == "" {
		return ErrMissingToken
	}
	if s.TenantID == "" {
		return ErrMissingTenant
	}
	return nil
}

// NewClient creates a cloud client from the settings
func (s Settings) NewClient(opts ...cloud.ClientOption) *cloud.Client {
	opts = append([]cloud.ClientOption{cloud.WithBaseURL(s.BaseURL)}, opts...)
	return cloud.NewClient(s.APIToken, opts...)
}

// LoadClient loads configuration from environment and creates a cloud client
func LoadClient() *cloud.Client {
	return Load().NewClient()
}

// MaskToken hides all but the last four characters of a token
func MaskToken(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}
