package cloud

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"workerctl/sdk/services"

	"github.com/google/uuid"
)

const DefaultBaseURL = "https://cloud.onhatchet.run"

// ClientOption is a function that configures a Client
type ClientOption func(*Client)

// Client is the main client for interacting with the managed worker cloud API
// After creation, the client is immutable and safe for concurrent use
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client

	// Custom headers to include in all requests
	headers map[string]string

	// Session configuration
	timeout     time.Duration
	retryConfig *RetryConfig

	// Service groups
	Github         *services.GithubService
	ManagedWorkers *services.ManagedWorkerService
}

// RetryConfig configures retry behavior for failed requests
type RetryConfig struct {
	MaxRetries int
	RetryDelay time.Duration
}

// NewClient creates a new Client authenticating with the given API token
func NewClient(token string, opts ...ClientOption) *Client {
	client := &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		headers: make(map[string]string),
		timeout: 30 * time.Second,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		retryConfig: &RetryConfig{
			MaxRetries: 3,
			RetryDelay: time.Second,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	client.Github = services.NewGithubService(client)
	client.ManagedWorkers = services.NewManagedWorkerService(client)

	return client
}

// WithBaseURL sets a custom base URL for the client
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
		c.httpClient.Timeout = timeout
	}
}

// WithRetryConfig sets the retry configuration
func WithRetryConfig(config *RetryConfig) ClientOption {
	return func(c *Client) {
		c.retryConfig = config
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader adds a custom header that will be included in all requests
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithHeaders adds multiple custom headers that will be included in all requests
func WithHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// GetBaseURL returns the configured base URL
func (c *Client) GetBaseURL() string {
	return c.baseURL
}

// HasToken reports whether an API token is configured
func (c *Client) HasToken() bool {
	return c.token != ""
}

// LinkGithubAccountURL is where a user links a new GitHub account to the cloud account
func (c *Client) LinkGithubAccountURL() string {
	return c.baseURL + "/api/v1/cloud/users/github-app/start"
}

// NewRequest creates a new HTTP request with auth headers and custom headers
func (c *Client) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	url := fmt.Sprintf("%s%s", c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	return req, nil
}

// Do executes an HTTP request, retrying on network errors and 5xx responses
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error

	for attempt := 0; attempt <= c.retryConfig.MaxRetries; attempt++ {
		if attempt > 0 && req.GetBody != nil {
			body, bodyErr := req.GetBody()
			if bodyErr != nil {
				return nil, fmt.Errorf("failed to rewind request body: %w", bodyErr)
			}
			req.Body = body
		}

		resp, err = c.httpClient.Do(req)

		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		if req.Context().Err() != nil {
			break
		}

		if attempt < c.retryConfig.MaxRetries {
			if resp != nil {
				resp.Body.Close()
			}
			time.Sleep(c.retryConfig.RetryDelay * time.Duration(attempt+1))
		}
	}

	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	return resp, nil
}
