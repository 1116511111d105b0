// Package services provides the service groups of the cloud API client.
//
// Services depend only on ClientInterface so they can be exercised against a
// test server without the root client package.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"workerctl/sdk/models"
)

// ClientInterface defines the methods needed from Client
type ClientInterface interface {
	NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error)
	Do(req *http.Request) (*http.Response, error)
	GetBaseURL() string
}

// APIError represents a non-success response from the cloud API
type APIError struct {
	StatusCode int
	RequestID  string
	Errors     []models.APIError
}

func (e *APIError) Error() string {
	msg := e.message()
	if e.RequestID != "" {
		return fmt.Sprintf("api error (status %d, request_id: %s): %s", e.StatusCode, e.RequestID, msg)
	}
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, msg)
}

func (e *APIError) message() string {
	if len(e.Errors) == 0 {
		return http.StatusText(e.StatusCode)
	}
	parts := make([]string, 0, len(e.Errors))
	for _, apiErr := range e.Errors {
		if apiErr.Field != "" {
			parts = append(parts, apiErr.Field+": "+apiErr.Description)
		} else {
			parts = append(parts, apiErr.Description)
		}
	}
	return strings.Join(parts, "; ")
}

// FieldErrors returns the field-scoped errors carried by the response, keyed by field name
func (e *APIError) FieldErrors() map[string]string {
	fields := make(map[string]string)
	for _, apiErr := range e.Errors {
		if apiErr.Field == "" {
			continue
		}
		if _, ok := fields[apiErr.Field]; !ok {
			fields[apiErr.Field] = apiErr.Description
		}
	}
	return fields
}

// newAPIError reads an error body; bodies that are not in the API error format
// are kept verbatim as a single description
func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		RequestID:  resp.Request.Header.Get("X-Request-Id"),
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil || len(bodyBytes) == 0 {
		return apiErr
	}

	var body models.APIErrors
	if err := json.Unmarshal(bodyBytes, &body); err == nil && len(body.Errors) > 0 {
		apiErr.Errors = body.Errors
		return apiErr
	}

	apiErr.Errors = []models.APIError{{Description: strings.TrimSpace(string(bodyBytes))}}
	return apiErr
}

// doJSON executes req and decodes a 2xx body into out when out is non-nil
func doJSON(client ClientInterface, req *http.Request, out interface{}) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
