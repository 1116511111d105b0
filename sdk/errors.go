package cloud

import (
	"fmt"

	"workerctl/sdk/services"
)

// APIError represents a non-success response from the cloud API
type APIError = services.APIError

// NetworkError represents a network-level error
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
