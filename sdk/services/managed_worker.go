// Package services provides the managed worker service.
//
// ManagedWorkerService creates, lists and deletes managed workers for a tenant.
// Create returns *APIError on rejection; its FieldErrors map is what the create
// wizard shows next to the offending fields.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"workerctl/sdk/models"
)

type ManagedWorkerService struct {
	client ClientInterface
}

func NewManagedWorkerService(client ClientInterface) *ManagedWorkerService {
	return &ManagedWorkerService{
		client: client,
	}
}

// Create provisions a managed worker in the tenant
func (s *ManagedWorkerService) Create(ctx context.Context, tenantID string, request models.CreateManagedWorkerRequest) (*models.ManagedWorker, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	path := fmt.Sprintf("/api/v1/cloud/tenants/%s/managed-worker", url.PathEscape(tenantID))
	req, err := s.client.NewRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var worker models.ManagedWorker
	if err := doJSON(s.client, req, &worker); err != nil {
		return nil, err
	}

	return &worker, nil
}

// List retrieves the managed workers of the tenant
func (s *ManagedWorkerService) List(ctx context.Context, tenantID string) (*models.ManagedWorkerList, error) {
	path := fmt.Sprintf("/api/v1/cloud/tenants/%s/managed-worker", url.PathEscape(tenantID))
	req, err := s.client.NewRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var workers models.ManagedWorkerList
	if err := doJSON(s.client, req, &workers); err != nil {
		return nil, fmt.Errorf("could not list managed workers: %w", err)
	}

	return &workers, nil
}

// Delete removes a managed worker
func (s *ManagedWorkerService) Delete(ctx context.Context, managedWorkerID string) error {
	path := fmt.Sprintf("/api/v1/cloud/managed-worker/%s", url.PathEscape(managedWorkerID))
	req, err := s.client.NewRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}

	if err := doJSON(s.client, req, nil); err != nil {
		return fmt.Errorf("could not delete managed worker: %w", err)
	}

	return nil
}
