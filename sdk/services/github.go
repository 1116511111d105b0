package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"workerctl/sdk/models"
)

// GithubService handles the GitHub app endpoints: installations, repos and branches
type GithubService struct {
	client ClientInterface
}

func NewGithubService(client ClientInterface) *GithubService {
	return &GithubService{
		client: client,
	}
}

// ListInstallations retrieves the GitHub accounts linked to the current user
func (s *GithubService) ListInstallations(ctx context.Context) (*models.ListGithubAppInstallationsResponse, error) {
	req, err := s.client.NewRequest(ctx, http.MethodGet, "/api/v1/cloud/github-app/installations", nil)
	if err != nil {
		return nil, err
	}

	var installations models.ListGithubAppInstallationsResponse
	if err := doJSON(s.client, req, &installations); err != nil {
		return nil, fmt.Errorf("could not list installations: %w", err)
	}

	return &installations, nil
}

// ListRepos retrieves the repositories an installation can read
func (s *GithubService) ListRepos(ctx context.Context, installationID string) ([]models.GithubRepo, error) {
	if installationID == "" {
		return nil, nil
	}

	path := fmt.Sprintf("/api/v1/cloud/github-app/installations/%s/repos", url.PathEscape(installationID))
	req, err := s.client.NewRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var repos []models.GithubRepo
	if err := doJSON(s.client, req, &repos); err != nil {
		return nil, fmt.Errorf("could not list repos: %w", err)
	}

	return repos, nil
}

// ListBranches retrieves the branches of a repository readable by an installation
func (s *GithubService) ListBranches(ctx context.Context, installationID, owner, name string) ([]models.GithubBranch, error) {
	if installationID == "" || owner == "" || name == "" {
		return nil, nil
	}

	path := fmt.Sprintf(
		"/api/v1/cloud/github-app/installations/%s/repos/%s/%s/branches",
		url.PathEscape(installationID),
		url.PathEscape(owner),
		url.PathEscape(name),
	)
	req, err := s.client.NewRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var branches []models.GithubBranch
	if err := doJSON(s.client, req, &branches); err != nil {
		return nil, fmt.Errorf("could not list branches: %w", err)
	}

	return branches, nil
}
