// Package models provides data structures for GitHub app integration.
//
// This file defines models for GitHub app installations, the repositories an
// installation can read, and their branches. An installation links the cloud
// account to a GitHub account and authorizes the builder to pull source code.
package models

// APIResourceMeta is the metadata block the cloud API attaches to resources
type APIResourceMeta struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// PaginationResponse describes a page of a list response
type PaginationResponse struct {
	CurrentPage int64 `json:"current_page,omitempty"`
	NextPage    int64 `json:"next_page,omitempty"`
	NumPages    int64 `json:"num_pages,omitempty"`
}

// GithubAppInstallation represents a GitHub account linked through the GitHub app
type GithubAppInstallation struct {
	Metadata                APIResourceMeta `json:"metadata"`
	AccountName             string          `json:"account_name"`
	AccountAvatarURL        string          `json:"account_avatar_url,omitempty"`
	InstallationSettingsURL string          `json:"installation_settings_url,omitempty"`
}

// ListGithubAppInstallationsResponse is the response from listing installations
type ListGithubAppInstallationsResponse struct {
	Pagination PaginationResponse      `json:"pagination"`
	Rows       []GithubAppInstallation `json:"rows"`
}

// GithubRepo identifies a repository readable by an installation
type GithubRepo struct {
	RepoOwner string `json:"repo_owner"`
	RepoName  string `json:"repo_name"`
}

// FullName returns owner/name
func (r GithubRepo) FullName() string {
	return r.RepoOwner + "/" + r.RepoName
}

// GithubBranch represents a branch of a repository
type GithubBranch struct {
	BranchName string `json:"branch_name"`
	IsDefault  bool   `json:"is_default"`
}
