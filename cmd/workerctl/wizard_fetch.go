package main

import (
	"context"

	"workerctl/sdk/models"

	tea "github.com/charmbracelet/bubbletea"
)

// Fetch results carry the parameters they were issued for, so results that
// no longer match the form state can be dropped.

type installationsLoadedMsg struct {
	installations []models.GithubAppInstallation
	err           error
}

type reposLoadedMsg struct {
	installationID string
	repos          []models.GithubRepo
	err            error
}

type branchesLoadedMsg struct {
	installationID string
	owner          string
	name           string
	branches       []models.GithubBranch
	err            error
}

type workerCreatedMsg struct {
	worker *models.ManagedWorker
	err    error
}

func fetchInstallations(ctx context.Context, api githubLister) tea.Cmd {
	return func() tea.Msg {
		resp, err := api.ListInstallations(ctx)
		if err != nil {
			return installationsLoadedMsg{err: err}
		}
		return installationsLoadedMsg{installations: resp.Rows}
	}
}

func fetchRepos(ctx context.Context, api githubLister, installationID string) tea.Cmd {
	return func() tea.Msg {
		repos, err := api.ListRepos(ctx, installationID)
		return reposLoadedMsg{installationID: installationID, repos: repos, err: err}
	}
}

func fetchBranches(ctx context.Context, api githubLister, installationID, owner, name string) tea.Cmd {
	return func() tea.Msg {
		branches, err := api.ListBranches(ctx, installationID, owner, name)
		return branchesLoadedMsg{installationID: installationID, owner: owner, name: name, branches: branches, err: err}
	}
}

func createWorker(ctx context.Context, api workerService, tenantID string, req models.CreateManagedWorkerRequest) tea.Cmd {
	return func() tea.Msg {
		worker, err := api.Create(ctx, tenantID, req)
		return workerCreatedMsg{worker: worker, err: err}
	}
}
