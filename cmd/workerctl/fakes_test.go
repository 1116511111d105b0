package main

import (
	"context"
	"errors"
	"testing"

	"workerctl/sdk/models"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeGithub struct {
	installations []models.GithubAppInstallation
	repos         map[string][]models.GithubRepo
	branches      map[string][]models.GithubBranch
	err           error
}

func (f *fakeGithub) ListInstallations(ctx context.Context) (*models.ListGithubAppInstallationsResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ListGithubAppInstallationsResponse{Rows: f.installations}, nil
}

func (f *fakeGithub) ListRepos(ctx context.Context, installationID string) ([]models.GithubRepo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.repos[installationID], f.err
}

func (f *fakeGithub) ListBranches(ctx context.Context, installationID, owner, name string) ([]models.GithubBranch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.branches[owner+"/"+name], f.err
}

type createCall struct {
	tenantID string
	request  models.CreateManagedWorkerRequest
}

type fakeWorkers struct {
	created   []createCall
	createErr error
	workers   []models.ManagedWorker
	deleted   []string
}

func (f *fakeWorkers) Create(ctx context.Context, tenantID string, request models.CreateManagedWorkerRequest) (*models.ManagedWorker, error) {
	f.created = append(f.created, createCall{tenantID: tenantID, request: request})
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.ManagedWorker{
		Metadata: models.APIResourceMeta{ID: "mw-1"},
		Name:     request.Name,
	}, nil
}

func (f *fakeWorkers) List(ctx context.Context, tenantID string) (*models.ManagedWorkerList, error) {
	return &models.ManagedWorkerList{Rows: f.workers}, nil
}

func (f *fakeWorkers) Delete(ctx context.Context, id string) error {
	for i, w := range f.workers {
		if w.Metadata.ID == id {
			f.deleted = append(f.deleted, id)
			f.workers = append(f.workers[:i], f.workers[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

// collect runs a command built from our own fetch commands and spinner ticks,
// flattening batches, and returns the produced messages.
func collect(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collect(t, c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}
