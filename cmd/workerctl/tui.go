package main

import (
	"context"

	"workerctl/internal/config"
	cloud "workerctl/sdk"
	"workerctl/sdk/models"

	tea "github.com/charmbracelet/bubbletea"
)

type ViewState int

type NavigateMsg struct {
	view ViewState
}

const (
	ViewMainMenu ViewState = iota
	ViewConfig
	ViewCreateWorker
	ViewWorkers
)

func navigate(view ViewState) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{view: view}
	}
}

type githubLister interface {
	ListInstallations(ctx context.Context) (*models.ListGithubAppInstallationsResponse, error)
	ListRepos(ctx context.Context, installationID string) ([]models.GithubRepo, error)
	ListBranches(ctx context.Context, installationID, owner, name string) ([]models.GithubBranch, error)
}

type workerService interface {
	Create(ctx context.Context, tenantID string, request models.CreateManagedWorkerRequest) (*models.ManagedWorker, error)
	List(ctx context.Context, tenantID string) (*models.ManagedWorkerList, error)
	Delete(ctx context.Context, managedWorkerID string) error
}

type Model struct {
	currentView ViewState
	settings    config.Settings
	client      *cloud.Client
	mainMenu    MainMenuModel
	config      ConfigModel
	wizard      WizardModel
	workers     WorkerListModel
	quitting    bool
}

func newModel(settings config.Settings, client *cloud.Client) Model {
	return Model{
		currentView: ViewMainMenu,
		settings:    settings,
		client:      client,
		mainMenu:    NewMainMenuModel(client.HasToken()),
		config:      NewConfigModel(settings),
	}
}

func (m Model) Init() tea.Cmd {
	return m.mainMenu.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle navigation messages
	if navMsg, ok := msg.(NavigateMsg); ok {
		m.currentView = navMsg.view
		// Views holding remote data are rebuilt on every visit
		switch navMsg.view {
		case ViewCreateWorker:
			m.wizard = NewWizardModel(m.client, m.settings.TenantID)
			return m, m.wizard.Init()
		case ViewWorkers:
			m.workers = NewWorkerListModel(m.client.ManagedWorkers, m.settings.TenantID)
			return m, m.workers.Init()
		}
		return m, nil
	}

	// Handle global key commands
	if msg, ok := msg.(tea.KeyMsg); ok {
		k := msg.String()

		if m.currentView == ViewConfig && (k == "q" || k == "esc") {
			m.currentView = ViewMainMenu
			return m, nil
		}

		if m.currentView == ViewMainMenu && k == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	// Route updates to current view
	var cmd tea.Cmd
	switch m.currentView {
	case ViewMainMenu:
		m.mainMenu, cmd = m.mainMenu.Update(msg)
	case ViewConfig:
		m.config, cmd = m.config.Update(msg)
	case ViewCreateWorker:
		m.wizard, cmd = m.wizard.Update(msg)
	case ViewWorkers:
		m.workers, cmd = m.workers.Update(msg)
	}

	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return "bye!\n"
	}

	switch m.currentView {
	case ViewMainMenu:
		return m.mainMenu.View()
	case ViewConfig:
		return m.config.View()
	case ViewCreateWorker:
		return m.wizard.View()
	case ViewWorkers:
		return m.workers.View()
	default:
		return "Unknown view\n"
	}
}

func runTUI(settings config.Settings) error {
	p := tea.NewProgram(newModel(settings, settings.NewClient()))
	_, err := p.Run()
	return err
}
