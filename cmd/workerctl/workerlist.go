package main

import (
	"context"
	"fmt"
	"strings"

	"workerctl/internal/config"
	"workerctl/internal/ui/components"
	"workerctl/internal/utils"
	"workerctl/internal/workerform"
	"workerctl/sdk/models"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type workersLoadedMsg struct {
	workers []models.ManagedWorker
	err     error
}

type workerDeletedMsg struct {
	id  string
	err error
}

type workerItem struct {
	worker models.ManagedWorker
}

func (i workerItem) Title() string { return i.worker.Name }

func (i workerItem) Description() string {
	return describeWorker(i.worker)
}

func (i workerItem) FilterValue() string { return i.worker.Name }

// describeWorker summarises source and runtime on one line
func describeWorker(w models.ManagedWorker) string {
	parts := []string{}

	bc := w.BuildConfig
	if bc.GithubRepository.RepoOwner != "" {
		parts = append(parts, fmt.Sprintf("%s@%s", bc.GithubRepository.FullName(), bc.GithubRepositoryBranch))
	}

	if w.IsIac {
		parts = append(parts, "infra-as-code")
	}

	for _, rc := range w.RuntimeConfigs {
		machine := fmt.Sprintf("%d CPU %s, %d MB", rc.CPUs, rc.CPUKind, rc.MemoryMB)
		if mt, ok := workerform.MatchMachineType(rc.CPUKind, rc.CPUs, rc.MemoryMB); ok {
			machine = mt.Title
		}
		parts = append(parts, fmt.Sprintf("%dx %s in %s", rc.NumReplicas, machine, rc.Region))
	}

	return strings.Join(parts, " · ")
}

func loadWorkers(api workerService, tenantID string) tea.Cmd {
	return func() tea.Msg {
		resp, err := api.List(context.Background(), tenantID)
		if err != nil {
			return workersLoadedMsg{err: err}
		}
		return workersLoadedMsg{workers: resp.Rows}
	}
}

func deleteWorker(api workerService, id string) tea.Cmd {
	return func() tea.Msg {
		return workerDeletedMsg{id: id, err: api.Delete(context.Background(), id)}
	}
}

type WorkerListModel struct {
	api           workerService
	tenantID      string
	list          list.Model
	spinner       spinner.Model
	loading       bool
	err           error
	pendingDelete *models.ManagedWorker
	status        string
}

func NewWorkerListModel(api workerService, tenantID string) WorkerListModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	l := list.New(nil, list.NewDefaultDelegate(), 80, 15)
	l.Title = "Managed workers"
	l.SetShowStatusBar(false)

	return WorkerListModel{
		api:      api,
		tenantID: tenantID,
		list:     l,
		spinner:  s,
		loading:  true,
	}
}

func (m WorkerListModel) Init() tea.Cmd {
	if m.tenantID == "" {
		return nil
	}
	return tea.Batch(m.spinner.Tick, loadWorkers(m.api, m.tenantID))
}

func (m WorkerListModel) Update(msg tea.Msg) (WorkerListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case workersLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.workers))
		for _, w := range msg.workers {
			items = append(items, workerItem{worker: w})
		}
		return m, m.list.SetItems(items)

	case workerDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		utils.LogDebug("deleted managed worker %s", msg.id)
		m.status = "Deleted " + msg.id
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, loadWorkers(m.api, m.tenantID))

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, 15)
		return m, nil

	case tea.KeyMsg:
		k := msg.String()

		if m.pendingDelete != nil {
			target := m.pendingDelete
			m.pendingDelete = nil
			if k == "y" {
				m.status = ""
				return m, deleteWorker(m.api, target.Metadata.ID)
			}
			m.status = "Delete cancelled"
			return m, nil
		}

		if m.list.FilterState() == list.Filtering {
			break
		}

		switch k {
		case "esc", "q":
			return m, navigate(ViewMainMenu)
		case "r":
			if m.tenantID == "" {
				return m, nil
			}
			m.loading = true
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, loadWorkers(m.api, m.tenantID))
		case "d":
			if item, ok := m.list.SelectedItem().(workerItem); ok {
				w := item.worker
				m.pendingDelete = &w
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m WorkerListModel) View() string {
	var content strings.Builder
	content.WriteString(components.RenderHeader())
	content.WriteString("\n")

	indent := lipgloss.NewStyle().MarginLeft(2)

	switch {
	case m.tenantID == "":
		content.WriteString(components.ErrorStyle.MarginLeft(2).Render("✗ " + config.ErrMissingTenant.Error()))
		content.WriteString("\n")
	case m.loading:
		content.WriteString(indent.Render(m.spinner.View() + " Loading workers..."))
		content.WriteString("\n")
	case m.err != nil:
		content.WriteString(components.ErrorStyle.MarginLeft(2).Render("✗ " + m.err.Error()))
		content.WriteString("\n")
	default:
		content.WriteString(m.list.View())
		content.WriteString("\n")
	}

	if m.pendingDelete != nil {
		content.WriteString(components.ErrorStyle.MarginLeft(2).Render(
			fmt.Sprintf("Delete %s (%s)? Press 'y' to confirm", m.pendingDelete.Name, m.pendingDelete.Metadata.ID)))
		content.WriteString("\n")
	} else if m.status != "" {
		content.WriteString(indent.Render(m.status))
		content.WriteString("\n")
	}

	content.WriteString(components.HelpStyle.Render("'r' refresh · 'd' delete · 'esc' back"))
	return content.String()
}
