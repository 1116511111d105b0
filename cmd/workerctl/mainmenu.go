package main

import (
	"workerctl/internal/config"
	"workerctl/internal/ui/components"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type MainMenuModel struct {
	choices      list.Model
	tokenMissing bool
}

type menuItem struct {
	title       string
	description string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.description }
func (i menuItem) FilterValue() string { return i.title }

const (
	menuCreateWorker = "Create worker"
	menuListWorkers  = "List workers"
	menuConfig       = "Configuration"
	menuQuit         = "Quit"
)

func NewMainMenuModel(hasToken bool) MainMenuModel {
	items := []list.Item{
		menuItem{title: menuCreateWorker, description: "Build and run a worker from a GitHub repository"},
		menuItem{title: menuListWorkers, description: "Show the managed workers of this tenant"},
		menuItem{title: menuConfig, description: "View API token and settings"},
		menuItem{title: menuQuit, description: "Exit the CLI"},
	}

	l := list.New(items, list.NewDefaultDelegate(), 80, 15)
	l.Title = "Main Menu"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	return MainMenuModel{
		choices:      l,
		tokenMissing: !hasToken,
	}
}

func (m MainMenuModel) Init() tea.Cmd {
	return nil
}

func (m MainMenuModel) Update(msg tea.Msg) (MainMenuModel, tea.Cmd) {
	// Without a token only quitting is possible
	if m.tokenMissing {
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h := 15
		m.choices.SetSize(msg.Width, h)
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			selectedItem := m.choices.SelectedItem()
			if selectedItem != nil {
				item := selectedItem.(menuItem)
				switch item.title {
				case menuCreateWorker:
					return m, navigate(ViewCreateWorker)
				case menuListWorkers:
					return m, navigate(ViewWorkers)
				case menuConfig:
					return m, navigate(ViewConfig)
				case menuQuit:
					return m, tea.Quit
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.choices, cmd = m.choices.Update(msg)
	return m, cmd
}

func (m MainMenuModel) View() string {
	header := components.RenderHeader() + "\n"

	if m.tokenMissing {
		warningStyle := lipgloss.NewStyle().
			Foreground(components.ColorError).
			Bold(true).
			MarginLeft(2).
			MarginTop(1).
			MarginBottom(1)

		instructionStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC")).
			MarginLeft(2).
			MarginBottom(1)

		exitStyle := lipgloss.NewStyle().
			Foreground(components.ColorMuted).
			MarginLeft(2).
			MarginTop(2)

		return header +
			warningStyle.Render("⚠ "+config.APITokenEnv+" is not set") + "\n" +
			instructionStyle.Render("Create an API token in the dashboard and export it, or add it to a .env file:") + "\n" +
			instructionStyle.Render("  export "+config.APITokenEnv+"=<token>") + "\n" +
			exitStyle.Render("Press any key to exit")
	}

	return header + m.choices.View()
}
