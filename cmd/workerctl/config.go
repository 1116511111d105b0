package main

import (
	"strings"

	"workerctl/internal/config"
	"workerctl/internal/ui/components"
	"workerctl/internal/utils"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type ConfigModel struct {
	settings config.Settings
}

func NewConfigModel(settings config.Settings) ConfigModel {
	return ConfigModel{
		settings: settings,
	}
}

func (m ConfigModel) Init() tea.Cmd {
	return nil
}

func (m ConfigModel) Update(msg tea.Msg) (ConfigModel, tea.Cmd) {
	return m, nil
}

func (m ConfigModel) View() string {
	containerStyle := lipgloss.NewStyle().
		MarginTop(1)

	token := ""
	if m.settings.APIToken != "" {
		token = config.MaskToken(m.settings.APIToken)
	}

	var content strings.Builder
	content.WriteString(components.RenderHeader())
	content.WriteString(containerStyle.Render(components.RenderField("API token", token, "")))
	content.WriteString("\n")
	content.WriteString(components.RenderField("Base URL", m.settings.BaseURL, ""))
	content.WriteString("\n")
	content.WriteString(components.RenderField("Tenant", m.settings.TenantID, ""))
	content.WriteString("\n")
	content.WriteString(components.RenderField("Debug log", utils.LogFilePath(), ""))
	content.WriteString("\n")

	content.WriteString(components.HelpStyle.Render("Press 'esc' or 'q' to go back"))

	return content.String()
}
