package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"workerctl/internal/config"
	"workerctl/internal/ui/components"
	"workerctl/internal/utils"
	"workerctl/internal/workerform"
	cloud "workerctl/sdk"
	"workerctl/sdk/models"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// buildPhase orders the selections inside the build configuration step
type buildPhase int

const (
	phaseInstallation buildPhase = iota
	phaseRepository
	phaseBranch
	phasePaths
)

type branchSource struct {
	installationID string
	owner          string
	name           string
}

// submission receives the request the form validated
type submission struct {
	req *models.CreateManagedWorkerRequest
}

func (s *submission) take() (models.CreateManagedWorkerRequest, bool) {
	if s.req == nil {
		return models.CreateManagedWorkerRequest{}, false
	}
	req := *s.req
	s.req = nil
	return req, true
}

// fetchHandle cancels the in-flight repository or branch request
type fetchHandle struct {
	cancel context.CancelFunc
}

func (h *fetchHandle) start() context.Context {
	h.stop()
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	return ctx
}

func (h *fetchHandle) stop() {
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}

type WizardModel struct {
	github   githubLister
	workers  workerService
	tenantID string
	linkURL  string

	form   *workerform.Form
	fields *wizardFields
	outbox *submission
	fetch  *fetchHandle

	step  workerform.Step
	phase buildPhase
	huh   *huh.Form

	installations       []models.GithubAppInstallation
	installationsLoaded bool
	noAccount           bool

	repos       *workerform.RepoTable
	reposFor    string
	branches    []models.GithubBranch
	branchesFor branchSource

	waiting   string
	fetchErr  error
	submitErr error
	created   *models.ManagedWorker

	spinner spinner.Model
	width   int
}

func NewWizardModel(client *cloud.Client, tenantID string) WizardModel {
	return newWizardModel(client.Github, client.ManagedWorkers, tenantID, client.LinkGithubAccountURL())
}

func newWizardModel(github githubLister, workers workerService, tenantID, linkURL string) WizardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	outbox := &submission{}
	m := WizardModel{
		github:   github,
		workers:  workers,
		tenantID: tenantID,
		linkURL:  linkURL,
		form: workerform.New(workerform.Options{
			OnSubmit: func(req models.CreateManagedWorkerRequest) {
				outbox.req = &req
			},
		}),
		fields:  &wizardFields{},
		outbox:  outbox,
		fetch:   &fetchHandle{},
		step:    workerform.StepName,
		repos:   workerform.NewRepoTable(nil),
		spinner: s,
		width:   80,
	}
	m.syncFields()
	m.huh = m.buildForm()
	return m
}

func (m WizardModel) Init() tea.Cmd {
	return tea.Batch(
		m.huh.Init(),
		m.spinner.Tick,
		fetchInstallations(context.Background(), m.github),
	)
}

func (m WizardModel) Update(msg tea.Msg) (WizardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case installationsLoadedMsg:
		return m.onInstallations(msg)

	case reposLoadedMsg:
		return m.onRepos(msg)

	case branchesLoadedMsg:
		return m.onBranches(msg)

	case workerCreatedMsg:
		return m.onCreated(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		k := msg.String()

		// Terminal screens: no account linked, or worker created
		if m.noAccount || m.created != nil {
			switch k {
			case "esc", "q", "enter":
				m.fetch.stop()
				if m.created != nil {
					return m, navigate(ViewWorkers)
				}
				return m, navigate(ViewMainMenu)
			}
			return m, nil
		}

		if m.form.Loading() {
			return m, nil
		}

		switch k {
		case "esc":
			return m.back()
		case "r":
			if m.huh == nil && m.fetchErr != nil {
				return m.retry()
			}
		}
	}

	if m.huh == nil {
		return m, nil
	}

	form, cmd := m.huh.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.huh = f
	}

	switch m.huh.State {
	case huh.StateCompleted:
		next, nextCmd := m.advance()
		return next, tea.Batch(cmd, nextCmd)
	case huh.StateAborted:
		m.fetch.stop()
		return m, navigate(ViewMainMenu)
	}

	return m, cmd
}

func (m WizardModel) onInstallations(msg installationsLoadedMsg) (WizardModel, tea.Cmd) {
	if msg.err != nil {
		utils.Logger().Warn("could not list installations", zap.Error(msg.err))
		m.fetchErr = msg.err
		if m.waitingFor(phaseInstallation) {
			m.waiting = ""
		}
		return m, nil
	}

	m.installationsLoaded = true
	m.installations = msg.installations
	if len(msg.installations) == 0 {
		m.noAccount = true
		m.huh = nil
		return m, nil
	}

	m.form.Dispatch(workerform.InstallationsLoaded{Installations: msg.installations})
	utils.LogDebug("loaded %d installations, selected %s", len(msg.installations), m.form.State().InstallationID)

	if m.waitingFor(phaseInstallation) {
		m.fetchErr = nil
		return m.enter()
	}
	return m, nil
}

func (m WizardModel) onRepos(msg reposLoadedMsg) (WizardModel, tea.Cmd) {
	if msg.installationID != m.form.State().InstallationID || errors.Is(msg.err, context.Canceled) {
		utils.LogDebug("dropping repositories of stale installation %s", msg.installationID)
		return m, nil
	}

	if msg.err != nil {
		m.fetchErr = msg.err
		m.waiting = ""
		return m, nil
	}

	m.repos = workerform.NewRepoTable(msg.repos)
	m.reposFor = msg.installationID

	if m.waitingFor(phaseRepository) {
		return m.enter()
	}
	return m, nil
}

func (m WizardModel) onBranches(msg branchesLoadedMsg) (WizardModel, tea.Cmd) {
	source := branchSource{installationID: msg.installationID, owner: msg.owner, name: msg.name}
	if source != m.currentBranchSource() || errors.Is(msg.err, context.Canceled) {
		utils.LogDebug("dropping branches of stale repository %s/%s", msg.owner, msg.name)
		return m, nil
	}

	if msg.err != nil {
		m.fetchErr = msg.err
		m.waiting = ""
		return m, nil
	}

	m.branches = msg.branches
	m.branchesFor = source

	if m.waitingFor(phaseBranch) {
		return m.enter()
	}
	return m, nil
}

func (m WizardModel) onCreated(msg workerCreatedMsg) (WizardModel, tea.Cmd) {
	m.form.SetLoading(false)

	if msg.err != nil {
		utils.Logger().Warn("could not create worker", zap.Error(msg.err))
		var apiErr *cloud.APIError
		if errors.As(msg.err, &apiErr) {
			m.form.SetFieldErrors(apiErr.FieldErrors())
		}
		m.submitErr = msg.err
		return m.enter()
	}

	utils.LogDebug("created managed worker %s", msg.worker.Metadata.ID)
	m.created = msg.worker
	m.huh = nil
	return m, nil
}

func (m WizardModel) waitingFor(phase buildPhase) bool {
	return m.huh == nil && m.step == workerform.StepBuildConfig && m.phase == phase
}

func (m WizardModel) currentBranchSource() branchSource {
	s := m.form.State()
	return branchSource{installationID: s.InstallationID, owner: s.RepoOwner, name: s.RepoName}
}

// advance applies the completed huh form to the form state and moves on
func (m WizardModel) advance() (WizardModel, tea.Cmd) {
	f := m.fields

	switch m.step {
	case workerform.StepName:
		m.form.Dispatch(workerform.NameChanged{Name: strings.TrimSpace(f.name)})
		m.step = workerform.StepBuildConfig
		m.phase = phaseInstallation

	case workerform.StepBuildConfig:
		switch m.phase {
		case phaseInstallation:
			m.form.Dispatch(workerform.InstallationSelected{ID: f.installationID})
			m.phase = phaseRepository

		case phaseRepository:
			if m.repos.Len() == 0 {
				m.phase = phaseInstallation
				break
			}
			if repo, ok := m.repos.Lookup(f.repoKey); ok {
				m.form.Dispatch(workerform.RepositorySelected{Owner: repo.RepoOwner, Name: repo.RepoName})
			}
			m.phase = phaseBranch

		case phaseBranch:
			if len(m.branches) == 0 {
				m.phase = phaseRepository
				break
			}
			m.form.Dispatch(workerform.BranchSelected{Branch: f.branch})
			m.phase = phasePaths

		case phasePaths:
			m.form.Dispatch(
				workerform.BuildDirChanged{Dir: strings.TrimSpace(f.buildDir)},
				workerform.DockerfilePathChanged{Path: strings.TrimSpace(f.dockerfilePath)},
			)
			m.step = workerform.StepRuntimeConfig
		}

	case workerform.StepRuntimeConfig:
		vars, err := parseEnvVars(f.envVars)
		if err == nil {
			m.form.Dispatch(workerform.EnvVarsChanged{Vars: vars})
		}
		m.form.Dispatch(workerform.IacToggled{Enabled: f.isIac})
		if !f.isIac {
			events := []workerform.Event{
				workerform.RegionSelected{Code: f.region},
				workerform.MachineTypeSelected{Title: f.machineType},
			}
			if replicas, err := strconv.Atoi(strings.TrimSpace(f.replicas)); err == nil {
				events = append(events, workerform.ReplicasChanged{Replicas: replicas})
			}
			m.form.Dispatch(events...)
		}
		m.step = workerform.StepReview

	case workerform.StepReview:
		if !m.form.CanSubmit() {
			m.step = workerform.StepBuildConfig
			m.phase = phaseInstallation
			break
		}
		if !f.confirm {
			m.step = workerform.StepRuntimeConfig
			break
		}
		return m.submit()
	}

	return m.enter()
}

// back returns to the previous step or selection
func (m WizardModel) back() (WizardModel, tea.Cmd) {
	switch {
	case m.step == workerform.StepName:
		m.fetch.stop()
		return m, navigate(ViewMainMenu)
	case m.step == workerform.StepBuildConfig && m.phase > phaseInstallation:
		m.phase--
	case m.step == workerform.StepBuildConfig:
		m.step = workerform.StepName
	case m.step == workerform.StepRuntimeConfig:
		m.step = workerform.StepBuildConfig
		m.phase = phasePaths
	default:
		m.step = m.step.Prev()
	}
	m.fetchErr = nil
	return m.enter()
}

func (m WizardModel) retry() (WizardModel, tea.Cmd) {
	m.fetchErr = nil
	if !m.installationsLoaded {
		m.waiting = "Loading GitHub accounts"
		return m, tea.Batch(m.spinner.Tick, fetchInstallations(context.Background(), m.github))
	}
	// Forget cached results so enter fetches again
	m.reposFor = ""
	m.branchesFor = branchSource{}
	return m.enter()
}

// enter shows the current step, fetching the data it needs first
func (m WizardModel) enter() (WizardModel, tea.Cmd) {
	state := m.form.State()
	m.huh = nil

	if m.step == workerform.StepBuildConfig {
		switch m.phase {
		case phaseInstallation:
			if !m.installationsLoaded {
				if m.fetchErr == nil {
					m.waiting = "Loading GitHub accounts"
				}
				return m, nil
			}

		case phaseRepository:
			if state.InstallationID == "" {
				m.phase = phaseInstallation
				return m.enter()
			}
			if m.reposFor != state.InstallationID {
				m.waiting = "Loading repositories"
				m.repos = workerform.NewRepoTable(nil)
				m.reposFor = ""
				ctx := m.fetch.start()
				return m, tea.Batch(m.spinner.Tick, fetchRepos(ctx, m.github, state.InstallationID))
			}

		case phaseBranch:
			if state.RepoOwner == "" || state.RepoName == "" {
				m.phase = phaseRepository
				return m.enter()
			}
			if m.branchesFor != m.currentBranchSource() {
				m.waiting = "Loading branches"
				m.branches = nil
				m.branchesFor = branchSource{}
				ctx := m.fetch.start()
				return m, tea.Batch(m.spinner.Tick, fetchBranches(ctx, m.github, state.InstallationID, state.RepoOwner, state.RepoName))
			}

		case phasePaths:
			if !workerform.BuildFieldsEnabled(state) {
				m.phase = phaseBranch
				return m.enter()
			}
		}
	}

	m.waiting = ""
	m.syncFields()
	m.huh = m.buildForm()
	return m, m.huh.Init()
}

func (m WizardModel) buildForm() *huh.Form {
	switch m.step {
	case workerform.StepName:
		return m.nameForm()
	case workerform.StepBuildConfig:
		switch m.phase {
		case phaseInstallation:
			return m.installationForm()
		case phaseRepository:
			return m.repositoryForm()
		case phaseBranch:
			return m.branchForm()
		default:
			return m.buildPathsForm()
		}
	case workerform.StepRuntimeConfig:
		return m.runtimeForm()
	default:
		return m.reviewForm()
	}
}

// syncFields copies the form state into the huh bindings
func (m WizardModel) syncFields() {
	s := m.form.State()
	f := m.fields

	f.name = s.Name
	f.installationID = s.InstallationID
	f.repoKey, _ = m.repos.KeyOf(s.RepoOwner, s.RepoName)
	f.branch = s.Branch
	if f.branch == "" {
		for _, b := range m.branches {
			if b.IsDefault {
				f.branch = b.BranchName
			}
		}
	}
	f.buildDir = s.BuildDir
	f.dockerfilePath = s.DockerfilePath
	f.envVars = formatEnvVars(s.EnvVars)
	f.isIac = s.IsIac
	f.region = s.Region
	f.replicas = strconv.Itoa(s.NumReplicas)
	f.machineType = workerform.DefaultMachineTypeTitle
	if mt, ok := s.MachineType(); ok {
		f.machineType = mt.Title
	}
	f.confirm = true
}

func (m WizardModel) submit() (WizardModel, tea.Cmd) {
	m.submitErr = nil

	if err := m.form.Submit(); err != nil {
		m.submitErr = err
		return m.enter()
	}

	req, ok := m.outbox.take()
	if !ok {
		return m.enter()
	}

	if m.tenantID == "" {
		m.submitErr = config.ErrMissingTenant
		return m.enter()
	}

	m.form.SetLoading(true)
	m.huh = nil
	utils.LogDebug("creating managed worker %q", req.Name)
	return m, tea.Batch(m.spinner.Tick, createWorker(context.Background(), m.workers, m.tenantID, req))
}

func (m WizardModel) View() string {
	var content strings.Builder
	content.WriteString(components.RenderHeader())

	if m.noAccount {
		content.WriteString(components.RenderAlert(
			"No GitHub account linked",
			"Managed workers are built from a GitHub repository. Link a GitHub account to continue:",
			lipgloss.NewStyle().Foreground(wizardAccent).Underline(true).Render(m.linkURL),
		))
		content.WriteString("\n")
		content.WriteString(components.HelpStyle.Render("Press 'esc' to go back"))
		return content.String()
	}

	if m.created != nil {
		content.WriteString("  ")
		content.WriteString(components.SuccessStyle.Render("✓ Worker created"))
		content.WriteString("\n\n")
		content.WriteString(components.RenderField("Name", m.created.Name, ""))
		content.WriteString("\n")
		content.WriteString(components.RenderField("ID", m.created.Metadata.ID, ""))
		content.WriteString("\n")
		content.WriteString(components.HelpStyle.Render("Press 'enter' to see your workers"))
		return content.String()
	}

	stepStyle := lipgloss.NewStyle().
		Foreground(wizardAccent).
		Bold(true).
		MarginLeft(2).
		MarginBottom(1)
	content.WriteString(stepStyle.Render(fmt.Sprintf("Step %d of %d · %s", int(m.step)+1, len(workerform.Steps()), m.step)))
	content.WriteString("\n")

	if m.step == workerform.StepReview {
		content.WriteString(m.renderReview())
		content.WriteString("\n\n")
	}

	indent := lipgloss.NewStyle().MarginLeft(2)
	errStyle := components.ErrorStyle.MarginLeft(2).Width(m.width - 4)

	switch {
	case m.form.Loading():
		content.WriteString(indent.Render(m.spinner.View() + " Creating worker..."))
	case m.fetchErr != nil && m.huh == nil:
		content.WriteString(errStyle.Render("✗ " + m.fetchErr.Error()))
		content.WriteString("\n")
		content.WriteString(components.HelpStyle.Render("Press 'r' to retry or 'esc' to go back"))
	case m.waiting != "":
		content.WriteString(indent.Render(m.spinner.View() + " " + m.waiting + "..."))
	case m.huh != nil:
		content.WriteString(indent.Render(m.huh.View()))
	}

	if m.submitErr != nil && !m.form.Loading() {
		var verr *workerform.ValidationError
		msg := m.submitErr.Error()
		if errors.As(m.submitErr, &verr) {
			msg = "Fix the highlighted fields before creating the worker"
		}
		content.WriteString("\n")
		content.WriteString(errStyle.Render("✗ " + msg))
	}

	return content.String()
}
