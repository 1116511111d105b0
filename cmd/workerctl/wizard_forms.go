package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"workerctl/internal/ui/components"
	"workerctl/internal/workerform"
	"workerctl/sdk/models"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
)

var wizardAccent = lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#9D7BFF"}

// wizardFields holds the values huh fields are bound to. It lives behind a
// pointer so bindings survive model copies.
type wizardFields struct {
	name           string
	installationID string
	repoKey        string
	branch         string
	buildDir       string
	dockerfilePath string
	envVars        string
	isIac          bool
	region         models.ManagedWorkerRegion
	replicas       string
	machineType    string
	confirm        bool
}

func wizardTheme() *huh.Theme {
	theme := huh.ThemeCharm()
	theme.Focused.Base = theme.Focused.Base.BorderForeground(wizardAccent)
	theme.Focused.Title = theme.Focused.Title.Foreground(wizardAccent)
	theme.Focused.TextInput.Cursor = theme.Focused.TextInput.Cursor.Foreground(wizardAccent)
	theme.Focused.TextInput.Prompt = theme.Focused.TextInput.Prompt.Foreground(wizardAccent)
	return theme
}

func newHuhForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).
		WithWidth(70).
		WithShowHelp(true).
		WithShowErrors(true).
		WithTheme(wizardTheme())
}

// describe appends a field's error under its description
func describe(description, errMsg string) string {
	if errMsg == "" {
		return description
	}
	return description + "\n" + components.ErrorStyle.Render("✗ "+errMsg)
}

// formatEnvVars renders variables as sorted KEY="value" lines
func formatEnvVars(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	out, err := godotenv.Marshal(vars)
	if err != nil {
		keys := make([]string, 0, len(vars))
		for k := range vars {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("%s=%q", k, vars[k]))
		}
		return strings.Join(lines, "\n")
	}
	return out
}

// parseEnvVars reads KEY=VALUE lines in .env syntax
func parseEnvVars(text string) (map[string]string, error) {
	if strings.TrimSpace(text) == "" {
		return map[string]string{}, nil
	}
	vars, err := godotenv.Unmarshal(text)
	if err != nil {
		return nil, fmt.Errorf("use one KEY=VALUE per line: %w", err)
	}
	return vars, nil
}

func validateEnvVars(text string) error {
	_, err := parseEnvVars(text)
	return err
}

func validateReplicas(s string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("must be a whole number")
	}
	return nil
}

func installationLabel(inst models.GithubAppInstallation) string {
	if inst.AccountName != "" {
		return inst.AccountName
	}
	return inst.Metadata.ID
}

func branchLabel(branch models.GithubBranch) string {
	if branch.IsDefault {
		return branch.BranchName + " (default)"
	}
	return branch.BranchName
}

func (m WizardModel) nameForm() *huh.Form {
	return newHuhForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Worker name").
				Description(describe("A unique name for this managed worker", m.form.Error(workerform.FieldName))).
				Placeholder("my-worker").
				Value(&m.fields.name),
		),
	)
}

func (m WizardModel) installationForm() *huh.Form {
	options := make([]huh.Option[string], 0, len(m.installations))
	for _, inst := range m.installations {
		options = append(options, huh.NewOption(installationLabel(inst), inst.Metadata.ID))
	}

	return newHuhForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("installation").
				Title("GitHub account").
				Description(describe("The linked account that owns the repository", m.form.Error(workerform.FieldInstallationID))).
				Options(options...).
				Value(&m.fields.installationID),
		),
	)
}

func (m WizardModel) repositoryForm() *huh.Form {
	if m.repos.Len() == 0 {
		return m.emptyChoiceForm("No repositories found",
			"The GitHub app cannot see any repository of this account. Grant it access in the installation settings, then come back.")
	}

	options := make([]huh.Option[string], 0, m.repos.Len())
	for _, key := range m.repos.Keys() {
		repo, _ := m.repos.Lookup(key)
		options = append(options, huh.NewOption(repo.FullName(), key))
	}

	errMsg := m.form.Error(workerform.FieldRepositoryName)
	if errMsg == "" {
		errMsg = m.form.Error(workerform.FieldRepositoryOwner)
	}

	return newHuhForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("repository").
				Title("Repository").
				Description(describe("Press / to filter", errMsg)).
				Options(options...).
				Height(12).
				Value(&m.fields.repoKey),
		),
	)
}

func (m WizardModel) branchForm() *huh.Form {
	if len(m.branches) == 0 {
		return m.emptyChoiceForm("No branches found", "The repository has no branches to build from.")
	}

	options := make([]huh.Option[string], 0, len(m.branches))
	for _, branch := range m.branches {
		options = append(options, huh.NewOption(branchLabel(branch), branch.BranchName))
	}

	return newHuhForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("branch").
				Title("Branch").
				Description(describe("The branch every build checks out", m.form.Error(workerform.FieldRepositoryBranch))).
				Options(options...).
				Height(10).
				Value(&m.fields.branch),
		),
	)
}

func (m WizardModel) buildPathsForm() *huh.Form {
	return newHuhForm(
		huh.NewGroup(
			huh.NewInput().
				Key("buildDir").
				Title("Build directory").
				Description(describe("Docker build context, relative to the repository root", m.form.Error(workerform.FieldBuildDir))).
				Value(&m.fields.buildDir),
			huh.NewInput().
				Key("dockerfilePath").
				Title("Dockerfile path").
				Description(describe("Relative to the repository root", m.form.Error(workerform.FieldDockerfilePath))).
				Value(&m.fields.dockerfilePath),
		),
	)
}

func (m WizardModel) runtimeForm() *huh.Form {
	regionOptions := make([]huh.Option[models.ManagedWorkerRegion], 0, len(workerform.Regions()))
	for _, r := range workerform.Regions() {
		regionOptions = append(regionOptions, huh.NewOption(fmt.Sprintf("%s (%s)", r.DisplayName, r.Code), r.Code))
	}

	machineOptions := make([]huh.Option[string], 0, len(workerform.MachineTypes()))
	for _, mt := range workerform.MachineTypes() {
		machineOptions = append(machineOptions, huh.NewOption(mt.Title, mt.Title))
	}

	fields := m.fields
	machineErr := m.form.Error(workerform.FieldCPUKind)
	if machineErr == "" {
		machineErr = m.form.Error(workerform.FieldCPUs)
	}
	if machineErr == "" {
		machineErr = m.form.Error(workerform.FieldMemoryMB)
	}

	return newHuhForm(
		huh.NewGroup(
			huh.NewText().
				Key("envVars").
				Title("Environment variables").
				Description(describe("One KEY=VALUE per line", m.form.Error(workerform.FieldEnvVars))).
				Lines(6).
				Value(&fields.envVars).
				Validate(validateEnvVars),
			huh.NewSelect[bool]().
				Key("isIac").
				Title("Runtime configuration").
				Options(
					huh.NewOption("Configure region, replicas and machine here", false),
					huh.NewOption("Infra-as-code: the worker declares its own runtime", true),
				).
				Value(&fields.isIac),
		),
		huh.NewGroup(
			huh.NewSelect[models.ManagedWorkerRegion]().
				Key("region").
				Title("Region").
				Description(describe("Where the worker runs", m.form.Error(workerform.FieldRegions))).
				Options(regionOptions...).
				Height(8).
				Value(&fields.region),
			huh.NewInput().
				Key("replicas").
				Title("Replicas").
				Description(describe("Between 0 and 16", m.form.Error(workerform.FieldNumReplicas))).
				Value(&fields.replicas).
				Validate(validateReplicas),
			huh.NewSelect[string]().
				Key("machineType").
				Title("Machine type").
				Description(describe("CPU and memory of each replica", machineErr)).
				Options(machineOptions...).
				Height(8).
				Value(&fields.machineType),
		).WithHideFunc(func() bool { return fields.isIac }),
	)
}

func (m WizardModel) reviewForm() *huh.Form {
	if !m.form.CanSubmit() {
		return newHuhForm(
			huh.NewGroup(
				huh.NewConfirm().
					Key("confirm").
					Title("Select an installation, repository and branch before creating the worker").
					Affirmative("Back").
					Negative("").
					Value(&m.fields.confirm),
			),
		)
	}

	return newHuhForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title("Create this worker?").
				Affirmative("Create").
				Negative("Back").
				Value(&m.fields.confirm),
		),
	)
}

// emptyChoiceForm stands in for a select with nothing to choose; completing it goes back
func (m WizardModel) emptyChoiceForm(title, description string) *huh.Form {
	return newHuhForm(
		huh.NewGroup(
			huh.NewNote().
				Title(title).
				Description(description),
			huh.NewConfirm().
				Key("confirm").
				Title("Go back?").
				Affirmative("Back").
				Negative("").
				Value(&m.fields.confirm),
		),
	)
}

// renderReview lists the collected values with their errors
func (m WizardModel) renderReview() string {
	s := m.form.State()

	repo := ""
	if s.RepoOwner != "" && s.RepoName != "" {
		repo = s.RepoOwner + "/" + s.RepoName
	}

	account := ""
	for _, inst := range m.installations {
		if inst.Metadata.ID == s.InstallationID {
			account = installationLabel(inst)
		}
	}

	machine := fmt.Sprintf("%d CPU %s, %d MB", s.CPUs, s.CPUKind, s.MemoryMB)
	if mt, ok := s.MachineType(); ok {
		machine = mt.Title
	}

	region := string(s.Region)
	if r, ok := workerform.FindRegion(s.Region); ok {
		region = fmt.Sprintf("%s (%s)", r.DisplayName, r.Code)
	}

	errOf := m.form.Error
	rows := []string{
		components.RenderField("Name", s.Name, errOf(workerform.FieldName)),
		components.RenderField("GitHub account", account, errOf(workerform.FieldInstallationID)),
		components.RenderField("Repository", repo, firstNonEmpty(errOf(workerform.FieldRepositoryOwner), errOf(workerform.FieldRepositoryName))),
		components.RenderField("Branch", s.Branch, errOf(workerform.FieldRepositoryBranch)),
		components.RenderField("Build directory", s.BuildDir, firstNonEmpty(errOf(workerform.FieldBuildDir), errOf(workerform.FieldSteps))),
		components.RenderField("Dockerfile", s.DockerfilePath, errOf(workerform.FieldDockerfilePath)),
		components.RenderField("Environment", fmt.Sprintf("%d variable(s)", len(s.EnvVars)), errOf(workerform.FieldEnvVars)),
	}

	if s.IsIac {
		rows = append(rows, components.RenderField("Runtime", "infra-as-code", ""))
	} else {
		rows = append(rows,
			components.RenderField("Region", region, errOf(workerform.FieldRegions)),
			components.RenderField("Replicas", strconv.Itoa(s.NumReplicas), errOf(workerform.FieldNumReplicas)),
			components.RenderField("Machine type", machine, firstNonEmpty(errOf(workerform.FieldCPUKind), errOf(workerform.FieldCPUs), errOf(workerform.FieldMemoryMB))),
		)
	}

	return strings.Join(rows, "\n")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
