package main

import (
	"context"
	"net/http"
	"testing"

	"workerctl/internal/config"
	"workerctl/internal/workerform"
	cloud "workerctl/sdk"
	"workerctl/sdk/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLinkURL = "https://cloud.example.com/api/v1/cloud/users/github-app/start"

type wizardFixture struct {
	github  *fakeGithub
	workers *fakeWorkers
	instA   models.GithubAppInstallation
	instB   models.GithubAppInstallation
}

func newFixture() *wizardFixture {
	instA := models.GithubAppInstallation{Metadata: models.APIResourceMeta{ID: uuid.NewString()}, AccountName: "acme"}
	instB := models.GithubAppInstallation{Metadata: models.APIResourceMeta{ID: uuid.NewString()}, AccountName: "globex"}

	return &wizardFixture{
		instA: instA,
		instB: instB,
		github: &fakeGithub{
			installations: []models.GithubAppInstallation{instA, instB},
			repos: map[string][]models.GithubRepo{
				instA.Metadata.ID: {{RepoOwner: "acme", RepoName: "api"}, {RepoOwner: "acme", RepoName: "web"}},
				instB.Metadata.ID: {{RepoOwner: "globex", RepoName: "jobs"}},
			},
			branches: map[string][]models.GithubBranch{
				"acme/api":    {{BranchName: "dev"}, {BranchName: "main", IsDefault: true}},
				"globex/jobs": {{BranchName: "trunk", IsDefault: true}},
			},
		},
		workers: &fakeWorkers{},
	}
}

func (f *wizardFixture) wizard(tenantID string) WizardModel {
	return newWizardModel(f.github, f.workers, tenantID, testLinkURL)
}

func update(t *testing.T, m WizardModel, msg tea.Msg) WizardModel {
	t.Helper()
	m, _ = m.Update(msg)
	return m
}

func advance(t *testing.T, m WizardModel) (WizardModel, tea.Cmd) {
	t.Helper()
	require.NotNil(t, m.huh, "no form shown at step %s", m.step)
	return m.advance()
}

// walkToReview fills every step with valid values, answering fetches from the fixture
func walkToReview(t *testing.T, f *wizardFixture, m WizardModel) WizardModel {
	t.Helper()

	m = update(t, m, installationsLoadedMsg{installations: f.github.installations})

	m.fields.name = "svc"
	m, _ = advance(t, m)
	require.Equal(t, workerform.StepBuildConfig, m.step)
	assert.Equal(t, f.instA.Metadata.ID, m.fields.installationID, "first installation is preselected")

	m, _ = advance(t, m)
	require.Equal(t, phaseRepository, m.phase)
	assert.Equal(t, "Loading repositories", m.waiting)
	m = update(t, m, reposLoadedMsg{installationID: f.instA.Metadata.ID, repos: f.github.repos[f.instA.Metadata.ID]})

	key, ok := m.repos.KeyOf("acme", "api")
	require.True(t, ok)
	m.fields.repoKey = key
	m, _ = advance(t, m)
	require.Equal(t, phaseBranch, m.phase)
	m = update(t, m, branchesLoadedMsg{
		installationID: f.instA.Metadata.ID, owner: "acme", name: "api",
		branches: f.github.branches["acme/api"],
	})
	assert.Equal(t, "main", m.fields.branch, "default branch is preselected")

	m, _ = advance(t, m)
	require.Equal(t, phasePaths, m.phase)
	assert.Equal(t, ".", m.fields.buildDir)
	assert.Equal(t, "./Dockerfile", m.fields.dockerfilePath)

	m, _ = advance(t, m)
	require.Equal(t, workerform.StepRuntimeConfig, m.step)
	assert.Equal(t, "1", m.fields.replicas)
	assert.Equal(t, models.RegionSea, m.fields.region)
	assert.Equal(t, workerform.DefaultMachineTypeTitle, m.fields.machineType)

	m, _ = advance(t, m)
	require.Equal(t, workerform.StepReview, m.step)
	return m
}

func TestWizard_NoLinkedAccount(t *testing.T) {
	f := newFixture()
	m := f.wizard("tenant-1")

	m.fields.name = "svc"
	m, _ = advance(t, m)
	m.form.Dispatch(workerform.BuildDirChanged{Dir: "worker"})

	m = update(t, m, installationsLoadedMsg{installations: []models.GithubAppInstallation{}})

	assert.True(t, m.noAccount)
	assert.Nil(t, m.huh)

	view := m.View()
	assert.Contains(t, view, "No GitHub account linked")
	assert.Contains(t, view, testLinkURL)
	assert.NotContains(t, view, "Step 2 of 4")
	assert.NotContains(t, view, "Build directory")

	// typing does not bring the form back
	m = update(t, m, keyMsg("x"))
	assert.True(t, m.noAccount)

	_, cmd := m.Update(keyMsg("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateMsg{view: ViewMainMenu}, cmd())
}

func TestWizard_InstallationsSelectFirst(t *testing.T) {
	f := newFixture()
	m := f.wizard("tenant-1")

	m = update(t, m, installationsLoadedMsg{installations: f.github.installations})

	assert.Equal(t, f.instA.Metadata.ID, m.form.State().InstallationID)
	assert.False(t, m.noAccount)
}

func TestWizard_InstallationsError(t *testing.T) {
	f := newFixture()
	m := f.wizard("tenant-1")

	m.fields.name = "svc"
	m, _ = advance(t, m)
	m = update(t, m, installationsLoadedMsg{err: assert.AnError})

	assert.Nil(t, m.huh)
	assert.Contains(t, m.View(), assert.AnError.Error())

	m, cmd := m.Update(keyMsg("r"))
	assert.Equal(t, "Loading GitHub accounts", m.waiting)

	var loaded *installationsLoadedMsg
	for _, msg := range collect(t, cmd) {
		if msg, ok := msg.(installationsLoadedMsg); ok {
			loaded = &msg
		}
	}
	require.NotNil(t, loaded)

	m = update(t, m, *loaded)
	assert.NotNil(t, m.huh)
	assert.Equal(t, phaseInstallation, m.phase)
}

func TestWizard_DropsStaleRepos(t *testing.T) {
	f := newFixture()
	m := f.wizard("tenant-1")
	m = update(t, m, installationsLoadedMsg{installations: f.github.installations})

	m.form.Dispatch(workerform.InstallationSelected{ID: f.instB.Metadata.ID})

	m = update(t, m, reposLoadedMsg{installationID: f.instA.Metadata.ID, repos: f.github.repos[f.instA.Metadata.ID]})
	assert.Equal(t, 0, m.repos.Len())
	assert.Empty(t, m.reposFor)

	m = update(t, m, reposLoadedMsg{installationID: f.instB.Metadata.ID, repos: f.github.repos[f.instB.Metadata.ID]})
	assert.Equal(t, 1, m.repos.Len())
	assert.Equal(t, f.instB.Metadata.ID, m.reposFor)
}

func TestWizard_DropsStaleBranches(t *testing.T) {
	f := newFixture()
	m := f.wizard("tenant-1")
	m = update(t, m, installationsLoadedMsg{installations: f.github.installations})
	m.form.Dispatch(workerform.RepositorySelected{Owner: "acme", Name: "web"})

	m = update(t, m, branchesLoadedMsg{
		installationID: f.instA.Metadata.ID, owner: "acme", name: "api",
		branches: f.github.branches["acme/api"],
	})
	assert.Nil(t, m.branches)

	m = update(t, m, branchesLoadedMsg{
		installationID: f.instA.Metadata.ID, owner: "acme", name: "web",
		branches: []models.GithubBranch{{BranchName: "main"}},
	})
	assert.Len(t, m.branches, 1)
}

func TestWizard_ChangingInstallationCancelsFetch(t *testing.T) {
	f := newFixture()
	m := walkToReview(t, f, f.wizard("tenant-1"))

	// back to the installation select
	for m.step != workerform.StepBuildConfig || m.phase != phaseInstallation {
		m, _ = m.back()
	}

	m.fields.installationID = f.instB.Metadata.ID
	m, cmd := advance(t, m)

	s := m.form.State()
	assert.Equal(t, f.instB.Metadata.ID, s.InstallationID)
	assert.Empty(t, s.RepoOwner)
	assert.Empty(t, s.RepoName)
	assert.Empty(t, s.Branch)
	assert.False(t, m.form.CanSubmit())

	// a second switch cancels the first fetch
	require.NotNil(t, m.fetch.cancel)
	m, _ = m.back()
	m.fields.installationID = f.instA.Metadata.ID
	m, _ = advance(t, m)

	for _, msg := range collect(t, cmd) {
		if msg, ok := msg.(reposLoadedMsg); ok {
			assert.ErrorIs(t, msg.err, context.Canceled)
			m = update(t, m, msg)
		}
	}
	assert.Equal(t, "Loading repositories", m.waiting, "the cancelled result must not replace the pending fetch")
}

func TestWizard_CreatesWorker(t *testing.T) {
	f := newFixture()
	m := walkToReview(t, f, f.wizard("tenant-1"))

	view := m.View()
	assert.Contains(t, view, "acme/api")
	assert.Contains(t, view, "Seattle, Washington (US)")

	m, cmd := advance(t, m)
	assert.True(t, m.form.Loading())
	assert.Contains(t, m.View(), "Creating worker")

	for _, msg := range collect(t, cmd) {
		m = update(t, m, msg)
	}

	require.Len(t, f.workers.created, 1)
	call := f.workers.created[0]
	assert.Equal(t, "tenant-1", call.tenantID)
	assert.Equal(t, models.CreateManagedWorkerRequest{
		Name: "svc",
		BuildConfig: models.CreateManagedWorkerBuildConfigRequest{
			GithubInstallationID:   f.instA.Metadata.ID,
			GithubRepositoryOwner:  "acme",
			GithubRepositoryName:   "api",
			GithubRepositoryBranch: "main",
			Steps: []models.CreateManagedWorkerBuildStep{
				{BuildDir: ".", DockerfilePath: "./Dockerfile"},
			},
		},
		IsIac:   false,
		EnvVars: map[string]string{},
		RuntimeConfig: models.CreateManagedWorkerRuntimeConfigRequest{
			NumReplicas: 1,
			CPUKind:     models.CPUKindShared,
			CPUs:        1,
			MemoryMB:    1024,
			Regions:     []models.ManagedWorkerRegion{models.RegionSea},
		},
	}, call.request)

	require.NotNil(t, m.created)
	assert.False(t, m.form.Loading())
	assert.Contains(t, m.View(), "mw-1")

	_, cmd = m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateMsg{view: ViewWorkers}, cmd())
}

func TestWizard_RuntimeSettings(t *testing.T) {
	f := newFixture()
	m := walkToReview(t, f, f.wizard("tenant-1"))

	m, _ = m.back()
	require.Equal(t, workerform.StepRuntimeConfig, m.step)
	m.fields.envVars = "PORT=8080\nLOG_LEVEL=debug"
	m.fields.region = models.RegionLhr
	m.fields.replicas = "3"
	m.fields.machineType = "4 CPU, 8 GB RAM (performance CPU)"
	m, _ = advance(t, m)

	s := m.form.State()
	assert.Equal(t, map[string]string{"PORT": "8080", "LOG_LEVEL": "debug"}, s.EnvVars)
	assert.Equal(t, models.RegionLhr, s.Region)
	assert.Equal(t, 3, s.NumReplicas)
	assert.Equal(t, models.CPUKindPerformance, s.CPUKind)
	assert.Equal(t, 4, s.CPUs)
	assert.Equal(t, 8192, s.MemoryMB)

	// switching to infra-as-code keeps the runtime values
	m, _ = m.back()
	assert.Equal(t, "LOG_LEVEL=\"debug\"\nPORT=8080", m.fields.envVars)
	m.fields.isIac = true
	m.fields.region = models.RegionSyd
	m, _ = advance(t, m)

	s = m.form.State()
	assert.True(t, s.IsIac)
	assert.Equal(t, models.RegionLhr, s.Region)
	assert.Contains(t, m.View(), "infra-as-code")
}

func TestWizard_ReplicasOutOfRange(t *testing.T) {
	f := newFixture()
	m := walkToReview(t, f, f.wizard("tenant-1"))

	m, _ = m.back()
	m.fields.replicas = "20"
	m, _ = advance(t, m)

	m, _ = advance(t, m)

	assert.Empty(t, f.workers.created)
	assert.False(t, m.form.Loading())
	assert.Equal(t, "Must be less than or equal to 16", m.form.Error(workerform.FieldNumReplicas))
	assert.Contains(t, m.View(), "Must be less than or equal to 16")

	var verr *workerform.ValidationError
	assert.ErrorAs(t, m.submitErr, &verr)
}

func TestWizard_ServerFieldErrors(t *testing.T) {
	f := newFixture()
	f.workers.createErr = &cloud.APIError{
		StatusCode: http.StatusBadRequest,
		Errors:     []models.APIError{{Field: "name", Description: "name already taken"}},
	}
	m := walkToReview(t, f, f.wizard("tenant-1"))

	m, cmd := advance(t, m)
	for _, msg := range collect(t, cmd) {
		m = update(t, m, msg)
	}

	assert.Nil(t, m.created)
	assert.Equal(t, workerform.StepReview, m.step)
	assert.Equal(t, "name already taken", m.form.Error(workerform.FieldName))
	assert.Contains(t, m.View(), "name already taken")

	// a fresh submission clears the server error
	f.workers.createErr = nil
	m, cmd = advance(t, m)
	for _, msg := range collect(t, cmd) {
		m = update(t, m, msg)
	}
	assert.Empty(t, m.form.Error(workerform.FieldName))
	assert.NotNil(t, m.created)
	assert.Len(t, f.workers.created, 2)
}

func TestWizard_MissingTenant(t *testing.T) {
	f := newFixture()
	m := walkToReview(t, f, f.wizard(""))

	m, _ = advance(t, m)

	assert.ErrorIs(t, m.submitErr, config.ErrMissingTenant)
	assert.Empty(t, f.workers.created)
	assert.False(t, m.form.Loading())
}

func TestWizard_ReviewWithoutRepository(t *testing.T) {
	f := newFixture()
	m := walkToReview(t, f, f.wizard("tenant-1"))

	m.form.Dispatch(workerform.RepositorySelected{Owner: "acme", Name: "web"})
	m, _ = m.enter()
	assert.False(t, m.form.CanSubmit())

	m, _ = advance(t, m)

	assert.Empty(t, f.workers.created)
	assert.Equal(t, workerform.StepBuildConfig, m.step)
	assert.Equal(t, phaseInstallation, m.phase)
}

func TestWizard_Back(t *testing.T) {
	f := newFixture()
	m := f.wizard("tenant-1")

	_, cmd := m.Update(keyMsg("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateMsg{view: ViewMainMenu}, cmd())

	m = walkToReview(t, f, m)
	m, _ = m.back()
	assert.Equal(t, workerform.StepRuntimeConfig, m.step)
	m, _ = m.back()
	assert.Equal(t, workerform.StepBuildConfig, m.step)
	assert.Equal(t, phasePaths, m.phase)
	m, _ = m.back()
	assert.Equal(t, phaseBranch, m.phase)
	assert.NotNil(t, m.huh, "cached branches are shown without refetching")

	// going back does not lose any value
	s := m.form.State()
	assert.Equal(t, "svc", s.Name)
	assert.Equal(t, "main", s.Branch)
}

func TestWizard_EmptyRepositoryList(t *testing.T) {
	f := newFixture()
	m := f.wizard("tenant-1")
	m = update(t, m, installationsLoadedMsg{installations: f.github.installations})

	m.fields.name = "svc"
	m, _ = advance(t, m)
	m, _ = advance(t, m)
	m = update(t, m, reposLoadedMsg{installationID: f.instA.Metadata.ID})

	require.NotNil(t, m.huh)
	assert.Contains(t, m.View(), "No repositories found")

	m, _ = advance(t, m)
	assert.Equal(t, phaseInstallation, m.phase)
}

func TestFetchCommands(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	msg := fetchInstallations(ctx, f.github)()
	assert.Equal(t, installationsLoadedMsg{installations: f.github.installations}, msg)

	msg = fetchRepos(ctx, f.github, f.instB.Metadata.ID)()
	assert.Equal(t, reposLoadedMsg{installationID: f.instB.Metadata.ID, repos: f.github.repos[f.instB.Metadata.ID]}, msg)

	msg = fetchBranches(ctx, f.github, f.instB.Metadata.ID, "globex", "jobs")()
	assert.Equal(t, branchesLoadedMsg{
		installationID: f.instB.Metadata.ID, owner: "globex", name: "jobs",
		branches: f.github.branches["globex/jobs"],
	}, msg)
}

func TestEnvVarsText(t *testing.T) {
	vars, err := parseEnvVars("A=1\nB=\"two words\"\n")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "1", "B": "two words"}, vars)

	vars, err = parseEnvVars("  \n")
	require.NoError(t, err)
	assert.Empty(t, vars)

	assert.Equal(t, "", formatEnvVars(nil))

	text := formatEnvVars(map[string]string{"B": "two words", "A": "1"})
	again, err := parseEnvVars(text)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "1", "B": "two words"}, again)

	assert.Error(t, validateReplicas("three"))
	assert.NoError(t, validateReplicas(" 3 "))
}
