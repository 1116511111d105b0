package workerform

import (
	"testing"

	"workerctl/sdk/models"

	"github.com/stretchr/testify/assert"
)

func installation(id string) models.GithubAppInstallation {
	return models.GithubAppInstallation{Metadata: models.APIResourceMeta{ID: id}}
}

// selectedState has installation, repository and branch populated
func selectedState() State {
	s := DefaultState()
	s.InstallationID = "inst-a"
	s.RepoOwner = "acme"
	s.RepoName = "api"
	s.Branch = "main"
	return s
}

func TestDefaultState(t *testing.T) {
	s := DefaultState()

	assert.Equal(t, ".", s.BuildDir)
	assert.Equal(t, "./Dockerfile", s.DockerfilePath)
	assert.NotNil(t, s.EnvVars)
	assert.Empty(t, s.EnvVars)
	assert.Equal(t, 1, s.NumReplicas)
	assert.Equal(t, models.CPUKindShared, s.CPUKind)
	assert.Equal(t, 1, s.CPUs)
	assert.Equal(t, 1024, s.MemoryMB)
	assert.Equal(t, models.RegionSea, s.Region)
	assert.False(t, s.IsIac)

	mt, ok := s.MachineType()
	assert.True(t, ok)
	assert.Equal(t, DefaultMachineTypeTitle, mt.Title)
}

func TestInstallationsLoaded(t *testing.T) {
	t.Run("selects first when unset", func(t *testing.T) {
		s := Reduce(DefaultState(), InstallationsLoaded{
			Installations: []models.GithubAppInstallation{installation("inst-a"), installation("inst-b")},
		})
		assert.Equal(t, "inst-a", s.InstallationID)
	})

	t.Run("keeps an existing selection", func(t *testing.T) {
		s := selectedState()
		s.InstallationID = "inst-b"
		next := Reduce(s, InstallationsLoaded{
			Installations: []models.GithubAppInstallation{installation("inst-a"), installation("inst-b")},
		})
		assert.Equal(t, s, next)
	})

	t.Run("empty list is a no-op", func(t *testing.T) {
		s := DefaultState()
		assert.Equal(t, s, Reduce(s, InstallationsLoaded{}))
	})
}

func TestInstallationSelected_ClearsRepository(t *testing.T) {
	s := Reduce(DefaultState(), InstallationSelected{ID: "inst-a"})
	s = Reduce(s, RepositorySelected{Owner: "acme", Name: "api"})
	s = Reduce(s, BranchSelected{Branch: "main"})

	s = Reduce(s, InstallationSelected{ID: "inst-b"})

	assert.Equal(t, "inst-b", s.InstallationID)
	assert.Empty(t, s.RepoOwner)
	assert.Empty(t, s.RepoName)
	assert.Empty(t, s.Branch)
}

func TestInstallationSelected_SameIDIsIdempotent(t *testing.T) {
	s := selectedState()
	assert.Equal(t, s, Reduce(s, InstallationSelected{ID: s.InstallationID}))
}

func TestRepositorySelected_ClearsBranchOnly(t *testing.T) {
	s := selectedState()
	s.Name = "svc"

	next := Reduce(s, RepositorySelected{Owner: "acme", Name: "web"})

	assert.Equal(t, "inst-a", next.InstallationID)
	assert.Equal(t, "acme", next.RepoOwner)
	assert.Equal(t, "web", next.RepoName)
	assert.Empty(t, next.Branch)
	assert.Equal(t, "svc", next.Name)
	assert.Equal(t, s.BuildDir, next.BuildDir)

	assert.Equal(t, s, Reduce(s, RepositorySelected{Owner: "acme", Name: "api"}))
}

func TestMachineTypeSelected_SetsAllThree(t *testing.T) {
	s := Reduce(DefaultState(), MachineTypeSelected{Title: "4 CPU, 8 GB RAM (performance CPU)"})

	assert.Equal(t, models.CPUKindPerformance, s.CPUKind)
	assert.Equal(t, 4, s.CPUs)
	assert.Equal(t, 8192, s.MemoryMB)

	// every preset leaves the state on a matching combination
	for _, mt := range MachineTypes() {
		next := Reduce(s, MachineTypeSelected{Title: mt.Title})
		got, ok := next.MachineType()
		assert.True(t, ok)
		assert.Equal(t, mt, got)
	}
}

func TestMachineTypeSelected_UnknownTitle(t *testing.T) {
	s := Reduce(DefaultState(), MachineTypeSelected{Title: "2 CPU, 4 GB RAM (shared CPU)"})
	assert.Equal(t, s, Reduce(s, MachineTypeSelected{Title: "unknown"}))
}

func TestRegionSelected_Replaces(t *testing.T) {
	s := Reduce(DefaultState(), RegionSelected{Code: models.RegionSea})
	s = Reduce(s, RegionSelected{Code: models.RegionLhr})

	assert.Equal(t, models.RegionLhr, s.Region)
	assert.Equal(t, []models.ManagedWorkerRegion{models.RegionLhr}, s.Request().RuntimeConfig.Regions)

	assert.Equal(t, s, Reduce(s, RegionSelected{Code: "xyz"}))
}

func TestPlainFieldEvents(t *testing.T) {
	vars := map[string]string{"PORT": "8080"}
	s := DefaultState()
	for _, ev := range []Event{
		NameChanged{Name: "svc"},
		BuildDirChanged{Dir: "worker"},
		DockerfilePathChanged{Path: "worker/Dockerfile"},
		EnvVarsChanged{Vars: vars},
		IacToggled{Enabled: true},
		ReplicasChanged{Replicas: 3},
	} {
		s = Reduce(s, ev)
	}

	assert.Equal(t, "svc", s.Name)
	assert.Equal(t, "worker", s.BuildDir)
	assert.Equal(t, "worker/Dockerfile", s.DockerfilePath)
	assert.Equal(t, map[string]string{"PORT": "8080"}, s.EnvVars)
	assert.True(t, s.IsIac)
	assert.Equal(t, 3, s.NumReplicas)

	vars["PORT"] = "9090"
	assert.Equal(t, "8080", s.EnvVars["PORT"], "state must not alias the event map")
}

func TestRequest(t *testing.T) {
	s := selectedState()
	s.Name = "svc"
	s.EnvVars = map[string]string{"A": "1"}

	req := s.Request()

	assert.Equal(t, "svc", req.Name)
	assert.Equal(t, "inst-a", req.BuildConfig.GithubInstallationID)
	assert.Equal(t, "acme", req.BuildConfig.GithubRepositoryOwner)
	assert.Equal(t, "api", req.BuildConfig.GithubRepositoryName)
	assert.Equal(t, "main", req.BuildConfig.GithubRepositoryBranch)
	assert.Equal(t, []models.CreateManagedWorkerBuildStep{{BuildDir: ".", DockerfilePath: "./Dockerfile"}}, req.BuildConfig.Steps)
	assert.Equal(t, map[string]string{"A": "1"}, req.EnvVars)
	assert.Equal(t, []models.ManagedWorkerRegion{models.RegionSea}, req.RuntimeConfig.Regions)

	s.Region = ""
	assert.Nil(t, s.Request().RuntimeConfig.Regions)
}
