package workerform

import (
	"maps"

	"workerctl/sdk/models"
)

// State is the editable form state. It holds a single build step and a
// single region; Request expands both into the wire shape.
type State struct {
	Name string

	InstallationID string
	RepoOwner      string
	RepoName       string
	Branch         string
	BuildDir       string
	DockerfilePath string

	IsIac   bool
	EnvVars map[string]string

	NumReplicas int
	CPUKind     models.CPUKind
	CPUs        int
	MemoryMB    int
	Region      models.ManagedWorkerRegion
}

// DefaultState returns the state a fresh form starts from
func DefaultState() State {
	mt, _ := FindMachineType(DefaultMachineTypeTitle)
	return State{
		BuildDir:       ".",
		DockerfilePath: "./Dockerfile",
		EnvVars:        map[string]string{},
		NumReplicas:    1,
		CPUKind:        mt.CPUKind,
		CPUs:           mt.CPUs,
		MemoryMB:       mt.MemoryMB,
		Region:         DefaultRegion,
	}
}

// MachineType returns the preset matching the current CPU kind, count and memory
func (s State) MachineType() (MachineType, bool) {
	return MatchMachineType(s.CPUKind, s.CPUs, s.MemoryMB)
}

// Request converts the state into a creation request
func (s State) Request() models.CreateManagedWorkerRequest {
	envVars := make(map[string]string, len(s.EnvVars))
	maps.Copy(envVars, s.EnvVars)

	var regions []models.ManagedWorkerRegion
	if s.Region != "" {
		regions = []models.ManagedWorkerRegion{s.Region}
	}

	return models.CreateManagedWorkerRequest{
		Name: s.Name,
		BuildConfig: models.CreateManagedWorkerBuildConfigRequest{
			GithubInstallationID:   s.InstallationID,
			GithubRepositoryOwner:  s.RepoOwner,
			GithubRepositoryName:   s.RepoName,
			GithubRepositoryBranch: s.Branch,
			Steps: []models.CreateManagedWorkerBuildStep{
				{BuildDir: s.BuildDir, DockerfilePath: s.DockerfilePath},
			},
		},
		IsIac:   s.IsIac,
		EnvVars: envVars,
		RuntimeConfig: models.CreateManagedWorkerRuntimeConfigRequest{
			NumReplicas: s.NumReplicas,
			CPUKind:     s.CPUKind,
			CPUs:        s.CPUs,
			MemoryMB:    s.MemoryMB,
			Regions:     regions,
		},
	}
}

// changedFields lists the field names whose values differ between two states
func changedFields(prev, next State) []string {
	var fields []string
	add := func(changed bool, names ...string) {
		if changed {
			fields = append(fields, names...)
		}
	}
	add(prev.Name != next.Name, FieldName)
	add(prev.InstallationID != next.InstallationID, FieldInstallationID)
	add(prev.RepoOwner != next.RepoOwner, FieldRepositoryOwner)
	add(prev.RepoName != next.RepoName, FieldRepositoryName)
	add(prev.Branch != next.Branch, FieldRepositoryBranch)
	add(prev.BuildDir != next.BuildDir, FieldBuildDir, FieldSteps)
	add(prev.DockerfilePath != next.DockerfilePath, FieldDockerfilePath, FieldSteps)
	add(prev.IsIac != next.IsIac, FieldIsIac)
	add(!maps.Equal(prev.EnvVars, next.EnvVars), FieldEnvVars)
	add(prev.NumReplicas != next.NumReplicas, FieldNumReplicas)
	add(prev.CPUKind != next.CPUKind || prev.CPUs != next.CPUs || prev.MemoryMB != next.MemoryMB,
		FieldCPUKind, FieldCPUs, FieldMemoryMB)
	add(prev.Region != next.Region, FieldRegions)
	return fields
}
