// Package models provides data structures for managed workers.
//
// This file defines the request used to provision a managed worker and the
// resources the API returns for it. Validation tags describe the accepted shape
// of a create request; the region and relpath tags are registered by the
// workerform package.
package models

// CPUKind selects between shared and dedicated CPU machines
type CPUKind string

const (
	CPUKindShared      CPUKind = "shared"
	CPUKindPerformance CPUKind = "performance"
)

// CreateManagedWorkerBuildStep describes one image build from the source repository
type CreateManagedWorkerBuildStep struct {
	// Build context, relative to the repository root
	BuildDir string `json:"buildDir" yaml:"buildDir" validate:"required,relpath"`

	// Dockerfile location, relative to the repository root
	DockerfilePath string `json:"dockerfilePath" yaml:"dockerfilePath" validate:"required,relpath"`
}

// CreateManagedWorkerBuildConfigRequest describes where and how the worker image is built
type CreateManagedWorkerBuildConfigRequest struct {
	GithubInstallationID   string                         `json:"githubInstallationId" yaml:"githubInstallationId" validate:"required,uuid,len=36"`
	GithubRepositoryOwner  string                         `json:"githubRepositoryOwner" yaml:"githubRepositoryOwner" validate:"required"`
	GithubRepositoryName   string                         `json:"githubRepositoryName" yaml:"githubRepositoryName" validate:"required"`
	GithubRepositoryBranch string                         `json:"githubRepositoryBranch" yaml:"githubRepositoryBranch" validate:"required"`
	Steps                  []CreateManagedWorkerBuildStep `json:"steps" yaml:"steps" validate:"required,min=1,dive"`
}

// CreateManagedWorkerRuntimeConfigRequest describes the machines the worker runs on
type CreateManagedWorkerRuntimeConfigRequest struct {
	NumReplicas int                   `json:"numReplicas" yaml:"numReplicas" validate:"min=0,max=16"`
	CPUKind     CPUKind               `json:"cpuKind" yaml:"cpuKind" validate:"required,oneof=shared performance"`
	CPUs        int                   `json:"cpus" yaml:"cpus" validate:"gt=0"`
	MemoryMB    int                   `json:"memoryMb" yaml:"memoryMb" validate:"gt=0"`
	Regions     []ManagedWorkerRegion `json:"regions,omitempty" yaml:"regions,omitempty" validate:"omitempty,dive,region"`
}

// CreateManagedWorkerRequest is the payload for provisioning a managed worker
type CreateManagedWorkerRequest struct {
	Name          string                                  `json:"name" yaml:"name" validate:"required"`
	BuildConfig   CreateManagedWorkerBuildConfigRequest   `json:"buildConfig" yaml:"buildConfig"`
	IsIac         bool                                    `json:"isIac" yaml:"isIac"`
	EnvVars       map[string]string                       `json:"envVars" yaml:"envVars" validate:"omitempty,dive,keys,required,endkeys"`
	RuntimeConfig CreateManagedWorkerRuntimeConfigRequest `json:"runtimeConfig" yaml:"runtimeConfig"`
}

// ManagedWorkerBuildStep is a build step as stored by the API
type ManagedWorkerBuildStep struct {
	Metadata       APIResourceMeta `json:"metadata"`
	BuildDir       string          `json:"buildDir"`
	DockerfilePath string          `json:"dockerfilePath"`
}

// ManagedWorkerBuildConfig is the build configuration as stored by the API
type ManagedWorkerBuildConfig struct {
	Metadata               APIResourceMeta          `json:"metadata"`
	GithubInstallationID   string                   `json:"githubInstallationId"`
	GithubRepository       GithubRepo               `json:"githubRepository"`
	GithubRepositoryBranch string                   `json:"githubRepositoryBranch"`
	Steps                  []ManagedWorkerBuildStep `json:"steps,omitempty"`
}

// ManagedWorkerRuntimeConfig is one runtime configuration as stored by the API
type ManagedWorkerRuntimeConfig struct {
	Metadata    APIResourceMeta     `json:"metadata"`
	NumReplicas int                 `json:"numReplicas"`
	CPUKind     CPUKind             `json:"cpuKind"`
	CPUs        int                 `json:"cpus"`
	MemoryMB    int                 `json:"memoryMb"`
	Region      ManagedWorkerRegion `json:"region"`
}

// ManagedWorker represents a provisioned managed worker
type ManagedWorker struct {
	Metadata       APIResourceMeta              `json:"metadata"`
	Name           string                       `json:"name"`
	BuildConfig    ManagedWorkerBuildConfig     `json:"buildConfig"`
	IsIac          bool                         `json:"isIac"`
	EnvVars        map[string]string            `json:"envVars,omitempty"`
	RuntimeConfigs []ManagedWorkerRuntimeConfig `json:"runtimeConfigs,omitempty"`
}

// ManagedWorkerList is the response from listing managed workers
type ManagedWorkerList struct {
	Pagination PaginationResponse `json:"pagination"`
	Rows       []ManagedWorker    `json:"rows"`
}

// APIError is one entry of an API error response
type APIError struct {
	Code        int    `json:"code,omitempty"`
	Field       string `json:"field,omitempty"`
	Description string `json:"description"`
	DocsLink    string `json:"docs_link,omitempty"`
}

// APIErrors is the body the API returns for 4xx responses
type APIErrors struct {
	Errors []APIError `json:"errors"`
}
