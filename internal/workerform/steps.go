package workerform

// Step is one page of the creation wizard
type Step int

const (
	StepName Step = iota
	StepBuildConfig
	StepRuntimeConfig
	StepReview
)

var stepTitles = [...]string{
	StepName:          "Name",
	StepBuildConfig:   "Build configuration",
	StepRuntimeConfig: "Runtime configuration",
	StepReview:        "Review",
}

var stepFields = [...][]string{
	StepName: {FieldName},
	StepBuildConfig: {
		FieldInstallationID, FieldRepositoryOwner, FieldRepositoryName, FieldRepositoryBranch,
		FieldSteps, FieldBuildDir, FieldDockerfilePath,
	},
	StepRuntimeConfig: {
		FieldEnvVars, FieldIsIac, FieldNumReplicas, FieldCPUKind, FieldCPUs, FieldMemoryMB, FieldRegions,
	},
	StepReview: nil,
}

// Steps returns every step in order
func Steps() []Step {
	return []Step{StepName, StepBuildConfig, StepRuntimeConfig, StepReview}
}

func (s Step) String() string {
	if s < StepName || s > StepReview {
		return "Unknown"
	}
	return stepTitles[s]
}

// Next returns the following step; Review is last
func (s Step) Next() Step {
	if s >= StepReview {
		return StepReview
	}
	return s + 1
}

// Prev returns the preceding step; Name is first
func (s Step) Prev() Step {
	if s <= StepName {
		return StepName
	}
	return s - 1
}

// IsLast reports whether the step is the review step
func (s Step) IsLast() bool {
	return s == StepReview
}

// Fields returns the field names edited on this step
func (s Step) Fields() []string {
	if s < StepName || s > StepReview {
		return nil
	}
	return stepFields[s]
}

// FirstStepWithError returns the earliest step editing a field in errs
func FirstStepWithError(errs FieldErrors) (Step, bool) {
	for _, step := range Steps() {
		for _, field := range step.Fields() {
			if _, ok := errs[field]; ok {
				return step, true
			}
		}
	}
	return StepReview, false
}

// BuildFieldsEnabled reports whether build directory and Dockerfile path are editable
func BuildFieldsEnabled(s State) bool {
	return s.Branch != ""
}

// CanSubmit reports whether the submit action is offered. It does not check schema validity.
func CanSubmit(s State) bool {
	return s.InstallationID != "" && s.RepoOwner != "" && s.RepoName != "" && s.Branch != ""
}
