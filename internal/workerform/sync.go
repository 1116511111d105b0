package workerform

import (
	"maps"

	"workerctl/sdk/models"
)

// Event is a user edit or a data arrival the form reacts to
type Event interface {
	isEvent()
}

type (
	InstallationsLoaded struct {
		Installations []models.GithubAppInstallation
	}
	InstallationSelected struct {
		ID string
	}
	RepositorySelected struct {
		Owner string
		Name  string
	}
	BranchSelected struct {
		Branch string
	}
	MachineTypeSelected struct {
		Title string
	}
	RegionSelected struct {
		Code models.ManagedWorkerRegion
	}
	NameChanged struct {
		Name string
	}
	BuildDirChanged struct {
		Dir string
	}
	DockerfilePathChanged struct {
		Path string
	}
	EnvVarsChanged struct {
		Vars map[string]string
	}
	IacToggled struct {
		Enabled bool
	}
	ReplicasChanged struct {
		Replicas int
	}
)

func (InstallationsLoaded) isEvent()   {}
func (InstallationSelected) isEvent()  {}
func (RepositorySelected) isEvent()    {}
func (BranchSelected) isEvent()        {}
func (MachineTypeSelected) isEvent()   {}
func (RegionSelected) isEvent()        {}
func (NameChanged) isEvent()           {}
func (BuildDirChanged) isEvent()       {}
func (DockerfilePathChanged) isEvent() {}
func (EnvVarsChanged) isEvent()        {}
func (IacToggled) isEvent()            {}
func (ReplicasChanged) isEvent()       {}

// Reduce applies one event. It never fails; events that do not apply leave
// the state unchanged.
func Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case InstallationsLoaded:
		return SelectFirstInstallation(s, ev.Installations)
	case InstallationSelected:
		return SelectInstallation(s, ev.ID)
	case RepositorySelected:
		return SelectRepository(s, ev.Owner, ev.Name)
	case BranchSelected:
		s.Branch = ev.Branch
	case MachineTypeSelected:
		return SelectMachineType(s, ev.Title)
	case RegionSelected:
		return SelectRegion(s, ev.Code)
	case NameChanged:
		s.Name = ev.Name
	case BuildDirChanged:
		s.BuildDir = ev.Dir
	case DockerfilePathChanged:
		s.DockerfilePath = ev.Path
	case EnvVarsChanged:
		s.EnvVars = make(map[string]string, len(ev.Vars))
		maps.Copy(s.EnvVars, ev.Vars)
	case IacToggled:
		s.IsIac = ev.Enabled
	case ReplicasChanged:
		s.NumReplicas = ev.Replicas
	}
	return s
}

// SelectFirstInstallation picks the first installation when none is selected yet
func SelectFirstInstallation(s State, installations []models.GithubAppInstallation) State {
	if len(installations) == 0 || s.InstallationID != "" {
		return s
	}
	return SelectInstallation(s, installations[0].Metadata.ID)
}

// SelectInstallation switches installation, invalidating the repository and branch
func SelectInstallation(s State, id string) State {
	if s.InstallationID == id {
		return s
	}
	s.InstallationID = id
	s.RepoOwner = ""
	s.RepoName = ""
	s.Branch = ""
	return s
}

// SelectRepository switches repository, invalidating the branch
func SelectRepository(s State, owner, name string) State {
	if s.RepoOwner == owner && s.RepoName == name {
		return s
	}
	s.RepoOwner = owner
	s.RepoName = name
	s.Branch = ""
	return s
}

// SelectMachineType copies a preset's kind, CPUs and memory together
func SelectMachineType(s State, title string) State {
	mt, ok := FindMachineType(title)
	if !ok {
		return s
	}
	s.CPUKind = mt.CPUKind
	s.CPUs = mt.CPUs
	s.MemoryMB = mt.MemoryMB
	return s
}

// SelectRegion makes code the only region
func SelectRegion(s State, code models.ManagedWorkerRegion) State {
	if _, ok := FindRegion(code); !ok {
		return s
	}
	s.Region = code
	return s
}
