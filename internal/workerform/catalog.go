package workerform

import "workerctl/sdk/models"

// MachineType is a named, fixed combination of CPU kind, CPU count and memory
type MachineType struct {
	Title    string
	CPUKind  models.CPUKind
	CPUs     int
	MemoryMB int
}

// RegionOption pairs a region code with the name shown to users
type RegionOption struct {
	DisplayName string
	Code        models.ManagedWorkerRegion
}

const (
	DefaultMachineTypeTitle = "1 CPU, 1 GB RAM (shared CPU)"
	DefaultRegion           = models.RegionSea
)

var machineTypes = []MachineType{
	{Title: "1 CPU, 1 GB RAM (shared CPU)", CPUKind: models.CPUKindShared, CPUs: 1, MemoryMB: 1024},
	{Title: "1 CPU, 2 GB RAM (shared CPU)", CPUKind: models.CPUKindShared, CPUs: 1, MemoryMB: 2048},
	{Title: "2 CPU, 2 GB RAM (shared CPU)", CPUKind: models.CPUKindShared, CPUs: 2, MemoryMB: 2048},
	{Title: "2 CPU, 4 GB RAM (shared CPU)", CPUKind: models.CPUKindShared, CPUs: 2, MemoryMB: 4096},
	{Title: "4 CPU, 8 GB RAM (shared CPU)", CPUKind: models.CPUKindShared, CPUs: 4, MemoryMB: 8192},
	{Title: "8 CPU, 16 GB RAM (shared CPU)", CPUKind: models.CPUKindShared, CPUs: 8, MemoryMB: 16384},
	{Title: "1 CPU, 1 GB RAM (performance CPU)", CPUKind: models.CPUKindPerformance, CPUs: 1, MemoryMB: 1024},
	{Title: "1 CPU, 2 GB RAM (performance CPU)", CPUKind: models.CPUKindPerformance, CPUs: 1, MemoryMB: 2048},
	{Title: "2 CPU, 2 GB RAM (performance CPU)", CPUKind: models.CPUKindPerformance, CPUs: 2, MemoryMB: 2048},
	{Title: "2 CPU, 4 GB RAM (performance CPU)", CPUKind: models.CPUKindPerformance, CPUs: 2, MemoryMB: 4096},
	{Title: "4 CPU, 8 GB RAM (performance CPU)", CPUKind: models.CPUKindPerformance, CPUs: 4, MemoryMB: 8192},
	{Title: "8 CPU, 16 GB RAM (performance CPU)", CPUKind: models.CPUKindPerformance, CPUs: 8, MemoryMB: 16384},
}

var regions = []RegionOption{
	{DisplayName: "Amsterdam, Netherlands", Code: models.RegionAms},
	{DisplayName: "Stockholm, Sweden", Code: models.RegionArn},
	{DisplayName: "Atlanta, Georgia (US)", Code: models.RegionAtl},
	{DisplayName: "Bogotá, Colombia", Code: models.RegionBog},
	{DisplayName: "Boston, Massachusetts (US)", Code: models.RegionBos},
	{DisplayName: "Paris, France", Code: models.RegionCdg},
	{DisplayName: "Denver, Colorado (US)", Code: models.RegionDen},
	{DisplayName: "Dallas, Texas (US)", Code: models.RegionDfw},
	{DisplayName: "Secaucus, NJ (US)", Code: models.RegionEwr},
	{DisplayName: "Ezeiza, Argentina", Code: models.RegionEze},
	{DisplayName: "Guadalajara, Mexico", Code: models.RegionGdl},
	{DisplayName: "Rio de Janeiro, Brazil", Code: models.RegionGig},
	{DisplayName: "Sao Paulo, Brazil", Code: models.RegionGru},
	{DisplayName: "Hong Kong, Hong Kong", Code: models.RegionHkg},
	{DisplayName: "Ashburn, Virginia (US)", Code: models.RegionIad},
	{DisplayName: "Johannesburg, South Africa", Code: models.RegionJnb},
	{DisplayName: "Los Angeles, California (US)", Code: models.RegionLax},
	{DisplayName: "London, United Kingdom", Code: models.RegionLhr},
	{DisplayName: "Madrid, Spain", Code: models.RegionMad},
	{DisplayName: "Miami, Florida (US)", Code: models.RegionMia},
	{DisplayName: "Tokyo, Japan", Code: models.RegionNrt},
	{DisplayName: "Chicago, Illinois (US)", Code: models.RegionOrd},
	{DisplayName: "Bucharest, Romania", Code: models.RegionOtp},
	{DisplayName: "Phoenix, Arizona (US)", Code: models.RegionPhx},
	{DisplayName: "Querétaro, Mexico", Code: models.RegionQro},
	{DisplayName: "Santiago, Chile", Code: models.RegionScl},
	{DisplayName: "Seattle, Washington (US)", Code: models.RegionSea},
	{DisplayName: "Singapore, Singapore", Code: models.RegionSin},
	{DisplayName: "San Jose, California (US)", Code: models.RegionSjc},
	{DisplayName: "Sydney, Australia", Code: models.RegionSyd},
	{DisplayName: "Warsaw, Poland", Code: models.RegionWaw},
	{DisplayName: "Montreal, Canada", Code: models.RegionYul},
	{DisplayName: "Toronto, Canada", Code: models.RegionYyz},
}

// MachineTypes returns the machine type presets in display order
func MachineTypes() []MachineType {
	out := make([]MachineType, len(machineTypes))
	copy(out, machineTypes)
	return out
}

// FindMachineType looks a preset up by its title
func FindMachineType(title string) (MachineType, bool) {
	for _, mt := range machineTypes {
		if mt.Title == title {
			return mt, true
		}
	}
	return MachineType{}, false
}

// MatchMachineType returns the preset offering exactly this combination
func MatchMachineType(kind models.CPUKind, cpus, memoryMB int) (MachineType, bool) {
	for _, mt := range machineTypes {
		if mt.CPUKind == kind && mt.CPUs == cpus && mt.MemoryMB == memoryMB {
			return mt, true
		}
	}
	return MachineType{}, false
}

// Regions returns the selectable regions in display order
func Regions() []RegionOption {
	out := make([]RegionOption, len(regions))
	copy(out, regions)
	return out
}

// FindRegion looks a region up by its code
func FindRegion(code models.ManagedWorkerRegion) (RegionOption, bool) {
	for _, r := range regions {
		if r.Code == code {
			return r, true
		}
	}
	return RegionOption{}, false
}
