package models

// ManagedWorkerRegion is a data-center code a managed worker can run in
type ManagedWorkerRegion string

const (
	RegionAms ManagedWorkerRegion = "ams"
	RegionArn ManagedWorkerRegion = "arn"
	RegionAtl ManagedWorkerRegion = "atl"
	RegionBog ManagedWorkerRegion = "bog"
	RegionBos ManagedWorkerRegion = "bos"
	RegionCdg ManagedWorkerRegion = "cdg"
	RegionDen ManagedWorkerRegion = "den"
	RegionDfw ManagedWorkerRegion = "dfw"
	RegionEwr ManagedWorkerRegion = "ewr"
	RegionEze ManagedWorkerRegion = "eze"
	RegionGdl ManagedWorkerRegion = "gdl"
	RegionGig ManagedWorkerRegion = "gig"
	RegionGru ManagedWorkerRegion = "gru"
	RegionHkg ManagedWorkerRegion = "hkg"
	RegionIad ManagedWorkerRegion = "iad"
	RegionJnb ManagedWorkerRegion = "jnb"
	RegionLax ManagedWorkerRegion = "lax"
	RegionLhr ManagedWorkerRegion = "lhr"
	RegionMad ManagedWorkerRegion = "mad"
	RegionMia ManagedWorkerRegion = "mia"
	RegionNrt ManagedWorkerRegion = "nrt"
	RegionOrd ManagedWorkerRegion = "ord"
	RegionOtp ManagedWorkerRegion = "otp"
	RegionPhx ManagedWorkerRegion = "phx"
	RegionQro ManagedWorkerRegion = "qro"
	RegionScl ManagedWorkerRegion = "scl"
	RegionSea ManagedWorkerRegion = "sea"
	RegionSin ManagedWorkerRegion = "sin"
	RegionSjc ManagedWorkerRegion = "sjc"
	RegionSyd ManagedWorkerRegion = "syd"
	RegionWaw ManagedWorkerRegion = "waw"
	RegionYul ManagedWorkerRegion = "yul"
	RegionYyz ManagedWorkerRegion = "yyz"
)
