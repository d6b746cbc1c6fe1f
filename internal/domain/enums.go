package domain

// RequestStatus represents the lifecycle of an analysis request.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusProcessed RequestStatus = "processed"
	RequestStatusError     RequestStatus = "error"
)

// DocumentLabel classifies a submitted document by its role in the
// onboarding package.
type DocumentLabel string

const (
	LabelProfile         DocumentLabel = "profile"
	LabelPastPerformance DocumentLabel = "past_performance"
	LabelPricing         DocumentLabel = "pricing"
	LabelUnknown         DocumentLabel = "unknown"
)

// RuleID identifies a rule in the GSA rules pack.
type RuleID string

const (
	RuleR1 RuleID = "R1" // Identity & registry (UEI, DUNS, SAM)
	RuleR2 RuleID = "R2" // NAICS & SIN mapping
	RuleR3 RuleID = "R3" // Past performance
	RuleR4 RuleID = "R4" // Pricing & catalog
	RuleR5 RuleID = "R5" // Submission hygiene
)

// AnalysisPath records which pipeline produced a stored result.
type AnalysisPath string

const (
	PathGenerative    AnalysisPath = "generative"
	PathDeterministic AnalysisPath = "deterministic"
)

// BuiltinSINMappings covers the IT-services NAICS codes named by rule R2.
// The sin_mappings table (seeded from the GSA schedule workbook) extends this
// set; lookups fall back here when the table has no row.
var BuiltinSINMappings = map[string]SINMapping{
	"541511": {NAICS: "541511", SIN: "54151S", Title: "Custom Computer Programming Services"},
	"541512": {NAICS: "541512", SIN: "54151S", Title: "Computer Systems Design Services"},
	"541513": {NAICS: "541513", SIN: "54151S", Title: "Computer Facilities Management Services"},
	"541519": {NAICS: "541519", SIN: "54151S", Title: "Other Computer Related Services"},
}
