package domain

// IssueType categorizes a dependency problem found during validation
type IssueType string

const (
	IssueMissingDependency  IssueType = "missing_dependency"
	IssueDisabledDependency IssueType = "disabled_dependency"
	IssueOptionalMissing    IssueType = "optional_missing"
)

// DependencyIssue describes one problem with one mod's dependency list
type DependencyIssue struct {
	ModID        string
	ModName      string
	Type         IssueType
	DependencyID string
	Message      string
}

// ValidationResult aggregates dependency issues for a scanned library.
// Optional-dependency misses are warnings, everything else is an error.
type ValidationResult struct {
	Issues      []DependencyIssue
	HasErrors   bool
	HasWarnings bool
}
