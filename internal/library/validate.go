package library

import (
	"fmt"

	"github.com/isdelr/hymn-sub000/internal/domain"
)

// Validate inspects a scanned entry list for dependency problems. Only
// enabled entries are checked; a disabled mod's dependencies are
// irrelevant while it is inactive. Missing or disabled hard dependencies
// are errors, a missing optional dependency is informational.
func Validate(entries []domain.ModEntry) domain.ValidationResult {
	byID := make(map[string]domain.ModEntry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}

	var result domain.ValidationResult
	for _, e := range entries {
		if !e.Enabled {
			continue
		}

		for _, dep := range e.Dependencies {
			other, ok := byID[dep]
			switch {
			case !ok:
				result.Issues = append(result.Issues, domain.DependencyIssue{
					ModID:        e.ID,
					ModName:      e.Name,
					Type:         domain.IssueMissingDependency,
					DependencyID: dep,
					Message:      fmt.Sprintf("%s requires %s, which is not installed", e.Name, dep),
				})
				result.HasErrors = true
			case !other.Enabled:
				result.Issues = append(result.Issues, domain.DependencyIssue{
					ModID:        e.ID,
					ModName:      e.Name,
					Type:         domain.IssueDisabledDependency,
					DependencyID: dep,
					Message:      fmt.Sprintf("%s requires %s, which is disabled", e.Name, dep),
				})
				result.HasErrors = true
			}
		}

		for _, dep := range e.OptionalDependencies {
			if _, ok := byID[dep]; !ok {
				result.Issues = append(result.Issues, domain.DependencyIssue{
					ModID:        e.ID,
					ModName:      e.Name,
					Type:         domain.IssueOptionalMissing,
					DependencyID: dep,
					Message:      fmt.Sprintf("%s optionally uses %s, which is not installed", e.Name, dep),
				})
				result.HasWarnings = true
			}
		}
	}
	return result
}
