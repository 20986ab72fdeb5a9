package library_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isdelr/hymn-sub000/internal/domain"
	"github.com/isdelr/hymn-sub000/internal/library"
)

func TestValidate_MissingDependency(t *testing.T) {
	entries := []domain.ModEntry{
		{ID: "A", Name: "A", Enabled: true, Dependencies: []string{"B"}},
	}

	result := library.Validate(entries)
	require.Len(t, result.Issues, 1)
	issue := result.Issues[0]
	assert.Equal(t, domain.IssueMissingDependency, issue.Type)
	assert.Equal(t, "A", issue.ModID)
	assert.Equal(t, "B", issue.DependencyID)
	assert.True(t, result.HasErrors)
	assert.False(t, result.HasWarnings)
}

func TestValidate_DisabledDependency(t *testing.T) {
	entries := []domain.ModEntry{
		{ID: "A", Name: "A", Enabled: true, Dependencies: []string{"B"}},
		{ID: "B", Name: "B", Enabled: false},
	}

	result := library.Validate(entries)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, domain.IssueDisabledDependency, result.Issues[0].Type)
	assert.True(t, result.HasErrors)
}

func TestValidate_OptionalMissingIsWarningOnly(t *testing.T) {
	entries := []domain.ModEntry{
		{ID: "A", Name: "A", Enabled: true, OptionalDependencies: []string{"Extra"}},
	}

	result := library.Validate(entries)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, domain.IssueOptionalMissing, result.Issues[0].Type)
	assert.False(t, result.HasErrors)
	assert.True(t, result.HasWarnings)
}

func TestValidate_DisabledModsAreNotChecked(t *testing.T) {
	entries := []domain.ModEntry{
		{ID: "A", Name: "A", Enabled: false, Dependencies: []string{"Gone"}},
	}

	result := library.Validate(entries)
	assert.Empty(t, result.Issues)
	assert.False(t, result.HasErrors)
}

func TestValidate_SatisfiedGraphIsClean(t *testing.T) {
	entries := []domain.ModEntry{
		{ID: "A", Name: "A", Enabled: true, Dependencies: []string{"B"}, OptionalDependencies: []string{"C"}},
		{ID: "B", Name: "B", Enabled: true},
		{ID: "C", Name: "C", Enabled: false},
	}

	result := library.Validate(entries)
	assert.Empty(t, result.Issues)
}
