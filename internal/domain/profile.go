package domain

import "time"

// DefaultProfileID is the id of the readonly profile that mirrors the
// physical state of the library rather than user intent.
const DefaultProfileID = "default"

// Profile is a named, persisted set of mod ids that should be enabled
// together.
type Profile struct {
	ID          string
	Name        string
	EnabledMods []string
	Readonly    bool
}

// EnabledSet returns the profile's mod ids as a lookup set.
func (p *Profile) EnabledSet() map[string]bool {
	set := make(map[string]bool, len(p.EnabledMods))
	for _, id := range p.EnabledMods {
		set[id] = true
	}
	return set
}

// ScanResult is the outcome of a full library scan.
type ScanResult struct {
	InstallPath string
	Entries     []ModEntry
	Validation  ValidationResult
}

// ApplyResult reports what a profile application did.
type ApplyResult struct {
	ProfileID string
	AppliedAt time.Time
	Moved     int
	// Skipped holds entries left in place because the move destination
	// already contained a same-named file.
	Skipped []ModEntry
}
