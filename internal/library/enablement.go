package library

// ResolveEnabled merges the three enablement signals for one entry.
// Precedence, most specific first:
//
//  1. placement: scanning a disabled mirror pins the flag to false; a mod
//     physically parked there can never read as enabled, even when a stale
//     world override claims otherwise.
//  2. the active world's explicit per-mod choice, when the world mentions
//     this id at all.
//  3. false. The game treats absent-from-world-config as disabled, and
//     defaulting the other way would silently activate unknown content.
func ResolveEnabled(placement *bool, worldOverrides map[string]bool, id string) bool {
	if placement != nil {
		return *placement
	}
	if enabled, ok := worldOverrides[id]; ok {
		return enabled
	}
	return false
}
