// Package layout encodes the directory contract of a mod installation:
// the enabled roots per install category, their disabled mirrors, and the
// per-save-world config files. It also guards path containment so no
// operation ever touches files outside the known roots.
package layout

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/isdelr/hymn-sub000/internal/domain"
)

const (
	packsDir   = "Packs"
	modsDir    = "Mods"
	earlyDir   = "earlyplugins"
	disabled   = "disabled"
	savesDir   = "Saves"
	worldsConf = "config.json"
)

// Layout resolves paths inside one installation root.
type Layout struct {
	root string
}

// New creates a layout for the given install root. An empty root means
// no installation is configured (first-run state).
func New(root string) *Layout {
	return &Layout{root: root}
}

// Configured reports whether an install root is known.
func (l *Layout) Configured() bool {
	return l.root != ""
}

// Root returns the install root.
func (l *Layout) Root() string {
	return l.root
}

// EnabledRoot returns the directory holding a location's active mods.
// Legacy installs may lack a Packs directory; callers treat a missing
// directory as holding zero entries.
func (l *Layout) EnabledRoot(loc domain.Location) string {
	return filepath.Join(l.root, enabledName(loc))
}

// DisabledRoot returns the disabled-mirror directory for a location.
func (l *Layout) DisabledRoot(loc domain.Location) string {
	return filepath.Join(l.root, disabled, mirrorName(loc))
}

// SavesDir returns the directory holding per-save worlds.
func (l *Layout) SavesDir() string {
	return filepath.Join(l.root, savesDir)
}

// WorldConfig returns the path of a world's config file.
func (l *Layout) WorldConfig(worldID string) string {
	return filepath.Join(l.SavesDir(), worldID, worldsConf)
}

// Contains reports whether path sits inside one of the known mod roots
// (an enabled root or a disabled mirror). Paths escaping a root through
// ".." never pass.
func (l *Layout) Contains(path string) bool {
	if !l.Configured() {
		return false
	}
	for _, loc := range domain.Locations() {
		if within(l.EnabledRoot(loc), path) || within(l.DisabledRoot(loc), path) {
			return true
		}
	}
	return false
}

// InDisabled reports whether path sits inside a disabled mirror.
func (l *Layout) InDisabled(path string) bool {
	if !l.Configured() {
		return false
	}
	for _, loc := range domain.Locations() {
		if within(l.DisabledRoot(loc), path) {
			return true
		}
	}
	return false
}

func enabledName(loc domain.Location) string {
	switch loc {
	case domain.LocationPacks:
		return packsDir
	case domain.LocationEarlyPlugins:
		return earlyDir
	default:
		return modsDir
	}
}

func mirrorName(loc domain.Location) string {
	switch loc {
	case domain.LocationPacks:
		return "packs"
	case domain.LocationEarlyPlugins:
		return "earlyplugins"
	default:
		return "mods"
	}
}

// within reports whether path is strictly inside root.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." || rel == ".." {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}
