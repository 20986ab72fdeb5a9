package library

import (
	"strings"

	"github.com/isdelr/hymn-sub000/internal/domain"
	"github.com/isdelr/hymn-sub000/internal/manifest"
)

// EntryParams carries the raw facts about one discovered mod: its parsed
// manifest (possibly nil), where and how it was found, and the enablement
// signals in effect for this scan.
type EntryParams struct {
	Manifest     *manifest.Manifest
	FallbackName string // archive/folder basename, used when the manifest has no Name
	Format       domain.Format
	Location     domain.Location
	Path         string
	HasClasses   bool
	// Placement forces the enabled flag when set; the scanner passes
	// false for everything found under a disabled mirror.
	Placement      *bool
	WorldOverrides map[string]bool
	Size           int64
}

// BuildEntry normalizes manifest data plus filesystem facts into a
// canonical ModEntry.
func BuildEntry(p EntryParams) domain.ModEntry {
	entry := domain.ModEntry{
		Name:     p.FallbackName,
		Format:   p.Format,
		Location: p.Location,
		Path:     p.Path,
		Size:     p.Size,
	}

	if m := p.Manifest; m != nil {
		if strings.TrimSpace(m.Name) != "" {
			entry.Name = m.Name
		}
		entry.Group = m.Group
		entry.Version = m.Version
		entry.Description = m.Description
		entry.EntryPoint = m.Main
		entry.Dependencies = m.Dependencies
		entry.OptionalDependencies = m.OptionalDependencies
		entry.IncludesAssetPack = m.IncludesAssetPack
	}

	entry.ID = domain.EntryID(entry.Group, entry.Name)
	entry.Type = resolveType(p.Manifest, p.Location, p.Format, p.HasClasses)
	entry.Enabled = ResolveEnabled(p.Placement, p.WorldOverrides, entry.ID)
	return entry
}

// resolveType classifies an entry. The order matters: the early-plugins
// location wins outright, a declared entry point or compiled classes mark
// a plugin, any other manifest marks a pack, and manifest-less directories
// under the pack or mod roots are still treated as packs.
func resolveType(m *manifest.Manifest, loc domain.Location, format domain.Format, hasClasses bool) domain.ModType {
	switch {
	case loc == domain.LocationEarlyPlugins:
		return domain.TypeEarlyPlugin
	case m != nil && m.Main != "":
		return domain.TypePlugin
	case hasClasses:
		return domain.TypePlugin
	case m != nil:
		return domain.TypePack
	case loc == domain.LocationPacks || format == domain.FormatDirectory:
		return domain.TypePack
	default:
		return domain.TypeUnknown
	}
}
