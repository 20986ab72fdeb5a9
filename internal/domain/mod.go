package domain

// Format describes how a mod is stored on disk
type Format int

const (
	FormatDirectory Format = iota // loose directory under an install root
	FormatArchiveZip
	FormatArchiveJar
)

func (f Format) String() string {
	switch f {
	case FormatDirectory:
		return "directory"
	case FormatArchiveZip:
		return "archive-zip"
	case FormatArchiveJar:
		return "archive-jar"
	default:
		return "unknown"
	}
}

// Location is the logical install category of a mod, independent of whether
// its files currently sit in the enabled root or the disabled mirror.
type Location int

const (
	LocationPacks Location = iota
	LocationMods
	LocationEarlyPlugins
)

func (l Location) String() string {
	switch l {
	case LocationPacks:
		return "packs"
	case LocationMods:
		return "mods"
	case LocationEarlyPlugins:
		return "early-plugins"
	default:
		return "unknown"
	}
}

// Locations returns all install categories in scan order.
func Locations() []Location {
	return []Location{LocationPacks, LocationMods, LocationEarlyPlugins}
}

// ModType classifies what a discovered entry actually is
type ModType int

const (
	TypeUnknown ModType = iota
	TypePack
	TypePlugin
	TypeEarlyPlugin
)

func (t ModType) String() string {
	switch t {
	case TypePack:
		return "pack"
	case TypePlugin:
		return "plugin"
	case TypeEarlyPlugin:
		return "early-plugin"
	default:
		return "unknown"
	}
}

// SizeUnknown marks an entry whose on-disk size could not be computed.
const SizeUnknown int64 = -1

// ModEntry is a single discovered mod, pack, or plugin with resolved
// metadata and enabled state. Entries are ephemeral: the library is
// re-scanned from disk every time, nothing here is persisted.
type ModEntry struct {
	ID                   string // "<group>:<name>" when a group is declared, else "<name>"
	Name                 string
	Group                string
	Version              string
	Description          string
	Format               Format
	Location             Location
	Path                 string // absolute path to the current physical location
	Type                 ModType
	EntryPoint           string // fully-qualified class name from the manifest, empty if none
	Dependencies         []string
	OptionalDependencies []string
	IncludesAssetPack    bool
	Enabled              bool
	Size                 int64 // bytes, SizeUnknown when unreadable
}

// EntryID derives the library-wide id for a mod.
func EntryID(group, name string) string {
	if group != "" {
		return group + ":" + name
	}
	return name
}
