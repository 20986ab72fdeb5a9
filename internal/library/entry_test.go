package library_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/isdelr/hymn-sub000/internal/domain"
	"github.com/isdelr/hymn-sub000/internal/library"
	"github.com/isdelr/hymn-sub000/internal/manifest"
)

func TestBuildEntry_IDDerivation(t *testing.T) {
	entry := library.BuildEntry(library.EntryParams{
		Manifest: &manifest.Manifest{Name: "Foo", Group: "com.x"},
		Format:   domain.FormatDirectory,
		Location: domain.LocationMods,
	})
	assert.Equal(t, "com.x:Foo", entry.ID)

	entry = library.BuildEntry(library.EntryParams{
		Manifest: &manifest.Manifest{Name: "Bar"},
		Format:   domain.FormatDirectory,
		Location: domain.LocationMods,
	})
	assert.Equal(t, "Bar", entry.ID)
}

func TestBuildEntry_NameFallsBackToBasename(t *testing.T) {
	entry := library.BuildEntry(library.EntryParams{
		Manifest:     &manifest.Manifest{Name: "   "},
		FallbackName: "my-mod",
		Format:       domain.FormatDirectory,
		Location:     domain.LocationMods,
	})
	assert.Equal(t, "my-mod", entry.Name, "a whitespace-only name is not trusted")

	entry = library.BuildEntry(library.EntryParams{
		FallbackName: "my-mod",
		Format:       domain.FormatDirectory,
		Location:     domain.LocationMods,
	})
	assert.Equal(t, "my-mod", entry.Name)
	assert.Equal(t, "my-mod", entry.ID)
}

func TestBuildEntry_TypeResolutionOrder(t *testing.T) {
	// early-plugins wins outright, manifest or not
	entry := library.BuildEntry(library.EntryParams{
		Manifest: &manifest.Manifest{Name: "Boot", Main: "com.x.Boot"},
		Format:   domain.FormatArchiveJar,
		Location: domain.LocationEarlyPlugins,
	})
	assert.Equal(t, domain.TypeEarlyPlugin, entry.Type)

	// declared Main makes a plugin
	entry = library.BuildEntry(library.EntryParams{
		Manifest: &manifest.Manifest{Name: "P", Main: "com.x.P"},
		Format:   domain.FormatArchiveZip,
		Location: domain.LocationMods,
	})
	assert.Equal(t, domain.TypePlugin, entry.Type)
	assert.Equal(t, "com.x.P", entry.EntryPoint)

	// compiled classes make a plugin even without Main
	entry = library.BuildEntry(library.EntryParams{
		Format:     domain.FormatArchiveJar,
		Location:   domain.LocationMods,
		HasClasses: true,
	})
	assert.Equal(t, domain.TypePlugin, entry.Type)

	// manifest without Main or classes is a pack
	entry = library.BuildEntry(library.EntryParams{
		Manifest: &manifest.Manifest{Name: "Assets"},
		Format:   domain.FormatArchiveZip,
		Location: domain.LocationMods,
	})
	assert.Equal(t, domain.TypePack, entry.Type)

	// manifest-less directory is still a pack
	entry = library.BuildEntry(library.EntryParams{
		FallbackName: "loose",
		Format:       domain.FormatDirectory,
		Location:     domain.LocationMods,
	})
	assert.Equal(t, domain.TypePack, entry.Type)

	// manifest-less archive with no classes is unknown
	entry = library.BuildEntry(library.EntryParams{
		FallbackName: "mystery",
		Format:       domain.FormatArchiveZip,
		Location:     domain.LocationMods,
	})
	assert.Equal(t, domain.TypeUnknown, entry.Type)
}

func TestBuildEntry_DisabledPlacementBeatsWorldOverride(t *testing.T) {
	pinned := false
	entry := library.BuildEntry(library.EntryParams{
		Manifest:       &manifest.Manifest{Name: "Foo"},
		Format:         domain.FormatDirectory,
		Location:       domain.LocationMods,
		Placement:      &pinned,
		WorldOverrides: map[string]bool{"Foo": true},
	})
	assert.False(t, entry.Enabled)
}
