package library_test

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isdelr/hymn-sub000/internal/domain"
	"github.com/isdelr/hymn-sub000/internal/layout"
	"github.com/isdelr/hymn-sub000/internal/library"
)

func jarBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func libraryFixture(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()

	require.NoError(t, afero.WriteFile(fs, "/game/Packs/TexturePack/manifest.json", []byte(`{"Name":"TexturePack"}`), 0644))
	require.NoError(t, afero.WriteFile(fs, "/game/Mods/alpha/manifest.json", []byte(`{"Name":"Alpha","Group":"com.x","Dependencies":["Beta"]}`), 0644))
	require.NoError(t, afero.WriteFile(fs, "/game/Mods/alpha/data.bin", bytes.Repeat([]byte{0}, 100), 0644))
	require.NoError(t, afero.WriteFile(fs, "/game/Mods/beta.jar", jarBytes(t, map[string]string{
		"manifest.json": `{"Name":"Beta","Main":"com.x.Beta"}`,
		"com/x/B.class": "bytecode",
	}), 0644))
	require.NoError(t, afero.WriteFile(fs, "/game/Mods/notes.txt", []byte("not a mod"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/game/earlyplugins/boot.jar", jarBytes(t, map[string]string{
		"manifest.json": `{"Name":"Boot"}`,
	}), 0644))
	require.NoError(t, afero.WriteFile(fs, "/game/disabled/mods/gamma/manifest.json", []byte(`{"Name":"Gamma"}`), 0644))

	return fs
}

func newScanner(fs afero.Fs) *library.Scanner {
	return library.NewScanner(fs, layout.New("/game"), log.New(io.Discard))
}

func TestScanner_FullScan(t *testing.T) {
	fs := libraryFixture(t)
	overrides := map[string]bool{"com.x:Alpha": true, "Gamma": true}

	entries, err := newScanner(fs).Scan(context.Background(), overrides)
	require.NoError(t, err)
	require.Len(t, entries, 5)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Alpha", "Beta", "Boot", "Gamma", "TexturePack"}, names, "sorted by display name")

	byID := make(map[string]domain.ModEntry)
	for _, e := range entries {
		byID[e.ID] = e
	}

	alpha := byID["com.x:Alpha"]
	assert.True(t, alpha.Enabled, "world override enables alpha")
	assert.Equal(t, domain.FormatDirectory, alpha.Format)
	assert.Equal(t, domain.LocationMods, alpha.Location)
	assert.Equal(t, []string{"Beta"}, alpha.Dependencies)
	assert.Greater(t, alpha.Size, int64(99), "directory size is recursive")

	beta := byID["Beta"]
	assert.False(t, beta.Enabled, "absent from the world config means disabled")
	assert.Equal(t, domain.FormatArchiveJar, beta.Format)
	assert.Equal(t, domain.TypePlugin, beta.Type)

	boot := byID["Boot"]
	assert.Equal(t, domain.LocationEarlyPlugins, boot.Location)
	assert.Equal(t, domain.TypeEarlyPlugin, boot.Type)

	gamma := byID["Gamma"]
	assert.False(t, gamma.Enabled, "disabled mirror pins the flag even with an override")
	assert.Equal(t, "/game/disabled/mods/gamma", gamma.Path)

	pack := byID["TexturePack"]
	assert.Equal(t, domain.TypePack, pack.Type)
	assert.Equal(t, domain.LocationPacks, pack.Location)
}

func TestScanner_Idempotent(t *testing.T) {
	fs := libraryFixture(t)
	overrides := map[string]bool{"com.x:Alpha": true}
	scanner := newScanner(fs)

	first, err := scanner.Scan(context.Background(), overrides)
	require.NoError(t, err)
	second, err := scanner.Scan(context.Background(), overrides)
	require.NoError(t, err)

	assert.Equal(t, first, second, "scanning twice with no filesystem change is identical")
}

func TestScanner_UnconfiguredInstall(t *testing.T) {
	entries, err := library.NewScanner(afero.NewMemMapFs(), layout.New(""), log.New(io.Discard)).Scan(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestScanner_CorruptArchiveDegrades(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/game/Mods/broken.zip", []byte("junk"), 0644))

	entries, err := newScanner(fs).Scan(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "broken", entries[0].Name, "the entry survives without manifest metadata")
	assert.Equal(t, domain.TypeUnknown, entries[0].Type)
}

func TestScanner_LegacyInstallWithoutPacksDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/game/Mods/assets/manifest.json", []byte(`{"Name":"Assets"}`), 0644))

	entries, err := newScanner(fs).Scan(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.TypePack, entries[0].Type, "pack content under Mods still classifies as a pack")
}
