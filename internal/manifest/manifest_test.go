package manifest_test

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isdelr/hymn-sub000/internal/manifest"
)

func zipBytes(t *testing.T, files map[string]string) []byte {
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

func TestReadDir_ProbesCandidatesInOrder(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/mod/Server/manifest.json", []byte(`{"Name":"FromServer"}`), 0644))
	require.NoError(t, afero.WriteFile(fs, "/mod/src/main/resources/manifest.json", []byte(`{"Name":"FromResources"}`), 0644))

	m := manifest.ReadDir(fs, "/mod")
	require.NotNil(t, m)
	assert.Equal(t, "FromServer", m.Name)

	// A top-level manifest wins over both fallbacks.
	require.NoError(t, afero.WriteFile(fs, "/mod/manifest.json", []byte(`{"Name":"TopLevel"}`), 0644))
	m = manifest.ReadDir(fs, "/mod")
	require.NotNil(t, m)
	assert.Equal(t, "TopLevel", m.Name)
}

func TestReadDir_MalformedCandidateFallsThrough(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/mod/manifest.json", []byte(`{not json`), 0644))
	require.NoError(t, afero.WriteFile(fs, "/mod/Server/manifest.json", []byte(`{"Name":"Fallback"}`), 0644))

	m := manifest.ReadDir(fs, "/mod")
	require.NotNil(t, m)
	assert.Equal(t, "Fallback", m.Name)
}

func TestReadDir_MissingManifestIsNil(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/mod", 0755))

	assert.Nil(t, manifest.ReadDir(fs, "/mod"))
}

func TestReadArchive_CaseInsensitiveMatchAndClasses(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := zipBytes(t, map[string]string{
		"MANIFEST.json":         `{"Name":"Archived","Main":"com.example.Entry"}`,
		"com/example/Mod.class": "bytecode",
	})
	require.NoError(t, afero.WriteFile(fs, "/mods/mod.jar", data, 0644))

	info, err := manifest.ReadArchive(fs, "/mods/mod.jar")
	require.NoError(t, err)
	require.NotNil(t, info.Manifest)
	assert.Equal(t, "Archived", info.Manifest.Name)
	assert.Equal(t, "MANIFEST.json", info.ManifestPath)
	assert.True(t, info.HasClasses)
}

func TestReadArchive_ServerFallback(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := zipBytes(t, map[string]string{
		"Server/manifest.json": `{"Name":"ServerSide"}`,
		"assets/texture.png":   "png",
	})
	require.NoError(t, afero.WriteFile(fs, "/mods/pack.zip", data, 0644))

	info, err := manifest.ReadArchive(fs, "/mods/pack.zip")
	require.NoError(t, err)
	require.NotNil(t, info.Manifest)
	assert.Equal(t, "ServerSide", info.Manifest.Name)
	assert.False(t, info.HasClasses)
}

func TestReadArchive_NoManifestStillReportsClasses(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := zipBytes(t, map[string]string{
		"com/example/Mod.class": "bytecode",
	})
	require.NoError(t, afero.WriteFile(fs, "/mods/bare.jar", data, 0644))

	info, err := manifest.ReadArchive(fs, "/mods/bare.jar")
	require.NoError(t, err)
	assert.Nil(t, info.Manifest)
	assert.True(t, info.HasClasses)
}

func TestReadArchive_CorruptArchiveErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/mods/broken.zip", []byte("not a zip"), 0644))

	_, err := manifest.ReadArchive(fs, "/mods/broken.zip")
	assert.Error(t, err)
}

func TestDependencyList_AcceptsArrayAndObjectShapes(t *testing.T) {
	var m manifest.Manifest
	require.NoError(t, json.Unmarshal([]byte(`{"Dependencies":["a","b"]}`), &m))
	assert.Equal(t, manifest.DependencyList{"a", "b"}, m.Dependencies)

	m = manifest.Manifest{}
	require.NoError(t, json.Unmarshal([]byte(`{"Dependencies":{"b":"1.0","a":{"Version":"2"}}}`), &m))
	assert.Equal(t, manifest.DependencyList{"a", "b"}, m.Dependencies)

	m = manifest.Manifest{}
	require.NoError(t, json.Unmarshal([]byte(`{"Dependencies":42}`), &m))
	assert.Empty(t, m.Dependencies)
}
