// Package manifest locates and parses mod metadata, either from a mod
// directory or from inside a zip/jar archive.
package manifest

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Manifest is the parsed manifest.json of a mod. Unknown fields are ignored.
type Manifest struct {
	Name                 string         `json:"Name"`
	Group                string         `json:"Group"`
	Version              string         `json:"Version"`
	Description          string         `json:"Description"`
	Main                 string         `json:"Main"`
	Dependencies         DependencyList `json:"Dependencies"`
	OptionalDependencies DependencyList `json:"OptionalDependencies"`
	IncludesAssetPack    bool           `json:"IncludesAssetPack"`
}

// DependencyList tolerates both manifest shapes for dependency fields:
// a plain array of ids, or an object whose keys are ids (values ignored).
// Anything else decodes to an empty list.
type DependencyList []string

func (d *DependencyList) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err == nil {
		*d = ids
		return nil
	}

	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(data, &keyed); err == nil {
		ids := make([]string, 0, len(keyed))
		for id := range keyed {
			ids = append(ids, id)
		}
		// Object keys carry no order; sort for a stable result.
		sort.Strings(ids)
		*d = ids
		return nil
	}

	*d = nil
	return nil
}

// Candidate manifest locations inside a mod directory, probed in order.
var dirCandidates = []string{
	"manifest.json",
	filepath.Join("Server", "manifest.json"),
	filepath.Join("src", "main", "resources", "manifest.json"),
}

// ReadDir probes the known manifest locations under dir and returns the
// first one that parses. A missing or malformed manifest is not an error;
// ReadDir returns nil and the caller degrades to filesystem metadata.
func ReadDir(fsys afero.Fs, dir string) *Manifest {
	for _, rel := range dirCandidates {
		data, err := afero.ReadFile(fsys, filepath.Join(dir, rel))
		if err != nil {
			continue
		}
		var m Manifest
		if err := json.Unmarshal(data, &m); err != nil {
			continue
		}
		return &m
	}
	return nil
}

// ArchiveInfo is what ReadArchive learns about a zip/jar mod.
type ArchiveInfo struct {
	Manifest     *Manifest
	ManifestPath string // entry name inside the archive, empty if none
	HasClasses   bool   // archive contains at least one compiled class
}

// ReadArchive opens the archive's central directory and looks for a
// manifest entry named manifest.json (preferred) or Server/manifest.json,
// matched case-insensitively. It also records whether the archive carries
// compiled classes, which marks a plugin even without a Main declaration.
// Errors propagate; callers treat them as "no manifest, no classes".
func ReadArchive(fsys afero.Fs, path string) (ArchiveInfo, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return ArchiveInfo{}, fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return ArchiveInfo{}, fmt.Errorf("stat archive: %w", err)
	}

	r, err := zip.NewReader(f, fi.Size())
	if err != nil {
		return ArchiveInfo{}, fmt.Errorf("reading zip: %w", err)
	}

	var exact, fallback *zip.File
	info := ArchiveInfo{}
	for _, zf := range r.File {
		name := strings.ToLower(zf.Name)
		switch name {
		case "manifest.json":
			exact = zf
		case "server/manifest.json":
			if fallback == nil {
				fallback = zf
			}
		}
		if strings.HasSuffix(name, ".class") {
			info.HasClasses = true
		}
	}

	pick := exact
	if pick == nil {
		pick = fallback
	}
	if pick == nil {
		return info, nil
	}

	m, err := readZipManifest(pick)
	if err != nil {
		return ArchiveInfo{}, err
	}
	info.Manifest = m
	info.ManifestPath = pick.Name
	return info, nil
}

func readZipManifest(zf *zip.File) (*Manifest, error) {
	rc, err := zf.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", zf.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", zf.Name, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", zf.Name, err)
	}
	return &m, nil
}
