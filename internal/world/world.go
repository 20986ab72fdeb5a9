// Package world reads and rewrites the per-save-world config files the
// game itself consults. Only the "Mods" section is touched; every other
// field in the document survives a rewrite untouched.
package world

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/isdelr/hymn-sub000/internal/domain"
	"github.com/isdelr/hymn-sub000/internal/layout"
)

// Store accesses world config files under one installation.
type Store struct {
	fs     afero.Fs
	layout *layout.Layout
}

// NewStore creates a world store for the given installation layout.
func NewStore(fsys afero.Fs, lay *layout.Layout) *Store {
	return &Store{fs: fsys, layout: lay}
}

// ActiveWorld resolves which world's overrides apply. An explicit id wins;
// otherwise the world whose config was modified most recently is treated
// as active. Returns "" when no world has a config.
func (s *Store) ActiveWorld(explicit string) string {
	if explicit != "" {
		return explicit
	}

	infos, err := afero.ReadDir(s.fs, s.layout.SavesDir())
	if err != nil {
		return ""
	}

	var best string
	var bestTime time.Time
	for _, fi := range infos {
		if !fi.IsDir() {
			continue
		}
		conf, err := s.fs.Stat(s.layout.WorldConfig(fi.Name()))
		if err != nil {
			continue
		}
		if best == "" || conf.ModTime().After(bestTime) {
			best = fi.Name()
			bestTime = conf.ModTime()
		}
	}
	return best
}

// ReadOverrides parses a world's explicit per-mod enabled flags. A missing
// or unreadable config yields nil, which callers treat as "no world says
// anything" rather than an error.
func (s *Store) ReadOverrides(worldID string) map[string]bool {
	if worldID == "" {
		return nil
	}

	data, err := afero.ReadFile(s.fs, s.layout.WorldConfig(worldID))
	if err != nil || !gjson.ValidBytes(data) {
		return nil
	}

	overrides := make(map[string]bool)
	gjson.GetBytes(data, "Mods").ForEach(func(key, value gjson.Result) bool {
		overrides[key.String()] = value.Get("Enabled").Bool()
		return true
	})
	return overrides
}

// SyncOverrides rewrites the world config so every mod in desired has an
// explicit Enabled flag. Unrelated top-level fields and unrelated per-mod
// fields are preserved; only Enabled is toggled. The config is created
// when the world has none yet.
func (s *Store) SyncOverrides(worldID string, desired map[string]bool) error {
	if worldID == "" {
		return fmt.Errorf("%w: no active world", domain.ErrWorldConfig)
	}

	path := s.layout.WorldConfig(worldID)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		data = []byte("{}")
	}
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: %s", domain.ErrWorldConfig, path)
	}

	ids := make([]string, 0, len(desired))
	for id := range desired {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		data, err = sjson.SetBytes(data, "Mods."+escapeKey(id)+".Enabled", desired[id])
		if err != nil {
			return fmt.Errorf("setting %s: %w", id, err)
		}
	}

	if err := s.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating world dir: %w", err)
	}
	return afero.WriteFile(s.fs, path, data, 0644)
}

// escapeKey protects mod ids (which legitimately contain dots, e.g.
// "com.example:Foo") from being read as nested gjson/sjson path segments.
func escapeKey(id string) string {
	r := strings.NewReplacer(`\`, `\\`, `.`, `\.`, `*`, `\*`, `?`, `\?`, `|`, `\|`)
	return r.Replace(id)
}
