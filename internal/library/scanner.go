// Package library discovers mods across the installation roots and turns
// them into canonical entries with resolved enabled state.
package library

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/isdelr/hymn-sub000/internal/domain"
	"github.com/isdelr/hymn-sub000/internal/layout"
	"github.com/isdelr/hymn-sub000/internal/manifest"
)

// Scanner walks the enabled roots and disabled mirrors of one installation.
// The walks are read-only and share no state, so each root is scanned
// concurrently.
type Scanner struct {
	fs       afero.Fs
	layout   *layout.Layout
	log      *log.Logger
	collator *collate.Collator
}

// NewScanner creates a scanner for the given installation layout.
func NewScanner(fsys afero.Fs, lay *layout.Layout, logger *log.Logger) *Scanner {
	return &Scanner{
		fs:       fsys,
		layout:   lay,
		log:      logger.With("component", "scanner"),
		collator: collate.New(language.Und),
	}
}

// Scan builds the full entry list: for each location the enabled root is
// scanned with no enablement override, then the disabled mirror with the
// flag pinned to false. The combined list is sorted by display name.
func (s *Scanner) Scan(ctx context.Context, worldOverrides map[string]bool) ([]domain.ModEntry, error) {
	if !s.layout.Configured() {
		return nil, nil
	}

	locations := domain.Locations()
	results := make([][]domain.ModEntry, 2*len(locations))

	g, _ := errgroup.WithContext(ctx)
	for i, loc := range locations {
		i, loc := i, loc
		g.Go(func() error {
			results[2*i] = s.scanRoot(loc, s.layout.EnabledRoot(loc), nil, worldOverrides)
			return nil
		})
		g.Go(func() error {
			pinned := false
			results[2*i+1] = s.scanRoot(loc, s.layout.DisabledRoot(loc), &pinned, worldOverrides)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var entries []domain.ModEntry
	for _, part := range results {
		entries = append(entries, part...)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if c := s.collator.CompareString(entries[i].Name, entries[j].Name); c != 0 {
			return c < 0
		}
		return entries[i].ID < entries[j].ID
	})

	s.log.Debug("scan complete", "entries", len(entries))
	return entries, nil
}

// scanRoot produces one entry per immediate subdirectory, plus one per
// loose archive where the location accepts them. A missing or unreadable
// root simply holds zero entries; per-entry read failures degrade to an
// entry without manifest metadata.
func (s *Scanner) scanRoot(loc domain.Location, root string, placement *bool, overrides map[string]bool) []domain.ModEntry {
	infos, err := afero.ReadDir(s.fs, root)
	if err != nil {
		return nil
	}

	var entries []domain.ModEntry
	for _, fi := range infos {
		path := filepath.Join(root, fi.Name())

		if fi.IsDir() {
			// early-plugins only holds loose jars
			if loc == domain.LocationEarlyPlugins {
				continue
			}
			entries = append(entries, BuildEntry(EntryParams{
				Manifest:       manifest.ReadDir(s.fs, path),
				FallbackName:   fi.Name(),
				Format:         domain.FormatDirectory,
				Location:       loc,
				Path:           path,
				Placement:      placement,
				WorldOverrides: overrides,
				Size:           s.dirSize(path),
			}))
			continue
		}

		format, ok := archiveFormat(loc, fi.Name())
		if !ok {
			continue
		}

		info, err := manifest.ReadArchive(s.fs, path)
		if err != nil {
			s.log.Debug("unreadable archive", "path", path, "err", err)
			info = manifest.ArchiveInfo{}
		}
		entries = append(entries, BuildEntry(EntryParams{
			Manifest:       info.Manifest,
			FallbackName:   strings.TrimSuffix(fi.Name(), filepath.Ext(fi.Name())),
			Format:         format,
			Location:       loc,
			Path:           path,
			HasClasses:     info.HasClasses,
			Placement:      placement,
			WorldOverrides: overrides,
			Size:           fi.Size(),
		}))
	}
	return entries
}

// archiveFormat decides whether a loose file counts as a mod archive for
// the given location: mods accept .zip and .jar, early-plugins only .jar,
// packs are always directories.
func archiveFormat(loc domain.Location, name string) (domain.Format, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	switch loc {
	case domain.LocationMods:
		switch ext {
		case ".zip":
			return domain.FormatArchiveZip, true
		case ".jar":
			return domain.FormatArchiveJar, true
		}
	case domain.LocationEarlyPlugins:
		if ext == ".jar" {
			return domain.FormatArchiveJar, true
		}
	}
	return 0, false
}

func (s *Scanner) dirSize(dir string) int64 {
	var total int64
	err := afero.Walk(s.fs, dir, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			total += info.Size()
		}
		return nil
	})
	if err != nil {
		s.log.Debug("size unavailable", "path", dir, "err", err)
		return domain.SizeUnknown
	}
	return total
}
