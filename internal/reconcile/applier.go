// Package reconcile makes physical file placement and the active world's
// config agree with a target profile: it diffs the desired enabled set
// against scanned reality and performs the minimal set of moves between
// enabled roots and disabled mirrors.
package reconcile

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/isdelr/hymn-sub000/internal/domain"
	"github.com/isdelr/hymn-sub000/internal/layout"
	"github.com/isdelr/hymn-sub000/internal/world"
)

// Applier reconciles one installation against a desired enabled set.
type Applier struct {
	fs     afero.Fs
	layout *layout.Layout
	worlds *world.Store
	mover  *Mover
	log    *log.Logger
}

// NewApplier creates an applier for the given installation layout.
func NewApplier(fsys afero.Fs, lay *layout.Layout, worlds *world.Store, logger *log.Logger) *Applier {
	return &Applier{
		fs:     fsys,
		layout: lay,
		worlds: worlds,
		mover:  NewMover(fsys),
		log:    logger.With("component", "applier"),
	}
}

// Reconcile walks freshly scanned entries and moves each one whose
// physical placement disagrees with the desired set. A move whose
// destination already holds a same-named file is skipped, not overwritten;
// skipped entries are reported so callers can surface them. After the
// moves, the active world's config gets an explicit Enabled flag for every
// scanned entry; that sync is best-effort and its failure never fails the
// apply.
func (a *Applier) Reconcile(entries []domain.ModEntry, desired map[string]bool, worldID string) (moved int, skipped []domain.ModEntry, err error) {
	for _, entry := range entries {
		if !a.layout.Contains(entry.Path) {
			return moved, skipped, fmt.Errorf("%w: %s", domain.ErrOutsideRoot, entry.Path)
		}

		shouldEnable := desired[entry.ID]
		currentlyDisabled := a.layout.InDisabled(entry.Path)

		var dst string
		switch {
		case shouldEnable && currentlyDisabled:
			dst = filepath.Join(a.layout.EnabledRoot(entry.Location), filepath.Base(entry.Path))
		case !shouldEnable && !currentlyDisabled:
			dst = filepath.Join(a.layout.DisabledRoot(entry.Location), filepath.Base(entry.Path))
		default:
			continue
		}

		if exists, _ := afero.Exists(a.fs, dst); exists {
			a.log.Warn("destination exists, leaving entry in place", "mod", entry.ID, "dst", dst)
			skipped = append(skipped, entry)
			continue
		}

		if err := a.mover.Move(entry.Path, dst); err != nil {
			// Keep reconciling the rest; one stuck mod should not strand
			// every other move.
			a.log.Error("move failed", "mod", entry.ID, "err", err)
			skipped = append(skipped, entry)
			continue
		}
		moved++
		a.log.Debug("moved", "mod", entry.ID, "to", dst)
	}

	if worldID != "" {
		sync := make(map[string]bool, len(entries))
		for _, entry := range entries {
			sync[entry.ID] = desired[entry.ID]
		}
		if err := a.worlds.SyncOverrides(worldID, sync); err != nil {
			a.log.Warn("world config sync failed", "world", worldID, "err", err)
		}
	}

	return moved, skipped, nil
}
