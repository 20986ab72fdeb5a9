package reconcile

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/isdelr/hymn-sub000/internal/domain"
	"github.com/isdelr/hymn-sub000/internal/layout"
)

// Remover deletes a mod from the library, always keeping one timestamped
// backup copy. It refuses to touch anything outside the known mod roots.
type Remover struct {
	fs        afero.Fs
	layout    *layout.Layout
	backupDir string
	mover     *Mover
	now       func() time.Time
}

// NewRemover creates a remover that backs up into backupDir.
func NewRemover(fsys afero.Fs, lay *layout.Layout, backupDir string) *Remover {
	return &Remover{
		fs:        fsys,
		layout:    lay,
		backupDir: backupDir,
		mover:     NewMover(fsys),
		now:       time.Now,
	}
}

// Remove copies path into the backup folder, then deletes it. The backup
// name is "<basename>_<timestamp>" with the timestamp's colons and
// periods replaced by dashes. Returns the backup path.
func (r *Remover) Remove(path string) (string, error) {
	if !r.layout.Contains(path) {
		return "", fmt.Errorf("%w: %s", domain.ErrOutsideRoot, path)
	}
	if _, err := r.fs.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrModNotFound, path)
	}

	backup := filepath.Join(r.backupDir, filepath.Base(path)+"_"+backupStamp(r.now()))
	if err := r.mover.CopyAll(path, backup); err != nil {
		return "", fmt.Errorf("backing up %s: %w", path, err)
	}

	if err := r.fs.RemoveAll(path); err != nil {
		return "", fmt.Errorf("removing %s: %w", path, err)
	}
	return backup, nil
}

func backupStamp(t time.Time) string {
	stamp := t.UTC().Format("2006-01-02T15:04:05.000Z")
	return strings.NewReplacer(":", "-", ".", "-").Replace(stamp)
}
