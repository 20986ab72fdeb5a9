package reconcile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Mover relocates a mod's file or directory between an enabled root and a
// disabled mirror.
type Mover struct {
	fs afero.Fs
}

// NewMover creates a mover on the given filesystem.
func NewMover(fsys afero.Fs) *Mover {
	return &Mover{fs: fsys}
}

// Move renames src to dst, creating dst's parent on demand. When rename
// fails (typically a cross-device move) it falls back to a recursive copy
// followed by deleting the source; the source is only removed after the
// copy fully succeeds.
func (m *Mover) Move(src, dst string) error {
	if err := m.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("creating destination dir: %w", err)
	}

	if err := m.fs.Rename(src, dst); err == nil {
		return nil
	}

	if err := m.CopyAll(src, dst); err != nil {
		return fmt.Errorf("copying %s: %w", src, err)
	}
	if err := m.fs.RemoveAll(src); err != nil {
		return fmt.Errorf("removing source after copy: %w", err)
	}
	return nil
}

// CopyAll copies a file or directory tree from src to dst.
func (m *Mover) CopyAll(src, dst string) error {
	info, err := m.fs.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return m.copyFile(src, dst, info.Mode())
	}

	return afero.Walk(m.fs, src, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if fi.IsDir() {
			return m.fs.MkdirAll(target, 0755)
		}
		return m.copyFile(path, target, fi.Mode())
	})
}

func (m *Mover) copyFile(src, dst string, mode os.FileMode) error {
	in, err := m.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := m.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := m.fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
