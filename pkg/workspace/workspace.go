package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Workspace is the filesystem root owned exclusively by one run. Later
// steps depend on state that earlier steps left under it.
type Workspace struct {
	Root string
}

// New resolves root to an absolute path.
func New(root string) (*Workspace, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}
	return &Workspace{Root: abs}, nil
}

// Reset deletes all contents of the root and recreates it empty. A clean
// workspace is a precondition for a reproducible run, so any failure here
// must halt the run before the first repository is cloned.
func (w *Workspace) Reset() error {
	if err := os.RemoveAll(w.Root); err != nil {
		return fmt.Errorf("cleaning workspace %s: %w", w.Root, err)
	}
	if err := os.MkdirAll(w.Root, 0o750); err != nil {
		return fmt.Errorf("recreating workspace %s: %w", w.Root, err)
	}
	return nil
}

// Dir resolves a path inside the workspace.
func (w *Workspace) Dir(parts ...string) string {
	return filepath.Join(append([]string{w.Root}, parts...)...)
}

// Enter runs fn with the process working directory set to root/subdir and
// restores the previous directory on every return path, normal or failed.
func (w *Workspace) Enter(subdir string, fn func(dir string) error) error {
	dir := w.Dir(subdir)

	prev, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("reading current directory: %w", err)
	}
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("entering %s: %w", dir, err)
	}
	defer func() {
		if err := os.Chdir(prev); err != nil {
			slog.Warn("failed to restore working directory", "dir", prev, "error", err)
		}
	}()

	return fn(dir)
}
