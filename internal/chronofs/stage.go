package chronofs

import (
	"fmt"
	"os"
	"path/filepath"
)

// Add stages path: the file is read in full, written to the object store
// as a blob, and the resulting digest recorded in the index under path's
// forward-slash form with mode 100644. The index is saved before Add
// returns. Staging an already-staged, unchanged file is idempotent.
func (r *Repository) Add(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.RequireInitialized(); err != nil {
		return err
	}

	rel, err := r.relPath(path)
	if err != nil {
		return err
	}

	abs := filepath.Join(r.root, filepath.FromSlash(rel))
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPathInvalid, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrPathInvalid, path)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return fmt.Errorf("chronofs: read %s: %w", path, err)
	}

	hash, err := r.store.WriteBlob(data)
	if err != nil {
		return fmt.Errorf("chronofs: store blob for %s: %w", path, err)
	}

	idx, err := r.loadIndex()
	if err != nil {
		return err
	}
	idx.Add(rel, defaultMode, hash)
	if err := idx.Save(); err != nil {
		return fmt.Errorf("chronofs: save index: %w", err)
	}

	return nil
}
