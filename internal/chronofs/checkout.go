package chronofs

import (
	"fmt"
	"os"
	"path/filepath"
)

// Checkout restores the working tree (excluding .chronofs) to exactly the
// contents of commitHash's tree. Every top-level entry other than
// .chronofs is removed first, then the tree is materialized recursively.
// Checkout is destructive of unstaged working-tree changes by design and
// does not move HEAD or the current reference.
func (r *Repository) Checkout(commitHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.RequireInitialized(); err != nil {
		return err
	}

	c, err := r.store.ReadCommit(commitHash)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(r.root)
	if err != nil {
		return fmt.Errorf("chronofs: list working directory: %w", err)
	}
	for _, e := range entries {
		if e.Name() == dirName {
			continue
		}
		if err := os.RemoveAll(filepath.Join(r.root, e.Name())); err != nil {
			return fmt.Errorf("chronofs: remove %s: %w", e.Name(), err)
		}
	}

	return r.materializeTree(c.Tree, r.root)
}

// materializeTree writes tree's contents under dest, creating directories
// for 040000 entries and blob files for 100644 entries, recursively.
func (r *Repository) materializeTree(treeHash, dest string) error {
	entries, err := r.store.ReadTree(treeHash)
	if err != nil {
		return err
	}

	for _, e := range entries {
		path := filepath.Join(dest, e.Name)
		switch e.Mode {
		case dirMode:
			if err := os.MkdirAll(path, 0o755); err != nil {
				return fmt.Errorf("chronofs: create directory %s: %w", path, err)
			}
			if err := r.materializeTree(e.Hash, path); err != nil {
				return err
			}
		default:
			data, err := r.store.ReadBlob(e.Hash)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("chronofs: create parent directory for %s: %w", path, err)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("chronofs: write %s: %w", path, err)
			}
		}
	}
	return nil
}
