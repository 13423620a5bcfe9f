package chronofs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// FileState is a path's classification relative to the index and working
// tree.
type FileState string

const (
	StateUntracked FileState = "untracked"
	StateModified  FileState = "modified"
	StateStaged    FileState = "staged"
	StateDeleted   FileState = "deleted"
	StateClean     FileState = "clean"
)

// StatusEntry pairs a path with its classification. For StateClean with no
// tracked or untracked paths at all, Path is empty.
type StatusEntry struct {
	Path  string
	State FileState
}

// Status classifies every path observed in the working tree (excluding
// .chronofs) or the index. If neither set has any members, it returns a
// single StateClean entry with an empty path.
func (r *Repository) Status() ([]StatusEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := r.RequireInitialized(); err != nil {
		return nil, err
	}

	idx, err := r.loadIndex()
	if err != nil {
		return nil, err
	}
	staged := idx.Entries()

	working, err := r.hashWorkingTree()
	if err != nil {
		return nil, err
	}

	var out []StatusEntry

	for path := range working {
		entry, tracked := staged[path]
		switch {
		case !tracked:
			out = append(out, StatusEntry{Path: path, State: StateUntracked})
		case entry.Hash != working[path]:
			out = append(out, StatusEntry{Path: path, State: StateModified})
		default:
			out = append(out, StatusEntry{Path: path, State: StateStaged})
		}
	}

	for path := range staged {
		if _, present := working[path]; !present {
			out = append(out, StatusEntry{Path: path, State: StateDeleted})
		}
	}

	if len(out) == 0 {
		return []StatusEntry{{State: StateClean}}, nil
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// hashWorkingTree recursively scans the working tree, skipping .chronofs,
// and returns a map of slash-joined relative path to blob digest, computed
// with the same framing used at staging so equality with index entries is
// meaningful.
func (r *Repository) hashWorkingTree() (map[string]string, error) {
	out := make(map[string]string)

	err := filepath.WalkDir(r.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(r.root, path)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}
		slashRel := filepath.ToSlash(rel)

		if d.IsDir() {
			if slashRel == dirName {
				return filepath.SkipDir
			}
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("chronofs: read %s: %w", slashRel, readErr)
		}
		out[slashRel] = blobDigest(data)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("chronofs: scan working tree: %w", err)
	}
	return out, nil
}
