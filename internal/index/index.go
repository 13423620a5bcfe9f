// Package index maintains the set of paths staged for the next commit
// and their pinned blob digests, persisted as a flat line-oriented file.
package index

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Entry is one staged path: its file mode and the digest of its blob.
type Entry struct {
	Mode string
	Hash string
}

// Index is the in-memory staging area, backed by a file at a fixed path
// (conventionally <repoDir>/.chronofs/index).
type Index struct {
	path    string
	entries map[string]Entry
}

// New returns an empty Index backed by path. Call Load to populate it from disk.
func New(path string) *Index {
	return &Index{path: path, entries: make(map[string]Entry)}
}

// Load replaces the in-memory state with what's on disk at path. A missing
// file is equivalent to an empty index, not an error.
func (idx *Index) Load() error {
	idx.entries = make(map[string]Entry)

	f, err := os.Open(idx.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("index: open %s: %w", idx.path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return fmt.Errorf("index: malformed line %q in %s", line, idx.path)
		}
		idx.entries[fields[1]] = Entry{Mode: fields[0], Hash: fields[2]}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("index: read %s: %w", idx.path, err)
	}
	return nil
}

// Save rewrites the backing file in full, one "mode SP path SP hash" line
// per entry in sorted path order, so repeated saves of equal state produce
// byte-identical files.
func (idx *Index) Save() error {
	paths := idx.sortedPaths()

	var b strings.Builder
	for _, p := range paths {
		e := idx.entries[p]
		fmt.Fprintf(&b, "%s %s %s\n", e.Mode, p, e.Hash)
	}

	if err := os.WriteFile(idx.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("index: write %s: %w", idx.path, err)
	}
	return nil
}

// Add inserts path or replaces its existing entry.
func (idx *Index) Add(path, mode, hash string) {
	idx.entries[path] = Entry{Mode: mode, Hash: hash}
}

// Remove deletes path's entry if present; otherwise it is a no-op.
func (idx *Index) Remove(path string) {
	delete(idx.entries, path)
}

// Get returns path's entry and whether it is staged.
func (idx *Index) Get(path string) (Entry, bool) {
	e, ok := idx.entries[path]
	return e, ok
}

// Entries returns a copy of all staged paths and their entries. The result
// is a map, so iteration order is not defined; callers that need a fixed
// order sort the keys themselves.
func (idx *Index) Entries() map[string]Entry {
	out := make(map[string]Entry, len(idx.entries))
	for p, e := range idx.entries {
		out[p] = e
	}
	return out
}

func (idx *Index) sortedPaths() []string {
	paths := make([]string, 0, len(idx.entries))
	for p := range idx.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
