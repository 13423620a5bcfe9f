package chronofs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kushagras22/chronofs/internal/objectstore"
)

// sideData is a resolved diff side: each tracked path's blob digest, plus a
// way to fetch that path's raw content on demand.
type sideData struct {
	hashes map[string]string
	blob   func(path string) ([]byte, error)
}

// resolveSide interprets id as WORKING, INDEX, HEAD, or a literal commit
// digest, and returns its path->digest map. ok is false if id names a
// commit digest (directly, or via HEAD) that doesn't exist in the store.
func (r *Repository) resolveSide(id string) (sideData, bool, error) {
	switch id {
	case "WORKING":
		hashes, err := r.hashWorkingTree()
		if err != nil {
			return sideData{}, false, err
		}
		return sideData{
			hashes: hashes,
			blob: func(path string) ([]byte, error) {
				return os.ReadFile(filepath.Join(r.root, filepath.FromSlash(path)))
			},
		}, true, nil

	case "INDEX":
		idx, err := r.loadIndex()
		if err != nil {
			return sideData{}, false, err
		}
		hashes := make(map[string]string)
		for path, e := range idx.Entries() {
			hashes[path] = e.Hash
		}
		return sideData{hashes: hashes, blob: r.blobByPath(hashes)}, true, nil

	case "HEAD":
		head, err := r.resolveHEAD()
		if err != nil {
			return sideData{}, false, err
		}
		if head == "" {
			return sideData{}, false, nil
		}
		return r.resolveCommitSide(head)

	default:
		return r.resolveCommitSide(id)
	}
}

func (r *Repository) resolveCommitSide(commitHash string) (sideData, bool, error) {
	hashes, err := r.flattenCommitTree(commitHash)
	if err != nil {
		if errors.Is(err, objectstore.ErrNotFound) {
			return sideData{}, false, nil
		}
		return sideData{}, false, err
	}
	return sideData{hashes: hashes, blob: r.blobByPath(hashes)}, true, nil
}

// blobByPath returns a content fetcher that looks path up in hashes and
// reads the blob stored under that digest.
func (r *Repository) blobByPath(hashes map[string]string) func(path string) ([]byte, error) {
	return func(path string) ([]byte, error) {
		return r.store.ReadBlob(hashes[path])
	}
}

// Diff resolves leftID and rightID (each WORKING, INDEX, HEAD, or a literal
// commit digest) to path->digest maps and emits a per-file unified-ish diff
// for every path where the two sides differ. A missing side is reported as
// a one-line message rather than an error.
func (r *Repository) Diff(leftID, rightID string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := r.RequireInitialized(); err != nil {
		return "", err
	}

	left, leftOK, err := r.resolveSide(leftID)
	if err != nil {
		return "", err
	}
	if !leftOK {
		return "Left side not found\n", nil
	}

	right, rightOK, err := r.resolveSide(rightID)
	if err != nil {
		return "", err
	}
	if !rightOK {
		return "Right side not found\n", nil
	}

	paths := unionKeys(left.hashes, right.hashes)

	var out strings.Builder
	for _, path := range paths {
		leftHash, onLeft := left.hashes[path]
		rightHash, onRight := right.hashes[path]
		if onLeft && onRight && leftHash == rightHash {
			continue
		}

		var leftContent, rightContent []byte
		if onLeft {
			leftContent, err = left.blob(path)
			if err != nil {
				return "", fmt.Errorf("chronofs: read left content for %s: %w", path, err)
			}
		}
		if onRight {
			rightContent, err = right.blob(path)
			if err != nil {
				return "", fmt.Errorf("chronofs: read right content for %s: %w", path, err)
			}
		}

		fmt.Fprintf(&out, "diff -- %s\n", path)
		fmt.Fprintf(&out, "--- a/%s\n", path)
		fmt.Fprintf(&out, "+++ b/%s\n", path)
		for _, line := range lineDiff(leftContent, rightContent) {
			out.WriteString(line)
			out.WriteByte('\n')
		}
	}

	if out.Len() == 0 {
		return "(no differences)\n", nil
	}
	return out.String(), nil
}

func unionKeys(a, b map[string]string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for p := range a {
		seen[p] = struct{}{}
	}
	for p := range b {
		seen[p] = struct{}{}
	}
	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
