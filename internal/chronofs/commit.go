package chronofs

import (
	"fmt"
	"time"

	"github.com/kushagras22/chronofs/internal/objectstore"
)

// Commit builds the commit tree from the current index, writes a commit
// object referencing it and the current HEAD as parent (absent for the
// root commit), and advances the current reference to the new commit. If
// HEAD has no symbolic target yet, it is set to the default branch first.
// Author defaults to "user" when empty. Returns the new commit's digest.
func (r *Repository) Commit(message, author string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.RequireInitialized(); err != nil {
		return "", err
	}
	if message == "" {
		return "", fmt.Errorf("%w: empty message", ErrCommitInvalid)
	}
	if author == "" {
		author = defaultAuthor
	}

	idx, err := r.loadIndex()
	if err != nil {
		return "", err
	}

	treeHash, err := r.buildTreeFromIndex(idx)
	if err != nil {
		return "", err
	}

	ref, err := r.currentHeadRef()
	if err != nil {
		return "", err
	}
	if ref == "" {
		ref = defaultRef
		if err := r.setHeadRef(ref); err != nil {
			return "", err
		}
	}

	parent, err := r.readRef(ref)
	if err != nil {
		return "", err
	}

	commitHash, err := r.store.WriteCommit(objectstore.Commit{
		Tree:    treeHash,
		Parent:  parent,
		Author:  author,
		Time:    time.Now().Unix(),
		Message: message,
	})
	if err != nil {
		return "", fmt.Errorf("chronofs: write commit: %w", err)
	}

	if err := r.updateRef(ref, commitHash); err != nil {
		return "", err
	}

	return commitHash, nil
}
