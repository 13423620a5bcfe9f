// Package objectstore persists typed immutable records — blobs, trees, and
// commits — keyed by their content digest, under a repository's
// .chronofs/objects directory.
package objectstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kushagras22/chronofs/internal/digest"
)

// ErrNotFound is returned when a referenced digest has no corresponding object.
var ErrNotFound = errors.New("objectstore: object not found")

// ErrMalformed is returned when a stored object's header doesn't match the
// expected record type, or its body is truncated.
var ErrMalformed = errors.New("objectstore: object malformed")

const (
	blobHeader   = "blob\n"
	treeHeader   = "tree\n"
	commitHeader = "commit\n"
)

// Store is a content-addressed object store rooted at a single objects
// directory (conventionally <repoDir>/.chronofs/objects).
type Store struct {
	dir string
}

// Open returns a Store rooted at dir, creating dir if it doesn't exist.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("objectstore: create objects dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// New returns a Store rooted at dir without touching the filesystem, for
// callers that defer directory creation to their own initialization step.
func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(hash string) string {
	return filepath.Join(s.dir, hash)
}

// writeObject computes content's digest and writes it to disk iff absent,
// returning the digest either way. The write is atomic: content lands in a
// temp file in the same directory first, then is renamed into place, so a
// reader never observes a partially-written object under a finalized name.
func (s *Store) writeObject(content []byte) (string, error) {
	hash := digest.Sum(content)
	path := s.path(hash)

	if _, err := os.Stat(path); err == nil {
		return hash, nil // idempotent: identical content already stored
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("objectstore: stat %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("objectstore: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("objectstore: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("objectstore: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("objectstore: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("objectstore: rename into place: %w", err)
	}
	return hash, nil
}

// readObject loads the raw framed content stored under hash.
func (s *Store) readObject(hash string) ([]byte, error) {
	content, err := os.ReadFile(s.path(hash))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, hash)
	}
	if err != nil {
		return nil, fmt.Errorf("objectstore: read %s: %w", hash, err)
	}
	return content, nil
}

// WriteBlob frames data with the blob header and stores it, returning its digest.
func (s *Store) WriteBlob(data []byte) (string, error) {
	content := append([]byte(blobHeader), data...)
	return s.writeObject(content)
}

// ReadBlob loads the blob at hash and returns its unframed content.
func (s *Store) ReadBlob(hash string) ([]byte, error) {
	content, err := s.readObject(hash)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(string(content), blobHeader) {
		return nil, fmt.Errorf("%w: %s: expected blob header", ErrMalformed, hash)
	}
	return content[len(blobHeader):], nil
}

// TreeEntry is one line of a tree record: a named reference to a blob
// (mode "100644") or a subtree (mode "040000").
type TreeEntry struct {
	Mode string
	Name string
	Hash string
}

// WriteTree serializes entries, in the order given, into a tree record and
// stores it. Determinism of the order is the caller's responsibility.
func (s *Store) WriteTree(entries []TreeEntry) (string, error) {
	var b strings.Builder
	b.WriteString(treeHeader)
	for _, e := range entries {
		b.WriteString(e.Mode)
		b.WriteByte(' ')
		b.WriteString(e.Name)
		b.WriteByte(' ')
		b.WriteString(e.Hash)
		b.WriteByte('\n')
	}
	return s.writeObject([]byte(b.String()))
}

// ReadTree loads the tree at hash and returns its entries in on-disk order.
func (s *Store) ReadTree(hash string) ([]TreeEntry, error) {
	content, err := s.readObject(hash)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(string(content), treeHeader) {
		return nil, fmt.Errorf("%w: %s: expected tree header", ErrMalformed, hash)
	}

	body := string(content[len(treeHeader):])
	var entries []TreeEntry
	for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: %s: truncated tree entry %q", ErrMalformed, hash, line)
		}
		entries = append(entries, TreeEntry{Mode: fields[0], Name: fields[1], Hash: fields[2]})
	}
	return entries, nil
}

// Commit is an immutable record referencing a tree, an optional parent
// commit, an author, a Unix timestamp, and a free-form message.
type Commit struct {
	Tree    string
	Parent  string // empty for the root commit
	Author  string
	Time    int64
	Message string
}

// WriteCommit serializes c into a commit record and stores it.
func (s *Store) WriteCommit(c Commit) (string, error) {
	var b strings.Builder
	b.WriteString(commitHeader)
	fmt.Fprintf(&b, "tree %s\n", c.Tree)
	if c.Parent != "" {
		fmt.Fprintf(&b, "parent %s\n", c.Parent)
	}
	fmt.Fprintf(&b, "author %s\n", c.Author)
	fmt.Fprintf(&b, "time %d\n", c.Time)
	b.WriteString("message\n")
	b.WriteString(c.Message)
	b.WriteByte('\n')
	return s.writeObject([]byte(b.String()))
}

// ReadCommit loads and parses the commit at hash.
func (s *Store) ReadCommit(hash string) (Commit, error) {
	content, err := s.readObject(hash)
	if err != nil {
		return Commit{}, err
	}
	if !strings.HasPrefix(string(content), commitHeader) {
		return Commit{}, fmt.Errorf("%w: %s: expected commit header", ErrMalformed, hash)
	}

	body := string(content[len(commitHeader):])
	lines := strings.Split(body, "\n")

	var c Commit
	i := 0
	for ; i < len(lines); i++ {
		line := lines[i]
		switch {
		case strings.HasPrefix(line, "tree "):
			c.Tree = strings.TrimPrefix(line, "tree ")
		case strings.HasPrefix(line, "parent "):
			c.Parent = strings.TrimPrefix(line, "parent ")
		case strings.HasPrefix(line, "author "):
			c.Author = strings.TrimPrefix(line, "author ")
		case strings.HasPrefix(line, "time "):
			t, err := strconv.ParseInt(strings.TrimPrefix(line, "time "), 10, 64)
			if err != nil {
				return Commit{}, fmt.Errorf("%w: %s: invalid time field: %w", ErrMalformed, hash, err)
			}
			c.Time = t
		case line == "message":
			msg := strings.Join(lines[i+1:], "\n")
			c.Message = strings.TrimSuffix(msg, "\n")
			i = len(lines)
		}
	}

	if c.Tree == "" {
		return Commit{}, fmt.Errorf("%w: %s: missing tree field", ErrMalformed, hash)
	}
	return c, nil
}
