package chronofs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kushagras22/chronofs/internal/index"
	"github.com/kushagras22/chronofs/internal/objectstore"
)

// dirNode is an in-memory directory while building a tree from the index:
// files maps name to blob digest, dirs maps name to a child directory.
type dirNode struct {
	files map[string]string
	dirs  map[string]*dirNode
}

func newDirNode() *dirNode {
	return &dirNode{files: make(map[string]string), dirs: make(map[string]*dirNode)}
}

// insert places hash at the end of segs within root, creating intermediate
// directory nodes as needed.
func insert(root *dirNode, segs []string, hash string) {
	node := root
	for _, seg := range segs[:len(segs)-1] {
		child, ok := node.dirs[seg]
		if !ok {
			child = newDirNode()
			node.dirs[seg] = child
		}
		node = child
	}
	node.files[segs[len(segs)-1]] = hash
}

// buildTreeFromIndex collapses idx into a nested tree of object store tree
// records and returns the root tree's digest. Within each directory, file
// entries are written in ascending name order followed by subdirectory
// entries in ascending name order — a fixed, deterministic choice so that
// identical index contents always produce identical tree digests.
func (r *Repository) buildTreeFromIndex(idx *index.Index) (string, error) {
	root := newDirNode()
	for path, e := range idx.Entries() {
		insert(root, strings.Split(path, "/"), e.Hash)
	}
	return r.writeDirNode(root)
}

func (r *Repository) writeDirNode(node *dirNode) (string, error) {
	fileNames := sortedKeys(node.files)
	dirNames := sortedKeys(node.dirs)

	entries := make([]objectstore.TreeEntry, 0, len(fileNames)+len(dirNames))
	for _, name := range fileNames {
		entries = append(entries, objectstore.TreeEntry{Mode: defaultMode, Name: name, Hash: node.files[name]})
	}
	for _, name := range dirNames {
		subHash, err := r.writeDirNode(node.dirs[name])
		if err != nil {
			return "", err
		}
		entries = append(entries, objectstore.TreeEntry{Mode: dirMode, Name: name, Hash: subHash})
	}

	hash, err := r.store.WriteTree(entries)
	if err != nil {
		return "", fmt.Errorf("chronofs: write tree: %w", err)
	}
	return hash, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// flattenTree walks the tree at hash recursively and returns a map of every
// slash-joined leaf path to its blob digest.
func (r *Repository) flattenTree(hash string) (map[string]string, error) {
	out := make(map[string]string)
	if err := r.flattenTreeInto(hash, "", out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) flattenTreeInto(hash, prefix string, out map[string]string) error {
	entries, err := r.store.ReadTree(hash)
	if err != nil {
		return err
	}
	for _, e := range entries {
		path := e.Name
		if prefix != "" {
			path = prefix + "/" + e.Name
		}
		switch e.Mode {
		case dirMode:
			if err := r.flattenTreeInto(e.Hash, path, out); err != nil {
				return err
			}
		default:
			out[path] = e.Hash
		}
	}
	return nil
}

// flattenCommitTree reads the commit at hash and flattens its tree.
func (r *Repository) flattenCommitTree(commitHash string) (map[string]string, error) {
	c, err := r.store.ReadCommit(commitHash)
	if err != nil {
		return nil, err
	}
	return r.flattenTree(c.Tree)
}
