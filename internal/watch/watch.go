// Package watch re-evaluates repository status when the working tree
// changes, emitting a fresh classification only when it differs from the
// last one reported.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kushagras22/chronofs/internal/chronofs"
)

const debounceTime = 200 * time.Millisecond

// Watcher subscribes to filesystem change notifications under a
// repository's working directory (excluding .chronofs) and invokes a
// callback with the recomputed status whenever the classification changes.
type Watcher struct {
	repo     *chronofs.Repository
	logger   *slog.Logger
	onStatus func([]chronofs.StatusEntry)

	mu      sync.Mutex
	lastKey string
}

// New creates a Watcher over repo. onStatus is called each time the status
// classification changes: once with the initial state on the goroutine
// that calls Run, and afterwards from the debounce timer's goroutine.
func New(repo *chronofs.Repository, logger *slog.Logger, onStatus func([]chronofs.StatusEntry)) *Watcher {
	return &Watcher{repo: repo, logger: logger, onStatus: onStatus}
}

// Run watches the working tree until ctx is cancelled. fsnotify does not
// recurse into subdirectories, so every directory under the root (except
// .chronofs) is watched explicitly, and directories created while running
// are added as their Create events arrive.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() {
		if err := fw.Close(); err != nil {
			w.logger.Error("Failed to close watcher", "err", err)
		}
	}()

	w.addRecursive(fw, w.repo.Root())
	w.evaluate()

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.shouldIgnore(event) {
				continue
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					w.addRecursive(fw, event.Name)
				}
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceTime, func() {
				if ctx.Err() != nil {
					return
				}
				w.evaluate()
			})

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "err", err)
		}
	}
}

// addRecursive adds fsnotify watches to dir and all its subdirectories,
// skipping .chronofs. Unreadable entries are skipped.
func (w *Watcher) addRecursive(fw *fsnotify.Watcher, dir string) {
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil //nolint:nilerr // skip unreadable entries
		}
		if !d.IsDir() {
			return nil
		}
		if w.insideMetadata(path) {
			return filepath.SkipDir
		}
		if addErr := fw.Add(path); addErr != nil {
			w.logger.Warn("Failed to watch directory", "dir", path, "err", addErr)
		}
		return nil
	})
	if err != nil {
		w.logger.Warn("Failed to walk working tree", "dir", dir, "err", err)
	}
}

// shouldIgnore filters events that cannot affect status: anything inside
// .chronofs, and operations other than Write, Create, Remove, and Rename.
// Remove is needed so deleting a staged file surfaces as "deleted".
func (w *Watcher) shouldIgnore(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return true
	}
	return w.insideMetadata(event.Name)
}

// insideMetadata reports whether path is the .chronofs directory or any
// path beneath it.
func (w *Watcher) insideMetadata(path string) bool {
	rel, err := filepath.Rel(w.repo.Root(), path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	return rel == ".chronofs" || strings.HasPrefix(rel, ".chronofs/")
}

// evaluate recomputes status and invokes the callback if the
// classification differs from the last one reported.
func (w *Watcher) evaluate() {
	entries, err := w.repo.Status()
	if err != nil {
		w.logger.Error("Failed to compute status", "err", err)
		return
	}

	key := statusFingerprint(entries)

	w.mu.Lock()
	changed := key != w.lastKey
	w.lastKey = key
	w.mu.Unlock()

	if changed {
		w.onStatus(entries)
	}
}

// statusFingerprint collapses a status listing into a comparable string.
// Entries arrive sorted by path from Status, so equal classifications
// always produce equal fingerprints.
func statusFingerprint(entries []chronofs.StatusEntry) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(string(e.State))
		b.WriteByte('\t')
		b.WriteString(e.Path)
		b.WriteByte('\n')
	}
	return b.String()
}
