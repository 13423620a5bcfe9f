package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kushagras22/chronofs/internal/chronofs"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func initRepo(t *testing.T) *chronofs.Repository {
	t.Helper()
	repo, err := chronofs.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := repo.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return repo
}

func TestShouldIgnore(t *testing.T) {
	repo := initRepo(t)
	w := New(repo, discardLogger(), func([]chronofs.StatusEntry) {})

	tests := []struct {
		name   string
		event  fsnotify.Event
		ignore bool
	}{
		{
			name:   "write in working tree",
			event:  fsnotify.Event{Name: filepath.Join(repo.Root(), "a.txt"), Op: fsnotify.Write},
			ignore: false,
		},
		{
			name:   "remove in working tree",
			event:  fsnotify.Event{Name: filepath.Join(repo.Root(), "a.txt"), Op: fsnotify.Remove},
			ignore: false,
		},
		{
			name:   "chmod only",
			event:  fsnotify.Event{Name: filepath.Join(repo.Root(), "a.txt"), Op: fsnotify.Chmod},
			ignore: true,
		},
		{
			name:   "index write inside metadata",
			event:  fsnotify.Event{Name: filepath.Join(repo.Root(), ".chronofs", "index"), Op: fsnotify.Write},
			ignore: true,
		},
		{
			name:   "object create inside metadata",
			event:  fsnotify.Event{Name: filepath.Join(repo.Root(), ".chronofs", "objects", "abc"), Op: fsnotify.Create},
			ignore: true,
		},
		{
			name:   "file named like metadata prefix",
			event:  fsnotify.Event{Name: filepath.Join(repo.Root(), ".chronofs-notes"), Op: fsnotify.Create},
			ignore: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.shouldIgnore(tt.event); got != tt.ignore {
				t.Errorf("shouldIgnore(%v) = %v, want %v", tt.event, got, tt.ignore)
			}
		})
	}
}

func TestStatusFingerprint(t *testing.T) {
	a := []chronofs.StatusEntry{
		{Path: "a.txt", State: chronofs.StateStaged},
		{Path: "b.txt", State: chronofs.StateModified},
	}
	b := []chronofs.StatusEntry{
		{Path: "a.txt", State: chronofs.StateStaged},
		{Path: "b.txt", State: chronofs.StateModified},
	}
	c := []chronofs.StatusEntry{
		{Path: "a.txt", State: chronofs.StateStaged},
		{Path: "b.txt", State: chronofs.StateDeleted},
	}

	if statusFingerprint(a) != statusFingerprint(b) {
		t.Error("identical listings produced different fingerprints")
	}
	if statusFingerprint(a) == statusFingerprint(c) {
		t.Error("different listings produced equal fingerprints")
	}
	if statusFingerprint(nil) != "" {
		t.Errorf("empty listing fingerprint = %q, want empty", statusFingerprint(nil))
	}
}

func TestRunEmitsOnWorkingTreeChange(t *testing.T) {
	repo := initRepo(t)

	updates := make(chan []chronofs.StatusEntry, 16)
	w := New(repo, discardLogger(), func(entries []chronofs.StatusEntry) {
		updates <- entries
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// The initial evaluation fires unconditionally: a fresh repository is
	// clean.
	initial := waitForUpdate(t, updates)
	if len(initial) != 1 || initial[0].State != chronofs.StateClean {
		t.Fatalf("initial status = %v, want single clean entry", initial)
	}

	if err := os.WriteFile(filepath.Join(repo.Root(), "a.txt"), []byte("hello\n"), 0o644); err != nil {
		t.Fatalf("write a.txt: %v", err)
	}

	next := waitForUpdate(t, updates)
	if len(next) != 1 || next[0].Path != "a.txt" || next[0].State != chronofs.StateUntracked {
		t.Fatalf("status after create = %v, want a.txt untracked", next)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func waitForUpdate(t *testing.T, updates chan []chronofs.StatusEntry) []chronofs.StatusEntry {
	t.Helper()
	select {
	case entries := <-updates:
		return entries
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for status update")
		return nil
	}
}
