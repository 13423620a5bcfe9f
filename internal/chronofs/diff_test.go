package chronofs

import (
	"strings"
	"testing"
)

func TestDiff_IdenticalSidesYieldNoDifferences(t *testing.T) {
	r := newTestRepo(t)
	if err := r.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	writeFile(t, r, "a.txt", "hello\n")
	_ = r.Add("a.txt")
	if _, err := r.Commit("first", "alice"); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	out, err := r.Diff("HEAD", "HEAD")
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if out != "(no differences)\n" {
		t.Errorf("Diff(HEAD, HEAD) = %q, want %q", out, "(no differences)\n")
	}

	out, err = r.Diff("WORKING", "INDEX")
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if out != "(no differences)\n" {
		t.Errorf("Diff(WORKING, INDEX) = %q, want %q", out, "(no differences)\n")
	}
}

func TestDiff_ModifiedFileProducesHeaderAndLines(t *testing.T) {
	r := newTestRepo(t)
	if err := r.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	writeFile(t, r, "a.txt", "line one\n")
	_ = r.Add("a.txt")
	first, err := r.Commit("first", "alice")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	writeFile(t, r, "a.txt", "line one\nline two\n")
	_ = r.Add("a.txt")
	if _, err := r.Commit("second", "alice"); err != nil {
		t.Fatalf("Commit (second): %v", err)
	}

	out, err := r.Diff("HEAD", first)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}

	if !strings.Contains(out, "diff -- a.txt\n") {
		t.Errorf("Diff output missing header, got %q", out)
	}
	if !strings.Contains(out, "--- a/a.txt\n") || !strings.Contains(out, "+++ b/a.txt\n") {
		t.Errorf("Diff output missing file markers, got %q", out)
	}
	if !strings.Contains(out, "-line two") {
		t.Errorf("Diff(HEAD, first) should show line two removed relative to first, got %q", out)
	}
}

func TestDiff_AddedFileBetweenCommits(t *testing.T) {
	r := newTestRepo(t)
	if err := r.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	writeFile(t, r, "unchanged.txt", "stays the same\n")
	_ = r.Add("unchanged.txt")
	first, err := r.Commit("first", "alice")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	writeFile(t, r, "only-right.txt", "right\n")
	_ = r.Add("only-right.txt")
	_ = r.Add("unchanged.txt")
	second, err := r.Commit("second", "alice")
	if err != nil {
		t.Fatalf("Commit (second): %v", err)
	}

	out, err := r.Diff(first, second)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if !strings.Contains(out, "diff -- only-right.txt\n") {
		t.Errorf("Diff missing added-file header, got %q", out)
	}
	if strings.Contains(out, "unchanged.txt") {
		t.Errorf("Diff should not mention an unchanged file, got %q", out)
	}
}

func TestDiff_UnknownCommitReportsSideNotFound(t *testing.T) {
	r := newTestRepo(t)
	if err := r.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	out, err := r.Diff("0000000000000000000000000000000000000000000000000000000000000000", "WORKING")
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if out != "Left side not found\n" {
		t.Errorf("Diff(unknown, WORKING) = %q, want %q", out, "Left side not found\n")
	}

	out, err = r.Diff("WORKING", "0000000000000000000000000000000000000000000000000000000000000000")
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if out != "Right side not found\n" {
		t.Errorf("Diff(WORKING, unknown) = %q, want %q", out, "Right side not found\n")
	}
}

func TestDiff_UnbornHeadReportsSideNotFound(t *testing.T) {
	r := newTestRepo(t)
	if err := r.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	out, err := r.Diff("HEAD", "WORKING")
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if out != "Left side not found\n" {
		t.Errorf("Diff(HEAD, WORKING) on unborn repo = %q, want %q", out, "Left side not found\n")
	}
}
