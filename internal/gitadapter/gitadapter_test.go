package gitadapter

import (
	"context"
	"testing"

	"github.com/DRMacIver/claude-reliability-sub001/internal/runner"
)

func TestIsRepoTrue(t *testing.T) {
	rec := runner.NewRecording()
	rec.Stub(runner.Output{Stdout: "true\n"}, nil, "git", "rev-parse", "--is-inside-work-tree")
	a := New(rec, "/proj")

	if !a.IsRepo(context.Background()) {
		t.Fatal("expected IsRepo to be true")
	}
}

func TestIsRepoFalseOnError(t *testing.T) {
	rec := runner.NewRecording()
	a := New(rec, "/proj") // no stub registered -> error path

	if a.IsRepo(context.Background()) {
		t.Fatal("expected IsRepo to be false when git errors")
	}
}

func TestCurrentBranchDetachedHead(t *testing.T) {
	rec := runner.NewRecording()
	rec.Stub(runner.Output{Stdout: "HEAD\n"}, nil, "git", "rev-parse", "--abbrev-ref", "HEAD")
	a := New(rec, "/proj")

	if got := a.CurrentBranch(context.Background()); got != "" {
		t.Fatalf("expected empty branch for detached HEAD, got %q", got)
	}
}

func TestCurrentBranchNamed(t *testing.T) {
	rec := runner.NewRecording()
	rec.Stub(runner.Output{Stdout: "main\n"}, nil, "git", "rev-parse", "--abbrev-ref", "HEAD")
	a := New(rec, "/proj")

	if got := a.CurrentBranch(context.Background()); got != "main" {
		t.Fatalf("got %q, want main", got)
	}
}

func TestStagedFilesEmptyOnError(t *testing.T) {
	rec := runner.NewRecording()
	a := New(rec, "/proj")

	if files := a.StagedFiles(context.Background()); files != nil {
		t.Fatalf("expected nil staged files on error, got %+v", files)
	}
}

func TestStagedFilesSplitsLines(t *testing.T) {
	rec := runner.NewRecording()
	rec.Stub(runner.Output{Stdout: "a.go\nb.go\n"}, nil, "git", "diff", "--cached", "--name-only")
	a := New(rec, "/proj")

	files := a.StagedFiles(context.Background())
	if len(files) != 2 || files[0] != "a.go" || files[1] != "b.go" {
		t.Fatalf("got %+v", files)
	}
}

func TestCombinedDiffConcatenatesBoth(t *testing.T) {
	rec := runner.NewRecording()
	rec.Stub(runner.Output{Stdout: "staged-diff\n"}, nil, "git", "diff", "--cached")
	rec.Stub(runner.Output{Stdout: "unstaged-diff\n"}, nil, "git", "diff")
	a := New(rec, "/proj")

	combined := a.CombinedDiff(context.Background())
	if combined != "staged-diff\nunstaged-diff" {
		t.Fatalf("got %q", combined)
	}
}

func TestWorkingStateHashStableForSameInput(t *testing.T) {
	rec := runner.NewRecording()
	rec.Stub(runner.Output{Stdout: "d\n"}, nil, "git", "diff", "--cached")
	rec.Stub(runner.Output{Stdout: ""}, nil, "git", "diff")
	rec.Stub(runner.Output{Stdout: "untracked.go\n"}, nil, "git", "ls-files", "--others", "--exclude-standard")
	a := New(rec, "/proj")

	h1 := a.WorkingStateHash(context.Background())
	h2 := a.WorkingStateHash(context.Background())
	if h1 != h2 {
		t.Fatalf("hash not stable: %q vs %q", h1, h2)
	}
	if h1 == "" {
		t.Fatal("expected non-empty hash")
	}
}

func TestWorkingStateHashChangesWithDiff(t *testing.T) {
	rec1 := runner.NewRecording()
	rec1.Stub(runner.Output{Stdout: "d1\n"}, nil, "git", "diff", "--cached")
	rec1.Stub(runner.Output{Stdout: ""}, nil, "git", "diff")
	rec1.Stub(runner.Output{Stdout: ""}, nil, "git", "ls-files", "--others", "--exclude-standard")
	a1 := New(rec1, "/proj")

	rec2 := runner.NewRecording()
	rec2.Stub(runner.Output{Stdout: "d2\n"}, nil, "git", "diff", "--cached")
	rec2.Stub(runner.Output{Stdout: ""}, nil, "git", "diff")
	rec2.Stub(runner.Output{Stdout: ""}, nil, "git", "ls-files", "--others", "--exclude-standard")
	a2 := New(rec2, "/proj")

	if a1.WorkingStateHash(context.Background()) == a2.WorkingStateHash(context.Background()) {
		t.Fatal("expected different hashes for different diffs")
	}
}
