// Package gitadapter exposes the small slice of git plumbing the
// policy chain and CLI need: branch, HEAD sha, staged/unstaged diffs,
// and a working-tree state hash. It is grounded on the teacher's
// internal/git/gitdir.go (exec.Command("git", ...), trimmed stdout),
// generalized to route every invocation through a runner.Runner so it
// can be exercised with a recording mock in tests, per §4.3.
package gitadapter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/DRMacIver/claude-reliability-sub001/internal/runner"
)

const defaultTimeout = 10 * time.Second

// Adapter runs git commands against a single working directory.
type Adapter struct {
	run runner.Runner
	dir string
}

// New returns an Adapter that runs git inside dir using run.
func New(run runner.Runner, dir string) *Adapter {
	return &Adapter{run: run, dir: dir}
}

func (a *Adapter) git(ctx context.Context, args ...string) (string, error) {
	out, err := a.run.Run(ctx, a.dir, "git", args, defaultTimeout)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out.Stdout), nil
}

// IsRepo reports whether dir is inside a git working tree. Any
// failure (not a repo, git missing) is reported as false rather than
// propagated, per §7's "non-zero exit maps to no information" rule.
func (a *Adapter) IsRepo(ctx context.Context) bool {
	out, err := a.git(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// CurrentBranch returns the checked-out branch name, or "" if detached
// or not a repo.
func (a *Adapter) CurrentBranch(ctx context.Context) string {
	out, err := a.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil || out == "HEAD" {
		return ""
	}
	return out
}

// CurrentSHA returns the full HEAD commit hash, or "" if unavailable.
func (a *Adapter) CurrentSHA(ctx context.Context) string {
	out, err := a.git(ctx, "rev-parse", "HEAD")
	if err != nil {
		return ""
	}
	return out
}

// StagedFiles returns the paths staged for commit, relative to the
// repository root. Returns an empty slice (never an error) outside a
// repo or when git is unavailable.
func (a *Adapter) StagedFiles(ctx context.Context) []string {
	out, err := a.git(ctx, "diff", "--cached", "--name-only")
	if err != nil || out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// StagedDiff returns the unified diff of staged changes.
func (a *Adapter) StagedDiff(ctx context.Context) string {
	out, _ := a.git(ctx, "diff", "--cached")
	return out
}

// UnstagedDiff returns the unified diff of unstaged changes against
// the index.
func (a *Adapter) UnstagedDiff(ctx context.Context) string {
	out, _ := a.git(ctx, "diff")
	return out
}

// CombinedDiff returns staged and unstaged changes concatenated, the
// input the diff analyzer scans for risky patterns.
func (a *Adapter) CombinedDiff(ctx context.Context) string {
	staged := a.StagedDiff(ctx)
	unstaged := a.UnstagedDiff(ctx)
	if staged == "" {
		return unstaged
	}
	if unstaged == "" {
		return staged
	}
	return staged + "\n" + unstaged
}

// UncommittedChangesSummary returns git's short-format status output,
// one line per changed path, empty if the tree is clean.
func (a *Adapter) UncommittedChangesSummary(ctx context.Context) string {
	out, _ := a.git(ctx, "status", "--porcelain")
	return out
}

// WorkingStateHash returns a stable digest of the combined diff and
// untracked-file listing, so policies can detect "nothing changed
// since last check" without storing the diff text itself.
func (a *Adapter) WorkingStateHash(ctx context.Context) string {
	diff := a.CombinedDiff(ctx)
	untracked, _ := a.git(ctx, "ls-files", "--others", "--exclude-standard")
	sum := sha256.Sum256([]byte(diff + "\x00" + untracked))
	return hex.EncodeToString(sum[:])
}
