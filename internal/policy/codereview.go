package policy

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/DRMacIver/claude-reliability-sub001/internal/subagent"
)

var gitCommitPattern = regexp.MustCompile(`\bgit\s+commit\b`)
var amendPattern = regexp.MustCompile(`--amend\b`)

// sourceExtensions are file suffixes counted as reviewable source
// code.
var sourceExtensions = map[string]bool{
	".go": true, ".py": true, ".rb": true, ".js": true, ".ts": true,
	".tsx": true, ".jsx": true, ".java": true, ".c": true, ".cc": true,
	".cpp": true, ".h": true, ".hpp": true, ".rs": true, ".sh": true,
}

// excludedDirs are vendored/build/generated directories never counted
// as source, even if a contained file matches sourceExtensions.
var excludedDirs = []string{"vendor/", "node_modules/", "dist/", "build/", ".git/"}

// isSourceFile reports whether path should count toward "at least one
// reviewable source file staged".
func isSourceFile(path string) bool {
	for _, dir := range excludedDirs {
		if strings.Contains(path, dir) {
			return false
		}
	}
	return sourceExtensions[filepath.Ext(path)]
}

const reviewGuideFileName = "REVIEWGUIDE.md"

// CodeReview invokes the external sub-agent judge on the staged diff
// of a pending git commit (never --amend), translating its verdict
// into a decision. Approved commits with non-trivial feedback still
// allow, surfacing the feedback as additional context.
func CodeReview(ctx context.Context, d *Dispatcher, event Event) (*Decision, error) {
	if event.Hook != HookPreToolUse || event.ToolName != "Bash" {
		return nil, nil
	}
	if !gitCommitPattern.MatchString(event.Command) {
		return nil, nil
	}
	if amendPattern.MatchString(event.Command) {
		return nil, nil
	}
	if os.Getenv("SKIP_CODE_REVIEW") != "" {
		return nil, nil
	}

	staged := d.Git.StagedFiles(ctx)
	var sourceFiles []string
	for _, f := range staged {
		if isSourceFile(f) {
			sourceFiles = append(sourceFiles, f)
		}
	}
	if len(sourceFiles) == 0 {
		return nil, nil
	}

	diff := d.Git.StagedDiff(ctx)
	guide, _ := os.ReadFile(reviewGuideFileName) // #nosec G304 -- fixed, repo-relative filename

	result, err := d.SubAgent.ReviewCode(ctx, subagent.ReviewInput{
		Diff:        diff,
		StagedFiles: sourceFiles,
		ReviewGuide: string(guide),
	})
	if err != nil {
		// Fail open: a sub-agent outage should not block commits,
		// matching §7's "internal failure without a policy verdict
		// allows" rule.
		return nil, nil
	}

	if !result.Approved {
		return blockDecision(event, codeReviewBlockMessage(result.Feedback)), nil
	}

	if strings.TrimSpace(result.Feedback) != "" {
		decision := allowDecision(event)
		decision.AdditionalContext = result.Feedback
		return decision, nil
	}

	return nil, nil
}

func codeReviewBlockMessage(feedback string) string {
	if feedback == "" {
		return "Blocked: code review did not approve this commit."
	}
	return "Blocked: code review did not approve this commit.\n\n" + feedback
}
