package policy

import (
	"context"
	"testing"

	"github.com/DRMacIver/claude-reliability-sub001/internal/gitadapter"
	"github.com/DRMacIver/claude-reliability-sub001/internal/runner"
	"github.com/DRMacIver/claude-reliability-sub001/internal/subagent"
)

func stubStagedGoFile(t *testing.T, d *Dispatcher, diff string) {
	t.Helper()
	rec := runner.NewRecording()
	rec.Stub(runner.Output{Stdout: "main.go\n"}, nil, "git", "diff", "--cached", "--name-only")
	rec.Stub(runner.Output{Stdout: diff}, nil, "git", "diff", "--cached")
	d.Git = gitadapter.New(rec, d.HomeDir)
}

func TestCodeReviewApprovesByDefault(t *testing.T) {
	d := newTestDispatcher(t)
	stubStagedGoFile(t, d, "+ fmt.Println(\"hi\")")

	decision, err := CodeReview(context.Background(), d, Event{
		Hook: HookPreToolUse, ToolName: "Bash", Command: "git commit -m wip",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision != nil {
		t.Fatalf("want nil decision (silent allow) on clean approval, got %+v", decision)
	}
}

func TestCodeReviewBlocksOnRejection(t *testing.T) {
	d := newTestDispatcher(t)
	stubStagedGoFile(t, d, "+ os.Remove(\"/\")")

	rec := d.SubAgent.(*subagent.Recording)
	rec.ReviewResponse = subagent.ReviewResult{Approved: false, Feedback: "dangerous call"}

	decision, err := CodeReview(context.Background(), d, Event{
		Hook: HookPreToolUse, ToolName: "Bash", Command: "git commit -m wip",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision == nil || decision.Permission != Block {
		t.Fatalf("want Block on rejection, got %+v", decision)
	}
}

func TestCodeReviewAllowsApprovalWithFeedbackAsContext(t *testing.T) {
	d := newTestDispatcher(t)
	stubStagedGoFile(t, d, "+ fmt.Println(\"hi\")")

	rec := d.SubAgent.(*subagent.Recording)
	rec.ReviewResponse = subagent.ReviewResult{Approved: true, Feedback: "consider adding a test"}

	decision, err := CodeReview(context.Background(), d, Event{
		Hook: HookPreToolUse, ToolName: "Bash", Command: "git commit -m wip",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision == nil || decision.Permission != Allow || decision.AdditionalContext == "" {
		t.Fatalf("want Allow with feedback as context, got %+v", decision)
	}
}

func TestCodeReviewSkipsAmendCommits(t *testing.T) {
	d := newTestDispatcher(t)
	stubStagedGoFile(t, d, "+ fmt.Println(\"hi\")")

	decision, err := CodeReview(context.Background(), d, Event{
		Hook: HookPreToolUse, ToolName: "Bash", Command: "git commit --amend -m wip",
	})
	if decision != nil || err != nil {
		t.Fatalf("want (nil, nil) for --amend, got (%+v, %v)", decision, err)
	}
}

func TestCodeReviewSkipsWhenNoSourceFilesStaged(t *testing.T) {
	d := newTestDispatcher(t)
	rec := runner.NewRecording()
	rec.Stub(runner.Output{Stdout: "README.md\n"}, nil, "git", "diff", "--cached", "--name-only")
	d.Git = gitadapter.New(rec, d.HomeDir)

	decision, err := CodeReview(context.Background(), d, Event{
		Hook: HookPreToolUse, ToolName: "Bash", Command: "git commit -m docs",
	})
	if decision != nil || err != nil {
		t.Fatalf("want (nil, nil) with no source files staged, got (%+v, %v)", decision, err)
	}
}

func TestCodeReviewFailsOpenOnSubAgentError(t *testing.T) {
	d := newTestDispatcher(t)
	stubStagedGoFile(t, d, "+ fmt.Println(\"hi\")")

	rec := d.SubAgent.(*subagent.Recording)
	rec.ReviewErr = context.DeadlineExceeded

	decision, err := CodeReview(context.Background(), d, Event{
		Hook: HookPreToolUse, ToolName: "Bash", Command: "git commit -m wip",
	})
	if decision != nil || err != nil {
		t.Fatalf("want (nil, nil) fail-open on sub-agent error, got (%+v, %v)", decision, err)
	}
}
