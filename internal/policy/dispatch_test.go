package policy

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/DRMacIver/claude-reliability-sub001/internal/config"
	"github.com/DRMacIver/claude-reliability-sub001/internal/gitadapter"
	"github.com/DRMacIver/claude-reliability-sub001/internal/markers"
	"github.com/DRMacIver/claude-reliability-sub001/internal/runner"
	"github.com/DRMacIver/claude-reliability-sub001/internal/store/sqlite"
	"github.com/DRMacIver/claude-reliability-sub001/internal/subagent"
	"github.com/DRMacIver/claude-reliability-sub001/internal/types"
)

func newTestDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	dir := t.TempDir()
	store, err := sqlite.Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return &Dispatcher{
		Store:                 store,
		Git:                   gitadapter.New(runner.NewRecording(), dir),
		Markers:               markers.New(filepath.Join(dir, ".claude")),
		SubAgent:              subagent.NewRecording(),
		Config:                &config.ReliabilityConfig{},
		HomeDir:               dir,
		ReliabilityConfigPath: filepath.Join(dir, ".claude", "reliability-config.yaml"),
	}
}

func TestDispatchAllowsUnmatchedEvent(t *testing.T) {
	d := newTestDispatcher(t)
	decision, errs := Dispatch(context.Background(), d, Event{Hook: HookPreToolUse, ToolName: "Glob"})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if decision.Permission != Allow {
		t.Fatalf("want Allow, got %s", decision.Permission)
	}
}

func TestDispatchProblemModeBlocksEveryEvent(t *testing.T) {
	d := newTestDispatcher(t)
	if err := d.Markers.Create(markers.ProblemModeActive); err != nil {
		t.Fatalf("create marker: %v", err)
	}

	decision, errs := Dispatch(context.Background(), d, Event{Hook: HookPreToolUse, ToolName: "Glob"})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if decision.Permission != Block {
		t.Fatalf("want Block under problem mode, got %s", decision.Permission)
	}
}

func TestDispatchProblemModeTakesPriorityOverChain(t *testing.T) {
	d := newTestDispatcher(t)
	if err := d.Markers.Create(markers.ProblemModeActive); err != nil {
		t.Fatalf("create marker: %v", err)
	}

	decision, _ := Dispatch(context.Background(), d, Event{
		Hook: HookPreToolUse, ToolName: "Bash", Command: "echo hi",
	})
	if decision.Permission != Block {
		t.Fatalf("want Block, got %s", decision.Permission)
	}
}

func TestDispatchUserPromptSubmitClearsMarkers(t *testing.T) {
	d := newTestDispatcher(t)
	if err := d.Markers.Create(markers.ReflectionDone); err != nil {
		t.Fatalf("create marker: %v", err)
	}
	if err := d.Markers.Create(markers.HadChanges); err != nil {
		t.Fatalf("create marker: %v", err)
	}

	decision, errs := Dispatch(context.Background(), d, Event{Hook: HookUserPromptSubmit})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if decision.Permission != Allow {
		t.Fatalf("want Allow, got %s", decision.Permission)
	}
	if d.Markers.Exists(markers.ReflectionDone) {
		t.Fatal("reflection-done marker should have been cleared")
	}
	if d.Markers.Exists(markers.HadChanges) {
		t.Fatal("had-changes marker should have been cleared")
	}
}

func TestDispatchRequireTaskBlocksWriteWithoutInProgressTask(t *testing.T) {
	d := newTestDispatcher(t)
	decision, _ := Dispatch(context.Background(), d, Event{
		Hook: HookPreToolUse, ToolName: "Write", FilePath: "main.go",
	})
	if decision.Permission != Block {
		t.Fatalf("want Block with no in-progress task, got %s", decision.Permission)
	}
}

func TestDispatchAllowsWriteWithInProgressTask(t *testing.T) {
	d := newTestDispatcher(t)
	ctx := context.Background()
	item, err := d.Store.CreateTask(ctx, "Fix bug", "", 1)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	inProgress := true
	if err := d.Store.UpdateTask(ctx, item.ID, types.WorkItemPatch{InProgress: &inProgress}); err != nil {
		t.Fatalf("update task: %v", err)
	}

	decision, _ := Dispatch(ctx, d, Event{Hook: HookPreToolUse, ToolName: "Write", FilePath: "main.go"})
	if decision.Permission != Allow {
		t.Fatalf("want Allow with in-progress task, got %s", decision.Permission)
	}
}

func TestDispatchNoVerifyBlocksGitCommitWithNoVerifyFlag(t *testing.T) {
	d := newTestDispatcher(t)
	decision, _ := Dispatch(context.Background(), d, Event{
		Hook: HookPreToolUse, ToolName: "Bash", Command: "git commit --no-verify -m wip",
	})
	if decision.Permission != Block {
		t.Fatalf("want Block for --no-verify commit, got %s", decision.Permission)
	}
}

func TestDispatchNoVerifyAllowsPlainCommit(t *testing.T) {
	d := newTestDispatcher(t)
	decision, _ := Dispatch(context.Background(), d, Event{
		Hook: HookPreToolUse, ToolName: "Bash", Command: "git commit -m wip",
	})
	if decision.Permission != Allow {
		t.Fatalf("want Allow for plain commit, got %s", decision.Permission)
	}
}

func TestDispatchProtectConfigBlocksWriteToConfigPath(t *testing.T) {
	d := newTestDispatcher(t)
	decision, _ := Dispatch(context.Background(), d, Event{
		Hook: HookPreToolUse, ToolName: "Write", FilePath: d.ReliabilityConfigPath,
	})
	if decision.Permission != Block {
		t.Fatalf("want Block writing the config path, got %s", decision.Permission)
	}
}

func TestDispatchValidationTrackingSetsMarkerWithoutBlocking(t *testing.T) {
	d := newTestDispatcher(t)
	ctx := context.Background()
	item, err := d.Store.CreateTask(ctx, "Fix bug", "", 1)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	inProgress := true
	if err := d.Store.UpdateTask(ctx, item.ID, types.WorkItemPatch{InProgress: &inProgress}); err != nil {
		t.Fatalf("update task: %v", err)
	}

	decision, _ := Dispatch(ctx, d, Event{Hook: HookPreToolUse, ToolName: "Edit", FilePath: "main.go"})
	if decision.Permission != Allow {
		t.Fatalf("want Allow, got %s", decision.Permission)
	}
	if !d.Markers.Exists(markers.NeedsValidation) {
		t.Fatal("expected needs-validation marker to be set")
	}
}
