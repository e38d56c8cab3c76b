package policy

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DRMacIver/claude-reliability-sub001/internal/types"
)

func TestPlanTasksCreatorCreatesLinkedTasksFromToolResponse(t *testing.T) {
	d := newTestDispatcher(t)
	ctx := context.Background()

	event := Event{
		Hook:         HookPostToolUse,
		ToolName:     "ExitPlanMode",
		ToolResponse: `{"filePath":"/home/u/.claude/plans/my-cool-plan.md"}`,
	}

	decision, err := PlanTasksCreator(ctx, d, event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Permission != Allow {
		t.Fatalf("want Allow, got %s", decision.Permission)
	}

	all, err := d.Store.ListTasks(ctx, types.WorkFilter{})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("want 2 tasks created, got %d", len(all))
	}
}

func TestPlanTasksCreatorDescriptionReferencesPlanPath(t *testing.T) {
	d := newTestDispatcher(t)
	ctx := context.Background()

	event := Event{
		Hook:         HookPostToolUse,
		ToolName:     "ExitPlanMode",
		ToolResponse: `{"filePath":"/home/u/.claude/plans/my-cool-plan.md"}`,
	}

	if _, err := PlanTasksCreator(ctx, d, event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all, err := d.Store.ListTasks(ctx, types.WorkFilter{})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("want 2 tasks created, got %d", len(all))
	}

	var breakUp, implement *types.WorkItem
	for _, item := range all {
		if !strings.Contains(item.Description, "/home/u/.claude/plans/my-cool-plan.md") {
			t.Fatalf("task %q description %q does not reference the plan file", item.Title, item.Description)
		}
		if strings.HasPrefix(item.Title, "Break up plan:") {
			breakUp = item
		}
		if strings.HasPrefix(item.Title, "Implement plan:") {
			implement = item
		}
	}
	if breakUp == nil || implement == nil {
		t.Fatalf("expected both a break-up and an implement task, got %+v", all)
	}

	deps, err := d.Store.GetDependencies(ctx, implement.ID)
	if err != nil {
		t.Fatalf("get dependencies: %v", err)
	}
	if len(deps) != 1 || deps[0] != breakUp.ID {
		t.Fatalf("want the implement task to depend on the break-up task, got %v", deps)
	}
}

func TestPlanTasksCreatorFallsBackToMostRecentPlanFile(t *testing.T) {
	d := newTestDispatcher(t)
	ctx := context.Background()

	plansDir := filepath.Join(d.HomeDir, ".claude", "plans")
	if err := os.MkdirAll(plansDir, 0o755); err != nil {
		t.Fatalf("mkdir plans dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(plansDir, "older-plan.md"), []byte("old"), 0o644); err != nil {
		t.Fatalf("write older plan: %v", err)
	}
	if err := os.WriteFile(filepath.Join(plansDir, "newer-plan.md"), []byte("new"), 0o644); err != nil {
		t.Fatalf("write newer plan: %v", err)
	}

	event := Event{Hook: HookPostToolUse, ToolName: "ExitPlanMode"}
	decision, err := PlanTasksCreator(ctx, d, event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Permission != Allow {
		t.Fatalf("want Allow, got %s", decision.Permission)
	}
}

func TestPlanTasksCreatorIgnoresOtherEvents(t *testing.T) {
	d := newTestDispatcher(t)
	decision, err := PlanTasksCreator(context.Background(), d, Event{Hook: HookPreToolUse, ToolName: "Bash"})
	if decision != nil || err != nil {
		t.Fatalf("want (nil, nil) for a non-matching event, got (%v, %v)", decision, err)
	}
}
