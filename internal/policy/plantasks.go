package policy

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/DRMacIver/claude-reliability-sub001/internal/types"
)

// toolResponseFilePath is the subset of ExitPlanMode's tool_response
// payload the plan-tasks policy reads.
type toolResponseFilePath struct {
	FilePath string `json:"filePath"`
}

// PlanTasksCreator runs on post-tool-use for ExitPlanMode: it locates
// the plan file just written, derives a plan name, and creates a pair
// of work items ("break up" and "implement") linked by a dependency.
// All failures are surfaced as error strings rather than decisions,
// per §4.6's "all failures are surfaced as error strings to the
// caller" contract — this policy never blocks.
func PlanTasksCreator(ctx context.Context, d *Dispatcher, event Event) (*Decision, error) {
	if event.Hook != HookPostToolUse || event.ToolName != "ExitPlanMode" {
		return nil, nil
	}

	planPath, err := resolvePlanPath(event.ToolResponse, d.HomeDir)
	if err != nil {
		return allowDecision(event), fmt.Errorf("plan-tasks: %w", err)
	}

	planName := strings.TrimSuffix(filepath.Base(planPath), filepath.Ext(planPath))
	description := fmt.Sprintf("Plan file: %s", planPath)

	breakUp, err := d.Store.CreateTask(ctx, fmt.Sprintf("Break up plan: %s", planName), description, types.PriorityHigh)
	if err != nil {
		return allowDecision(event), fmt.Errorf("plan-tasks: create break-up task: %w", err)
	}

	implement, err := d.Store.CreateTask(ctx, fmt.Sprintf("Implement plan: %s", planName), description, types.PriorityHigh)
	if err != nil {
		return allowDecision(event), fmt.Errorf("plan-tasks: create implement task: %w", err)
	}

	if err := d.Store.AddDependency(ctx, implement.ID, breakUp.ID); err != nil {
		return allowDecision(event), fmt.Errorf("plan-tasks: link implement -> break-up: %w", err)
	}

	return allowDecision(event), nil
}

// resolvePlanPath reads filePath from the tool_response JSON if
// present, else falls back to the most recently modified file under
// ~/.claude/plans/.
func resolvePlanPath(toolResponse, homeDir string) (string, error) {
	if toolResponse != "" {
		var payload toolResponseFilePath
		if err := json.Unmarshal([]byte(toolResponse), &payload); err == nil && payload.FilePath != "" {
			return payload.FilePath, nil
		}
	}

	plansDir := filepath.Join(homeDir, ".claude", "plans")
	matches, err := filepath.Glob(filepath.Join(plansDir, "*.md"))
	if err != nil {
		return "", fmt.Errorf("scan %s: %w", plansDir, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no plan file found in %s", plansDir)
	}

	sort.Slice(matches, func(i, j int) bool {
		ii, ierr := os.Stat(matches[i])
		jj, jerr := os.Stat(matches[j])
		if ierr != nil || jerr != nil {
			return false
		}
		return ii.ModTime().After(jj.ModTime())
	})

	return matches[0], nil
}
