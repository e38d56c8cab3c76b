package policy

import (
	"context"

	"github.com/DRMacIver/claude-reliability-sub001/internal/policy/templates"
)

// RequireTask blocks Write/Edit calls unless the store reports an
// in-progress work item.
func RequireTask(ctx context.Context, d *Dispatcher, event Event) (*Decision, error) {
	if event.Hook != HookPreToolUse {
		return nil, nil
	}
	if event.ToolName != "Write" && event.ToolName != "Edit" {
		return nil, nil
	}

	hasInProgress, err := d.Store.HasInProgressTask(ctx)
	if err != nil {
		// Fail open: an I/O error here should not block the assistant
		// (§7 propagation policy).
		return nil, nil
	}
	if hasInProgress {
		return nil, nil
	}

	return blockDecision(event, templates.RequireTask()), nil
}
