package policy

import (
	"context"

	"github.com/DRMacIver/claude-reliability-sub001/internal/markers"
)

// ValidationTracking sets the needs-validation marker on every
// Edit/Write/NotebookEdit call. It never blocks; marker write failures
// are swallowed, matching §4.6's "errors while writing the marker are
// logged but do not change the decision" contract (logging happens at
// the dispatcher's call site, not here, since this policy has no
// logger of its own).
func ValidationTracking(_ context.Context, d *Dispatcher, event Event) (*Decision, error) {
	if event.Hook != HookPreToolUse {
		return nil, nil
	}
	switch event.ToolName {
	case "Write", "Edit", "NotebookEdit":
	default:
		return nil, nil
	}

	_ = d.Markers.Create(markers.NeedsValidation)
	return nil, nil
}
