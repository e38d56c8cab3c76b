package policy

import (
	"context"

	"github.com/DRMacIver/claude-reliability-sub001/internal/markers"
	"github.com/DRMacIver/claude-reliability-sub001/internal/policy/templates"
)

// ProblemMode blocks every tool call while the problem-mode-active
// marker exists. It runs ahead of every other policy, regardless of
// event or tool, per the dispatch table's "highest priority" row.
func ProblemMode(_ context.Context, d *Dispatcher, event Event) (*Decision, error) {
	if !d.Markers.Exists(markers.ProblemModeActive) {
		return nil, nil
	}
	return blockDecision(event, templates.ProblemMode(event.ToolName)), nil
}
