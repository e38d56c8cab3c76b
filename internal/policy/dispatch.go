package policy

import (
	"context"

	"github.com/DRMacIver/claude-reliability-sub001/internal/markers"
)

// chainFor returns the ordered policy chain for event, per §4.6's
// dispatch table. ProblemMode is checked separately, ahead of every
// chain, since it applies to "any event" regardless of hook or tool.
func chainFor(event Event) []Policy {
	switch event.Hook {
	case HookPreToolUse:
		switch event.ToolName {
		case "Bash":
			return []Policy{NoVerify, CodeReview, ProtectConfig}
		case "Write", "Edit":
			return []Policy{ValidationTracking, RequireTask, ProtectConfig}
		case "NotebookEdit":
			return []Policy{ValidationTracking}
		}
	case HookPostToolUse:
		if event.ToolName == "ExitPlanMode" {
			return []Policy{PlanTasksCreator}
		}
	}
	return nil
}

// Dispatch runs the policy chain for event and returns the final
// decision. The first policy to return a Block decision short-circuits
// the chain. A policy error is logged by the caller and treated as "no
// verdict" (fail open), per §7's propagation policy.
func Dispatch(ctx context.Context, d *Dispatcher, event Event) (*Decision, []error) {
	var errs []error

	if event.Hook == HookUserPromptSubmit {
		_ = d.Markers.Remove(markers.ReflectionDone)
		_ = d.Markers.Remove(markers.HadChanges)
		return allowDecision(event), nil
	}

	if decision, err := ProblemMode(ctx, d, event); err != nil {
		errs = append(errs, err)
	} else if decision != nil && decision.Permission == Block {
		return decision, errs
	}

	accumulatedContext := ""
	for _, p := range chainFor(event) {
		decision, err := p(ctx, d, event)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if decision == nil {
			continue
		}
		if decision.Permission == Block {
			return decision, errs
		}
		if decision.AdditionalContext != "" {
			if accumulatedContext != "" {
				accumulatedContext += "\n\n"
			}
			accumulatedContext += decision.AdditionalContext
		}
	}

	final := allowDecision(event)
	final.AdditionalContext = accumulatedContext
	return final, errs
}
