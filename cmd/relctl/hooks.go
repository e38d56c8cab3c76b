package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/DRMacIver/claude-reliability-sub001/internal/policy"
)

// hookEventJSON is the subset of the host's hook event payload the
// dispatcher consumes (§6): tool_name, tool_input.{command,file_path},
// tool_response, and session_id. Fields the host sends that we do not
// model (e.g. transcript_path, used only by the stop hook outside the
// core) are ignored by json.Unmarshal rather than rejected.
type hookEventJSON struct {
	SessionID string `json:"session_id"`
	ToolName  string `json:"tool_name"`
	ToolInput struct {
		Command  string `json:"command"`
		FilePath string `json:"file_path"`
	} `json:"tool_input"`
	ToolResponse json.RawMessage `json:"tool_response"`
}

// hookSpecificOutput is the JSON shape the host reads from stdout.
type hookOutputJSON struct {
	HookSpecificOutput struct {
		HookEventName      string `json:"hookEventName"`
		PermissionDecision string `json:"permissionDecision"`
		AdditionalContext  string `json:"additionalContext,omitempty"`
	} `json:"hookSpecificOutput"`
}

var stopHookCmd = &cobra.Command{
	Use:  "stop",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHook(cmd, policy.HookStop)
	},
}

var userPromptSubmitHookCmd = &cobra.Command{
	Use:  "user-prompt-submit",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHook(cmd, policy.HookUserPromptSubmit)
	},
}

var preToolUseHookCmd = &cobra.Command{
	Use:  "pre-tool-use",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHook(cmd, policy.HookPreToolUse)
	},
}

var postToolUseHookCmd = &cobra.Command{
	Use:  "post-tool-use",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHook(cmd, policy.HookPostToolUse)
	},
}

// runHook reads a JSON hook event from stdin, dispatches it through
// the policy chain, and writes the decision as a single JSON line on
// stdout with exit code 0 (allow) or 2 (block). A malformed event or
// an inability to open the project's store is an internal failure:
// it is reported on stderr with a non-zero exit and no JSON line, so
// the host treats it as "no decision" rather than an explicit verdict
// (§7). Per-policy errors encountered during dispatch are logged to
// stderr but never change a successfully computed decision, since
// Dispatch itself already fails each policy open.
func runHook(cmd *cobra.Command, hook policy.HookType) error {
	raw, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		FatalError("read hook event: %v", err)
	}

	var payload hookEventJSON
	if err := json.Unmarshal(raw, &payload); err != nil {
		FatalError("parse hook event: %v", err)
	}

	paths := resolvePaths()
	dispatcher, store := buildDispatcher(paths)
	defer func() { _ = store.Close() }()

	event := policy.Event{
		Hook:      hook,
		SessionID: payload.SessionID,
		ToolName:  payload.ToolName,
		FilePath:  payload.ToolInput.FilePath,
		Command:   payload.ToolInput.Command,
	}
	if len(payload.ToolResponse) > 0 {
		event.ToolResponse = string(payload.ToolResponse)
	}

	decision, errs := policy.Dispatch(context.Background(), dispatcher, event)
	for _, e := range errs {
		fmt.Fprintf(cmd.ErrOrStderr(), "hook policy error: %v\n", e)
	}

	var out hookOutputJSON
	out.HookSpecificOutput.HookEventName = decision.EventName
	out.HookSpecificOutput.PermissionDecision = string(decision.Permission)
	out.HookSpecificOutput.AdditionalContext = decision.AdditionalContext

	data, err := json.Marshal(out)
	if err != nil {
		FatalError("marshal hook decision: %v", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))

	if decision.Permission == policy.Block {
		os.Exit(2)
	}
	return nil
}
