// Package policy implements the hook dispatcher: an ordered,
// short-circuiting chain of policies that turns a parsed Claude Code
// hook event into an allow/block decision. It generalizes the
// teacher's internal/gate package (HookType, GateContext,
// CheckResponse, Registry of independent boolean AutoCheck gates
// aggregated into warnings/blocks) into a chain where the first policy
// to block wins, matching §4.6 of the specification rather than the
// teacher's "aggregate every gate's verdict" model.
package policy

import (
	"context"

	"github.com/DRMacIver/claude-reliability-sub001/internal/config"
	"github.com/DRMacIver/claude-reliability-sub001/internal/gitadapter"
	"github.com/DRMacIver/claude-reliability-sub001/internal/markers"
	"github.com/DRMacIver/claude-reliability-sub001/internal/store/sqlite"
	"github.com/DRMacIver/claude-reliability-sub001/internal/subagent"
)

// HookType is the Claude Code hook event that triggered dispatch.
type HookType string

const (
	HookPreToolUse       HookType = "PreToolUse"
	HookPostToolUse      HookType = "PostToolUse"
	HookUserPromptSubmit HookType = "UserPromptSubmit"
	HookStop             HookType = "Stop"
)

// Permission is the dispatcher's final verdict.
type Permission string

const (
	Allow Permission = "allow"
	Block Permission = "block"
)

// Event is the parsed hook payload the dispatcher and its policies
// read. Only the fields §6 lists as consumed are modeled.
type Event struct {
	Hook         HookType
	SessionID    string
	ToolName     string
	FilePath     string
	Command      string
	ToolResponse string
}

// Decision is the dispatcher's structured verdict: the CLI translates
// this into hookSpecificOutput JSON and an exit code.
type Decision struct {
	Permission        Permission
	AdditionalContext string
	EventName         string
}

// allowDecision builds a plain allow with no context.
func allowDecision(event Event) *Decision {
	return &Decision{Permission: Allow, EventName: string(event.Hook)}
}

// blockDecision builds a block carrying a rendered message.
func blockDecision(event Event, message string) *Decision {
	return &Decision{Permission: Block, AdditionalContext: message, EventName: string(event.Hook)}
}

// Dispatcher wires the shared dependencies every policy reads:
// the task store, git adapter, session markers, and sub-agent judge.
// Policies never mutate the task store (§4.6); they only read it.
type Dispatcher struct {
	Store           *sqlite.Store
	Git             *gitadapter.Adapter
	Markers         *markers.Store
	SubAgent        subagent.SubAgent
	Config          *config.ReliabilityConfig
	HomeDir         string
	ReliabilityConfigPath string
}

// ConfigPath returns the resolved reliability config path the
// protect-config policy guards.
func (d *Dispatcher) ConfigPath() string {
	return d.ReliabilityConfigPath
}

// Policy is one link in the dispatch chain. A nil Decision means "no
// verdict, continue to the next policy"; a non-nil Decision with
// Permission=Block short-circuits the chain.
type Policy func(ctx context.Context, d *Dispatcher, event Event) (*Decision, error)
