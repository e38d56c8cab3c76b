// Package subagent defines the external LLM judge the code-review
// policy consults, plus a real Anthropic-backed implementation and a
// recording mock for tests. Grounded on the teacher's
// internal/compact/haiku.go Anthropic client (same retry/backoff
// shape), repurposed from issue summarization to a pass/fail code
// review verdict, per SPEC_FULL.md §4.9.
package subagent

import "context"

// ReviewInput carries everything the code-review policy gathers about
// a pending commit.
type ReviewInput struct {
	Diff        string
	StagedFiles []string
	ReviewGuide string // optional REVIEWGUIDE.md content
}

// ReviewResult is the sub-agent's verdict on a pending commit.
type ReviewResult struct {
	Approved bool
	Feedback string
}

// Question is a blocking question the assistant cannot answer itself.
type Question struct {
	Text    string
	Context string
}

// Answer is the sub-agent's resolution of a blocking question.
type Answer struct {
	Text string
}

// ReflectionInput summarizes a session's work for a closing reflection.
type ReflectionInput struct {
	Summary string
	Notes   []string
}

// Reflection is the sub-agent's free-text reflection on a session.
type Reflection struct {
	Text string
}

// SubAgent is the interface the teacher's own polymorphism convention
// favors (a plain Go interface with one concrete production type and
// one test double, matching internal/storage's Storage/SQLiteStorage
// pair) rather than anything resembling a trait object.
type SubAgent interface {
	ReviewCode(ctx context.Context, in ReviewInput) (ReviewResult, error)
	DecideOnQuestion(ctx context.Context, q Question) (Answer, error)
	ReflectOnWork(ctx context.Context, in ReflectionInput) (Reflection, error)
}
