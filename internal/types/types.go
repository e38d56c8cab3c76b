// Package types defines the core entities shared across the task store,
// the hook dispatcher, and the MCP server: work items, dependencies,
// notes, how-tos, questions, and the audit log.
package types

import (
	"fmt"
	"time"
)

// Priority is a closed, totally ordered urgency level. Lower values sort
// first: Critical is the most urgent, Backlog the least.
type Priority int

const (
	PriorityCritical Priority = 0
	PriorityHigh     Priority = 1
	PriorityMedium   Priority = 2
	PriorityLow      Priority = 3
	PriorityBacklog  Priority = 4
)

// String renders the priority for CLI output and templates.
func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	case PriorityBacklog:
		return "backlog"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

// Valid reports whether p is one of the five defined levels.
func (p Priority) Valid() bool {
	return p >= PriorityCritical && p <= PriorityBacklog
}

// Status is a closed set of work item lifecycle states.
type Status string

const (
	StatusOpen      Status = "open"
	StatusComplete  Status = "complete"
	StatusAbandoned Status = "abandoned"
	StatusStuck     Status = "stuck"
	StatusBlocked   Status = "blocked"
)

// terminalStatuses partitions the status set: once in a terminal status,
// an item stays there unless an explicit update says otherwise.
var terminalStatuses = map[Status]bool{
	StatusComplete:  true,
	StatusAbandoned: true,
}

// IsTerminal reports whether s is a sticky, end-of-life status.
func (s Status) IsTerminal() bool {
	return terminalStatuses[s]
}

// Valid reports whether s is one of the five defined statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusComplete, StatusAbandoned, StatusStuck, StatusBlocked:
		return true
	default:
		return false
	}
}

// WorkItem is a single unit of working memory: the thing an assistant
// session is, or could be, working on.
type WorkItem struct {
	ID          string
	Title       string
	Description string
	Priority    Priority
	Status      Status
	InProgress  bool
	Requested   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// LinkedHowTos is populated by get-task variants the CLI uses; it is
	// not a stored column, just a convenience join result.
	LinkedHowTos []*HowTo `json:"linked_how_tos,omitempty"`
}

// WorkItemPatch carries the optional fields update_task may change.
// A nil pointer means "leave unchanged".
type WorkItemPatch struct {
	Title       *string
	Description *string
	Priority    *Priority
	Status      *Status
	InProgress  *bool
	Requested   *bool
}

// WorkFilter constrains list_tasks.
type WorkFilter struct {
	Status      Status
	HasStatus   bool
	Priority    Priority
	HasPriority bool
	PriorityMax Priority
	HasMax      bool
	ReadyOnly   bool
	Limit       int
	Offset      int
}

// Dependency is a directed edge: Dependent depends on Dependency, i.e.
// Dependent cannot be ready until Dependency reaches a terminal status.
type Dependency struct {
	DependentID  string
	DependencyID string
}

// Note is free-text commentary attached to a work item.
type Note struct {
	ID         int64
	WorkItemID string
	Content    string
	CreatedAt  time.Time
}

// HowTo is a reusable instruction set, optionally linked to many work
// items. A small built-in set ships with the binary (see store/builtin).
type HowTo struct {
	ID           string
	Title        string
	Instructions string
	Builtin      bool
}

// Question blocks a linked work item from readiness until answered.
type Question struct {
	ID        int64
	Text      string
	Answer    *string
	CreatedAt time.Time
}

// Answered reports whether the question has a non-nil answer.
func (q *Question) Answered() bool {
	return q.Answer != nil
}

// AuditKind enumerates the mutating operations the store records.
type AuditKind string

const (
	AuditCreate            AuditKind = "create"
	AuditUpdate            AuditKind = "update"
	AuditDelete            AuditKind = "delete"
	AuditDependencyAdd     AuditKind = "dependency_add"
	AuditDependencyRemove  AuditKind = "dependency_remove"
	AuditNoteAdd           AuditKind = "note_add"
	AuditNoteDelete        AuditKind = "note_delete"
	AuditHowToLink         AuditKind = "howto_link"
	AuditHowToUnlink       AuditKind = "howto_unlink"
	AuditQuestionCreate    AuditKind = "question_create"
	AuditQuestionAnswer    AuditKind = "question_answer"
	AuditQuestionLink      AuditKind = "question_link"
	AuditQuestionUnlink    AuditKind = "question_unlink"
)

// AuditEntry is one append-only record of a mutating store operation.
type AuditEntry struct {
	ID         int64
	Kind       AuditKind
	WorkItemID string
	Before     string // compact JSON snapshot, empty if not applicable
	After      string // compact JSON snapshot, empty if not applicable
	CreatedAt  time.Time
}

// Ready reports whether item is eligible to be worked on now, given its
// dependencies' statuses and whether it has any unanswered linked
// question. The store computes the dependency/question facts; Ready
// just applies the boolean per §3 of the specification.
func Ready(item *WorkItem, depStatuses []Status, hasUnansweredQuestion bool) bool {
	if item.Status != StatusOpen || item.InProgress || hasUnansweredQuestion {
		return false
	}
	for _, s := range depStatuses {
		if !s.IsTerminal() {
			return false
		}
	}
	return true
}
