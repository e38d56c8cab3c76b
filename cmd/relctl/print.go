package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/DRMacIver/claude-reliability-sub001/internal/types"
	"github.com/DRMacIver/claude-reliability-sub001/internal/ui"
)

// printJSON marshals v as indented JSON to w. Used by every command's
// --json path so every entity prints the same way.
func printJSON(w io.Writer, v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		FatalError("marshal JSON: %v", err)
	}
	fmt.Fprintln(w, string(data))
}

// printWorkItem renders a single work item, honoring --json.
func printWorkItem(w io.Writer, item *types.WorkItem) {
	if jsonOutput {
		printJSON(w, item)
		return
	}
	fmt.Fprintf(w, "%s  %s\n", ui.BoldStyle.Render(item.ID), item.Title)
	fmt.Fprintf(w, "  status: %s  priority: %s  in-progress: %v  requested: %v\n",
		item.Status, item.Priority, item.InProgress, item.Requested)
	if item.Description != "" {
		fmt.Fprintf(w, "  %s\n", item.Description)
	}
	for _, h := range item.LinkedHowTos {
		fmt.Fprintf(w, "  how-to: %s (%s)\n", h.Title, h.ID)
	}
}

// printWorkItems renders a list of work items, honoring --json.
func printWorkItems(w io.Writer, items []*types.WorkItem) {
	if jsonOutput {
		printJSON(w, items)
		return
	}
	if len(items) == 0 {
		fmt.Fprintln(w, ui.Muted("(no matching work items)"))
		return
	}
	for _, item := range items {
		printWorkItem(w, item)
	}
}

func printHowTo(w io.Writer, h *types.HowTo) {
	if jsonOutput {
		printJSON(w, h)
		return
	}
	kind := ""
	if h.Builtin {
		kind = ui.Muted(" (built-in)")
	}
	fmt.Fprintf(w, "%s%s  %s\n", ui.BoldStyle.Render(h.ID), kind, h.Title)
	fmt.Fprintf(w, "  %s\n", h.Instructions)
}

func printHowTos(w io.Writer, howtos []*types.HowTo) {
	if jsonOutput {
		printJSON(w, howtos)
		return
	}
	if len(howtos) == 0 {
		fmt.Fprintln(w, ui.Muted("(no matching how-tos)"))
		return
	}
	for _, h := range howtos {
		printHowTo(w, h)
	}
}

func printQuestion(w io.Writer, q *types.Question) {
	if jsonOutput {
		printJSON(w, q)
		return
	}
	status := "unanswered"
	if q.Answered() {
		status = "answered: " + *q.Answer
	}
	fmt.Fprintf(w, "%s  %s  [%s]\n", ui.BoldStyle.Render(fmt.Sprintf("#%d", q.ID)), q.Text, status)
}

func printQuestions(w io.Writer, questions []*types.Question) {
	if jsonOutput {
		printJSON(w, questions)
		return
	}
	if len(questions) == 0 {
		fmt.Fprintln(w, ui.Muted("(no matching questions)"))
		return
	}
	for _, q := range questions {
		printQuestion(w, q)
	}
}

func printNote(w io.Writer, n *types.Note) {
	fmt.Fprintf(w, "%s  %s\n", ui.Muted(n.CreatedAt.Format("2006-01-02 15:04")), n.Content)
}

func printNotes(w io.Writer, notes []*types.Note) {
	if jsonOutput {
		printJSON(w, notes)
		return
	}
	if len(notes) == 0 {
		fmt.Fprintln(w, ui.Muted("(no notes)"))
		return
	}
	for _, n := range notes {
		printNote(w, n)
	}
}

func printAuditEntries(w io.Writer, entries []*types.AuditEntry) {
	if jsonOutput {
		printJSON(w, entries)
		return
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, ui.Muted("(no audit entries)"))
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %-20s  %s\n", ui.Muted(e.CreatedAt.Format("2006-01-02 15:04:05")), e.Kind, e.WorkItemID)
	}
}
