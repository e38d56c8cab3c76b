package main

import (
	"fmt"
	"strings"

	"github.com/DRMacIver/claude-reliability-sub001/internal/types"
)

// parsePriority maps a CLI flag value to a types.Priority, case
// insensitively, accepting both the word form ("high") and the
// numeric form ("1").
func parsePriority(s string) (types.Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical", "0":
		return types.PriorityCritical, nil
	case "high", "1":
		return types.PriorityHigh, nil
	case "medium", "2":
		return types.PriorityMedium, nil
	case "low", "3":
		return types.PriorityLow, nil
	case "backlog", "4":
		return types.PriorityBacklog, nil
	default:
		return 0, fmt.Errorf("invalid priority %q (want critical|high|medium|low|backlog)", s)
	}
}

// parseStatus maps a CLI flag value to a types.Status.
func parseStatus(s string) (types.Status, error) {
	status := types.Status(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("invalid status %q (want open|complete|abandoned|stuck|blocked)", s)
	}
	return status, nil
}
