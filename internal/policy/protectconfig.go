package policy

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/DRMacIver/claude-reliability-sub001/internal/config"
	"github.com/DRMacIver/claude-reliability-sub001/internal/policy/templates"
)

// protectedSessionFiles are removed-from-rm regardless of whether the
// command names them by full path or bare filename.
var protectedSessionFiles = []string{
	"jkw-session.local.md",
	"jkw-state.local.yaml",
}

var rmCommandPattern = regexp.MustCompile(`\brm\b`)
var redirectOverwritePattern = regexp.MustCompile(`>\s*\S*config\.yaml\b`)

// ProtectConfig blocks Write/Edit targeting the reliability config
// path, and Bash commands that rm or redirect-overwrite the config or
// a protected session file.
func ProtectConfig(_ context.Context, d *Dispatcher, event Event) (*Decision, error) {
	switch event.Hook {
	case HookPreToolUse:
	default:
		return nil, nil
	}

	switch event.ToolName {
	case "Write", "Edit":
		if isConfigPath(event.FilePath, d) {
			return blockDecision(event, templates.ProtectConfig(event.FilePath)), nil
		}
		return nil, nil
	case "Bash":
		return protectConfigBash(event, d)
	default:
		return nil, nil
	}
}

func protectConfigBash(event Event, d *Dispatcher) (*Decision, error) {
	cmd := event.Command

	if rmCommandPattern.MatchString(cmd) {
		if strings.Contains(cmd, config.ConfigFileName) {
			return blockDecision(event, templates.ProtectConfig(config.ConfigFileName)), nil
		}
		for _, f := range protectedSessionFiles {
			if strings.Contains(cmd, f) {
				return blockDecision(event, templates.ProtectConfig(f)), nil
			}
		}
	}

	if redirectOverwritePattern.MatchString(cmd) {
		return blockDecision(event, templates.ProtectConfig(config.ConfigFileName)), nil
	}

	return nil, nil
}

// isConfigPath normalizes leading "./" or "/" and compares against the
// resolved reliability config path.
func isConfigPath(path string, d *Dispatcher) bool {
	if path == "" {
		return false
	}
	normalized := strings.TrimPrefix(strings.TrimPrefix(path, "./"), "/")
	configPath := ""
	if d != nil {
		configPath = strings.TrimPrefix(strings.TrimPrefix(d.ConfigPath(), "./"), "/")
	}
	return normalized == configPath || filepath.Base(normalized) == config.ConfigFileName
}
