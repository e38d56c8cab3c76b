package policy

import (
	"context"
	"os"
	"regexp"
	"strings"

	"github.com/DRMacIver/claude-reliability-sub001/internal/policy/templates"
)

// noVerifyPattern matches a --no-verify flag or a short -n flag
// anywhere in a git commit/push command line.
var noVerifyPattern = regexp.MustCompile(`(^|\s)(--no-verify|-n)(\s|$)`)

var gitCommitOrPushPattern = regexp.MustCompile(`\bgit\s+(commit|push)\b`)

// NoVerify blocks a git commit/push that carries --no-verify or -n
// unless the caller has set NO_VERIFY_OK to the exact acknowledgment
// phrase.
func NoVerify(_ context.Context, _ *Dispatcher, event Event) (*Decision, error) {
	if event.Hook != HookPreToolUse || event.ToolName != "Bash" {
		return nil, nil
	}
	if !gitCommitOrPushPattern.MatchString(event.Command) {
		return nil, nil
	}
	if !noVerifyPattern.MatchString(event.Command) {
		return nil, nil
	}
	if strings.Contains(os.Getenv("NO_VERIFY_OK"), templates.AckPhrase) {
		return nil, nil
	}
	return blockDecision(event, templates.NoVerify(event.Command)), nil
}
