// Package templates renders the fixed human-readable messages the
// hook dispatcher attaches to block decisions, keeping the copy in one
// place shared by the policies and (where relevant) CLI help text, in
// the spirit of the teacher's long cobra Long: string convention
// (cmd/bd/gate_session.go) generalized into reusable named templates.
package templates

import (
	"strings"
	"text/template"
)

var (
	noVerifyTmpl     = parse("no-verify", noVerifyBody)
	requireTaskTmpl  = parse("require-task", requireTaskBody)
	protectConfigTmpl = parse("protect-config", protectConfigBody)
	problemModeTmpl  = parse("problem-mode", problemModeBody)
)

func parse(name, body string) *template.Template {
	return template.Must(template.New(name).Parse(body))
}

func render(t *template.Template, data interface{}) string {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		// Templates are compiled from constants above; a render
		// failure means a programmer error, not bad input.
		panic(err)
	}
	return b.String()
}

// NoVerify renders the block message for an unacknowledged --no-verify
// / -n flag on a git commit/push.
func NoVerify(command string) string {
	return render(noVerifyTmpl, struct{ Command, AckPhrase string }{
		Command:   command,
		AckPhrase: AckPhrase,
	})
}

// AckPhrase is the exact string NO_VERIFY_OK must contain to unblock
// --no-verify / -n.
const AckPhrase = "I promise the user has said I can use --no-verify here"

const noVerifyBody = `Blocked: {{.Command}} bypasses verification hooks.

If the user has explicitly asked for this, set the environment variable
NO_VERIFY_OK to the exact phrase:

    {{.AckPhrase}}

and retry the command.`

// RequireTask renders the block message for a Write/Edit attempted
// with no in-progress work item.
func RequireTask() string {
	return render(requireTaskTmpl, nil)
}

const requireTaskBody = `Blocked: no work item is currently in progress.

Create a task first (` + "`work create`" + `) and mark it in progress
(` + "`work on <id>`" + `) before editing files.`

// ProtectConfig renders the block message for an attempt to modify or
// delete a protected reliability config or session file.
func ProtectConfig(path string) string {
	return render(protectConfigTmpl, struct{ Path string }{Path: path})
}

const protectConfigBody = `Blocked: {{.Path}} is a protected configuration file and cannot be
modified or removed by a tool call directly.`

// ProblemMode renders the block message issued for every tool call
// while problem-mode is active.
func ProblemMode(tool string) string {
	return render(problemModeTmpl, struct{ Tool string }{Tool: tool})
}

const problemModeBody = `Blocked: problem mode is active; {{.Tool}} cannot run until problem
mode is cleared.`
