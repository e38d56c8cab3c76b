package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DRMacIver/claude-reliability-sub001/internal/markers"
	"github.com/DRMacIver/claude-reliability-sub001/internal/ui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the relctl version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), Version)
	},
}

// defaultReliabilityConfig is the template written by ensure-config,
// grounded on the teacher's FixGitignore convention of shipping a
// canonical template constant (cmd/bd/doctor/gitignore.go).
const defaultReliabilityConfig = `# relctl reliability config. This file is protected: relctl blocks
# tool calls that would write, delete, or overwrite it directly.
debug_logging: false
single_work_item: ""
code_review_guide_path: ""
`

var ensureConfigCmd = &cobra.Command{
	Use:   "ensure-config",
	Short: "create the project's reliability-config.yaml if it does not exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := resolvePaths()
		if err := paths.EnsureMarkerDir(); err != nil {
			FatalError("cannot create %s: %v", paths.MarkerDir, err)
		}

		if _, err := os.Stat(paths.ConfigPath); err == nil {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted(paths.ConfigPath+" already exists"))
			return nil
		}

		if err := os.WriteFile(paths.ConfigPath, []byte(defaultReliabilityConfig), 0o644); err != nil {
			FatalError("cannot write %s: %v", paths.ConfigPath, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Pass("wrote "+paths.ConfigPath))
		return nil
	},
}

// gitignorePatterns are the entries ensure-gitignore makes sure are
// present so the project's session markers, protected local config
// override, and sqlite working files never get committed.
var gitignorePatterns = []string{
	".claude/*.local",
	".claude/reliability-config.local.yaml",
}

var ensureGitignoreCmd = &cobra.Command{
	Use:   "ensure-gitignore",
	Short: "make sure the project's .gitignore excludes session markers and local config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root := resolveProjectRoot()
		gitignorePath := filepath.Join(root, ".gitignore")

		existing, err := os.ReadFile(gitignorePath) // #nosec G304 -- resolver-derived path
		if err != nil && !os.IsNotExist(err) {
			FatalError("cannot read %s: %v", gitignorePath, err)
		}
		content := string(existing)

		var missing []string
		for _, p := range gitignorePatterns {
			if !strings.Contains(content, p) {
				missing = append(missing, p)
			}
		}
		if len(missing) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Pass(".gitignore already up to date"))
			return nil
		}

		if content != "" && !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		content += "\n# relctl session markers and local config override\n"
		for _, p := range missing {
			content += p + "\n"
		}

		if err := os.WriteFile(gitignorePath, []byte(content), 0o644); err != nil {
			FatalError("cannot write %s: %v", gitignorePath, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Pass("added "+strings.Join(missing, ", ")+" to .gitignore"))
		return nil
	},
}

const introText = `relctl is a reliability layer for an AI coding assistant.

It intercepts the tool-use lifecycle via hooks (pre-tool-use,
post-tool-use, user-prompt-submit, stop), enforces policy on what the
assistant may do, and tracks per-project working memory: tasks, notes,
how-tos, questions, dependencies, and an audit log.

Typical flow:
  relctl work create "Fix the flaky test" --priority high
  relctl work on <id>        # mark it in progress; required before editing files
  relctl work notes <id>     # review history before claiming done
  relctl work update <id> --status complete

Run 'relctl ensure-config' and 'relctl ensure-gitignore' once per
project to set up the protected config file and .gitignore entries.
`

var introCmd = &cobra.Command{
	Use:   "intro",
	Short: "print a short orientation for an assistant new to this project",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), introText)
	},
}

var emergencyStopCmd = &cobra.Command{
	Use:   "emergency-stop <explanation>",
	Short: "activate problem mode, blocking every tool call until cleared",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := resolvePaths()
		store := markers.New(paths.MarkerDir)
		if err := store.Create(markers.ProblemModeActive); err != nil {
			FatalError("cannot set problem-mode marker: %v", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Fail("problem mode activated: "+args[0]))
		fmt.Fprintln(cmd.OutOrStdout(), ui.Muted("every tool call is blocked until "+string(markers.ProblemModeActive)+" is removed from "+paths.MarkerDir))
		return nil
	},
}
