// Package main is the relctl binary: both the CLI surface and the MCP
// server share this one entry point, mirroring the teacher's bd binary
// serving as CLI and RPC daemon from one cmd/ package.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/DRMacIver/claude-reliability-sub001/internal/ui"
)

// Version is overridden at build time via -ldflags.
var Version = "dev"

var (
	jsonOutput  bool
	projectRoot string
)

var rootCmd = &cobra.Command{
	Use:           "relctl",
	Short:         "relctl - reliability layer for an AI coding assistant",
	Long:          `relctl intercepts the tool-use lifecycle of an AI coding assistant, enforces policy, and persists per-project working memory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&projectRoot, "project-root", "", "project root (defaults to the working directory)")

	viper.SetEnvPrefix("relctl")
	viper.AutomaticEnv()

	rootCmd.AddCommand(workCmd)
	rootCmd.AddCommand(howtoCmd)
	rootCmd.AddCommand(questionCmd)
	rootCmd.AddCommand(auditLogCmd)
	rootCmd.AddCommand(emergencyStopCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(ensureConfigCmd)
	rootCmd.AddCommand(ensureGitignoreCmd)
	rootCmd.AddCommand(introCmd)
	rootCmd.AddCommand(mcpCmd)

	rootCmd.AddCommand(stopHookCmd)
	rootCmd.AddCommand(userPromptSubmitHookCmd)
	rootCmd.AddCommand(preToolUseHookCmd)
	rootCmd.AddCommand(postToolUseHookCmd)
	for _, c := range []*cobra.Command{stopHookCmd, userPromptSubmitHookCmd, preToolUseHookCmd, postToolUseHookCmd} {
		c.Hidden = true
	}
}

func main() {
	if os.Getenv("RUST_BACKTRACE") == "" {
		// The host treats a set RUST_BACKTRACE as a signal that panics are
		// captured with full detail; relctl captures them itself via its
		// own panic hooks (see internal/mcpserver), but sets the variable
		// so a host that shells out further still gets full traces.
		_ = os.Setenv("RUST_BACKTRACE", "1")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Fail("Error: "+err.Error()))
		os.Exit(1)
	}
}
