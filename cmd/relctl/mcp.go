package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/DRMacIver/claude-reliability-sub001/internal/config"
	"github.com/DRMacIver/claude-reliability-sub001/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:    "mcp",
	Short:  "MCP server lifecycle: serve and status",
	Hidden: true,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the MCP server in the foreground (intended to be supervised by the host)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := resolvePaths()
		store := openStore(paths)
		defer func() { _ = store.Close() }()

		cfg := config.LoadReliabilityConfig(paths.ConfigPath)
		srv := mcpserver.New(paths, store, cfg.DebugLogging)
		return srv.Run(context.Background())
	},
}

var mcpStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "print the MCP server's liveness, per its heartbeat file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		paths := resolvePaths()
		fmt.Fprintln(cmd.OutOrStdout(), mcpserver.DescribeStatus(paths.HeartbeatPath(), time.Now()))
		if !mcpserver.IsAlive(paths.HeartbeatPath(), time.Now()) {
			os.Exit(1)
		}
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	mcpCmd.AddCommand(mcpStatusCmd)
}
