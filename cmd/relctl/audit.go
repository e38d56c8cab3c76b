package main

import (
	"github.com/spf13/cobra"
)

var (
	auditLogWorkItemID string
	auditLogLimit      int
)

var auditLogCmd = &cobra.Command{
	Use:   "audit-log",
	Short: "show the audit trail of state-changing operations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		entries, err := store.AuditLog(cmd.Context(), auditLogWorkItemID, auditLogLimit)
		if err != nil {
			FatalError("audit log: %v", err)
		}
		printAuditEntries(cmd.OutOrStdout(), entries)
		return nil
	},
}

func init() {
	auditLogCmd.Flags().StringVar(&auditLogWorkItemID, "work-item", "", "filter to entries for a single work item")
	auditLogCmd.Flags().IntVar(&auditLogLimit, "limit", 50, "maximum rows to return")
}
