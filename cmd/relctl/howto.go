package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DRMacIver/claude-reliability-sub001/internal/ui"
)

var howtoCmd = &cobra.Command{
	Use:   "howto",
	Short: "manage reusable how-to entries linkable to work items",
}

var howtoCreateCmd = &cobra.Command{
	Use:   "create <title> <instructions>",
	Short: "create a how-to",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		h, err := store.CreateHowTo(cmd.Context(), args[0], args[1])
		if err != nil {
			FatalError("create how-to: %v", err)
		}
		printHowTo(cmd.OutOrStdout(), h)
		return nil
	},
}

var howtoGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "show a how-to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		h, err := store.GetHowTo(cmd.Context(), args[0])
		if err != nil {
			FatalError("get how-to %s: %v", args[0], err)
		}
		printHowTo(cmd.OutOrStdout(), h)
		return nil
	},
}

var howtoUpdateCmd = &cobra.Command{
	Use:   "update <id> <title> <instructions>",
	Short: "replace a how-to's title and instructions",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		if err := store.UpdateHowTo(cmd.Context(), args[0], args[1], args[2]); err != nil {
			FatalError("update how-to %s: %v", args[0], err)
		}
		h, err := store.GetHowTo(cmd.Context(), args[0])
		if err != nil {
			FatalError("get how-to %s: %v", args[0], err)
		}
		printHowTo(cmd.OutOrStdout(), h)
		return nil
	},
}

var howtoDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "delete a how-to (built-ins cannot be deleted)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		if err := store.DeleteHowTo(cmd.Context(), args[0]); err != nil {
			FatalError("delete how-to %s: %v", args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Pass("deleted "+args[0]))
		return nil
	},
}

var howtoListCmd = &cobra.Command{
	Use:   "list",
	Short: "list all how-tos, built-in and custom",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		howtos, err := store.ListHowTos(cmd.Context())
		if err != nil {
			FatalError("list how-tos: %v", err)
		}
		printHowTos(cmd.OutOrStdout(), howtos)
		return nil
	},
}

var howtoSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "search how-tos by title and instructions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		howtos, err := store.SearchHowTos(cmd.Context(), args[0])
		if err != nil {
			FatalError("search how-tos: %v", err)
		}
		printHowTos(cmd.OutOrStdout(), howtos)
		return nil
	},
}

func init() {
	howtoCmd.AddCommand(howtoCreateCmd, howtoGetCmd, howtoUpdateCmd, howtoDeleteCmd, howtoListCmd, howtoSearchCmd)
}
