package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DRMacIver/claude-reliability-sub001/internal/store/sqlite"
	"github.com/DRMacIver/claude-reliability-sub001/internal/types"
	"github.com/DRMacIver/claude-reliability-sub001/internal/ui"
)

var workCmd = &cobra.Command{
	Use:   "work",
	Short: "manage work items: create, update, list, and track dependencies",
}

// openProjectStore opens the project's store for the duration of one
// command, closing it when the command returns.
func openProjectStore(cmd *cobra.Command) (*sqlite.Store, func()) {
	paths := resolvePaths()
	store := openStore(paths)
	return store, func() { _ = store.Close() }
}

var (
	workCreateDescription string
	workCreatePriority    string
)

var workCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "create a new work item with status=open",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		priority, err := parsePriority(workCreatePriority)
		if err != nil {
			FatalError("%v", err)
		}
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		item, err := store.CreateTask(cmd.Context(), args[0], workCreateDescription, priority)
		if err != nil {
			FatalError("create task: %v", err)
		}
		printWorkItem(cmd.OutOrStdout(), item)
		return nil
	},
}

var workGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "show a work item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		item, err := store.GetTask(cmd.Context(), args[0])
		if err != nil {
			FatalError("get task %s: %v", args[0], err)
		}
		printWorkItem(cmd.OutOrStdout(), item)
		return nil
	},
}

var (
	workUpdateTitle       string
	workUpdateDescription string
	workUpdatePriority    string
	workUpdateStatus      string
	workUpdateInProgress  bool
	workUpdateRequested   bool
)

var workUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "patch a work item's title, description, priority, status, in-progress, or requested fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch := types.WorkItemPatch{}
		if cmd.Flags().Changed("title") {
			patch.Title = &workUpdateTitle
		}
		if cmd.Flags().Changed("description") {
			patch.Description = &workUpdateDescription
		}
		if cmd.Flags().Changed("priority") {
			p, err := parsePriority(workUpdatePriority)
			if err != nil {
				FatalError("%v", err)
			}
			patch.Priority = &p
		}
		if cmd.Flags().Changed("status") {
			s, err := parseStatus(workUpdateStatus)
			if err != nil {
				FatalError("%v", err)
			}
			patch.Status = &s
		}
		if cmd.Flags().Changed("in-progress") {
			patch.InProgress = &workUpdateInProgress
		}
		if cmd.Flags().Changed("requested") {
			patch.Requested = &workUpdateRequested
		}

		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		if err := store.UpdateTask(cmd.Context(), args[0], patch); err != nil {
			FatalError("update task %s: %v", args[0], err)
		}
		item, err := store.GetTask(cmd.Context(), args[0])
		if err != nil {
			FatalError("get task %s: %v", args[0], err)
		}
		printWorkItem(cmd.OutOrStdout(), item)
		return nil
	},
}

var workDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "delete a work item, cascading to its notes, dependencies, and links",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		if err := store.DeleteTask(cmd.Context(), args[0]); err != nil {
			FatalError("delete task %s: %v", args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Pass("deleted "+args[0]))
		return nil
	},
}

var (
	workListStatus      string
	workListPriority    string
	workListPriorityMax string
	workListReady       bool
	workListLimit       int
	workListOffset      int
)

var workListCmd = &cobra.Command{
	Use:   "list",
	Short: "list work items matching a filter",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := types.WorkFilter{
			ReadyOnly: workListReady,
			Limit:     workListLimit,
			Offset:    workListOffset,
		}
		if workListStatus != "" {
			s, err := parseStatus(workListStatus)
			if err != nil {
				FatalError("%v", err)
			}
			filter.Status = s
			filter.HasStatus = true
		}
		if workListPriority != "" {
			p, err := parsePriority(workListPriority)
			if err != nil {
				FatalError("%v", err)
			}
			filter.Priority = p
			filter.HasPriority = true
		}
		if workListPriorityMax != "" {
			p, err := parsePriority(workListPriorityMax)
			if err != nil {
				FatalError("%v", err)
			}
			filter.PriorityMax = p
			filter.HasMax = true
		}

		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		items, err := store.ListTasks(cmd.Context(), filter)
		if err != nil {
			FatalError("list tasks: %v", err)
		}
		printWorkItems(cmd.OutOrStdout(), items)
		return nil
	},
}

var workSearchLimit int

var workSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "full-text search over work item titles, descriptions, and notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		items, err := store.SearchTasks(cmd.Context(), args[0], workSearchLimit)
		if err != nil {
			FatalError("search tasks: %v", err)
		}
		printWorkItems(cmd.OutOrStdout(), items)
		return nil
	},
}

var workNextCmd = &cobra.Command{
	Use:   "next",
	Short: "pick one ready task at random among those with the lowest priority value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		item, err := store.PickTask(cmd.Context())
		if err != nil {
			FatalError("pick task: %v", err)
		}
		if item == nil {
			if jsonOutput {
				printJSON(cmd.OutOrStdout(), nil)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted("(no ready tasks)"))
			return nil
		}
		printWorkItem(cmd.OutOrStdout(), item)
		return nil
	},
}

var workOnCmd = &cobra.Command{
	Use:   "on <id>",
	Short: "mark a work item in progress, clearing the flag on every other item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		inProgress := true
		if err := store.UpdateTask(cmd.Context(), args[0], types.WorkItemPatch{InProgress: &inProgress}); err != nil {
			FatalError("mark %s in progress: %v", args[0], err)
		}
		item, err := store.GetTask(cmd.Context(), args[0])
		if err != nil {
			FatalError("get task %s: %v", args[0], err)
		}
		printWorkItem(cmd.OutOrStdout(), item)
		return nil
	},
}

var workRequestCmd = &cobra.Command{
	Use:   "request <id>",
	Short: "flag a work item as requested",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		requested := true
		if err := store.UpdateTask(cmd.Context(), args[0], types.WorkItemPatch{Requested: &requested}); err != nil {
			FatalError("mark %s requested: %v", args[0], err)
		}
		item, err := store.GetTask(cmd.Context(), args[0])
		if err != nil {
			FatalError("get task %s: %v", args[0], err)
		}
		printWorkItem(cmd.OutOrStdout(), item)
		return nil
	},
}

var workRequestAllCmd = &cobra.Command{
	Use:   "request-all",
	Short: "flag every ready work item as requested",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		ready, err := store.GetReadyTasks(cmd.Context())
		if err != nil {
			FatalError("list ready tasks: %v", err)
		}
		requested := true
		updated := make([]*types.WorkItem, 0, len(ready))
		for _, item := range ready {
			if err := store.UpdateTask(cmd.Context(), item.ID, types.WorkItemPatch{Requested: &requested}); err != nil {
				FatalError("mark %s requested: %v", item.ID, err)
			}
			got, err := store.GetTask(cmd.Context(), item.ID)
			if err != nil {
				FatalError("get task %s: %v", item.ID, err)
			}
			updated = append(updated, got)
		}
		printWorkItems(cmd.OutOrStdout(), updated)
		return nil
	},
}

var workIncompleteCmd = &cobra.Command{
	Use:   "incomplete",
	Short: "list work items that have not reached a terminal status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		all, err := store.ListTasks(cmd.Context(), types.WorkFilter{})
		if err != nil {
			FatalError("list tasks: %v", err)
		}
		var incomplete []*types.WorkItem
		for _, item := range all {
			if !item.Status.IsTerminal() {
				incomplete = append(incomplete, item)
			}
		}
		printWorkItems(cmd.OutOrStdout(), incomplete)
		return nil
	},
}

var workBlockedCmd = &cobra.Command{
	Use:   "blocked",
	Short: "list work items with status=blocked",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		items, err := store.ListTasks(cmd.Context(), types.WorkFilter{Status: types.StatusBlocked, HasStatus: true})
		if err != nil {
			FatalError("list blocked tasks: %v", err)
		}
		printWorkItems(cmd.OutOrStdout(), items)
		return nil
	},
}

var workAddDepCmd = &cobra.Command{
	Use:   "add-dep <dependent-id> <dependency-id>",
	Short: "record that <dependent-id> depends on <dependency-id>",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		if err := store.AddDependency(cmd.Context(), args[0], args[1]); err != nil {
			if sqlite.IsCycle(err) {
				FatalError("add-dep %s -> %s would create a cycle", args[0], args[1])
			}
			FatalError("add-dep %s -> %s: %v", args[0], args[1], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Pass(fmt.Sprintf("%s now depends on %s", args[0], args[1])))
		return nil
	},
}

var workRemoveDepCmd = &cobra.Command{
	Use:   "remove-dep <dependent-id> <dependency-id>",
	Short: "remove a dependency edge, if present",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		if err := store.RemoveDependency(cmd.Context(), args[0], args[1]); err != nil {
			FatalError("remove-dep %s -> %s: %v", args[0], args[1], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Pass(fmt.Sprintf("removed dependency %s -> %s", args[0], args[1])))
		return nil
	},
}

var workAddNoteCmd = &cobra.Command{
	Use:   "add-note <id> <content>",
	Short: "append a note to a work item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		note, err := store.AddNote(cmd.Context(), args[0], args[1])
		if err != nil {
			FatalError("add-note %s: %v", args[0], err)
		}
		if jsonOutput {
			printJSON(cmd.OutOrStdout(), note)
			return nil
		}
		printNote(cmd.OutOrStdout(), note)
		return nil
	},
}

var workNotesLimit int

var workNotesCmd = &cobra.Command{
	Use:   "notes <id>",
	Short: "list notes on a work item, most recent first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		notes, err := store.ListNotes(cmd.Context(), args[0], workNotesLimit)
		if err != nil {
			FatalError("notes %s: %v", args[0], err)
		}
		printNotes(cmd.OutOrStdout(), notes)
		return nil
	},
}

var workLinkHowToCmd = &cobra.Command{
	Use:   "link-howto <work-id> <howto-id>",
	Short: "link a how-to to a work item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		if err := store.LinkHowTo(cmd.Context(), args[0], args[1]); err != nil {
			FatalError("link-howto %s -> %s: %v", args[0], args[1], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Pass(fmt.Sprintf("linked how-to %s to %s", args[1], args[0])))
		return nil
	},
}

var workUnlinkHowToCmd = &cobra.Command{
	Use:   "unlink-howto <work-id> <howto-id>",
	Short: "unlink a how-to from a work item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		if err := store.UnlinkHowTo(cmd.Context(), args[0], args[1]); err != nil {
			FatalError("unlink-howto %s -> %s: %v", args[0], args[1], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Pass(fmt.Sprintf("unlinked how-to %s from %s", args[1], args[0])))
		return nil
	},
}

func init() {
	workCreateCmd.Flags().StringVar(&workCreateDescription, "description", "", "work item description")
	workCreateCmd.Flags().StringVar(&workCreatePriority, "priority", "medium", "priority: critical|high|medium|low|backlog")

	workUpdateCmd.Flags().StringVar(&workUpdateTitle, "title", "", "new title")
	workUpdateCmd.Flags().StringVar(&workUpdateDescription, "description", "", "new description")
	workUpdateCmd.Flags().StringVar(&workUpdatePriority, "priority", "", "new priority: critical|high|medium|low|backlog")
	workUpdateCmd.Flags().StringVar(&workUpdateStatus, "status", "", "new status: open|complete|abandoned|stuck|blocked")
	workUpdateCmd.Flags().BoolVar(&workUpdateInProgress, "in-progress", false, "set the in-progress flag")
	workUpdateCmd.Flags().BoolVar(&workUpdateRequested, "requested", false, "set the requested flag")

	workListCmd.Flags().StringVar(&workListStatus, "status", "", "filter by exact status")
	workListCmd.Flags().StringVar(&workListPriority, "priority", "", "filter by exact priority")
	workListCmd.Flags().StringVar(&workListPriorityMax, "priority-max", "", "filter by priority at or above this urgency")
	workListCmd.Flags().BoolVar(&workListReady, "ready", false, "only items eligible to be worked on now")
	workListCmd.Flags().IntVar(&workListLimit, "limit", 0, "maximum rows to return (0 = unlimited)")
	workListCmd.Flags().IntVar(&workListOffset, "offset", 0, "rows to skip")

	workSearchCmd.Flags().IntVar(&workSearchLimit, "limit", 25, "maximum rows to return")

	workNotesCmd.Flags().IntVar(&workNotesLimit, "limit", 0, "maximum rows to return (0 = unlimited)")

	workCmd.AddCommand(
		workCreateCmd, workGetCmd, workUpdateCmd, workDeleteCmd, workListCmd, workSearchCmd,
		workNextCmd, workOnCmd, workRequestCmd, workRequestAllCmd, workIncompleteCmd, workBlockedCmd,
		workAddDepCmd, workRemoveDepCmd, workAddNoteCmd, workNotesCmd, workLinkHowToCmd, workUnlinkHowToCmd,
	)
}
