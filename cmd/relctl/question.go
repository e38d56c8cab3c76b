package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/DRMacIver/claude-reliability-sub001/internal/ui"
)

var questionCmd = &cobra.Command{
	Use:   "question",
	Short: "ask, answer, and link clarifying questions that can block a work item",
}

func parseQuestionID(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		FatalError("invalid question id %q: %v", s, err)
	}
	return id
}

var questionAskCmd = &cobra.Command{
	Use:   "ask <text>",
	Short: "record a new unanswered question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		q, err := store.CreateQuestion(cmd.Context(), args[0])
		if err != nil {
			FatalError("ask question: %v", err)
		}
		printQuestion(cmd.OutOrStdout(), q)
		return nil
	},
}

var questionGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "show a question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		q, err := store.GetQuestion(cmd.Context(), parseQuestionID(args[0]))
		if err != nil {
			FatalError("get question %s: %v", args[0], err)
		}
		printQuestion(cmd.OutOrStdout(), q)
		return nil
	},
}

var questionAnswerCmd = &cobra.Command{
	Use:   "answer <id> <answer>",
	Short: "answer a question, unblocking any work item it was blocking",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		id := parseQuestionID(args[0])
		if err := store.AnswerQuestion(cmd.Context(), id, args[1]); err != nil {
			FatalError("answer question %s: %v", args[0], err)
		}
		q, err := store.GetQuestion(cmd.Context(), id)
		if err != nil {
			FatalError("get question %s: %v", args[0], err)
		}
		printQuestion(cmd.OutOrStdout(), q)
		return nil
	},
}

var questionDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "delete a question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		if err := store.DeleteQuestion(cmd.Context(), parseQuestionID(args[0])); err != nil {
			FatalError("delete question %s: %v", args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Pass("deleted question "+args[0]))
		return nil
	},
}

var questionListUnansweredOnly bool
var questionListLimit int

var questionListCmd = &cobra.Command{
	Use:   "list",
	Short: "list questions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		questions, err := store.ListQuestions(cmd.Context(), questionListUnansweredOnly, questionListLimit)
		if err != nil {
			FatalError("list questions: %v", err)
		}
		printQuestions(cmd.OutOrStdout(), questions)
		return nil
	},
}

var questionSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "search questions by text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		questions, err := store.SearchQuestions(cmd.Context(), args[0])
		if err != nil {
			FatalError("search questions: %v", err)
		}
		printQuestions(cmd.OutOrStdout(), questions)
		return nil
	},
}

var questionLinkCmd = &cobra.Command{
	Use:   "link <work-id> <question-id>",
	Short: "make a work item blocked on an unanswered question",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		if err := store.LinkQuestion(cmd.Context(), args[0], parseQuestionID(args[1])); err != nil {
			FatalError("link question %s -> %s: %v", args[1], args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Pass(fmt.Sprintf("linked question %s to %s", args[1], args[0])))
		return nil
	},
}

var questionUnlinkCmd = &cobra.Command{
	Use:   "unlink <work-id> <question-id>",
	Short: "remove a question's block on a work item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		if err := store.UnlinkQuestion(cmd.Context(), args[0], parseQuestionID(args[1])); err != nil {
			FatalError("unlink question %s -> %s: %v", args[1], args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Pass(fmt.Sprintf("unlinked question %s from %s", args[1], args[0])))
		return nil
	},
}

var questionBlockingCmd = &cobra.Command{
	Use:   "blocking <work-id>",
	Short: "list the unanswered questions blocking a work item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeFn := openProjectStore(cmd)
		defer closeFn()

		questions, err := store.GetBlockingQuestions(cmd.Context(), args[0])
		if err != nil {
			FatalError("blocking questions for %s: %v", args[0], err)
		}
		printQuestions(cmd.OutOrStdout(), questions)
		return nil
	},
}

func init() {
	questionListCmd.Flags().BoolVar(&questionListUnansweredOnly, "unanswered-only", false, "only show unanswered questions")
	questionListCmd.Flags().IntVar(&questionListLimit, "limit", 0, "maximum rows to return (0 = unlimited)")

	questionCmd.AddCommand(
		questionAskCmd, questionGetCmd, questionAnswerCmd, questionDeleteCmd,
		questionListCmd, questionSearchCmd, questionLinkCmd, questionUnlinkCmd, questionBlockingCmd,
	)
}
