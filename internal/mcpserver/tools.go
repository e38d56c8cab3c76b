package mcpserver

import (
	"context"
	"encoding/json"
	"time"

	"github.com/DRMacIver/claude-reliability-sub001/internal/types"
)

// toolRegistry maps tool names to handlers; names mirror the task
// store contracts of §4.2 one-for-one.
var toolRegistry = map[string]toolHandler{
	"create_task":          toolCreateTask,
	"get_task":              toolGetTask,
	"update_task":           toolUpdateTask,
	"delete_task":           toolDeleteTask,
	"list_tasks":            toolListTasks,
	"search_tasks":          toolSearchTasks,
	"add_dependency":        toolAddDependency,
	"remove_dependency":     toolRemoveDependency,
	"get_dependencies":      toolGetDependencies,
	"get_dependents":        toolGetDependents,
	"get_ready_tasks":       toolGetReadyTasks,
	"pick_task":             toolPickTask,
	"has_in_progress_task":  toolHasInProgressTask,
	"add_note":              toolAddNote,
	"list_notes":            toolListNotes,
	"delete_note":           toolDeleteNote,
	"create_howto":          toolCreateHowTo,
	"get_howto":             toolGetHowTo,
	"update_howto":          toolUpdateHowTo,
	"delete_howto":          toolDeleteHowTo,
	"list_howtos":           toolListHowTos,
	"search_howtos":         toolSearchHowTos,
	"link_howto":            toolLinkHowTo,
	"unlink_howto":          toolUnlinkHowTo,
	"get_linked_howtos":     toolGetLinkedHowTos,
	"create_question":       toolCreateQuestion,
	"get_question":          toolGetQuestion,
	"answer_question":       toolAnswerQuestion,
	"delete_question":       toolDeleteQuestion,
	"list_questions":        toolListQuestions,
	"search_questions":      toolSearchQuestions,
	"link_question":         toolLinkQuestion,
	"unlink_question":       toolUnlinkQuestion,
	"get_blocking_questions": toolGetBlockingQuestions,
	"audit_log":             toolAuditLog,
	"describe_mcp_status":   toolDescribeMCPStatus,
}

func decodeArgs(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func toolCreateTask(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		Title       string         `json:"title"`
		Description string         `json:"description"`
		Priority    types.Priority `json:"priority"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return s.store.CreateTask(ctx, args.Title, args.Description, args.Priority)
}

func toolGetTask(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		ID string `json:"id"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return s.store.GetTask(ctx, args.ID)
}

func toolUpdateTask(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		ID    string              `json:"id"`
		Patch types.WorkItemPatch `json:"patch"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return nil, s.store.UpdateTask(ctx, args.ID, args.Patch)
}

func toolDeleteTask(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		ID string `json:"id"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return nil, s.store.DeleteTask(ctx, args.ID)
}

func toolListTasks(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		Filter types.WorkFilter `json:"filter"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return s.store.ListTasks(ctx, args.Filter)
}

func toolSearchTasks(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return s.store.SearchTasks(ctx, args.Query, args.Limit)
}

func toolAddDependency(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		DependentID  string `json:"dependent_id"`
		DependencyID string `json:"dependency_id"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return nil, s.store.AddDependency(ctx, args.DependentID, args.DependencyID)
}

func toolRemoveDependency(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		DependentID  string `json:"dependent_id"`
		DependencyID string `json:"dependency_id"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return nil, s.store.RemoveDependency(ctx, args.DependentID, args.DependencyID)
}

func toolGetDependencies(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		ID string `json:"id"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return s.store.GetDependencies(ctx, args.ID)
}

func toolGetDependents(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		ID string `json:"id"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return s.store.GetDependents(ctx, args.ID)
}

func toolGetReadyTasks(ctx context.Context, s *Server, _ json.RawMessage) (interface{}, error) {
	return s.store.GetReadyTasks(ctx)
}

func toolPickTask(ctx context.Context, s *Server, _ json.RawMessage) (interface{}, error) {
	return s.store.PickTask(ctx)
}

func toolHasInProgressTask(ctx context.Context, s *Server, _ json.RawMessage) (interface{}, error) {
	return s.store.HasInProgressTask(ctx)
}

func toolAddNote(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		WorkItemID string `json:"work_item_id"`
		Content    string `json:"content"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return s.store.AddNote(ctx, args.WorkItemID, args.Content)
}

func toolListNotes(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		WorkItemID string `json:"work_item_id"`
		Limit      int    `json:"limit"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return s.store.ListNotes(ctx, args.WorkItemID, args.Limit)
}

func toolDeleteNote(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		ID int64 `json:"id"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return nil, s.store.DeleteNote(ctx, args.ID)
}

func toolCreateHowTo(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		Title        string `json:"title"`
		Instructions string `json:"instructions"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return s.store.CreateHowTo(ctx, args.Title, args.Instructions)
}

func toolGetHowTo(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		ID string `json:"id"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return s.store.GetHowTo(ctx, args.ID)
}

func toolUpdateHowTo(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		ID           string `json:"id"`
		Title        string `json:"title"`
		Instructions string `json:"instructions"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return nil, s.store.UpdateHowTo(ctx, args.ID, args.Title, args.Instructions)
}

func toolDeleteHowTo(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		ID string `json:"id"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return nil, s.store.DeleteHowTo(ctx, args.ID)
}

func toolListHowTos(ctx context.Context, s *Server, _ json.RawMessage) (interface{}, error) {
	return s.store.ListHowTos(ctx)
}

func toolSearchHowTos(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		Query string `json:"query"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return s.store.SearchHowTos(ctx, args.Query)
}

func toolLinkHowTo(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		WorkItemID string `json:"work_item_id"`
		HowToID    string `json:"howto_id"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return nil, s.store.LinkHowTo(ctx, args.WorkItemID, args.HowToID)
}

func toolUnlinkHowTo(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		WorkItemID string `json:"work_item_id"`
		HowToID    string `json:"howto_id"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return nil, s.store.UnlinkHowTo(ctx, args.WorkItemID, args.HowToID)
}

func toolGetLinkedHowTos(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		WorkItemID string `json:"work_item_id"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return s.store.GetLinkedHowTos(ctx, args.WorkItemID)
}

func toolCreateQuestion(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		Text string `json:"text"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return s.store.CreateQuestion(ctx, args.Text)
}

func toolGetQuestion(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		ID int64 `json:"id"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return s.store.GetQuestion(ctx, args.ID)
}

func toolAnswerQuestion(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		ID     int64  `json:"id"`
		Answer string `json:"answer"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return nil, s.store.AnswerQuestion(ctx, args.ID, args.Answer)
}

func toolDeleteQuestion(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		ID int64 `json:"id"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return nil, s.store.DeleteQuestion(ctx, args.ID)
}

func toolListQuestions(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		UnansweredOnly bool `json:"unanswered_only"`
		Limit          int  `json:"limit"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return s.store.ListQuestions(ctx, args.UnansweredOnly, args.Limit)
}

func toolSearchQuestions(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		Query string `json:"query"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return s.store.SearchQuestions(ctx, args.Query)
}

func toolLinkQuestion(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		WorkItemID string `json:"work_item_id"`
		QuestionID int64  `json:"question_id"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return nil, s.store.LinkQuestion(ctx, args.WorkItemID, args.QuestionID)
}

func toolUnlinkQuestion(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		WorkItemID string `json:"work_item_id"`
		QuestionID int64  `json:"question_id"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return nil, s.store.UnlinkQuestion(ctx, args.WorkItemID, args.QuestionID)
}

func toolGetBlockingQuestions(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		WorkItemID string `json:"work_item_id"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return s.store.GetBlockingQuestions(ctx, args.WorkItemID)
}

func toolAuditLog(ctx context.Context, s *Server, raw json.RawMessage) (interface{}, error) {
	var args struct {
		WorkItemID string `json:"work_item_id"`
		Limit      int    `json:"limit"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return s.store.AuditLog(ctx, args.WorkItemID, args.Limit)
}

func toolDescribeMCPStatus(_ context.Context, s *Server, _ json.RawMessage) (interface{}, error) {
	return DescribeStatus(s.paths.HeartbeatPath(), time.Now()), nil
}
