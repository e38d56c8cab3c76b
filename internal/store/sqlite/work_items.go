package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/DRMacIver/claude-reliability-sub001/internal/idgen"
	"github.com/DRMacIver/claude-reliability-sub001/internal/types"
)

// CreateTask inserts a new work item with status=Open and records an
// audit entry. Concurrent inserts are serialized by the store's single
// connection.
func (s *Store) CreateTask(ctx context.Context, title, description string, priority types.Priority) (*types.WorkItem, error) {
	item := &types.WorkItem{
		ID:          idgen.NewWorkItemID(title),
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      types.StatusOpen,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, wrapDBError("create_task", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO work_items (id, title, description, priority, status, in_progress, requested)
		VALUES (?, ?, ?, ?, ?, 0, 0)
	`, item.ID, item.Title, item.Description, int(item.Priority), string(item.Status))
	if err != nil {
		return nil, wrapDBErrorf(err, "create_task %s", item.ID)
	}

	after, _ := json.Marshal(item)
	if err := insertAudit(ctx, tx, types.AuditCreate, item.ID, "", string(after)); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, wrapDBError("create_task", err)
	}

	return s.GetTask(ctx, item.ID)
}

// GetTask returns the work item with id, or ErrNotFound.
func (s *Store) GetTask(ctx context.Context, id string) (*types.WorkItem, error) {
	item, err := s.scanWorkItem(ctx, s.db.QueryRowContext(ctx, selectWorkItemSQL+" WHERE id = ?", id))
	if err != nil {
		return nil, wrapDBErrorf(err, "get_task %s", id)
	}
	howtos, err := s.GetLinkedHowTos(ctx, id)
	if err != nil {
		return nil, err
	}
	item.LinkedHowTos = howtos
	return item, nil
}

const selectWorkItemSQL = `
	SELECT id, title, description, priority, status, in_progress, requested, created_at, updated_at
	FROM work_items
`

func (s *Store) scanWorkItem(_ context.Context, row *sql.Row) (*types.WorkItem, error) {
	var item types.WorkItem
	var priority int
	var status string
	var inProgress, requested int
	var createdAt, updatedAt time.Time

	err := row.Scan(&item.ID, &item.Title, &item.Description, &priority, &status,
		&inProgress, &requested, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	item.Priority = types.Priority(priority)
	item.Status = types.Status(status)
	item.InProgress = inProgress != 0
	item.Requested = requested != 0
	item.CreatedAt = createdAt
	item.UpdatedAt = updatedAt
	return &item, nil
}

// UpdateTask applies patch to the work item with id. Setting
// in_progress=true atomically clears the flag on every other item,
// enforcing the single-in-progress invariant. Status transitions
// record a before/after audit entry.
func (s *Store) UpdateTask(ctx context.Context, id string, patch types.WorkItemPatch) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapDBError("update_task", err)
	}
	defer func() { _ = tx.Rollback() }()

	before, err := s.scanWorkItem(ctx, tx.QueryRowContext(ctx, selectWorkItemSQL+" WHERE id = ?", id))
	if err != nil {
		return wrapDBErrorf(err, "update_task %s", id)
	}

	sets := []string{"updated_at = CURRENT_TIMESTAMP"}
	args := []interface{}{}

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, int(*patch.Priority))
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*patch.Status))
	}
	if patch.Requested != nil {
		sets = append(sets, "requested = ?")
		args = append(args, *patch.Requested)
	}
	if patch.InProgress != nil {
		sets = append(sets, "in_progress = ?")
		args = append(args, *patch.InProgress)
	}

	args = append(args, id)
	// #nosec G201 -- sets is built entirely from package-internal literals
	query := fmt.Sprintf("UPDATE work_items SET %s WHERE id = ?", strings.Join(sets, ", "))
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return wrapDBErrorf(err, "update_task %s", id)
	}

	if patch.InProgress != nil && *patch.InProgress {
		if _, err := tx.ExecContext(ctx, `UPDATE work_items SET in_progress = 0 WHERE id != ?`, id); err != nil {
			return wrapDBErrorf(err, "update_task %s: clear other in-progress", id)
		}
	}

	after, err := s.scanWorkItem(ctx, tx.QueryRowContext(ctx, selectWorkItemSQL+" WHERE id = ?", id))
	if err != nil {
		return wrapDBErrorf(err, "update_task %s", id)
	}

	beforeJSON, _ := json.Marshal(before)
	afterJSON, _ := json.Marshal(after)
	if err := insertAudit(ctx, tx, types.AuditUpdate, id, string(beforeJSON), string(afterJSON)); err != nil {
		return err
	}

	return wrapDBError("update_task", tx.Commit())
}

// DeleteTask removes the work item with id, cascading to its notes,
// dependency edges in both directions, and how-to/question links.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapDBError("delete_task", err)
	}
	defer func() { _ = tx.Rollback() }()

	before, err := s.scanWorkItem(ctx, tx.QueryRowContext(ctx, selectWorkItemSQL+" WHERE id = ?", id))
	if err != nil {
		return wrapDBErrorf(err, "delete_task %s", id)
	}

	// ON DELETE CASCADE handles dependencies, notes, and the join
	// tables; the work_items row delete triggers them all.
	res, err := tx.ExecContext(ctx, `DELETE FROM work_items WHERE id = ?`, id)
	if err != nil {
		return wrapDBErrorf(err, "delete_task %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete_task %s: %w", id, ErrNotFound)
	}

	beforeJSON, _ := json.Marshal(before)
	if err := insertAudit(ctx, tx, types.AuditDelete, id, string(beforeJSON), ""); err != nil {
		return err
	}

	return wrapDBError("delete_task", tx.Commit())
}

// ListTasks returns work items matching filter.
func (s *Store) ListTasks(ctx context.Context, filter types.WorkFilter) ([]*types.WorkItem, error) {
	if filter.ReadyOnly {
		return s.GetReadyTasks(ctx)
	}

	clauses := []string{"1=1"}
	args := []interface{}{}

	if filter.HasStatus {
		clauses = append(clauses, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.HasPriority {
		clauses = append(clauses, "priority = ?")
		args = append(args, int(filter.Priority))
	}
	if filter.HasMax {
		clauses = append(clauses, "priority <= ?")
		args = append(args, int(filter.PriorityMax))
	}

	query := selectWorkItemSQL + " WHERE " + strings.Join(clauses, " AND ") + " ORDER BY priority ASC, created_at ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError("list_tasks", err)
	}
	defer func() { _ = rows.Close() }()

	return s.scanWorkItemRows(rows)
}

func (s *Store) scanWorkItemRows(rows *sql.Rows) ([]*types.WorkItem, error) {
	var items []*types.WorkItem
	for rows.Next() {
		var item types.WorkItem
		var priority int
		var status string
		var inProgress, requested int
		var createdAt, updatedAt time.Time

		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &priority, &status,
			&inProgress, &requested, &createdAt, &updatedAt); err != nil {
			return nil, wrapDBError("scan work item", err)
		}
		item.Priority = types.Priority(priority)
		item.Status = types.Status(status)
		item.InProgress = inProgress != 0
		item.Requested = requested != 0
		item.CreatedAt = createdAt
		item.UpdatedAt = updatedAt
		items = append(items, &item)
	}
	return items, rows.Err()
}

// GetReadyTasks returns Open, not-in-progress items with every
// dependency terminal and no unanswered linked question, ordered by
// priority ascending then creation time ascending.
func (s *Store) GetReadyTasks(ctx context.Context) ([]*types.WorkItem, error) {
	rows, err := s.db.QueryContext(ctx, selectWorkItemSQL+`
		WHERE status = 'open' AND in_progress = 0
		AND NOT EXISTS (
			SELECT 1 FROM dependencies d
			JOIN work_items dep ON dep.id = d.dependency_id
			WHERE d.dependent_id = work_items.id
			AND dep.status NOT IN ('complete', 'abandoned')
		)
		AND NOT EXISTS (
			SELECT 1 FROM work_item_questions wiq
			JOIN questions q ON q.id = wiq.question_id
			WHERE wiq.work_item_id = work_items.id AND q.answer IS NULL
		)
		ORDER BY priority ASC, created_at ASC
	`)
	if err != nil {
		return nil, wrapDBError("get_ready_tasks", err)
	}
	defer func() { _ = rows.Close() }()

	return s.scanWorkItemRows(rows)
}

// PickTask selects one ready task uniformly at random among those with
// the minimum priority value, or nil if none are ready.
func (s *Store) PickTask(ctx context.Context) (*types.WorkItem, error) {
	ready, err := s.GetReadyTasks(ctx)
	if err != nil {
		return nil, err
	}
	if len(ready) == 0 {
		return nil, nil
	}

	min := ready[0].Priority
	var candidates []*types.WorkItem
	for _, item := range ready {
		if item.Priority < min {
			min = item.Priority
		}
	}
	for _, item := range ready {
		if item.Priority == min {
			candidates = append(candidates, item)
		}
	}

	idx, err := randomIndex(len(candidates))
	if err != nil {
		return nil, err
	}
	return candidates[idx], nil
}

// HasInProgressTask reports whether any work item currently has
// in_progress set.
func (s *Store) HasInProgressTask(ctx context.Context) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM work_items WHERE in_progress = 1`).Scan(&count)
	if err != nil {
		return false, wrapDBError("has_in_progress_task", err)
	}
	return count > 0, nil
}
