package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/DRMacIver/claude-reliability-sub001/internal/types"
)

// AddNote appends a note to a work item's commentary.
func (s *Store) AddNote(ctx context.Context, workItemID, content string) (*types.Note, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO notes (work_item_id, content) VALUES (?, ?)`, workItemID, content)
	if err != nil {
		return nil, wrapDBErrorf(err, "add_note %s", workItemID)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, wrapDBError("add_note", err)
	}

	var n types.Note
	var createdAt time.Time
	err = s.db.QueryRowContext(ctx, `SELECT id, work_item_id, content, created_at FROM notes WHERE id = ?`, id).
		Scan(&n.ID, &n.WorkItemID, &n.Content, &createdAt)
	if err != nil {
		return nil, wrapDBError("add_note", err)
	}
	n.CreatedAt = createdAt
	return &n, nil
}

// ListNotes returns notes for a work item, most recent first,
// optionally capped at limit rows.
func (s *Store) ListNotes(ctx context.Context, workItemID string, limit int) ([]*types.Note, error) {
	query := `SELECT id, work_item_id, content, created_at FROM notes WHERE work_item_id = ? ORDER BY id DESC`
	args := []interface{}{workItemID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBErrorf(err, "list_notes %s", workItemID)
	}
	defer func() { _ = rows.Close() }()

	var notes []*types.Note
	for rows.Next() {
		var n types.Note
		var createdAt time.Time
		if err := rows.Scan(&n.ID, &n.WorkItemID, &n.Content, &createdAt); err != nil {
			return nil, wrapDBError("list_notes scan", err)
		}
		n.CreatedAt = createdAt
		notes = append(notes, &n)
	}
	return notes, rows.Err()
}

// DeleteNote removes a note by id.
func (s *Store) DeleteNote(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return wrapDBErrorf(err, "delete_note %d", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete_note %d: %w", id, ErrNotFound)
	}
	return nil
}
