package sqlite

import (
	"context"
	"fmt"

	"github.com/DRMacIver/claude-reliability-sub001/internal/idgen"
	"github.com/DRMacIver/claude-reliability-sub001/internal/types"
)

// CreateHowTo inserts a new, non-built-in how-to entry.
func (s *Store) CreateHowTo(ctx context.Context, title, instructions string) (*types.HowTo, error) {
	h := &types.HowTo{
		ID:           idgen.NewWorkItemID(title),
		Title:        title,
		Instructions: instructions,
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO how_tos (id, title, instructions, builtin) VALUES (?, ?, ?, 0)
	`, h.ID, h.Title, h.Instructions)
	if err != nil {
		return nil, wrapDBErrorf(err, "create_howto %s", h.ID)
	}
	return h, nil
}

// GetHowTo returns the how-to with id, or ErrNotFound.
func (s *Store) GetHowTo(ctx context.Context, id string) (*types.HowTo, error) {
	var h types.HowTo
	var builtin int
	err := s.db.QueryRowContext(ctx, `SELECT id, title, instructions, builtin FROM how_tos WHERE id = ?`, id).
		Scan(&h.ID, &h.Title, &h.Instructions, &builtin)
	if err != nil {
		return nil, wrapDBErrorf(err, "get_howto %s", id)
	}
	h.Builtin = builtin != 0
	return &h, nil
}

// UpdateHowTo overwrites title and instructions for a how-to.
func (s *Store) UpdateHowTo(ctx context.Context, id, title, instructions string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE how_tos SET title = ?, instructions = ? WHERE id = ?`, title, instructions, id)
	if err != nil {
		return wrapDBErrorf(err, "update_howto %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update_howto %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteHowTo removes a how-to and its links to work items.
func (s *Store) DeleteHowTo(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM how_tos WHERE id = ?`, id)
	if err != nil {
		return wrapDBErrorf(err, "delete_howto %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete_howto %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListHowTos returns every how-to, built-in first then by title.
func (s *Store) ListHowTos(ctx context.Context) ([]*types.HowTo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, instructions, builtin FROM how_tos
		ORDER BY builtin DESC, title ASC
	`)
	if err != nil {
		return nil, wrapDBError("list_howtos", err)
	}
	defer func() { _ = rows.Close() }()
	return scanHowTos(rows)
}

// SearchHowTos returns how-tos whose title or instructions match query
// via a simple case-insensitive substring search.
func (s *Store) SearchHowTos(ctx context.Context, query string) ([]*types.HowTo, error) {
	like := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, instructions, builtin FROM how_tos
		WHERE title LIKE ? OR instructions LIKE ?
		ORDER BY builtin DESC, title ASC
	`, like, like)
	if err != nil {
		return nil, wrapDBError("search_howtos", err)
	}
	defer func() { _ = rows.Close() }()
	return scanHowTos(rows)
}

func scanHowTos(rows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
}) ([]*types.HowTo, error) {
	var howtos []*types.HowTo
	for rows.Next() {
		var h types.HowTo
		var builtin int
		if err := rows.Scan(&h.ID, &h.Title, &h.Instructions, &builtin); err != nil {
			return nil, wrapDBError("scan howto", err)
		}
		h.Builtin = builtin != 0
		howtos = append(howtos, &h)
	}
	return howtos, rows.Err()
}

// LinkHowTo associates a how-to with a work item.
func (s *Store) LinkHowTo(ctx context.Context, workItemID, howToID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO work_item_howtos (work_item_id, howto_id) VALUES (?, ?)
		ON CONFLICT (work_item_id, howto_id) DO NOTHING
	`, workItemID, howToID)
	return wrapDBErrorf(err, "link_howto %s -> %s", workItemID, howToID)
}

// UnlinkHowTo removes the association, if present.
func (s *Store) UnlinkHowTo(ctx context.Context, workItemID, howToID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM work_item_howtos WHERE work_item_id = ? AND howto_id = ?`, workItemID, howToID)
	return wrapDBErrorf(err, "unlink_howto %s -> %s", workItemID, howToID)
}

// GetLinkedHowTos returns the how-tos linked to a work item.
func (s *Store) GetLinkedHowTos(ctx context.Context, workItemID string) ([]*types.HowTo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT h.id, h.title, h.instructions, h.builtin
		FROM how_tos h
		JOIN work_item_howtos wih ON wih.howto_id = h.id
		WHERE wih.work_item_id = ?
		ORDER BY h.builtin DESC, h.title ASC
	`, workItemID)
	if err != nil {
		return nil, wrapDBErrorf(err, "get_linked_howtos %s", workItemID)
	}
	defer func() { _ = rows.Close() }()
	return scanHowTos(rows)
}
