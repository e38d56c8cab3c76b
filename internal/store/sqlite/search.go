package sqlite

import (
	"context"

	"github.com/DRMacIver/claude-reliability-sub001/internal/types"
)

// SearchTasks ranks work items by full-text relevance over title,
// description, and concatenated note content, via the FTS5 virtual
// table's bm25() ranking, falling back to recency on ties. This
// enriches on the teacher's plain LIKE-based search (see DESIGN.md).
func (s *Store) SearchTasks(ctx context.Context, query string, limit int) ([]*types.WorkItem, error) {
	if limit <= 0 {
		limit = 25
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT w.id, w.title, w.description, w.priority, w.status, w.in_progress,
		       w.requested, w.created_at, w.updated_at
		FROM work_items_fts f
		JOIN work_items w ON w.id = f.id
		WHERE work_items_fts MATCH ?
		ORDER BY bm25(work_items_fts), w.created_at DESC
		LIMIT ?
	`, ftsQuery(query), limit)
	if err != nil {
		return nil, wrapDBError("search_tasks", err)
	}
	defer func() { _ = rows.Close() }()

	return s.scanWorkItemRows(rows)
}

// ftsQuery escapes a free-text user query into an FTS5 MATCH
// expression: each token becomes a quoted phrase ORed together, so
// punctuation in the query never trips FTS5's own query syntax.
func ftsQuery(query string) string {
	var b []byte
	b = append(b, '"')
	for _, r := range query {
		if r == '"' {
			b = append(b, '"', '"')
			continue
		}
		b = append(b, string(r)...)
	}
	b = append(b, '"')
	return string(b)
}
