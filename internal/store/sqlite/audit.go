package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/DRMacIver/claude-reliability-sub001/internal/types"
)

// dbTX is satisfied by both *sql.DB and *sql.Tx, letting insertAudit be
// called from either a transaction or (in tests) a bare connection.
type dbTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// insertAudit appends one audit log entry within tx.
func insertAudit(ctx context.Context, tx dbTX, kind types.AuditKind, workItemID, before, after string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO audit_log (kind, work_item_id, before_json, after_json)
		VALUES (?, ?, ?, ?)
	`, string(kind), workItemID, before, after)
	return wrapDBErrorf(err, "audit_log insert %s", kind)
}

// AuditLog returns audit entries, most recent first, optionally
// restricted to a single work item and/or capped at limit rows.
func (s *Store) AuditLog(ctx context.Context, workItemID string, limit int) ([]*types.AuditEntry, error) {
	query := `SELECT id, kind, work_item_id, before_json, after_json, created_at FROM audit_log`
	args := []interface{}{}
	if workItemID != "" {
		query += ` WHERE work_item_id = ?`
		args = append(args, workItemID)
	}
	query += ` ORDER BY id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError("audit_log", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*types.AuditEntry
	for rows.Next() {
		var e types.AuditEntry
		var kind string
		var createdAt time.Time
		if err := rows.Scan(&e.ID, &kind, &e.WorkItemID, &e.Before, &e.After, &createdAt); err != nil {
			return nil, wrapDBError("audit_log scan", err)
		}
		e.Kind = types.AuditKind(kind)
		e.CreatedAt = createdAt
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
