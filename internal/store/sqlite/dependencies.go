package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/DRMacIver/claude-reliability-sub001/internal/types"
)

// AddDependency inserts the edge dependentID -> dependencyID ("dependentID
// depends on dependencyID") after verifying no path dependencyID -> ... ->
// dependentID already exists. Adding a duplicate edge is a no-op success.
func (s *Store) AddDependency(ctx context.Context, dependentID, dependencyID string) error {
	if dependentID == dependencyID {
		return fmt.Errorf("add_dependency %s -> %s: %w", dependentID, dependencyID, ErrCycle)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapDBError("add_dependency", err)
	}
	defer func() { _ = tx.Rollback() }()

	wouldCycle, err := reaches(ctx, tx, dependencyID, dependentID)
	if err != nil {
		return wrapDBErrorf(err, "add_dependency %s -> %s", dependentID, dependencyID)
	}
	if wouldCycle {
		return fmt.Errorf("add_dependency %s -> %s: %w", dependentID, dependencyID, ErrCycle)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO dependencies (dependent_id, dependency_id) VALUES (?, ?)
		ON CONFLICT (dependent_id, dependency_id) DO NOTHING
	`, dependentID, dependencyID)
	if err != nil {
		return wrapDBErrorf(err, "add_dependency %s -> %s", dependentID, dependencyID)
	}

	if err := insertAudit(ctx, tx, types.AuditDependencyAdd, dependentID, "", dependencyID); err != nil {
		return err
	}

	return wrapDBError("add_dependency", tx.Commit())
}

// reaches reports whether there is a directed path from -> to through
// the dependencies table, via breadth-first traversal within tx.
func reaches(ctx context.Context, tx *sql.Tx, from, to string) (bool, error) {
	if from == to {
		return true, nil
	}

	visited := map[string]bool{from: true}
	frontier := []string{from}

	for len(frontier) > 0 {
		var next []string
		for _, id := range frontier {
			rows, err := tx.QueryContext(ctx, `SELECT dependency_id FROM dependencies WHERE dependent_id = ?`, id)
			if err != nil {
				return false, err
			}
			for rows.Next() {
				var child string
				if err := rows.Scan(&child); err != nil {
					_ = rows.Close()
					return false, err
				}
				if child == to {
					_ = rows.Close()
					return true, nil
				}
				if !visited[child] {
					visited[child] = true
					next = append(next, child)
				}
			}
			if err := rows.Err(); err != nil {
				_ = rows.Close()
				return false, err
			}
			_ = rows.Close()
		}
		frontier = next
	}
	return false, nil
}

// RemoveDependency deletes the edge dependentID -> dependencyID. A
// missing edge is a no-op success.
func (s *Store) RemoveDependency(ctx context.Context, dependentID, dependencyID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapDBError("remove_dependency", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM dependencies WHERE dependent_id = ? AND dependency_id = ?`, dependentID, dependencyID)
	if err != nil {
		return wrapDBErrorf(err, "remove_dependency %s -> %s", dependentID, dependencyID)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return wrapDBError("remove_dependency", tx.Commit())
	}

	if err := insertAudit(ctx, tx, types.AuditDependencyRemove, dependentID, dependencyID, ""); err != nil {
		return err
	}

	return wrapDBError("remove_dependency", tx.Commit())
}

// GetDependencies returns the IDs of items dependentID depends on.
func (s *Store) GetDependencies(ctx context.Context, dependentID string) ([]string, error) {
	return queryIDs(ctx, s.db, `SELECT dependency_id FROM dependencies WHERE dependent_id = ?`, dependentID)
}

// GetDependents returns the IDs of items that depend on dependencyID.
func (s *Store) GetDependents(ctx context.Context, dependencyID string) ([]string, error) {
	return queryIDs(ctx, s.db, `SELECT dependent_id FROM dependencies WHERE dependency_id = ?`, dependencyID)
}

func queryIDs(ctx context.Context, db *sql.DB, query string, arg string) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, wrapDBError("query dependency edges", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, wrapDBError("scan dependency edge", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
