package sqlite

import (
	"context"
	"strconv"

	"github.com/DRMacIver/claude-reliability-sub001/internal/types"
)

// builtinHowTosVersion gates the built-in how-to set shipped with the
// binary. Bump it whenever builtinHowTos changes so every existing
// database picks up the update on its next open.
const builtinHowTosVersion = 1

// builtinHowTos is the fixed set of instructions every project starts
// with. IDs are stable and namespaced so they never collide with
// user-created how-tos.
var builtinHowTos = []types.HowTo{
	{
		ID:           "builtin-write-tests-first",
		Title:        "Write tests before implementation",
		Instructions: "Write a failing test that captures the desired behavior before writing the implementation that makes it pass.",
		Builtin:      true,
	},
	{
		ID:           "builtin-small-commits",
		Title:        "Keep commits small and focused",
		Instructions: "Each commit should do one coherent thing and leave the tree in a working state.",
		Builtin:      true,
	},
	{
		ID:           "builtin-verify-before-claiming-done",
		Title:        "Verify before claiming a task is done",
		Instructions: "Run the test suite and any relevant lints before marking a work item complete.",
		Builtin:      true,
	},
}

// syncBuiltinHowTos upserts the built-in how-to set if the database's
// recorded version is missing or behind builtinHowTosVersion. Safe to
// call on every store open.
func (s *Store) syncBuiltinHowTos() error {
	ctx := context.Background()

	current := 0
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = 'builtin_howtos_version'`).Scan(&raw)
	if err == nil {
		if v, parseErr := strconv.Atoi(raw); parseErr == nil {
			current = v
		}
	}

	if current >= builtinHowTosVersion {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, h := range builtinHowTos {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO how_tos (id, title, instructions, builtin) VALUES (?, ?, ?, 1)
			ON CONFLICT (id) DO UPDATE SET title = excluded.title, instructions = excluded.instructions
		`, h.ID, h.Title, h.Instructions)
		if err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES ('builtin_howtos_version', ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, strconv.Itoa(builtinHowTosVersion))
	if err != nil {
		return err
	}

	return tx.Commit()
}
