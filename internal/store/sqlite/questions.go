package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/DRMacIver/claude-reliability-sub001/internal/types"
)

// CreateQuestion inserts a new, unanswered question.
func (s *Store) CreateQuestion(ctx context.Context, text string) (*types.Question, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO questions (text) VALUES (?)`, text)
	if err != nil {
		return nil, wrapDBError("create_question", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, wrapDBError("create_question", err)
	}
	return s.GetQuestion(ctx, id)
}

// GetQuestion returns the question with id, or ErrNotFound.
func (s *Store) GetQuestion(ctx context.Context, id int64) (*types.Question, error) {
	var q types.Question
	var answer *string
	var createdAt time.Time
	err := s.db.QueryRowContext(ctx, `SELECT id, text, answer, created_at FROM questions WHERE id = ?`, id).
		Scan(&q.ID, &q.Text, &answer, &createdAt)
	if err != nil {
		return nil, wrapDBErrorf(err, "get_question %d", id)
	}
	q.Answer = answer
	q.CreatedAt = createdAt
	return &q, nil
}

// AnswerQuestion records the answer to a question. Answering an
// already-answered question overwrites the prior answer; callers that
// want strict one-shot semantics should check Answered() first.
func (s *Store) AnswerQuestion(ctx context.Context, id int64, answer string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE questions SET answer = ? WHERE id = ?`, answer, id)
	if err != nil {
		return wrapDBErrorf(err, "answer_question %d", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("answer_question %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteQuestion removes a question and its links.
func (s *Store) DeleteQuestion(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		return wrapDBErrorf(err, "delete_question %d", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete_question %d: %w", id, ErrNotFound)
	}
	return nil
}

// ListQuestions returns questions, most recent first, optionally
// restricted to unanswered ones and capped at limit rows.
func (s *Store) ListQuestions(ctx context.Context, unansweredOnly bool, limit int) ([]*types.Question, error) {
	query := `SELECT id, text, answer, created_at FROM questions`
	args := []interface{}{}
	if unansweredOnly {
		query += ` WHERE answer IS NULL`
	}
	query += ` ORDER BY id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError("list_questions", err)
	}
	defer func() { _ = rows.Close() }()

	var questions []*types.Question
	for rows.Next() {
		var q types.Question
		var answer *string
		var createdAt time.Time
		if err := rows.Scan(&q.ID, &q.Text, &answer, &createdAt); err != nil {
			return nil, wrapDBError("list_questions scan", err)
		}
		q.Answer = answer
		q.CreatedAt = createdAt
		questions = append(questions, &q)
	}
	return questions, rows.Err()
}

// SearchQuestions returns questions whose text matches query via a
// case-insensitive substring search.
func (s *Store) SearchQuestions(ctx context.Context, query string) ([]*types.Question, error) {
	like := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, answer, created_at FROM questions WHERE text LIKE ? ORDER BY id DESC
	`, like)
	if err != nil {
		return nil, wrapDBError("search_questions", err)
	}
	defer func() { _ = rows.Close() }()

	var questions []*types.Question
	for rows.Next() {
		var q types.Question
		var answer *string
		var createdAt time.Time
		if err := rows.Scan(&q.ID, &q.Text, &answer, &createdAt); err != nil {
			return nil, wrapDBError("search_questions scan", err)
		}
		q.Answer = answer
		q.CreatedAt = createdAt
		questions = append(questions, &q)
	}
	return questions, rows.Err()
}

// LinkQuestion associates a question with a work item; an unanswered
// linked question blocks readiness (see types.Ready).
func (s *Store) LinkQuestion(ctx context.Context, workItemID string, questionID int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO work_item_questions (work_item_id, question_id) VALUES (?, ?)
		ON CONFLICT (work_item_id, question_id) DO NOTHING
	`, workItemID, questionID)
	return wrapDBErrorf(err, "link_question %s -> %d", workItemID, questionID)
}

// UnlinkQuestion removes the association, if present.
func (s *Store) UnlinkQuestion(ctx context.Context, workItemID string, questionID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM work_item_questions WHERE work_item_id = ? AND question_id = ?`, workItemID, questionID)
	return wrapDBErrorf(err, "unlink_question %s -> %d", workItemID, questionID)
}

// GetBlockingQuestions returns the unanswered questions linked to a
// work item.
func (s *Store) GetBlockingQuestions(ctx context.Context, workItemID string) ([]*types.Question, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT q.id, q.text, q.answer, q.created_at
		FROM questions q
		JOIN work_item_questions wiq ON wiq.question_id = q.id
		WHERE wiq.work_item_id = ? AND q.answer IS NULL
		ORDER BY q.id ASC
	`, workItemID)
	if err != nil {
		return nil, wrapDBErrorf(err, "get_blocking_questions %s", workItemID)
	}
	defer func() { _ = rows.Close() }()

	var questions []*types.Question
	for rows.Next() {
		var q types.Question
		var answer *string
		var createdAt time.Time
		if err := rows.Scan(&q.ID, &q.Text, &answer, &createdAt); err != nil {
			return nil, wrapDBError("get_blocking_questions scan", err)
		}
		q.Answer = answer
		q.CreatedAt = createdAt
		questions = append(questions, &q)
	}
	return questions, rows.Err()
}
