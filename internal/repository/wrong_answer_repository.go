package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"quizforge/internal/domain"
	"quizforge/internal/repository/models"
	"quizforge/internal/util"
)

// WrongAnswerRepository persists the missed questions of completed attempts.
// It is the durable side of attempt.WrongAnswerSink.
type WrongAnswerRepository interface {
	SaveWrongAnswers(ctx context.Context, entries []domain.WrongAnswerEntry) error
	List(ctx context.Context, userID string, page, limit int) ([]domain.WrongAnswerEntry, int, error)
	Delete(ctx context.Context, id, userID string) error
}

type sqlxWrongAnswerRepository struct {
	db *sqlx.DB
}

// NewSQLXWrongAnswerRepository creates a new instance of sqlxWrongAnswerRepository.
func NewSQLXWrongAnswerRepository(db *sqlx.DB) WrongAnswerRepository {
	return &sqlxWrongAnswerRepository{db: db}
}

// SaveWrongAnswers inserts all entries in one multi-row statement. IDs and
// CreatedAt are assigned here.
func (r *sqlxWrongAnswerRepository) SaveWrongAnswers(ctx context.Context, entries []domain.WrongAnswerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]models.WrongAnswer, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, models.WrongAnswer{
			ID:            util.NewULID(),
			UserID:        e.UserID,
			QuizID:        util.StringToNullString(e.QuizID),
			QuizTitle:     e.QuizTitle,
			QuestionIndex: e.QuestionIndex,
			QuestionText:  e.QuestionText,
			UserAnswer:    e.UserAnswer,
			CorrectAnswer: e.CorrectAnswer,
			Explanation:   util.StringToNullString(e.Explanation),
			CreatedAt:     now,
		})
	}

	query := `INSERT INTO wrong_answers (id, user_id, quiz_id, quiz_title, question_index, question_text, user_answer, correct_answer, explanation, created_at)
	          VALUES (:id, :user_id, :quiz_id, :quiz_title, :question_index, :question_text, :user_answer, :correct_answer, :explanation, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, rows); err != nil {
		return fmt.Errorf("failed to save wrong answers: %w", err)
	}
	return nil
}

// List returns one page of the user's wrong-answer log, newest first.
func (r *sqlxWrongAnswerRepository) List(ctx context.Context, userID string, page, limit int) ([]domain.WrongAnswerEntry, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM wrong_answers WHERE user_id = $1`, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count wrong answers: %w", err)
	}

	var rows []models.WrongAnswer
	query := `SELECT * FROM wrong_answers WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list wrong answers: %w", err)
	}

	entries := make([]domain.WrongAnswerEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.WrongAnswerEntry{
			ID:            row.ID,
			UserID:        row.UserID,
			QuizID:        row.QuizID.String,
			QuizTitle:     row.QuizTitle,
			QuestionIndex: row.QuestionIndex,
			QuestionText:  row.QuestionText,
			UserAnswer:    row.UserAnswer,
			CorrectAnswer: row.CorrectAnswer,
			Explanation:   row.Explanation.String,
			CreatedAt:     row.CreatedAt,
		})
	}
	return entries, total, nil
}

// Delete removes one wrong-answer row owned by userID.
func (r *sqlxWrongAnswerRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM wrong_answers WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete wrong answer: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("오답 기록을 찾을 수 없습니다")
	}
	return nil
}
