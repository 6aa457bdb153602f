package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"quizforge/internal/domain"
	"quizforge/internal/repository/models"
	"quizforge/internal/util"
)

// QuizRecordRepository defines persistence for generated quizzes. Every
// query filters by the owning user; a record is never visible to anyone
// else.
type QuizRecordRepository interface {
	Save(ctx context.Context, record *domain.QuizRecord) error
	GetByID(ctx context.Context, id, userID string) (*domain.QuizRecord, error)
	List(ctx context.Context, userID string, page, limit int) ([]domain.QuizRecord, int, error)
	Delete(ctx context.Context, id, userID string) error
}

type sqlxQuizRecordRepository struct {
	db *sqlx.DB
}

// NewSQLXQuizRecordRepository creates a new instance of sqlxQuizRecordRepository.
func NewSQLXQuizRecordRepository(db *sqlx.DB) QuizRecordRepository {
	return &sqlxQuizRecordRepository{db: db}
}

// Save inserts a new quiz record. The record's ID is assigned here when
// empty; CreatedAt/UpdatedAt are set to now.
func (r *sqlxQuizRecordRepository) Save(ctx context.Context, record *domain.QuizRecord) error {
	if record.ID == "" {
		record.ID = util.NewULID()
	}
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	model := fromDomainQuizRecord(record)

	query := `INSERT INTO quiz_records (id, user_id, title, tag, original_content, prompt_used, generated_quiz, source_url, source_file, content_metadata, created_at, updated_at)
	          VALUES (:id, :user_id, :title, :tag, :original_content, :prompt_used, :generated_quiz, :source_url, :source_file, :content_metadata, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to save quiz record: %w", err)
	}
	return nil
}

// GetByID fetches one record owned by userID; nil when absent.
func (r *sqlxQuizRecordRepository) GetByID(ctx context.Context, id, userID string) (*domain.QuizRecord, error) {
	var model models.QuizRecord
	query := `SELECT * FROM quiz_records WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, &model, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz record: %w", err)
	}
	return toDomainQuizRecord(&model), nil
}

// List returns one page of the user's records, newest first, plus the total
// count across all pages.
func (r *sqlxQuizRecordRepository) List(ctx context.Context, userID string, page, limit int) ([]domain.QuizRecord, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM quiz_records WHERE user_id = $1`, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count quiz records: %w", err)
	}

	var rows []models.QuizRecord
	query := `SELECT * FROM quiz_records WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list quiz records: %w", err)
	}

	records := make([]domain.QuizRecord, 0, len(rows))
	for i := range rows {
		records = append(records, *toDomainQuizRecord(&rows[i]))
	}
	return records, total, nil
}

// Delete removes the record when it belongs to userID; NotFound otherwise.
func (r *sqlxQuizRecordRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM quiz_records WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete quiz record: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("퀴즈 기록을 찾을 수 없습니다")
	}
	return nil
}

func fromDomainQuizRecord(record *domain.QuizRecord) *models.QuizRecord {
	return &models.QuizRecord{
		ID:              record.ID,
		UserID:          record.UserID,
		Title:           record.Title,
		Tag:             util.StringToNullString(record.Tag),
		OriginalContent: record.OriginalContent,
		PromptUsed:      record.PromptUsed,
		GeneratedQuiz:   []byte(record.GeneratedQuiz),
		SourceURL:       util.StringToNullString(record.SourceURL),
		SourceFile:      util.StringToNullString(record.SourceFile),
		ContentMetadata: []byte(record.ContentMetadata),
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}
}

func toDomainQuizRecord(model *models.QuizRecord) *domain.QuizRecord {
	if model == nil {
		return nil
	}
	record := &domain.QuizRecord{
		ID:              model.ID,
		UserID:          model.UserID,
		Title:           model.Title,
		Tag:             model.Tag.String,
		OriginalContent: model.OriginalContent,
		PromptUsed:      model.PromptUsed,
		GeneratedQuiz:   json.RawMessage(model.GeneratedQuiz),
		SourceURL:       model.SourceURL.String,
		SourceFile:      model.SourceFile.String,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
	if len(model.ContentMetadata) > 0 {
		record.ContentMetadata = json.RawMessage(model.ContentMetadata)
	}
	return record
}
