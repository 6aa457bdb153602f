package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"quizforge/internal/domain"
	"quizforge/internal/repository/models"
)

// pqUniqueViolation is the PostgreSQL error code for a unique constraint
// violation.
const pqUniqueViolation = "23505"

// FavoriteRepository manages the (user, quiz record) favorite pairs.
type FavoriteRepository interface {
	Add(ctx context.Context, userID, quizRecordID string) error
	Remove(ctx context.Context, userID, quizRecordID string) error
	List(ctx context.Context, userID string, page, limit int) ([]domain.QuizRecord, int, error)
	IsFavorite(ctx context.Context, userID, quizRecordID string) (bool, error)
}

type sqlxFavoriteRepository struct {
	db *sqlx.DB
}

// NewSQLXFavoriteRepository creates a new instance of sqlxFavoriteRepository.
func NewSQLXFavoriteRepository(db *sqlx.DB) FavoriteRepository {
	return &sqlxFavoriteRepository{db: db}
}

// Add marks the record as a favorite. A second Add for the same pair fails
// with AlreadyExists and leaves the first row intact.
func (r *sqlxFavoriteRepository) Add(ctx context.Context, userID, quizRecordID string) error {
	model := &models.Favorite{
		UserID:       userID,
		QuizRecordID: quizRecordID,
		CreatedAt:    time.Now(),
	}

	query := `INSERT INTO favorites (user_id, quiz_record_id, created_at)
	          VALUES (:user_id, :quiz_record_id, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return domain.NewAlreadyExistsError("이미 즐겨찾기에 추가된 퀴즈입니다")
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// Remove deletes the favorite pair; NotFound when it does not exist.
func (r *sqlxFavoriteRepository) Remove(ctx context.Context, userID, quizRecordID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND quiz_record_id = $2`, userID, quizRecordID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("즐겨찾기를 찾을 수 없습니다")
	}
	return nil
}

// List returns one page of the user's favorited quiz records, most recently
// favorited first.
func (r *sqlxFavoriteRepository) List(ctx context.Context, userID string, page, limit int) ([]domain.QuizRecord, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM favorites WHERE user_id = $1`, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count favorites: %w", err)
	}

	var rows []models.QuizRecord
	query := `SELECT qr.* FROM quiz_records qr
	          JOIN favorites f ON f.quiz_record_id = qr.id
	          WHERE f.user_id = $1
	          ORDER BY f.created_at DESC
	          LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list favorites: %w", err)
	}

	records := make([]domain.QuizRecord, 0, len(rows))
	for i := range rows {
		records = append(records, *toDomainQuizRecord(&rows[i]))
	}
	return records, total, nil
}

// IsFavorite reports whether the pair exists.
func (r *sqlxFavoriteRepository) IsFavorite(ctx context.Context, userID, quizRecordID string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM favorites WHERE user_id = $1 AND quiz_record_id = $2`, userID, quizRecordID)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}
