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

// InquiryRepository persists the public inquiry board.
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *domain.Inquiry) error
	List(ctx context.Context, page, limit int) ([]domain.Inquiry, int, error)
}

type sqlxInquiryRepository struct {
	db *sqlx.DB
}

// NewSQLXInquiryRepository creates a new instance of sqlxInquiryRepository.
func NewSQLXInquiryRepository(db *sqlx.DB) InquiryRepository {
	return &sqlxInquiryRepository{db: db}
}

// Create inserts a new inquiry; ID and CreatedAt are assigned here.
func (r *sqlxInquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	if inquiry.ID == "" {
		inquiry.ID = util.NewULID()
	}
	inquiry.CreatedAt = time.Now()

	model := &models.Inquiry{
		ID:        inquiry.ID,
		Name:      inquiry.Name,
		Email:     inquiry.Email,
		Subject:   inquiry.Subject,
		Message:   inquiry.Message,
		CreatedAt: inquiry.CreatedAt,
	}

	query := `INSERT INTO inquiries (id, name, email, subject, message, created_at)
	          VALUES (:id, :name, :email, :subject, :message, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to create inquiry: %w", err)
	}
	return nil
}

// List returns one page of inquiries, newest first. The board is public, so
// there is no user filter.
func (r *sqlxInquiryRepository) List(ctx context.Context, page, limit int) ([]domain.Inquiry, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM inquiries`); err != nil {
		return nil, 0, fmt.Errorf("failed to count inquiries: %w", err)
	}

	var rows []models.Inquiry
	query := `SELECT * FROM inquiries ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list inquiries: %w", err)
	}

	inquiries := make([]domain.Inquiry, 0, len(rows))
	for _, row := range rows {
		inquiries = append(inquiries, domain.Inquiry{
			ID:        row.ID,
			Name:      row.Name,
			Email:     row.Email,
			Subject:   row.Subject,
			Message:   row.Message,
			CreatedAt: row.CreatedAt,
		})
	}
	return inquiries, total, nil
}
