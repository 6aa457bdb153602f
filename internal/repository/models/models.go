// Package models holds the database row shapes. Conversion to and from the
// domain types lives next to each repository.
package models

import (
	"database/sql"
	"time"
)

// User represents a row of the users table.
type User struct {
	ID                    string         `db:"id"` // ULID
	GoogleID              string         `db:"google_id"`
	Email                 string         `db:"email"`
	Name                  sql.NullString `db:"name"`
	ProfilePictureURL     sql.NullString `db:"profile_picture_url"`
	EncryptedAccessToken  sql.NullString `db:"encrypted_access_token"`
	EncryptedRefreshToken sql.NullString `db:"encrypted_refresh_token"`
	TokenExpiresAt        sql.NullTime   `db:"token_expires_at"`
	CreatedAt             time.Time      `db:"created_at"`
	UpdatedAt             time.Time      `db:"updated_at"`
	DeletedAt             sql.NullTime   `db:"deleted_at"`
}

// QuizRecord represents a row of the quiz_records table. GeneratedQuiz and
// ContentMetadata are stored as the exact JSON text produced at generation
// time; the column type is TEXT so the bytes never get normalized.
type QuizRecord struct {
	ID              string         `db:"id"` // ULID
	UserID          string         `db:"user_id"`
	Title           string         `db:"title"`
	Tag             sql.NullString `db:"tag"`
	OriginalContent string         `db:"original_content"`
	PromptUsed      string         `db:"prompt_used"`
	GeneratedQuiz   []byte         `db:"generated_quiz"`
	SourceURL       sql.NullString `db:"source_url"`
	SourceFile      sql.NullString `db:"source_file"`
	ContentMetadata []byte         `db:"content_metadata"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

// Favorite represents a row of the favorites table; primary key is
// (user_id, quiz_record_id).
type Favorite struct {
	UserID       string    `db:"user_id"`
	QuizRecordID string    `db:"quiz_record_id"`
	CreatedAt    time.Time `db:"created_at"`
}

// WrongAnswer represents a row of the wrong_answers table.
type WrongAnswer struct {
	ID            string         `db:"id"` // ULID
	UserID        string         `db:"user_id"`
	QuizID        sql.NullString `db:"quiz_id"`
	QuizTitle     string         `db:"quiz_title"`
	QuestionIndex int            `db:"question_index"`
	QuestionText  string         `db:"question_text"`
	UserAnswer    string         `db:"user_answer"`
	CorrectAnswer string         `db:"correct_answer"`
	Explanation   sql.NullString `db:"explanation"`
	CreatedAt     time.Time      `db:"created_at"`
}

// Inquiry represents a row of the inquiries table.
type Inquiry struct {
	ID        string    `db:"id"` // ULID
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Subject   string    `db:"subject"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}
