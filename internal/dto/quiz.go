// Package dto holds the request and response shapes of the HTTP API.
package dto

import (
	"encoding/json"
	"time"

	"quizforge/internal/domain"
)

// GenerateQuizRequest is the body of POST /api/generate-quiz.
type GenerateQuizRequest struct {
	Content        string                        `json:"content"`
	Title          string                        `json:"title,omitempty"`
	QuizOptions    *domain.QuizGenerationOptions `json:"quizOptions,omitempty"`
	SaveToDatabase bool                          `json:"saveToDatabase,omitempty"`
}

// AnalyzeURLRequest is the body of POST /api/analyze-url.
type AnalyzeURLRequest struct {
	URL               string                        `json:"url"`
	QuizOptions       *domain.QuizGenerationOptions `json:"quizOptions,omitempty"`
	SaveToDatabase    bool                          `json:"saveToDatabase,omitempty"`
	AutoGenerateTitle bool                          `json:"autoGenerateTitle,omitempty"`
}

// SourceInfo describes where the quizzed content came from.
type SourceInfo struct {
	Type      string `json:"type"` // "paste", "url" or "document"
	URL       string `json:"url,omitempty"`
	FileName  string `json:"fileName,omitempty"`
	Title     string `json:"title,omitempty"`
	SiteName  string `json:"siteName,omitempty"`
	Excerpt   string `json:"excerpt,omitempty"`
	Length    int    `json:"length"`
	PageCount int    `json:"pageCount,omitempty"`
}

// SavedRecordInfo is attached to a generation response when the optional
// save succeeded.
type SavedRecordInfo struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// GenerateQuizResponse is the common response of the three generation
// routes. SavedRecord is nil when the caller did not ask for a save, was
// not authenticated, or the save failed (the quiz is still returned).
type GenerateQuizResponse struct {
	Success        bool                  `json:"success"`
	Data           *domain.GeneratedQuiz `json:"data"`
	GeneratedTitle string                `json:"generatedTitle"`
	GeneratedTag   string                `json:"generatedTag,omitempty"`
	SourceInfo     *SourceInfo           `json:"sourceInfo,omitempty"`
	SavedRecord    *SavedRecordInfo      `json:"savedRecord,omitempty"`
}

// QuizRecordResponse is one saved quiz in history or favorites listings.
type QuizRecordResponse struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Tag             string          `json:"tag,omitempty"`
	OriginalContent string          `json:"originalContent,omitempty"`
	GeneratedQuiz   json.RawMessage `json:"generatedQuiz"`
	SourceURL       string          `json:"sourceUrl,omitempty"`
	SourceFile      string          `json:"sourceFile,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// PaginatedResponse wraps list results with paging metadata.
type PaginatedResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int         `json:"total"`
	TotalPages int         `json:"totalPages"`
}

// FavoriteRequest is the body of POST/DELETE /api/favorites.
type FavoriteRequest struct {
	QuizRecordID string `json:"quizRecordId"`
}

// WrongAnswersRequest is the body of POST /api/wrong-answers.
type WrongAnswersRequest struct {
	QuizID     string            `json:"quizId,omitempty"`
	QuizTitle  string            `json:"quizTitle"`
	WrongItems []WrongAnswerItem `json:"wrongItems"`
}

// WrongAnswerItem is one missed question in a batch submission.
type WrongAnswerItem struct {
	QuestionIndex int    `json:"questionIndex"`
	QuestionText  string `json:"questionText"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation,omitempty"`
}

// CreateInquiryRequest is the body of POST /api/inquiries.
type CreateInquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ToQuizRecordResponse converts a domain record for listing and detail
// responses.
func ToQuizRecordResponse(record *domain.QuizRecord) QuizRecordResponse {
	return QuizRecordResponse{
		ID:              record.ID,
		Title:           record.Title,
		Tag:             record.Tag,
		OriginalContent: record.OriginalContent,
		GeneratedQuiz:   record.GeneratedQuiz,
		SourceURL:       record.SourceURL,
		SourceFile:      record.SourceFile,
		CreatedAt:       record.CreatedAt,
	}
}

// NewPaginatedResponse computes TotalPages from total and limit.
func NewPaginatedResponse(data interface{}, page, limit, total int) PaginatedResponse {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return PaginatedResponse{
		Success:    true,
		Data:       data,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
