package domain

import (
	"encoding/json"
	"time"
)

// QuizRecord is the persisted unit combining source content, the prompt
// used, and the generated quiz. Records are immutable after creation and
// deleted explicitly by their owner. GeneratedQuiz and ContentMetadata are
// stored as raw JSON so a save/fetch round trip is byte-identical.
type QuizRecord struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Title           string          `json:"title"`
	Tag             string          `json:"tag,omitempty"`
	OriginalContent string          `json:"originalContent"`
	PromptUsed      string          `json:"promptUsed"`
	GeneratedQuiz   json.RawMessage `json:"generatedQuiz"`
	SourceURL       string          `json:"sourceUrl,omitempty"`
	SourceFile      string          `json:"sourceFile,omitempty"`
	ContentMetadata json.RawMessage `json:"contentMetadata,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// FavoriteEntry marks one quiz record as a favorite of one user.
// Unique per (UserID, QuizRecordID).
type FavoriteEntry struct {
	UserID       string    `json:"userId"`
	QuizRecordID string    `json:"quizRecordId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// WrongAnswerEntry is a durable log row capturing one missed question from
// one quiz attempt. Created at most once per (attempt, question); never
// mutated.
type WrongAnswerEntry struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	QuizID        string    `json:"quizId"`
	QuizTitle     string    `json:"quizTitle"`
	QuestionIndex int       `json:"questionIndex"`
	QuestionText  string    `json:"questionText"`
	UserAnswer    string    `json:"userAnswer"`
	CorrectAnswer string    `json:"correctAnswer"`
	Explanation   string    `json:"explanation,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Inquiry is a public support-ticket board entry.
type Inquiry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// User is an authenticated account created via Google OAuth.
type User struct {
	ID                string    `json:"id"`
	GoogleID          string    `json:"-"`
	Email             string    `json:"email"`
	Name              string    `json:"name,omitempty"`
	ProfilePictureURL string    `json:"profilePictureUrl,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
