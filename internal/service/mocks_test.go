package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"quizforge/internal/domain"
)

// --- extractor mocks ---

type MockURLExtractor struct {
	mock.Mock
}

func (m *MockURLExtractor) ExtractFromURL(ctx context.Context, rawURL string) (*domain.SourceContent, error) {
	args := m.Called(ctx, rawURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SourceContent), args.Error(1)
}

type MockFileExtractor struct {
	mock.Mock
}

func (m *MockFileExtractor) ExtractFromFile(filename string, mimeType string, data []byte) (*domain.SourceContent, error) {
	args := m.Called(filename, mimeType, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SourceContent), args.Error(1)
}

// --- generation mocks ---

type MockQuizGenerator struct {
	mock.Mock
}

func (m *MockQuizGenerator) GenerateQuiz(ctx context.Context, content string, opts *domain.QuizGenerationOptions) (*domain.GeneratedQuiz, string, error) {
	args := m.Called(ctx, content, opts)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*domain.GeneratedQuiz), args.String(1), args.Error(2)
}

type MockTitleTagService struct {
	mock.Mock
}

func (m *MockTitleTagService) DeriveTitleAndTag(ctx context.Context, content string, fallbackTitle string) (string, string) {
	args := m.Called(ctx, content, fallbackTitle)
	return args.String(0), args.String(1)
}

// --- repository mocks ---

type MockQuizRecordRepository struct {
	mock.Mock
}

func (m *MockQuizRecordRepository) Save(ctx context.Context, record *domain.QuizRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockQuizRecordRepository) GetByID(ctx context.Context, id, userID string) (*domain.QuizRecord, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizRecord), args.Error(1)
}

func (m *MockQuizRecordRepository) List(ctx context.Context, userID string, page, limit int) ([]domain.QuizRecord, int, error) {
	args := m.Called(ctx, userID, page, limit)
	var records []domain.QuizRecord
	if args.Get(0) != nil {
		records = args.Get(0).([]domain.QuizRecord)
	}
	return records, args.Int(1), args.Error(2)
}

func (m *MockQuizRecordRepository) Delete(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Add(ctx context.Context, userID, quizRecordID string) error {
	args := m.Called(ctx, userID, quizRecordID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, quizRecordID string) error {
	args := m.Called(ctx, userID, quizRecordID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) List(ctx context.Context, userID string, page, limit int) ([]domain.QuizRecord, int, error) {
	args := m.Called(ctx, userID, page, limit)
	var records []domain.QuizRecord
	if args.Get(0) != nil {
		records = args.Get(0).([]domain.QuizRecord)
	}
	return records, args.Int(1), args.Error(2)
}

func (m *MockFavoriteRepository) IsFavorite(ctx context.Context, userID, quizRecordID string) (bool, error) {
	args := m.Called(ctx, userID, quizRecordID)
	return args.Bool(0), args.Error(1)
}

type MockWrongAnswerRepository struct {
	mock.Mock
}

func (m *MockWrongAnswerRepository) SaveWrongAnswers(ctx context.Context, entries []domain.WrongAnswerEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockWrongAnswerRepository) List(ctx context.Context, userID string, page, limit int) ([]domain.WrongAnswerEntry, int, error) {
	args := m.Called(ctx, userID, page, limit)
	var entries []domain.WrongAnswerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.WrongAnswerEntry)
	}
	return entries, args.Int(1), args.Error(2)
}

func (m *MockWrongAnswerRepository) Delete(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

type MockInquiryRepository struct {
	mock.Mock
}

func (m *MockInquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	args := m.Called(ctx, inquiry)
	return args.Error(0)
}

func (m *MockInquiryRepository) List(ctx context.Context, page, limit int) ([]domain.Inquiry, int, error) {
	args := m.Called(ctx, page, limit)
	var inquiries []domain.Inquiry
	if args.Get(0) != nil {
		inquiries = args.Get(0).([]domain.Inquiry)
	}
	return inquiries, args.Int(1), args.Error(2)
}

// --- cache mock ---

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
