// Package service orchestrates extraction, validation, generation and
// persistence behind the HTTP handlers.
package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"quizforge/internal/cache"
	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/logger"
	"quizforge/internal/repository"
	"quizforge/internal/validation"
)

// QuizService turns pasted text, web pages and uploaded documents into
// generated quizzes, optionally persisting the result for the caller.
type QuizService interface {
	GenerateFromText(ctx context.Context, userID string, req dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)
	GenerateFromURL(ctx context.Context, userID string, req dto.AnalyzeURLRequest) (*dto.GenerateQuizResponse, error)
	GenerateFromFile(ctx context.Context, userID, filename, mimeType string, data []byte, opts *domain.QuizGenerationOptions, saveToDatabase bool) (*dto.GenerateQuizResponse, error)
}

type quizServiceImpl struct {
	validator     *validation.ContentValidator
	urlExtractor  domain.URLExtractor
	fileExtractor domain.FileExtractor
	generator     domain.QuizGenerationService
	titleTag      domain.TitleTagService
	recordRepo    repository.QuizRecordRepository

	cache    domain.Cache
	cacheTTL time.Duration
	group    singleflight.Group
}

// NewQuizService creates a new instance of quizServiceImpl. recordRepo may
// be nil when persistence is disabled; saves are then silently skipped.
func NewQuizService(
	validator *validation.ContentValidator,
	urlExtractor domain.URLExtractor,
	fileExtractor domain.FileExtractor,
	generator domain.QuizGenerationService,
	titleTag domain.TitleTagService,
	recordRepo repository.QuizRecordRepository,
	cacheClient domain.Cache,
	cacheTTL time.Duration,
) QuizService {
	return &quizServiceImpl{
		validator:     validator,
		urlExtractor:  urlExtractor,
		fileExtractor: fileExtractor,
		generator:     generator,
		titleTag:      titleTag,
		recordRepo:    recordRepo,
		cache:         cacheClient,
		cacheTTL:      cacheTTL,
	}
}

// GenerateFromText handles pasted content.
func (s *quizServiceImpl) GenerateFromText(ctx context.Context, userID string, req dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, domain.NewInvalidInputError("내용을 입력해주세요")
	}
	content := domain.NewPastedContent(req.Content)
	if err := s.validator.Validate(content, domain.ContextPaste); err != nil {
		return nil, err
	}

	quiz, prompt, err := s.generator.GenerateQuiz(ctx, content.Text, req.QuizOptions)
	if err != nil {
		return nil, err
	}

	title, tag := req.Title, ""
	if title == "" {
		title, tag = s.titleTag.DeriveTitleAndTag(ctx, content.Text, "")
	}

	resp := &dto.GenerateQuizResponse{
		Success:        true,
		Data:           quiz,
		GeneratedTitle: title,
		GeneratedTag:   tag,
		SourceInfo: &dto.SourceInfo{
			Type:   "paste",
			Length: content.Length,
		},
	}
	if req.SaveToDatabase {
		resp.SavedRecord = s.saveRecord(ctx, userID, title, tag, content, quiz, prompt, "", "")
	}
	return resp, nil
}

// GenerateFromURL extracts the page (through the Redis cache, deduplicating
// concurrent identical URLs), validates it as document content and generates
// a quiz from it.
func (s *quizServiceImpl) GenerateFromURL(ctx context.Context, userID string, req dto.AnalyzeURLRequest) (*dto.GenerateQuizResponse, error) {
	content, err := s.extractURL(ctx, req.URL)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(content, domain.ContextDocument); err != nil {
		return nil, err
	}

	quiz, prompt, err := s.generator.GenerateQuiz(ctx, content.Text, req.QuizOptions)
	if err != nil {
		return nil, err
	}

	title, tag := content.Title, ""
	if req.AutoGenerateTitle {
		title, tag = s.titleTag.DeriveTitleAndTag(ctx, content.Text, content.Title)
	}

	resp := &dto.GenerateQuizResponse{
		Success:        true,
		Data:           quiz,
		GeneratedTitle: title,
		GeneratedTag:   tag,
		SourceInfo: &dto.SourceInfo{
			Type:     "url",
			URL:      req.URL,
			Title:    content.Title,
			SiteName: content.SiteName,
			Excerpt:  content.Excerpt,
			Length:   content.Length,
		},
	}
	if req.SaveToDatabase {
		resp.SavedRecord = s.saveRecord(ctx, userID, title, tag, content, quiz, prompt, req.URL, "")
	}
	return resp, nil
}

// GenerateFromFile handles uploaded documents.
func (s *quizServiceImpl) GenerateFromFile(ctx context.Context, userID, filename, mimeType string, data []byte, opts *domain.QuizGenerationOptions, saveToDatabase bool) (*dto.GenerateQuizResponse, error) {
	content, err := s.fileExtractor.ExtractFromFile(filename, mimeType, data)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(content, domain.ContextDocument); err != nil {
		return nil, err
	}

	quiz, prompt, err := s.generator.GenerateQuiz(ctx, content.Text, opts)
	if err != nil {
		return nil, err
	}

	title, tag := s.titleTag.DeriveTitleAndTag(ctx, content.Text, content.Title)

	resp := &dto.GenerateQuizResponse{
		Success:        true,
		Data:           quiz,
		GeneratedTitle: title,
		GeneratedTag:   tag,
		SourceInfo: &dto.SourceInfo{
			Type:      "document",
			FileName:  filename,
			Title:     content.Title,
			Length:    content.Length,
			PageCount: content.PageCount,
		},
	}
	if saveToDatabase {
		resp.SavedRecord = s.saveRecord(ctx, userID, title, tag, content, quiz, prompt, "", filename)
	}
	return resp, nil
}

// extractURL serves extraction results from Redis when possible. Concurrent
// requests for the same URL share one extraction via singleflight. Cache
// failures degrade to a direct fetch.
func (s *quizServiceImpl) extractURL(ctx context.Context, rawURL string) (*domain.SourceContent, error) {
	appLogger := logger.Get()
	key := cache.URLKey(rawURL)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			var content domain.SourceContent
			if err := json.Unmarshal([]byte(cached), &content); err == nil {
				return &content, nil
			}
			appLogger.Warn("corrupt extraction cache entry, refetching", zap.String("key", key))
		} else if err != domain.ErrCacheMiss {
			appLogger.Warn("extraction cache read failed", zap.Error(err))
		}
	}

	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		content, err := s.urlExtractor.ExtractFromURL(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if payload, err := json.Marshal(content); err == nil {
				if err := s.cache.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
					appLogger.Warn("extraction cache write failed", zap.Error(err))
				}
			}
		}
		return content, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.SourceContent), nil
}

// saveRecord persists the generation result when the caller is
// authenticated. A persistence failure is logged and reported as a missing
// SavedRecord; the generated quiz is still returned to the caller.
func (s *quizServiceImpl) saveRecord(ctx context.Context, userID, title, tag string, content *domain.SourceContent, quiz *domain.GeneratedQuiz, prompt, sourceURL, sourceFile string) *dto.SavedRecordInfo {
	appLogger := logger.Get()
	if userID == "" || s.recordRepo == nil {
		return nil
	}

	quizJSON, err := json.Marshal(quiz)
	if err != nil {
		appLogger.Error("failed to marshal generated quiz for save", zap.Error(err))
		return nil
	}
	metadataJSON, err := json.Marshal(content)
	if err != nil {
		appLogger.Error("failed to marshal content metadata for save", zap.Error(err))
		metadataJSON = nil
	}

	record := &domain.QuizRecord{
		UserID:          userID,
		Title:           title,
		Tag:             tag,
		OriginalContent: content.Text,
		PromptUsed:      prompt,
		GeneratedQuiz:   quizJSON,
		SourceURL:       sourceURL,
		SourceFile:      sourceFile,
		ContentMetadata: metadataJSON,
	}
	if err := s.recordRepo.Save(ctx, record); err != nil {
		appLogger.Error("failed to save quiz record", zap.String("userID", userID), zap.Error(err))
		return nil
	}
	return &dto.SavedRecordInfo{ID: record.ID, CreatedAt: record.CreatedAt}
}
