package service

import (
	"context"

	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/repository"
)

// LibraryService covers the signed-in user's saved material: quiz history,
// favorites and the wrong-answer log.
type LibraryService interface {
	GetHistory(ctx context.Context, userID string, page, limit int) (dto.PaginatedResponse, error)
	GetRecord(ctx context.Context, id, userID string) (*dto.QuizRecordResponse, error)
	DeleteRecord(ctx context.Context, id, userID string) error

	AddFavorite(ctx context.Context, userID, quizRecordID string) error
	RemoveFavorite(ctx context.Context, userID, quizRecordID string) error
	ListFavorites(ctx context.Context, userID string, page, limit int) (dto.PaginatedResponse, error)

	SaveWrongAnswers(ctx context.Context, userID string, req dto.WrongAnswersRequest) error
	ListWrongAnswers(ctx context.Context, userID string, page, limit int) (dto.PaginatedResponse, error)
}

type libraryServiceImpl struct {
	recordRepo      repository.QuizRecordRepository
	favoriteRepo    repository.FavoriteRepository
	wrongAnswerRepo repository.WrongAnswerRepository
}

// NewLibraryService creates a new instance of libraryServiceImpl.
func NewLibraryService(
	recordRepo repository.QuizRecordRepository,
	favoriteRepo repository.FavoriteRepository,
	wrongAnswerRepo repository.WrongAnswerRepository,
) LibraryService {
	return &libraryServiceImpl{
		recordRepo:      recordRepo,
		favoriteRepo:    favoriteRepo,
		wrongAnswerRepo: wrongAnswerRepo,
	}
}

func (s *libraryServiceImpl) GetHistory(ctx context.Context, userID string, page, limit int) (dto.PaginatedResponse, error) {
	page, limit = normalizePage(page, limit)
	records, total, err := s.recordRepo.List(ctx, userID, page, limit)
	if err != nil {
		return dto.PaginatedResponse{}, domain.NewPersistenceError("퀴즈 기록을 불러오지 못했습니다", err)
	}

	items := make([]dto.QuizRecordResponse, 0, len(records))
	for i := range records {
		item := dto.ToQuizRecordResponse(&records[i])
		item.OriginalContent = "" // listings stay light
		items = append(items, item)
	}
	return dto.NewPaginatedResponse(items, page, limit, total), nil
}

func (s *libraryServiceImpl) GetRecord(ctx context.Context, id, userID string) (*dto.QuizRecordResponse, error) {
	record, err := s.recordRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, domain.NewPersistenceError("퀴즈 기록을 불러오지 못했습니다", err)
	}
	if record == nil {
		return nil, domain.NewNotFoundError("퀴즈 기록을 찾을 수 없습니다")
	}
	resp := dto.ToQuizRecordResponse(record)
	return &resp, nil
}

func (s *libraryServiceImpl) DeleteRecord(ctx context.Context, id, userID string) error {
	return s.recordRepo.Delete(ctx, id, userID)
}

// AddFavorite verifies ownership of the record before favoriting it.
func (s *libraryServiceImpl) AddFavorite(ctx context.Context, userID, quizRecordID string) error {
	record, err := s.recordRepo.GetByID(ctx, quizRecordID, userID)
	if err != nil {
		return domain.NewPersistenceError("즐겨찾기를 추가하지 못했습니다", err)
	}
	if record == nil {
		return domain.NewNotFoundError("퀴즈 기록을 찾을 수 없습니다")
	}
	return s.favoriteRepo.Add(ctx, userID, quizRecordID)
}

func (s *libraryServiceImpl) RemoveFavorite(ctx context.Context, userID, quizRecordID string) error {
	return s.favoriteRepo.Remove(ctx, userID, quizRecordID)
}

func (s *libraryServiceImpl) ListFavorites(ctx context.Context, userID string, page, limit int) (dto.PaginatedResponse, error) {
	page, limit = normalizePage(page, limit)
	records, total, err := s.favoriteRepo.List(ctx, userID, page, limit)
	if err != nil {
		return dto.PaginatedResponse{}, domain.NewPersistenceError("즐겨찾기를 불러오지 못했습니다", err)
	}

	items := make([]dto.QuizRecordResponse, 0, len(records))
	for i := range records {
		item := dto.ToQuizRecordResponse(&records[i])
		item.OriginalContent = ""
		items = append(items, item)
	}
	return dto.NewPaginatedResponse(items, page, limit, total), nil
}

func (s *libraryServiceImpl) SaveWrongAnswers(ctx context.Context, userID string, req dto.WrongAnswersRequest) error {
	if len(req.WrongItems) == 0 {
		return domain.NewInvalidInputError("저장할 오답이 없습니다")
	}

	entries := make([]domain.WrongAnswerEntry, 0, len(req.WrongItems))
	for _, item := range req.WrongItems {
		entries = append(entries, domain.WrongAnswerEntry{
			UserID:        userID,
			QuizID:        req.QuizID,
			QuizTitle:     req.QuizTitle,
			QuestionIndex: item.QuestionIndex,
			QuestionText:  item.QuestionText,
			UserAnswer:    item.UserAnswer,
			CorrectAnswer: item.CorrectAnswer,
			Explanation:   item.Explanation,
		})
	}
	if err := s.wrongAnswerRepo.SaveWrongAnswers(ctx, entries); err != nil {
		return domain.NewPersistenceError("오답을 저장하지 못했습니다", err)
	}
	return nil
}

func (s *libraryServiceImpl) ListWrongAnswers(ctx context.Context, userID string, page, limit int) (dto.PaginatedResponse, error) {
	page, limit = normalizePage(page, limit)
	entries, total, err := s.wrongAnswerRepo.List(ctx, userID, page, limit)
	if err != nil {
		return dto.PaginatedResponse{}, domain.NewPersistenceError("오답 기록을 불러오지 못했습니다", err)
	}
	return dto.NewPaginatedResponse(entries, page, limit, total), nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
