package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/middleware"
)

type MockLibraryService struct {
	mock.Mock
}

func (m *MockLibraryService) GetHistory(ctx context.Context, userID string, page, limit int) (dto.PaginatedResponse, error) {
	args := m.Called(ctx, userID, page, limit)
	return args.Get(0).(dto.PaginatedResponse), args.Error(1)
}

func (m *MockLibraryService) GetRecord(ctx context.Context, id, userID string) (*dto.QuizRecordResponse, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizRecordResponse), args.Error(1)
}

func (m *MockLibraryService) DeleteRecord(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockLibraryService) AddFavorite(ctx context.Context, userID, quizRecordID string) error {
	return m.Called(ctx, userID, quizRecordID).Error(0)
}

func (m *MockLibraryService) RemoveFavorite(ctx context.Context, userID, quizRecordID string) error {
	return m.Called(ctx, userID, quizRecordID).Error(0)
}

func (m *MockLibraryService) ListFavorites(ctx context.Context, userID string, page, limit int) (dto.PaginatedResponse, error) {
	args := m.Called(ctx, userID, page, limit)
	return args.Get(0).(dto.PaginatedResponse), args.Error(1)
}

func (m *MockLibraryService) SaveWrongAnswers(ctx context.Context, userID string, req dto.WrongAnswersRequest) error {
	return m.Called(ctx, userID, req).Error(0)
}

func (m *MockLibraryService) ListWrongAnswers(ctx context.Context, userID string, page, limit int) (dto.PaginatedResponse, error) {
	args := m.Called(ctx, userID, page, limit)
	return args.Get(0).(dto.PaginatedResponse), args.Error(1)
}

// newLibraryApp wires the handler behind a stand-in auth middleware that
// pins the userID local, the way Protected does after token validation.
func newLibraryApp(svc *MockLibraryService, userID string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	h := NewLibraryHandler(svc)
	app.Get("/api/quiz-history", h.GetHistory)
	app.Get("/api/quiz-history/:id", h.GetRecord)
	app.Delete("/api/quiz-history/:id", h.DeleteRecord)
	app.Get("/api/favorites", h.ListFavorites)
	app.Post("/api/favorites", h.AddFavorite)
	app.Delete("/api/favorites", h.RemoveFavorite)
	app.Get("/api/wrong-answers", h.ListWrongAnswers)
	app.Post("/api/wrong-answers", h.SaveWrongAnswers)
	return app
}

func TestGetHistory_PaginationDefaults(t *testing.T) {
	svc := new(MockLibraryService)
	svc.On("GetHistory", mock.Anything, "user-1", 1, 20).
		Return(dto.PaginatedResponse{Success: true, Page: 1, Limit: 20}, nil)

	app := newLibraryApp(svc, "user-1")
	resp, err := app.Test(httptest.NewRequest("GET", "/api/quiz-history", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestGetHistory_PassesQueryPagination(t *testing.T) {
	svc := new(MockLibraryService)
	svc.On("GetHistory", mock.Anything, "user-1", 3, 5).
		Return(dto.PaginatedResponse{Success: true, Page: 3, Limit: 5}, nil)

	app := newLibraryApp(svc, "user-1")
	resp, err := app.Test(httptest.NewRequest("GET", "/api/quiz-history?page=3&limit=5", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestGetRecord_NotFoundIs404(t *testing.T) {
	svc := new(MockLibraryService)
	svc.On("GetRecord", mock.Anything, "missing", "user-1").
		Return(nil, domain.NewNotFoundError("퀴즈 기록을 찾을 수 없습니다"))

	app := newLibraryApp(svc, "user-1")
	resp, err := app.Test(httptest.NewRequest("GET", "/api/quiz-history/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteRecord(t *testing.T) {
	svc := new(MockLibraryService)
	svc.On("DeleteRecord", mock.Anything, "rec-1", "user-1").Return(nil)

	app := newLibraryApp(svc, "user-1")
	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/quiz-history/rec-1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAddFavorite(t *testing.T) {
	svc := new(MockLibraryService)
	svc.On("AddFavorite", mock.Anything, "user-1", "rec-1").Return(nil)

	app := newLibraryApp(svc, "user-1")
	req := httptest.NewRequest("POST", "/api/favorites", strings.NewReader(`{"quizRecordId":"rec-1"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestAddFavorite_DuplicateIs400(t *testing.T) {
	svc := new(MockLibraryService)
	svc.On("AddFavorite", mock.Anything, "user-1", "rec-1").
		Return(domain.NewAlreadyExistsError("이미 즐겨찾기에 추가된 퀴즈입니다"))

	app := newLibraryApp(svc, "user-1")
	req := httptest.NewRequest("POST", "/api/favorites", strings.NewReader(`{"quizRecordId":"rec-1"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRemoveFavorite(t *testing.T) {
	svc := new(MockLibraryService)
	svc.On("RemoveFavorite", mock.Anything, "user-1", "rec-1").Return(nil)

	app := newLibraryApp(svc, "user-1")
	req := httptest.NewRequest("DELETE", "/api/favorites", strings.NewReader(`{"quizRecordId":"rec-1"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSaveWrongAnswers(t *testing.T) {
	svc := new(MockLibraryService)
	svc.On("SaveWrongAnswers", mock.Anything, "user-1", mock.MatchedBy(func(req dto.WrongAnswersRequest) bool {
		return req.QuizTitle == "수도 퀴즈" && len(req.WrongItems) == 1
	})).Return(nil)

	app := newLibraryApp(svc, "user-1")
	body, _ := json.Marshal(dto.WrongAnswersRequest{
		QuizTitle: "수도 퀴즈",
		WrongItems: []dto.WrongAnswerItem{
			{QuestionText: "대한민국의 수도는?", UserAnswer: "부산", CorrectAnswer: "서울"},
		},
	})
	req := httptest.NewRequest("POST", "/api/wrong-answers", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestListWrongAnswers(t *testing.T) {
	svc := new(MockLibraryService)
	svc.On("ListWrongAnswers", mock.Anything, "user-1", 1, 20).
		Return(dto.PaginatedResponse{Success: true}, nil)

	app := newLibraryApp(svc, "user-1")
	resp, err := app.Test(httptest.NewRequest("GET", "/api/wrong-answers", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
