package handler

import (
	"github.com/gofiber/fiber/v2"

	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/middleware"
	"quizforge/internal/service"
)

// LibraryHandler serves quiz history, favorites and the wrong-answer log.
// All routes are behind Protected, so the userID local is always set.
type LibraryHandler struct {
	libraryService service.LibraryService
}

// NewLibraryHandler creates a new LibraryHandler instance.
func NewLibraryHandler(libraryService service.LibraryService) *LibraryHandler {
	return &LibraryHandler{libraryService: libraryService}
}

// GetHistory handles GET /api/quiz-history.
func (h *LibraryHandler) GetHistory(c *fiber.Ctx) error {
	userID := middleware.UserIDFromCtx(c)
	resp, err := h.libraryService.GetHistory(c.Context(), userID, c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetRecord handles GET /api/quiz-history/:id.
func (h *LibraryHandler) GetRecord(c *fiber.Ctx) error {
	userID := middleware.UserIDFromCtx(c)
	record, err := h.libraryService.GetRecord(c.Context(), c.Params("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": record})
}

// DeleteRecord handles DELETE /api/quiz-history/:id.
func (h *LibraryHandler) DeleteRecord(c *fiber.Ctx) error {
	userID := middleware.UserIDFromCtx(c)
	if err := h.libraryService.DeleteRecord(c.Context(), c.Params("id"), userID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "퀴즈 기록이 삭제되었습니다"})
}

// ListFavorites handles GET /api/favorites.
func (h *LibraryHandler) ListFavorites(c *fiber.Ctx) error {
	userID := middleware.UserIDFromCtx(c)
	resp, err := h.libraryService.ListFavorites(c.Context(), userID, c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// AddFavorite handles POST /api/favorites.
func (h *LibraryHandler) AddFavorite(c *fiber.Ctx) error {
	var req dto.FavoriteRequest
	if err := c.BodyParser(&req); err != nil || req.QuizRecordID == "" {
		return domain.NewInvalidInputError("quizRecordId가 필요합니다")
	}

	userID := middleware.UserIDFromCtx(c)
	if err := h.libraryService.AddFavorite(c.Context(), userID, req.QuizRecordID); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "즐겨찾기에 추가되었습니다"})
}

// RemoveFavorite handles DELETE /api/favorites.
func (h *LibraryHandler) RemoveFavorite(c *fiber.Ctx) error {
	var req dto.FavoriteRequest
	if err := c.BodyParser(&req); err != nil || req.QuizRecordID == "" {
		return domain.NewInvalidInputError("quizRecordId가 필요합니다")
	}

	userID := middleware.UserIDFromCtx(c)
	if err := h.libraryService.RemoveFavorite(c.Context(), userID, req.QuizRecordID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "즐겨찾기에서 제거되었습니다"})
}

// ListWrongAnswers handles GET /api/wrong-answers.
func (h *LibraryHandler) ListWrongAnswers(c *fiber.Ctx) error {
	userID := middleware.UserIDFromCtx(c)
	resp, err := h.libraryService.ListWrongAnswers(c.Context(), userID, c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SaveWrongAnswers handles POST /api/wrong-answers.
func (h *LibraryHandler) SaveWrongAnswers(c *fiber.Ctx) error {
	var req dto.WrongAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("요청 본문을 해석할 수 없습니다")
	}

	userID := middleware.UserIDFromCtx(c)
	if err := h.libraryService.SaveWrongAnswers(c.Context(), userID, req); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "오답이 저장되었습니다"})
}
