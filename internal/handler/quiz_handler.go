// Package handler exposes the HTTP surface over fiber.
package handler

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/logger"
	"quizforge/internal/middleware"
	"quizforge/internal/service"
)

// QuizHandler handles the three quiz-generation routes.
type QuizHandler struct {
	quizService service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance.
func NewQuizHandler(quizService service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// GenerateQuiz handles POST /api/generate-quiz.
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("요청 본문을 해석할 수 없습니다")
	}

	userID := middleware.UserIDFromCtx(c)
	resp, err := h.quizService.GenerateFromText(c.Context(), userID, req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// AnalyzeURL handles POST /api/analyze-url.
func (h *QuizHandler) AnalyzeURL(c *fiber.Ctx) error {
	var req dto.AnalyzeURLRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("요청 본문을 해석할 수 없습니다")
	}
	if strings.TrimSpace(req.URL) == "" {
		return domain.NewInvalidInputError("URL을 입력해주세요")
	}

	userID := middleware.UserIDFromCtx(c)
	resp, err := h.quizService.GenerateFromURL(c.Context(), userID, req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// UploadDocument handles POST /api/upload-document (multipart). Besides the
// file, the form may carry saveToDatabase ("true"/"false") and quizOptions
// (JSON-encoded).
func (h *QuizHandler) UploadDocument(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return domain.NewInvalidInputError("업로드할 파일을 선택해주세요")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return domain.NewInvalidInputError("파일을 열 수 없습니다")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return domain.NewInternalError("파일을 읽지 못했습니다", err)
	}

	var opts *domain.QuizGenerationOptions
	if raw := c.FormValue("quizOptions"); raw != "" {
		opts = &domain.QuizGenerationOptions{}
		if err := json.Unmarshal([]byte(raw), opts); err != nil {
			logger.Get().Warn("ignoring malformed quizOptions form field", zap.Error(err))
			opts = nil
		}
	}
	saveToDatabase := c.FormValue("saveToDatabase") == "true"

	userID := middleware.UserIDFromCtx(c)
	resp, err := h.quizService.GenerateFromFile(
		c.Context(), userID,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data,
		opts, saveToDatabase,
	)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
