package handler

import (
	"github.com/gofiber/fiber/v2"

	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/service"
)

// InquiryHandler serves the public inquiry board.
type InquiryHandler struct {
	inquiryService service.InquiryService
}

// NewInquiryHandler creates a new InquiryHandler instance.
func NewInquiryHandler(inquiryService service.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquiryService: inquiryService}
}

// CreateInquiry handles POST /api/inquiries.
func (h *InquiryHandler) CreateInquiry(c *fiber.Ctx) error {
	var req dto.CreateInquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("요청 본문을 해석할 수 없습니다")
	}

	inquiry, err := h.inquiryService.CreateInquiry(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": inquiry})
}

// ListInquiries handles GET /api/inquiries.
func (h *InquiryHandler) ListInquiries(c *fiber.Ctx) error {
	resp, err := h.inquiryService.ListInquiries(c.Context(), c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
