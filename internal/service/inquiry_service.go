package service

import (
	"context"
	"strings"

	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/repository"
)

// InquiryService handles the public inquiry board.
type InquiryService interface {
	CreateInquiry(ctx context.Context, req dto.CreateInquiryRequest) (*domain.Inquiry, error)
	ListInquiries(ctx context.Context, page, limit int) (dto.PaginatedResponse, error)
}

type inquiryServiceImpl struct {
	inquiryRepo repository.InquiryRepository
}

// NewInquiryService creates a new instance of inquiryServiceImpl.
func NewInquiryService(inquiryRepo repository.InquiryRepository) InquiryService {
	return &inquiryServiceImpl{inquiryRepo: inquiryRepo}
}

func (s *inquiryServiceImpl) CreateInquiry(ctx context.Context, req dto.CreateInquiryRequest) (*domain.Inquiry, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, domain.NewInvalidInputError("이름과 이메일을 입력해주세요")
	}
	if !strings.Contains(req.Email, "@") {
		return nil, domain.NewInvalidInputError("올바른 이메일 주소를 입력해주세요")
	}
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Message) == "" {
		return nil, domain.NewInvalidInputError("제목과 내용을 입력해주세요")
	}

	inquiry := &domain.Inquiry{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: req.Message,
	}
	if err := s.inquiryRepo.Create(ctx, inquiry); err != nil {
		return nil, domain.NewPersistenceError("문의를 등록하지 못했습니다", err)
	}
	return inquiry, nil
}

func (s *inquiryServiceImpl) ListInquiries(ctx context.Context, page, limit int) (dto.PaginatedResponse, error) {
	page, limit = normalizePage(page, limit)
	inquiries, total, err := s.inquiryRepo.List(ctx, page, limit)
	if err != nil {
		return dto.PaginatedResponse{}, domain.NewPersistenceError("문의 목록을 불러오지 못했습니다", err)
	}
	return dto.NewPaginatedResponse(inquiries, page, limit, total), nil
}
