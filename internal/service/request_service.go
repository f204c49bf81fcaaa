package service

import (
	"context"
	"time"

	"github.com/Eursukkul/shareit/internal/models"
	"github.com/Eursukkul/shareit/internal/repository"
	"gorm.io/gorm"
)

type RequestService interface {
	CreateRequest(ctx context.Context, userID uint, description string) (*models.ItemRequest, error)
	ListOwn(ctx context.Context, userID uint) ([]models.ItemRequest, error)
	ListOthers(ctx context.Context, userID uint, page repository.Page) ([]models.ItemRequest, error)
	GetRequest(ctx context.Context, requestID, userID uint) (*models.ItemRequest, error)
}

type requestService struct {
	requestRepo repository.ItemRequestRepository
	userRepo    repository.UserRepository
	now         func() time.Time
}

func NewRequestService(requestRepo repository.ItemRequestRepository, userRepo repository.UserRepository) RequestService {
	return &requestService{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *requestService) CreateRequest(ctx context.Context, userID uint, description string) (*models.ItemRequest, error) {
	if _, err := loadUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}

	request := &models.ItemRequest{
		Description: description,
		RequestorID: userID,
		Created:     s.now(),
	}
	err := s.requestRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.requestRepo.Create(ctx, tx, request)
	})
	if err != nil {
		return nil, err
	}
	request.Items = []models.Item{}
	return request, nil
}

func (s *requestService) ListOwn(ctx context.Context, userID uint) ([]models.ItemRequest, error) {
	if _, err := loadUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}
	return s.requestRepo.FindByRequestor(ctx, userID)
}

func (s *requestService) ListOthers(ctx context.Context, userID uint, page repository.Page) ([]models.ItemRequest, error) {
	if _, err := loadUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}
	return s.requestRepo.FindOthers(ctx, userID, page)
}

func (s *requestService) GetRequest(ctx context.Context, requestID, userID uint) (*models.ItemRequest, error) {
	if _, err := loadUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}
	return loadRequest(ctx, s.requestRepo, requestID)
}
