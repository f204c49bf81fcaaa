package repository

import (
	"context"

	"github.com/Eursukkul/shareit/internal/models"
	"gorm.io/gorm"
)

type ItemRequestRepository interface {
	Create(ctx context.Context, tx *gorm.DB, request *models.ItemRequest) error
	FindByID(ctx context.Context, id uint) (*models.ItemRequest, error)
	FindByRequestor(ctx context.Context, requestorID uint) ([]models.ItemRequest, error)
	FindOthers(ctx context.Context, userID uint, page Page) ([]models.ItemRequest, error)
	GetDB() *gorm.DB
}

type itemRequestRepository struct {
	db *gorm.DB
}

func NewItemRequestRepository(db *gorm.DB) ItemRequestRepository {
	return &itemRequestRepository{db: db}
}

func (r *itemRequestRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *itemRequestRepository) Create(ctx context.Context, tx *gorm.DB, request *models.ItemRequest) error {
	return tx.WithContext(ctx).Create(request).Error
}

func (r *itemRequestRepository) FindByID(ctx context.Context, id uint) (*models.ItemRequest, error) {
	var request models.ItemRequest
	if err := r.db.WithContext(ctx).Preload("Items", orderItems).First(&request, id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *itemRequestRepository) FindByRequestor(ctx context.Context, requestorID uint) ([]models.ItemRequest, error) {
	var requests []models.ItemRequest
	err := r.db.WithContext(ctx).
		Preload("Items", orderItems).
		Where("requestor_id = ?", requestorID).
		Order("created DESC, id DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *itemRequestRepository) FindOthers(ctx context.Context, userID uint, page Page) ([]models.ItemRequest, error) {
	var requests []models.ItemRequest
	err := r.db.WithContext(ctx).
		Preload("Items", orderItems).
		Where("requestor_id <> ?", userID).
		Scopes(page.scope).
		Order("created DESC, id DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("items.id ASC")
}
