package repository

import (
	"context"

	"github.com/Eursukkul/shareit/internal/models"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, comment *models.Comment) error
	FindByItems(ctx context.Context, itemIDs []uint) ([]models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, tx *gorm.DB, comment *models.Comment) error {
	return tx.WithContext(ctx).Create(comment).Error
}

// FindByItems returns comments on the given items, oldest first, with their
// authors loaded.
func (r *commentRepository) FindByItems(ctx context.Context, itemIDs []uint) ([]models.Comment, error) {
	var comments []models.Comment
	if len(itemIDs) == 0 {
		return comments, nil
	}
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("item_id IN ?", itemIDs).
		Order("created ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
