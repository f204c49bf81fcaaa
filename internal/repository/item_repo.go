package repository

import (
	"context"
	"strings"

	"github.com/Eursukkul/shareit/internal/models"
	"gorm.io/gorm"
)

type ItemRepository interface {
	Create(ctx context.Context, tx *gorm.DB, item *models.Item) error
	FindByID(ctx context.Context, id uint) (*models.Item, error)
	FindByOwner(ctx context.Context, ownerID uint, page Page) ([]models.Item, error)
	Search(ctx context.Context, text string, page Page) ([]models.Item, error)
	Update(ctx context.Context, tx *gorm.DB, item *models.Item) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	GetDB() *gorm.DB
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *itemRepository) Create(ctx context.Context, tx *gorm.DB, item *models.Item) error {
	return tx.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) FindByID(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) FindByOwner(ctx context.Context, ownerID uint, page Page) ([]models.Item, error) {
	var items []models.Item
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Scopes(page.scope).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Search matches text case-insensitively against name or description of
// available items. Postgres folds any script through ILIKE; sqlite's LOWER
// only folds ASCII, so non-Latin text there matches case-sensitively.
func (r *itemRepository) Search(ctx context.Context, text string, page Page) ([]models.Item, error) {
	query := r.db.WithContext(ctx).Where("available = ?", true)
	if r.db.Dialector.Name() == "postgres" {
		pattern := "%" + escapeLike(text) + "%"
		query = query.Where("(name ILIKE ? ESCAPE '\\' OR description ILIKE ? ESCAPE '\\')", pattern, pattern)
	} else {
		pattern := "%" + escapeLike(strings.ToLower(text)) + "%"
		query = query.Where("(LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\')", pattern, pattern)
	}

	var items []models.Item
	err := query.
		Scopes(page.scope).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) Update(ctx context.Context, tx *gorm.DB, item *models.Item) error {
	return tx.WithContext(ctx).
		Model(item).
		Select("name", "description", "available", "updated_at").
		Updates(item).Error
}

func (r *itemRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).Delete(&models.Item{}, id).Error
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
