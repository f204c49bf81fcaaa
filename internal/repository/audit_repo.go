package repository

import (
	"context"

	"github.com/Eursukkul/shareit/internal/models"
	"gorm.io/gorm"
)

type AuditRepository interface {
	Create(ctx context.Context, event *models.AuditEvent) error
	FindByBooking(ctx context.Context, bookingID uint) ([]models.AuditEvent, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, event *models.AuditEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// FindByBooking returns a booking's trail in the order it was received.
func (r *auditRepository) FindByBooking(ctx context.Context, bookingID uint) ([]models.AuditEvent, error) {
	var trail []models.AuditEvent
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("received_at ASC, id ASC").
		Find(&trail).Error
	if err != nil {
		return nil, err
	}
	return trail, nil
}
