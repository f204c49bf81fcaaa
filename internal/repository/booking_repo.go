package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Eursukkul/shareit/internal/models"
	"gorm.io/gorm"
)

// Page is an offset/limit window over an ordered result. A zero Limit
// returns every row from Offset on.
type Page struct {
	Offset int
	Limit  int
}

func (p Page) scope(db *gorm.DB) *gorm.DB {
	db = db.Offset(p.Offset)
	if p.Limit > 0 {
		db = db.Limit(p.Limit)
	}
	return db
}

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindByBooker(ctx context.Context, bookerID uint, state models.BookingState, now time.Time, page Page) ([]models.Booking, error)
	FindByOwner(ctx context.Context, ownerID uint, state models.BookingState, now time.Time, page Page) ([]models.Booking, error)
	FindApprovedByItems(ctx context.Context, itemIDs []uint) ([]models.Booking, error)
	UpdateStatusIfWaiting(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) (bool, error)
	HasCompletedBooking(ctx context.Context, itemID, bookerID uint, now time.Time) (bool, error)
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Booker").
		First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByBooker(ctx context.Context, bookerID uint, state models.BookingState, now time.Time, page Page) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Booker").
		Where("bookings.booker_id = ?", bookerID).
		Scopes(stateScope(state, now), page.scope).
		Order("bookings.start_at DESC, bookings.id DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByOwner(ctx context.Context, ownerID uint, state models.BookingState, now time.Time, page Page) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Booker").
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID).
		Scopes(stateScope(state, now), page.scope).
		Order("bookings.start_at DESC, bookings.id DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindApprovedByItems returns approved bookings of the given items ordered
// by start, used to derive last/next booking hints.
func (r *bookingRepository) FindApprovedByItems(ctx context.Context, itemIDs []uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if len(itemIDs) == 0 {
		return bookings, nil
	}
	err := r.db.WithContext(ctx).
		Where("item_id IN ? AND status = ?", itemIDs, models.StatusApproved).
		Order("start_at ASC, id ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateStatusIfWaiting moves a WAITING booking to status. It reports false
// when the booking was no longer WAITING, so concurrent decisions cannot both
// take effect.
func (r *bookingRepository) UpdateStatusIfWaiting(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) (bool, error) {
	result := tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", bookingID, models.StatusWaiting).
		Update("status", status)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *bookingRepository) HasCompletedBooking(ctx context.Context, itemID, bookerID uint, now time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("item_id = ? AND booker_id = ? AND status = ? AND end_at < ?", itemID, bookerID, models.StatusApproved, now).
		Count(&count).Error
	return count > 0, err
}

// stateScope translates a booking state into its filter. Callers validate
// the state first; an unknown value fails the query.
func stateScope(state models.BookingState, now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch state {
		case models.StateAll:
			return db
		case models.StateCurrent:
			return db.Where("bookings.start_at <= ? AND bookings.end_at > ?", now, now)
		case models.StatePast:
			return db.Where("bookings.end_at < ?", now)
		case models.StateFuture:
			return db.Where("bookings.start_at > ?", now)
		case models.StateWaiting:
			return db.Where("bookings.status = ?", models.StatusWaiting)
		case models.StateRejected:
			return db.Where("bookings.status = ?", models.StatusRejected)
		default:
			_ = db.AddError(fmt.Errorf("unknown booking state %q", state))
			return db
		}
	}
}
