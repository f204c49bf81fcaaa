package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Eursukkul/shareit/internal/models"
	"github.com/Eursukkul/shareit/internal/repository"
	"gorm.io/gorm"
)

func loadUser(ctx context.Context, repo repository.UserRepository, id uint) (*models.User, error) {
	user, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user %d: %w", id, err)
	}
	return user, nil
}

func loadItem(ctx context.Context, repo repository.ItemRepository, id uint) (*models.Item, error) {
	item, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("load item %d: %w", id, err)
	}
	return item, nil
}

func loadBooking(ctx context.Context, repo repository.BookingRepository, id uint) (*models.Booking, error) {
	booking, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("load booking %d: %w", id, err)
	}
	return booking, nil
}

func loadRequest(ctx context.Context, repo repository.ItemRequestRepository, id uint) (*models.ItemRequest, error) {
	request, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("load item request %d: %w", id, err)
	}
	return request, nil
}

// requireOwner guards mutations of an item by anyone but its owner.
func requireOwner(item *models.Item, userID uint) error {
	if item.OwnerID != userID {
		return ErrNotOwner
	}
	return nil
}

func translateDuplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	return err
}
