package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Eursukkul/shareit/internal/models"
	"github.com/Eursukkul/shareit/internal/repository"
	"gorm.io/gorm"
)

// UpdateUserInput carries a partial update; nil and blank fields are kept.
type UpdateUserInput struct {
	Name  *string
	Email *string
}

type UserService interface {
	CreateUser(ctx context.Context, name, email string) (*models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id uint, in UpdateUserInput) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(ctx context.Context, name, email string) (*models.User, error) {
	user := &models.User{Name: name, Email: email}
	err := s.userRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.userRepo.Create(ctx, tx, user)
	})
	if err != nil {
		return nil, translateDuplicate(err)
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return loadUser(ctx, s.userRepo, id)
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.FindAll(ctx)
}

func (s *userService) UpdateUser(ctx context.Context, id uint, in UpdateUserInput) (*models.User, error) {
	user, err := loadUser(ctx, s.userRepo, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		user.Name = *in.Name
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		user.Email = *in.Email
	}

	err = s.userRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.userRepo.Update(ctx, tx, user)
	})
	if err != nil {
		return nil, translateDuplicate(err)
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	var deleted bool
	err := s.userRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		deleted, err = s.userRepo.Delete(ctx, tx, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	if !deleted {
		return ErrUserNotFound
	}
	return nil
}
