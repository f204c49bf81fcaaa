package service

import (
	"context"
	"strings"
	"time"

	"github.com/Eursukkul/shareit/internal/logging"
	"github.com/Eursukkul/shareit/internal/models"
	"github.com/Eursukkul/shareit/internal/repository"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type CreateItemInput struct {
	Name        string
	Description string
	Available   bool
	RequestID   *uint
}

// UpdateItemInput carries a partial update; nil and blank fields are kept.
type UpdateItemInput struct {
	Name        *string
	Description *string
	Available   *bool
}

// ItemView is an item with its comments and, for the owner only, the
// nearest approved bookings around now.
type ItemView struct {
	Item        models.Item
	LastBooking *models.Booking
	NextBooking *models.Booking
	Comments    []models.Comment
}

type ItemService interface {
	CreateItem(ctx context.Context, ownerID uint, in CreateItemInput) (*models.Item, error)
	UpdateItem(ctx context.Context, itemID, userID uint, in UpdateItemInput) (*models.Item, error)
	GetItem(ctx context.Context, itemID, userID uint) (*ItemView, error)
	ListByOwner(ctx context.Context, ownerID uint, page repository.Page) ([]ItemView, error)
	Search(ctx context.Context, text string, page repository.Page) ([]models.Item, error)
	DeleteItem(ctx context.Context, itemID, userID uint) error
	CreateComment(ctx context.Context, itemID, userID uint, text string) (*models.Comment, error)
}

type itemService struct {
	itemRepo    repository.ItemRepository
	userRepo    repository.UserRepository
	bookingRepo repository.BookingRepository
	commentRepo repository.CommentRepository
	requestRepo repository.ItemRequestRepository
	log         *zerolog.Logger
	now         func() time.Time
}

func NewItemService(
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	bookingRepo repository.BookingRepository,
	commentRepo repository.CommentRepository,
	requestRepo repository.ItemRequestRepository,
	log *zerolog.Logger,
) ItemService {
	if log == nil {
		log = logging.Nop()
	}
	return &itemService{
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
		commentRepo: commentRepo,
		requestRepo: requestRepo,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *itemService) CreateItem(ctx context.Context, ownerID uint, in CreateItemInput) (*models.Item, error) {
	if _, err := loadUser(ctx, s.userRepo, ownerID); err != nil {
		return nil, err
	}
	if in.RequestID != nil {
		if _, err := loadRequest(ctx, s.requestRepo, *in.RequestID); err != nil {
			return nil, err
		}
	}

	item := &models.Item{
		Name:        in.Name,
		Description: in.Description,
		Available:   in.Available,
		OwnerID:     ownerID,
		RequestID:   in.RequestID,
	}
	err := s.itemRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.itemRepo.Create(ctx, tx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) UpdateItem(ctx context.Context, itemID, userID uint, in UpdateItemInput) (*models.Item, error) {
	if _, err := loadUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}
	item, err := loadItem(ctx, s.itemRepo, itemID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(item, userID); err != nil {
		return nil, err
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		item.Name = *in.Name
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) != "" {
		item.Description = *in.Description
	}
	if in.Available != nil {
		item.Available = *in.Available
	}

	err = s.itemRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.itemRepo.Update(ctx, tx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) GetItem(ctx context.Context, itemID, userID uint) (*ItemView, error) {
	if _, err := loadUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}
	item, err := loadItem(ctx, s.itemRepo, itemID)
	if err != nil {
		return nil, err
	}

	views, err := s.enrich(ctx, []models.Item{*item}, item.OwnerID == userID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *itemService) ListByOwner(ctx context.Context, ownerID uint, page repository.Page) ([]ItemView, error) {
	if _, err := loadUser(ctx, s.userRepo, ownerID); err != nil {
		return nil, err
	}
	items, err := s.itemRepo.FindByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, items, true)
}

func (s *itemService) Search(ctx context.Context, text string, page repository.Page) ([]models.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []models.Item{}, nil
	}
	return s.itemRepo.Search(ctx, text, page)
}

func (s *itemService) DeleteItem(ctx context.Context, itemID, userID uint) error {
	if _, err := loadUser(ctx, s.userRepo, userID); err != nil {
		return err
	}
	item, err := loadItem(ctx, s.itemRepo, itemID)
	if err != nil {
		return err
	}
	if err := requireOwner(item, userID); err != nil {
		return err
	}
	return s.itemRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.itemRepo.Delete(ctx, tx, item.ID)
	})
}

func (s *itemService) CreateComment(ctx context.Context, itemID, userID uint, text string) (*models.Comment, error) {
	author, err := loadUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if _, err := loadItem(ctx, s.itemRepo, itemID); err != nil {
		return nil, err
	}

	now := s.now()
	ok, err := s.bookingRepo.HasCompletedBooking(ctx, itemID, userID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCommentNotAllowed
	}

	comment := &models.Comment{
		Text:     text,
		ItemID:   itemID,
		AuthorID: author.ID,
		Created:  now,
	}
	err = s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.commentRepo.Create(ctx, tx, comment)
	})
	if err != nil {
		return nil, err
	}
	comment.Author = author

	s.log.Info().Uint("item_id", itemID).Uint("author_id", userID).Msg("comment created")
	return comment, nil
}

// enrich attaches comments to every item and, when withBookings is set,
// the last and next approved bookings.
func (s *itemService) enrich(ctx context.Context, items []models.Item, withBookings bool) ([]ItemView, error) {
	views := make([]ItemView, len(items))
	if len(items) == 0 {
		return views, nil
	}

	ids := make([]uint, len(items))
	index := make(map[uint]int, len(items))
	for i, it := range items {
		ids[i] = it.ID
		index[it.ID] = i
		views[i] = ItemView{Item: it, Comments: []models.Comment{}}
	}

	comments, err := s.commentRepo.FindByItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		v := &views[index[c.ItemID]]
		v.Comments = append(v.Comments, c)
	}

	if !withBookings {
		return views, nil
	}

	bookings, err := s.bookingRepo.FindApprovedByItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	now := s.now()
	// bookings are ordered by start ascending
	for i := range bookings {
		b := bookings[i]
		v := &views[index[b.ItemID]]
		if !b.StartAt.After(now) {
			v.LastBooking = &b
		} else if v.NextBooking == nil {
			v.NextBooking = &b
		}
	}
	return views, nil
}
