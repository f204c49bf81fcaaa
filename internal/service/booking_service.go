package service

import (
	"context"
	"time"

	"github.com/Eursukkul/shareit/internal/events"
	"github.com/Eursukkul/shareit/internal/logging"
	"github.com/Eursukkul/shareit/internal/metrics"
	"github.com/Eursukkul/shareit/internal/models"
	"github.com/Eursukkul/shareit/internal/repository"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type CreateBookingInput struct {
	ItemID uint
	Start  time.Time
	End    time.Time
}

type BookingService interface {
	CreateBooking(ctx context.Context, userID uint, in CreateBookingInput) (*models.Booking, error)
	Approve(ctx context.Context, bookingID, userID uint, approved bool) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID, userID uint) (*models.Booking, error)
	ListForBooker(ctx context.Context, userID uint, state string, page repository.Page) ([]models.Booking, error)
	ListForOwner(ctx context.Context, userID uint, state string, page repository.Page) ([]models.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	itemRepo    repository.ItemRepository
	userRepo    repository.UserRepository
	publisher   EventPublisher
	log         *zerolog.Logger
	now         func() time.Time
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	publisher EventPublisher,
	log *zerolog.Logger,
) BookingService {
	if log == nil {
		log = logging.Nop()
	}
	return &bookingService{
		bookingRepo: bookingRepo,
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID uint, in CreateBookingInput) (*models.Booking, error) {
	// 1. Acting user
	booker, err := loadUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	// 2. Item
	item, err := loadItem(ctx, s.itemRepo, in.ItemID)
	if err != nil {
		return nil, err
	}

	// 3. Availability
	if !item.Available {
		return nil, ErrItemUnavailable
	}

	// 4. Owners cannot book their own items; reported as not found
	if item.OwnerID == booker.ID {
		return nil, ErrOwnerBooking
	}

	// 5. Window, also validated at the HTTP boundary
	start, end := in.Start.UTC(), in.End.UTC()
	if !end.After(start) || !start.After(s.now()) {
		return nil, ErrInvalidBookingRange
	}

	booking := &models.Booking{
		StartAt:  start,
		EndAt:    end,
		ItemID:   item.ID,
		BookerID: booker.ID,
		Status:   models.StatusWaiting,
	}
	err = s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.bookingRepo.Create(ctx, tx, booking)
	})
	if err != nil {
		return nil, err
	}
	booking.Item = item
	booking.Booker = booker

	s.afterTransition(booking, userID)
	return booking, nil
}

func (s *bookingService) Approve(ctx context.Context, bookingID, userID uint, approved bool) (*models.Booking, error) {
	booking, err := loadBooking(ctx, s.bookingRepo, bookingID)
	if err != nil {
		return nil, err
	}
	if _, err := loadUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}
	if booking.Item == nil || booking.Item.OwnerID != userID {
		return nil, ErrNotItemOwner
	}
	if booking.Status != models.StatusWaiting {
		return nil, ErrBookingNotWaiting
	}

	status := models.StatusRejected
	if approved {
		status = models.StatusApproved
	}

	err = s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The status check above may be stale; the conditional update decides.
		ok, err := s.bookingRepo.UpdateStatusIfWaiting(ctx, tx, booking.ID, status)
		if err != nil {
			return err
		}
		if !ok {
			return ErrBookingNotWaiting
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	booking.Status = status

	s.afterTransition(booking, userID)
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID, userID uint) (*models.Booking, error) {
	booking, err := loadBooking(ctx, s.bookingRepo, bookingID)
	if err != nil {
		return nil, err
	}
	if _, err := loadUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}
	if booking.BookerID != userID && (booking.Item == nil || booking.Item.OwnerID != userID) {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (s *bookingService) ListForBooker(ctx context.Context, userID uint, state string, page repository.Page) ([]models.Booking, error) {
	st, err := s.prepareList(ctx, userID, state)
	if err != nil {
		return nil, err
	}
	return s.bookingRepo.FindByBooker(ctx, userID, st, s.now(), page)
}

func (s *bookingService) ListForOwner(ctx context.Context, userID uint, state string, page repository.Page) ([]models.Booking, error) {
	st, err := s.prepareList(ctx, userID, state)
	if err != nil {
		return nil, err
	}
	return s.bookingRepo.FindByOwner(ctx, userID, st, s.now(), page)
}

func (s *bookingService) prepareList(ctx context.Context, userID uint, state string) (models.BookingState, error) {
	if _, err := loadUser(ctx, s.userRepo, userID); err != nil {
		return "", err
	}
	st, ok := models.ParseBookingState(state)
	if !ok {
		return "", unknownStateError(state)
	}
	return st, nil
}

func (s *bookingService) afterTransition(b *models.Booking, actorID uint) {
	metrics.IncBooking(string(b.Status))
	s.log.Info().
		Uint("booking_id", b.ID).
		Uint("item_id", b.ItemID).
		Uint("actor_id", actorID).
		Str("status", string(b.Status)).
		Msg("booking status changed")
	publish(s.publisher, s.log, events.RoutingKeyFor(b.Status), events.NewBookingEvent(b, actorID, s.now()))
}
