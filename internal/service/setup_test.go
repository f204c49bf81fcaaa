package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Eursukkul/shareit/internal/models"
	"github.com/Eursukkul/shareit/internal/repository"
	"github.com/Eursukkul/shareit/pkg/database"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var baseTime = time.Date(2030, time.March, 1, 12, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(routingKey string, payload any) error {
	args := m.Called(routingKey, payload)
	return args.Error(0)
}

type testEnv struct {
	db       *gorm.DB
	clock    *fakeClock
	pub      *mockPublisher
	users    UserService
	items    ItemService
	requests RequestService
	bookings BookingService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.OpenSQLiteMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	clock := &fakeClock{t: baseTime}
	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()

	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	requestRepo := repository.NewItemRequestRepository(db)

	bs := NewBookingService(bookingRepo, itemRepo, userRepo, pub, nil).(*bookingService)
	bs.now = clock.Now
	is := NewItemService(itemRepo, userRepo, bookingRepo, commentRepo, requestRepo, nil).(*itemService)
	is.now = clock.Now
	rs := NewRequestService(requestRepo, userRepo).(*requestService)
	rs.now = clock.Now

	return &testEnv{
		db:       db,
		clock:    clock,
		pub:      pub,
		users:    NewUserService(userRepo),
		items:    is,
		requests: rs,
		bookings: bs,
	}
}

func (e *testEnv) user(t *testing.T, name string) *models.User {
	t.Helper()
	u, err := e.users.CreateUser(context.Background(), name, name+"@example.com")
	require.NoError(t, err)
	return u
}

func (e *testEnv) item(t *testing.T, owner *models.User, name string, available bool) *models.Item {
	t.Helper()
	it, err := e.items.CreateItem(context.Background(), owner.ID, CreateItemInput{
		Name:        name,
		Description: name + " for rent",
		Available:   available,
	})
	require.NoError(t, err)
	return it
}

// book creates a booking for [now+startIn, now+endIn).
func (e *testEnv) book(t *testing.T, booker *models.User, item *models.Item, startIn, endIn time.Duration) *models.Booking {
	t.Helper()
	now := e.clock.Now()
	b, err := e.bookings.CreateBooking(context.Background(), booker.ID, CreateBookingInput{
		ItemID: item.ID,
		Start:  now.Add(startIn),
		End:    now.Add(endIn),
	})
	require.NoError(t, err)
	return b
}

func (e *testEnv) approve(t *testing.T, owner *models.User, b *models.Booking) *models.Booking {
	t.Helper()
	got, err := e.bookings.Approve(context.Background(), b.ID, owner.ID, true)
	require.NoError(t, err)
	return got
}
