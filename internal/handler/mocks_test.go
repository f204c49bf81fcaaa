package handler

import (
	"context"

	"github.com/Eursukkul/shareit/internal/models"
	"github.com/Eursukkul/shareit/internal/repository"
	"github.com/Eursukkul/shareit/internal/service"
)

// --- Mock BookingService ---

type mockBookingService struct {
	createFn        func(ctx context.Context, userID uint, in service.CreateBookingInput) (*models.Booking, error)
	approveFn       func(ctx context.Context, bookingID, userID uint, approved bool) (*models.Booking, error)
	getFn           func(ctx context.Context, bookingID, userID uint) (*models.Booking, error)
	listForBookerFn func(ctx context.Context, userID uint, state string, page repository.Page) ([]models.Booking, error)
	listForOwnerFn  func(ctx context.Context, userID uint, state string, page repository.Page) ([]models.Booking, error)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, userID uint, in service.CreateBookingInput) (*models.Booking, error) {
	return m.createFn(ctx, userID, in)
}
func (m *mockBookingService) Approve(ctx context.Context, bookingID, userID uint, approved bool) (*models.Booking, error) {
	return m.approveFn(ctx, bookingID, userID, approved)
}
func (m *mockBookingService) GetBooking(ctx context.Context, bookingID, userID uint) (*models.Booking, error) {
	return m.getFn(ctx, bookingID, userID)
}
func (m *mockBookingService) ListForBooker(ctx context.Context, userID uint, state string, page repository.Page) ([]models.Booking, error) {
	return m.listForBookerFn(ctx, userID, state, page)
}
func (m *mockBookingService) ListForOwner(ctx context.Context, userID uint, state string, page repository.Page) ([]models.Booking, error) {
	return m.listForOwnerFn(ctx, userID, state, page)
}

// --- Mock ItemService ---

type mockItemService struct {
	createFn      func(ctx context.Context, ownerID uint, in service.CreateItemInput) (*models.Item, error)
	updateFn      func(ctx context.Context, itemID, userID uint, in service.UpdateItemInput) (*models.Item, error)
	getFn         func(ctx context.Context, itemID, userID uint) (*service.ItemView, error)
	listFn        func(ctx context.Context, ownerID uint, page repository.Page) ([]service.ItemView, error)
	searchFn      func(ctx context.Context, text string, page repository.Page) ([]models.Item, error)
	deleteFn      func(ctx context.Context, itemID, userID uint) error
	createComment func(ctx context.Context, itemID, userID uint, text string) (*models.Comment, error)
}

func (m *mockItemService) CreateItem(ctx context.Context, ownerID uint, in service.CreateItemInput) (*models.Item, error) {
	return m.createFn(ctx, ownerID, in)
}
func (m *mockItemService) UpdateItem(ctx context.Context, itemID, userID uint, in service.UpdateItemInput) (*models.Item, error) {
	return m.updateFn(ctx, itemID, userID, in)
}
func (m *mockItemService) GetItem(ctx context.Context, itemID, userID uint) (*service.ItemView, error) {
	return m.getFn(ctx, itemID, userID)
}
func (m *mockItemService) ListByOwner(ctx context.Context, ownerID uint, page repository.Page) ([]service.ItemView, error) {
	return m.listFn(ctx, ownerID, page)
}
func (m *mockItemService) Search(ctx context.Context, text string, page repository.Page) ([]models.Item, error) {
	return m.searchFn(ctx, text, page)
}
func (m *mockItemService) DeleteItem(ctx context.Context, itemID, userID uint) error {
	return m.deleteFn(ctx, itemID, userID)
}
func (m *mockItemService) CreateComment(ctx context.Context, itemID, userID uint, text string) (*models.Comment, error) {
	return m.createComment(ctx, itemID, userID, text)
}

// --- Mock UserService ---

type mockUserService struct {
	createFn func(ctx context.Context, name, email string) (*models.User, error)
	getFn    func(ctx context.Context, id uint) (*models.User, error)
	listFn   func(ctx context.Context) ([]models.User, error)
	updateFn func(ctx context.Context, id uint, in service.UpdateUserInput) (*models.User, error)
	deleteFn func(ctx context.Context, id uint) error
}

func (m *mockUserService) CreateUser(ctx context.Context, name, email string) (*models.User, error) {
	return m.createFn(ctx, name, email)
}
func (m *mockUserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return m.getFn(ctx, id)
}
func (m *mockUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return m.listFn(ctx)
}
func (m *mockUserService) UpdateUser(ctx context.Context, id uint, in service.UpdateUserInput) (*models.User, error) {
	return m.updateFn(ctx, id, in)
}
func (m *mockUserService) DeleteUser(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}

// --- Mock RequestService ---

type mockRequestService struct {
	createFn     func(ctx context.Context, userID uint, description string) (*models.ItemRequest, error)
	listOwnFn    func(ctx context.Context, userID uint) ([]models.ItemRequest, error)
	listOthersFn func(ctx context.Context, userID uint, page repository.Page) ([]models.ItemRequest, error)
	getFn        func(ctx context.Context, requestID, userID uint) (*models.ItemRequest, error)
}

func (m *mockRequestService) CreateRequest(ctx context.Context, userID uint, description string) (*models.ItemRequest, error) {
	return m.createFn(ctx, userID, description)
}
func (m *mockRequestService) ListOwn(ctx context.Context, userID uint) ([]models.ItemRequest, error) {
	return m.listOwnFn(ctx, userID)
}
func (m *mockRequestService) ListOthers(ctx context.Context, userID uint, page repository.Page) ([]models.ItemRequest, error) {
	return m.listOthersFn(ctx, userID, page)
}
func (m *mockRequestService) GetRequest(ctx context.Context, requestID, userID uint) (*models.ItemRequest, error) {
	return m.getFn(ctx, requestID, userID)
}
