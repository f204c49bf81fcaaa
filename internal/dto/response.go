package dto

import (
	"time"

	"github.com/Eursukkul/shareit/internal/models"
	"github.com/Eursukkul/shareit/internal/service"
)

type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ItemResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *uint  `json:"requestId,omitempty"`
}

// BookingShort is the booking hint shown to an item's owner.
type BookingShort struct {
	ID       uint `json:"id"`
	BookerID uint `json:"bookerId"`
}

type CommentResponse struct {
	ID         uint      `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type ItemDetailResponse struct {
	ItemResponse
	LastBooking *BookingShort     `json:"lastBooking"`
	NextBooking *BookingShort     `json:"nextBooking"`
	Comments    []CommentResponse `json:"comments"`
}

type BookingResponse struct {
	ID     uint                 `json:"id"`
	Start  time.Time            `json:"start"`
	End    time.Time            `json:"end"`
	Status models.BookingStatus `json:"status"`
	Booker UserResponse         `json:"booker"`
	Item   ItemResponse         `json:"item"`
}

type RequestItemResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	OwnerID uint   `json:"ownerId"`
}

type ItemRequestResponse struct {
	ID          uint                  `json:"id"`
	Description string                `json:"description"`
	Created     time.Time             `json:"created"`
	Items       []RequestItemResponse `json:"items"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

func ToItemResponse(it *models.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
	}
}

func ToCommentResponse(c *models.Comment) CommentResponse {
	resp := CommentResponse{ID: c.ID, Text: c.Text, Created: c.Created}
	if c.Author != nil {
		resp.AuthorName = c.Author.Name
	}
	return resp
}

func ToItemDetailResponse(v *service.ItemView) ItemDetailResponse {
	resp := ItemDetailResponse{
		ItemResponse: ToItemResponse(&v.Item),
		LastBooking:  toBookingShort(v.LastBooking),
		NextBooking:  toBookingShort(v.NextBooking),
		Comments:     make([]CommentResponse, len(v.Comments)),
	}
	for i := range v.Comments {
		resp.Comments[i] = ToCommentResponse(&v.Comments[i])
	}
	return resp
}

func toBookingShort(b *models.Booking) *BookingShort {
	if b == nil {
		return nil
	}
	return &BookingShort{ID: b.ID, BookerID: b.BookerID}
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{
		ID:     b.ID,
		Start:  b.StartAt,
		End:    b.EndAt,
		Status: b.Status,
		Booker: UserResponse{ID: b.BookerID},
		Item:   ItemResponse{ID: b.ItemID},
	}
	if b.Booker != nil {
		resp.Booker = ToUserResponse(b.Booker)
	}
	if b.Item != nil {
		resp.Item = ToItemResponse(b.Item)
	}
	return resp
}

func ToBookingResponses(bookings []models.Booking) []BookingResponse {
	resp := make([]BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = ToBookingResponse(&bookings[i])
	}
	return resp
}

func ToItemRequestResponse(r *models.ItemRequest) ItemRequestResponse {
	resp := ItemRequestResponse{
		ID:          r.ID,
		Description: r.Description,
		Created:     r.Created,
		Items:       make([]RequestItemResponse, len(r.Items)),
	}
	for i, it := range r.Items {
		resp.Items[i] = RequestItemResponse{ID: it.ID, Name: it.Name, OwnerID: it.OwnerID}
	}
	return resp
}

func ToItemRequestResponses(requests []models.ItemRequest) []ItemRequestResponse {
	resp := make([]ItemRequestResponse, len(requests))
	for i := range requests {
		resp[i] = ToItemRequestResponse(&requests[i])
	}
	return resp
}
