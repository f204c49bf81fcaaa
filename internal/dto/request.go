package dto

import "time"

type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,notblank"`
	Email string `json:"email" validate:"required,email"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type CreateItemRequest struct {
	Name        string `json:"name" validate:"required,notblank"`
	Description string `json:"description" validate:"required,notblank"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *uint  `json:"requestId"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,notblank"`
}

// CreateBookingRequest rejects windows that start in the past or where end
// does not come strictly after start.
type CreateBookingRequest struct {
	ItemID uint      `json:"itemId" validate:"required"`
	Start  time.Time `json:"start" validate:"required,gt"`
	End    time.Time `json:"end" validate:"required,gt,gtfield=Start"`
}

type CreateItemRequestRequest struct {
	Description string `json:"description" validate:"required,notblank"`
}
