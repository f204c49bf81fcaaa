package models

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
	// StatusCanceled is part of the stored enumeration; no operation sets it.
	StatusCanceled BookingStatus = "CANCELED"
)

type Booking struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	StartAt   time.Time     `gorm:"not null;index" json:"start"`
	EndAt     time.Time     `gorm:"not null;index" json:"end"`
	ItemID    uint          `gorm:"not null;index" json:"item_id"`
	BookerID  uint          `gorm:"not null;index" json:"booker_id"`
	Status    BookingStatus `gorm:"type:varchar(20);not null;default:'WAITING'" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	Item   *Item `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"item,omitempty"`
	Booker *User `gorm:"foreignKey:BookerID;constraint:OnDelete:CASCADE" json:"booker,omitempty"`
}

// BookingState selects bookings for the list endpoints, either by time
// window relative to now or by status.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

// ParseBookingState maps a query value onto a known state. An empty value
// means ALL; ok is false for anything unrecognised.
func ParseBookingState(s string) (BookingState, bool) {
	if strings.TrimSpace(s) == "" {
		return StateAll, true
	}
	switch st := BookingState(strings.ToUpper(strings.TrimSpace(s))); st {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return st, true
	}
	return BookingState(s), false
}
