package events

import (
	"time"

	"github.com/Eursukkul/shareit/internal/models"
)

// Routing keys on the booking topic exchange.
const (
	BookingCreated  = "booking.created"
	BookingApproved = "booking.approved"
	BookingRejected = "booking.rejected"

	// BookingPattern binds a queue to every booking event.
	BookingPattern = "booking.*"
)

// BookingEvent is the message body published after a booking change commits.
type BookingEvent struct {
	BookingID  uint                 `json:"booking_id"`
	ItemID     uint                 `json:"item_id"`
	ItemName   string               `json:"item_name"`
	BookerID   uint                 `json:"booker_id"`
	OwnerID    uint                 `json:"owner_id"`
	ActorID    uint                 `json:"actor_id"`
	Status     models.BookingStatus `json:"status"`
	Start      time.Time            `json:"start"`
	End        time.Time            `json:"end"`
	OccurredAt time.Time            `json:"occurred_at"`
}

// NewBookingEvent snapshots b, whose Item must be loaded.
func NewBookingEvent(b *models.Booking, actorID uint, at time.Time) BookingEvent {
	ev := BookingEvent{
		BookingID:  b.ID,
		ItemID:     b.ItemID,
		BookerID:   b.BookerID,
		ActorID:    actorID,
		Status:     b.Status,
		Start:      b.StartAt,
		End:        b.EndAt,
		OccurredAt: at,
	}
	if b.Item != nil {
		ev.ItemName = b.Item.Name
		ev.OwnerID = b.Item.OwnerID
	}
	return ev
}

// RoutingKeyFor returns the key announcing that a booking reached status.
func RoutingKeyFor(status models.BookingStatus) string {
	switch status {
	case models.StatusApproved:
		return BookingApproved
	case models.StatusRejected:
		return BookingRejected
	default:
		return BookingCreated
	}
}
