package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditEventType string

const (
	AuditBookingCreated  AuditEventType = "booking.created"
	AuditBookingApproved AuditEventType = "booking.approved"
	AuditBookingRejected AuditEventType = "booking.rejected"
)

// AuditEvent is one booking lifecycle message as received by the auditor.
type AuditEvent struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	EventType  AuditEventType `gorm:"type:varchar(64);not null;index" json:"event_type"`
	BookingID  uint           `gorm:"not null;index" json:"booking_id"`
	ItemID     uint           `gorm:"not null" json:"item_id"`
	ActorID    uint           `gorm:"not null" json:"actor_id"`
	Payload    datatypes.JSON `json:"payload"`
	ReceivedAt time.Time      `gorm:"not null;index" json:"received_at"`
}
