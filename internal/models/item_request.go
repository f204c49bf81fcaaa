package models

import "time"

type ItemRequest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Description string    `gorm:"type:varchar(1000);not null" json:"description"`
	RequestorID uint      `gorm:"not null;index" json:"requestor_id"`
	Created     time.Time `gorm:"not null;index" json:"created"`

	Requestor *User `gorm:"foreignKey:RequestorID;constraint:OnDelete:CASCADE" json:"requestor,omitempty"`
	// Items are the listings created in answer to this request.
	Items []Item `gorm:"foreignKey:RequestID" json:"items,omitempty"`
}
