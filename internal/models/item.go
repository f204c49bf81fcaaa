package models

import "time"

type Item struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:varchar(1000);not null" json:"description"`
	Available   bool      `gorm:"not null" json:"available"`
	OwnerID     uint      `gorm:"not null;index" json:"owner_id"`
	RequestID   *uint     `gorm:"index" json:"request_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Owner   *User        `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
	Request *ItemRequest `gorm:"foreignKey:RequestID;constraint:OnDelete:SET NULL" json:"request,omitempty"`
}
