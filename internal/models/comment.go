package models

import "time"

type Comment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Text     string    `gorm:"type:varchar(1000);not null" json:"text"`
	ItemID   uint      `gorm:"not null;index" json:"item_id"`
	AuthorID uint      `gorm:"not null;index" json:"author_id"`
	Created  time.Time `gorm:"not null" json:"created"`

	Item   *Item `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"item,omitempty"`
	Author *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
}
