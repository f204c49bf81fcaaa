package models

import "gorm.io/gorm"

// AutoMigrate creates or updates every ShareIt table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&ItemRequest{},
		&Item{},
		&Booking{},
		&Comment{},
		&AuditEvent{},
	)
}
