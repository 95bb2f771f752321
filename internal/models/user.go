package models

import "time"

// User represents an account on the network.
type User struct {
	ID           uint    `gorm:"primaryKey"`
	Username     string  `gorm:"size:30;unique;not null"`
	DisplayName  string  `gorm:"size:255;not null"`
	Email        string  `gorm:"size:255;unique;not null"`
	PasswordHash string  `gorm:"size:255;not null"`
	Avatar       *string `gorm:"size:512"`
	Bio          *string `gorm:"size:512"`
	Banner       *string `gorm:"size:512"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
