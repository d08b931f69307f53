package model

import (
	"time"
)

// User is an admin credential for one business; it exists only to mint
// access tokens.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	BusinessID   uint      `gorm:"not null;index" json:"business_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Business Business `gorm:"foreignKey:BusinessID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
