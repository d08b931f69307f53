package model

import (
	"time"
)

// Business is a tenant: an isolated car-wash account owning its own
// users, cars and assignments.
type Business struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Users []User `gorm:"foreignKey:BusinessID" json:"users,omitempty"`
}

func (Business) TableName() string {
	return "businesses"
}
