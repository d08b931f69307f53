package model

import (
	"time"
)

// Car is a registered vehicle. The identity key is (business_id, plate);
// plates are normalized to uppercase before any lookup or insert, so the
// composite unique index is the real registration guard.
type Car struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	BusinessID    uint      `gorm:"not null;uniqueIndex:idx_cars_business_plate" json:"business_id"`
	Plate         string    `gorm:"not null;uniqueIndex:idx_cars_business_plate" json:"plate"`
	CarType       string    `json:"car_type"`
	OwnerName     string    `json:"owner_name"`
	OwnerPhone    string    `json:"owner_phone"`
	LoyaltyPoints int       `gorm:"not null;default:0" json:"loyalty_points"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Car) TableName() string {
	return "cars"
}
