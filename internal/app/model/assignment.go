package model

import (
	"time"
)

type AssignmentStatus string // wash job state

const (
	// AssignmentStatusPending is declared for schema compatibility with
	// older data; no code path currently creates an assignment in it.
	AssignmentStatusPending   AssignmentStatus = "Pending"
	AssignmentStatusWashing   AssignmentStatus = "Washing"
	AssignmentStatusCompleted AssignmentStatus = "Completed" // terminal
)

// PointsPerWash is the loyalty award credited once per completed wash.
const PointsPerWash = 1

// Assignment is one wash job performed on a registered car. Status only
// ever moves forward; Completed is immutable.
type Assignment struct {
	ID           uint             `gorm:"primarykey" json:"id"`
	BusinessID   uint             `gorm:"not null;index" json:"business_id"`
	CarPlate     string           `gorm:"not null;index" json:"car_plate"`
	EmployeeName string           `gorm:"not null" json:"employee_name"`
	ServiceType  string           `gorm:"not null" json:"service_type"`
	Status       AssignmentStatus `gorm:"type:varchar(20);default:'Washing'" json:"status"`
	PointsEarned int              `gorm:"not null;default:0" json:"points_earned"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func (Assignment) TableName() string {
	return "assignments"
}
