package service

import (
	"errors"

	"github.com/jalvarez/washpoint-backend/internal/app/model"
	"github.com/jalvarez/washpoint-backend/internal/app/repository"
	"github.com/jalvarez/washpoint-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrAssignmentForbidden = errors.New("assignment belongs to another business")
	ErrAssignmentCompleted = errors.New("assignment already completed")
	ErrPointsCreditFailed  = errors.New("assignment completed but loyalty credit failed")
)

// BoardNotifier pushes assignment events to live dashboards. Notifications
// are best effort and never fail the operation.
type BoardNotifier interface {
	AssignmentCreated(businessID uint, assignment *model.Assignment)
	AssignmentCompleted(businessID uint, assignment *model.Assignment, car *model.Car)
}

type AssignmentService interface {
	Create(businessID uint, plate, employeeName, serviceType string) (*model.Assignment, error)
	ListOpen(businessID uint) ([]model.Assignment, error)
	Complete(businessID, assignmentID uint) (*model.Car, error)
}

type assignmentService struct {
	assignmentRepo repository.AssignmentRepository
	carRepo        repository.CarRepository
	notifier       BoardNotifier
}

func NewAssignmentService(
	assignmentRepo repository.AssignmentRepository,
	carRepo repository.CarRepository,
	notifier BoardNotifier,
) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		carRepo:        carRepo,
		notifier:       notifier,
	}
}

// Create opens a wash assignment for a registered car. New assignments go
// straight to Washing.
func (s *assignmentService) Create(businessID uint, plate, employeeName, serviceType string) (*model.Assignment, error) {
	plate = NormalizePlate(plate)

	if _, err := s.carRepo.FindByPlate(businessID, plate); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Assignment creation failed: car not registered", map[string]interface{}{
				"business_id": businessID,
				"plate":       plate,
			})
			return nil, ErrCarNotFound
		}
		return nil, err
	}

	assignment := &model.Assignment{
		BusinessID:   businessID,
		CarPlate:     plate,
		EmployeeName: employeeName,
		ServiceType:  serviceType,
		Status:       model.AssignmentStatusWashing,
	}
	if err := s.assignmentRepo.Create(assignment); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.AssignmentCreated(businessID, assignment)
	}

	logger.Info("Assignment created", map[string]interface{}{
		"assignment_id": assignment.ID,
		"business_id":   businessID,
		"plate":         plate,
	})
	return assignment, nil
}

func (s *assignmentService) ListOpen(businessID uint) ([]model.Assignment, error) {
	return s.assignmentRepo.FindOpenByBusiness(businessID)
}

// Complete finishes a wash and credits the car's loyalty balance.
//
// The status transition and the credit are two separate atomic updates, in
// that order. The guarded status update decides the winner when completions
// race; the loser sees zero rows and reports not found. If the credit then
// touches zero rows the assignment stays Completed and the caller gets
// ErrPointsCreditFailed, which the nightly audit will also surface as drift.
func (s *assignmentService) Complete(businessID, assignmentID uint) (*model.Car, error) {
	assignment, err := s.assignmentRepo.FindByID(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	if assignment.BusinessID != businessID {
		logger.Warn("Completion rejected: assignment belongs to another business", map[string]interface{}{
			"assignment_id": assignmentID,
			"business_id":   businessID,
			"owner_id":      assignment.BusinessID,
		})
		return nil, ErrAssignmentForbidden
	}

	if assignment.Status == model.AssignmentStatusCompleted {
		return nil, ErrAssignmentCompleted
	}

	rows, err := s.assignmentRepo.MarkCompleted(assignmentID, businessID, model.PointsPerWash)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Lost the race: someone else completed it between our read and
		// the update.
		logger.Warn("Completion raced and lost", map[string]interface{}{
			"assignment_id": assignmentID,
			"business_id":   businessID,
		})
		return nil, ErrAssignmentNotFound
	}

	rows, err = s.carRepo.CreditPoints(businessID, assignment.CarPlate, model.PointsPerWash)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		logger.Error("Assignment completed but car missing for credit", ErrPointsCreditFailed, map[string]interface{}{
			"assignment_id": assignmentID,
			"business_id":   businessID,
			"plate":         assignment.CarPlate,
		})
		return nil, ErrPointsCreditFailed
	}

	car, err := s.carRepo.FindByPlate(businessID, assignment.CarPlate)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		assignment.Status = model.AssignmentStatusCompleted
		assignment.PointsEarned = model.PointsPerWash
		s.notifier.AssignmentCompleted(businessID, assignment, car)
	}

	logger.Info("Assignment completed", map[string]interface{}{
		"assignment_id":  assignmentID,
		"business_id":    businessID,
		"plate":          assignment.CarPlate,
		"loyalty_points": car.LoyaltyPoints,
	})
	return car, nil
}
