package repository

import (
	"github.com/jalvarez/washpoint-backend/internal/app/model"
	"github.com/jalvarez/washpoint-backend/pkg/logger"
	"gorm.io/gorm"
)

type AssignmentRepository interface {
	Create(assignment *model.Assignment) error
	FindByID(id uint) (*model.Assignment, error)
	FindOpenByBusiness(businessID uint) ([]model.Assignment, error)
	FindCompletedByPlate(businessID uint, plate string) ([]model.Assignment, error)
	FindCompletedByBusiness(businessID uint) ([]model.Assignment, error)
	FindStaleWashing(businessID uint) ([]model.Assignment, error)
	MarkCompleted(id, businessID uint, points int) (int64, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(assignment *model.Assignment) error {
	logger.Debug("Creating assignment in database", map[string]interface{}{
		"business_id":   assignment.BusinessID,
		"car_plate":     assignment.CarPlate,
		"employee_name": assignment.EmployeeName,
	})

	if err := r.db.Create(assignment).Error; err != nil {
		logger.Error("Failed to create assignment in database", err, map[string]interface{}{
			"business_id": assignment.BusinessID,
			"car_plate":   assignment.CarPlate,
		})
		return err
	}

	logger.Debug("Assignment created in database", map[string]interface{}{
		"assignment_id": assignment.ID,
		"business_id":   assignment.BusinessID,
		"car_plate":     assignment.CarPlate,
		"status":        assignment.Status,
	})
	return nil
}

func (r *assignmentRepository) FindByID(id uint) (*model.Assignment, error) {
	var assignment model.Assignment
	if err := r.db.First(&assignment, id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) FindOpenByBusiness(businessID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	if err := r.db.Where("business_id = ? AND status <> ?", businessID, model.AssignmentStatusCompleted).
		Order("created_at DESC").
		Find(&assignments).Error; err != nil {
		logger.Error("Failed to find open assignments in database", err, map[string]interface{}{
			"business_id": businessID,
		})
		return nil, err
	}
	return assignments, nil
}

// FindCompletedByPlate returns the car's completed washes ordered by when
// the wash was opened, newest first. The id tiebreak keeps the order stable
// when timestamps collide.
func (r *assignmentRepository) FindCompletedByPlate(businessID uint, plate string) ([]model.Assignment, error) {
	var assignments []model.Assignment
	if err := r.db.Where("business_id = ? AND car_plate = ? AND status = ?",
		businessID, plate, model.AssignmentStatusCompleted).
		Order("created_at DESC, id DESC").
		Find(&assignments).Error; err != nil {
		logger.Error("Failed to find completed assignments in database", err, map[string]interface{}{
			"business_id": businessID,
			"car_plate":   plate,
		})
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) FindCompletedByBusiness(businessID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	if err := r.db.Where("business_id = ? AND status = ?", businessID, model.AssignmentStatusCompleted).
		Order("created_at DESC, id DESC").
		Find(&assignments).Error; err != nil {
		logger.Error("Failed to find completed assignments for business in database", err, map[string]interface{}{
			"business_id": businessID,
		})
		return nil, err
	}
	return assignments, nil
}

// FindStaleWashing returns assignments that have sat in Washing for more than
// a day, for the nightly audit.
func (r *assignmentRepository) FindStaleWashing(businessID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	query := r.db.Where("status = ? AND created_at < NOW() - INTERVAL '24 hours'",
		model.AssignmentStatusWashing)
	if r.db.Dialector.Name() == "sqlite" {
		query = r.db.Where("status = ? AND created_at < datetime('now', '-24 hours')",
			model.AssignmentStatusWashing)
	}
	if businessID != 0 {
		query = query.Where("business_id = ?", businessID)
	}
	if err := query.Order("created_at ASC").Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// MarkCompleted performs the guarded status transition. The status predicate
// makes the update idempotent under races: of two concurrent completions only
// one matches a row, and the loser sees zero rows affected.
func (r *assignmentRepository) MarkCompleted(id, businessID uint, points int) (int64, error) {
	result := r.db.Model(&model.Assignment{}).
		Where("id = ? AND business_id = ? AND status <> ?", id, businessID, model.AssignmentStatusCompleted).
		Updates(map[string]interface{}{
			"status":        model.AssignmentStatusCompleted,
			"points_earned": points,
		})
	if result.Error != nil {
		logger.Error("Failed to mark assignment completed in database", result.Error, map[string]interface{}{
			"assignment_id": id,
			"business_id":   businessID,
		})
		return 0, result.Error
	}

	logger.Debug("Assignment completion update applied", map[string]interface{}{
		"assignment_id": id,
		"business_id":   businessID,
		"rows_affected": result.RowsAffected,
	})
	return result.RowsAffected, nil
}
