package repository

import (
	"github.com/jalvarez/washpoint-backend/internal/app/model"
	"github.com/jalvarez/washpoint-backend/pkg/logger"
	"gorm.io/gorm"
)

type CarRepository interface {
	Create(car *model.Car) error
	FindByPlate(businessID uint, plate string) (*model.Car, error)
	FindByBusiness(businessID uint) ([]model.Car, error)
	CreditPoints(businessID uint, plate string, points int) (int64, error)
	FindLoyaltyDrift() ([]LoyaltyDrift, error)
}

type carRepository struct {
	db *gorm.DB
}

func NewCarRepository(db *gorm.DB) CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) Create(car *model.Car) error {
	logger.Debug("Creating car in database", map[string]interface{}{
		"business_id": car.BusinessID,
		"plate":       car.Plate,
	})

	if err := r.db.Create(car).Error; err != nil {
		logger.Error("Failed to create car in database", err, map[string]interface{}{
			"business_id": car.BusinessID,
			"plate":       car.Plate,
		})
		return err
	}

	logger.Debug("Car created in database", map[string]interface{}{
		"car_id":      car.ID,
		"business_id": car.BusinessID,
		"plate":       car.Plate,
	})
	return nil
}

func (r *carRepository) FindByPlate(businessID uint, plate string) (*model.Car, error) {
	var car model.Car
	if err := r.db.Where("business_id = ? AND plate = ?", businessID, plate).
		First(&car).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *carRepository) FindByBusiness(businessID uint) ([]model.Car, error) {
	var cars []model.Car
	if err := r.db.Where("business_id = ?", businessID).
		Order("created_at DESC").
		Find(&cars).Error; err != nil {
		logger.Error("Failed to find cars by business in database", err, map[string]interface{}{
			"business_id": businessID,
		})
		return nil, err
	}
	return cars, nil
}

// CreditPoints atomically increments the car's loyalty balance. The increment
// happens inside the database so concurrent completions never lose an update.
// Returns the number of rows touched; zero means the car vanished.
func (r *carRepository) CreditPoints(businessID uint, plate string, points int) (int64, error) {
	result := r.db.Model(&model.Car{}).
		Where("business_id = ? AND plate = ?", businessID, plate).
		Update("loyalty_points", gorm.Expr("loyalty_points + ?", points))
	if result.Error != nil {
		logger.Error("Failed to credit loyalty points in database", result.Error, map[string]interface{}{
			"business_id": businessID,
			"plate":       plate,
			"points":      points,
		})
		return 0, result.Error
	}

	logger.Debug("Loyalty points credited in database", map[string]interface{}{
		"business_id":   businessID,
		"plate":         plate,
		"points":        points,
		"rows_affected": result.RowsAffected,
	})
	return result.RowsAffected, nil
}

// LoyaltyDrift is a car whose stored balance disagrees with the sum of its
// completed washes.
type LoyaltyDrift struct {
	BusinessID    uint   `json:"business_id"`
	Plate         string `json:"plate"`
	LoyaltyPoints int    `json:"loyalty_points"`
	EarnedTotal   int    `json:"earned_total"`
}

func (r *carRepository) FindLoyaltyDrift() ([]LoyaltyDrift, error) {
	var drift []LoyaltyDrift
	err := r.db.Raw(`
		SELECT c.business_id, c.plate, c.loyalty_points,
		       COALESCE(SUM(a.points_earned), 0) AS earned_total
		FROM cars c
		LEFT JOIN assignments a
		  ON a.business_id = c.business_id
		 AND a.car_plate = c.plate
		 AND a.status = ?
		GROUP BY c.business_id, c.plate, c.loyalty_points
		HAVING c.loyalty_points <> COALESCE(SUM(a.points_earned), 0)`,
		model.AssignmentStatusCompleted).Scan(&drift).Error
	if err != nil {
		logger.Error("Failed to compute loyalty drift in database", err, nil)
		return nil, err
	}
	return drift, nil
}
