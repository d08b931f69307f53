package service

import (
	"errors"
	"strings"

	"github.com/jalvarez/washpoint-backend/internal/app/model"
	"github.com/jalvarez/washpoint-backend/internal/app/repository"
	"github.com/jalvarez/washpoint-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrCarNotFound = errors.New("car not found")

type CarService interface {
	Register(businessID uint, plate, carType, ownerName, ownerPhone string) (*model.Car, error)
	Get(businessID uint, plate string) (*model.Car, error)
	List(businessID uint) ([]model.Car, error)
	History(businessID uint, plate string) ([]model.Assignment, error)
}

type carService struct {
	carRepo        repository.CarRepository
	assignmentRepo repository.AssignmentRepository
}

func NewCarService(carRepo repository.CarRepository, assignmentRepo repository.AssignmentRepository) CarService {
	return &carService{
		carRepo:        carRepo,
		assignmentRepo: assignmentRepo,
	}
}

// NormalizePlate canonicalizes a license plate. Plates are stored and matched
// uppercase so lookups are case-insensitive.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

// Register creates the car if the plate is new for this business, and
// otherwise returns the existing record untouched.
func (s *carService) Register(businessID uint, plate, carType, ownerName, ownerPhone string) (*model.Car, error) {
	plate = NormalizePlate(plate)

	existing, err := s.carRepo.FindByPlate(businessID, plate)
	if err == nil {
		logger.Info("Car already registered, returning existing record", map[string]interface{}{
			"business_id": businessID,
			"plate":       plate,
			"car_id":      existing.ID,
		})
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	car := &model.Car{
		BusinessID: businessID,
		Plate:      plate,
		CarType:    carType,
		OwnerName:  ownerName,
		OwnerPhone: ownerPhone,
	}
	if err := s.carRepo.Create(car); err != nil {
		return nil, err
	}

	logger.Info("Car registered", map[string]interface{}{
		"business_id": businessID,
		"plate":       plate,
		"car_id":      car.ID,
	})
	return car, nil
}

func (s *carService) Get(businessID uint, plate string) (*model.Car, error) {
	car, err := s.carRepo.FindByPlate(businessID, NormalizePlate(plate))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}
	return car, nil
}

func (s *carService) List(businessID uint) ([]model.Car, error) {
	return s.carRepo.FindByBusiness(businessID)
}

// History returns the car's completed washes, most recent first.
func (s *carService) History(businessID uint, plate string) ([]model.Assignment, error) {
	plate = NormalizePlate(plate)

	if _, err := s.carRepo.FindByPlate(businessID, plate); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}

	return s.assignmentRepo.FindCompletedByPlate(businessID, plate)
}
