package repository

import (
	"github.com/jalvarez/washpoint-backend/internal/app/model"
	"github.com/jalvarez/washpoint-backend/pkg/logger"
	"gorm.io/gorm"
)

type BusinessRepository interface {
	Create(tx *gorm.DB, business *model.Business) error
	FindByID(id uint) (*model.Business, error)
}

type businessRepository struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepository{db: db}
}

// Create inserts a business. It runs on tx so signup can create the
// business and its admin user atomically; pass nil to use the base handle.
func (r *businessRepository) Create(tx *gorm.DB, business *model.Business) error {
	db := r.db
	if tx != nil {
		db = tx
	}

	if err := db.Create(business).Error; err != nil {
		logger.Error("Failed to create business in database", err, map[string]interface{}{
			"name": business.Name,
		})
		return err
	}

	logger.Debug("Business created in database", map[string]interface{}{
		"business_id": business.ID,
		"name":        business.Name,
	})
	return nil
}

func (r *businessRepository) FindByID(id uint) (*model.Business, error) {
	var business model.Business
	if err := r.db.First(&business, id).Error; err != nil {
		return nil, err
	}
	return &business, nil
}
