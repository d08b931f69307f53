package repository

import (
	"github.com/jalvarez/washpoint-backend/internal/app/model"
	"github.com/jalvarez/washpoint-backend/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(tx *gorm.DB, user *model.User) error
	FindByUsername(username string) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a user, optionally inside the caller's transaction.
func (r *userRepository) Create(tx *gorm.DB, user *model.User) error {
	db := r.db
	if tx != nil {
		db = tx
	}

	if err := db.Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"username": user.Username,
		})
		return err
	}

	logger.Debug("User created in database", map[string]interface{}{
		"user_id":     user.ID,
		"username":    user.Username,
		"business_id": user.BusinessID,
	})
	return nil
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
