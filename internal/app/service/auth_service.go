package service

import (
	"context"
	"errors"
	"time"

	"github.com/jalvarez/washpoint-backend/internal/app/model"
	"github.com/jalvarez/washpoint-backend/internal/app/repository"
	"github.com/jalvarez/washpoint-backend/pkg/logger"
	"github.com/jalvarez/washpoint-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

// TokenRevoker records revoked tokens until they expire on their own.
type TokenRevoker interface {
	BlacklistToken(ctx context.Context, token string, expiry time.Duration) error
}

type AuthService interface {
	Signup(businessName, username, password string) (*model.Business, error)
	Login(username, password string) (*util.AccessToken, error)
	Logout(ctx context.Context, token string) error
	GetUserByUsername(username string) (*model.User, error)
}

type authService struct {
	db           *gorm.DB
	businessRepo repository.BusinessRepository
	userRepo     repository.UserRepository
	revoker      TokenRevoker
	jwtSecret    string
	accessExpiry time.Duration
}

func NewAuthService(
	db *gorm.DB,
	businessRepo repository.BusinessRepository,
	userRepo repository.UserRepository,
	revoker TokenRevoker,
	jwtSecret string,
	accessExpiry time.Duration,
) AuthService {
	return &authService{
		db:           db,
		businessRepo: businessRepo,
		userRepo:     userRepo,
		revoker:      revoker,
		jwtSecret:    jwtSecret,
		accessExpiry: accessExpiry,
	}
}

// Signup creates a business together with its admin user. Both rows are
// written in one transaction so a half-created tenant never exists.
func (s *authService) Signup(businessName, username, password string) (*model.Business, error) {
	logger.Info("Attempting business signup", map[string]interface{}{
		"business_name": businessName,
		"username":      username,
	})

	existingUser, err := s.userRepo.FindByUsername(username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing user", err, map[string]interface{}{
			"username": username,
		})
		return nil, err
	}
	if existingUser != nil {
		logger.Warn("Signup failed: username already exists", map[string]interface{}{
			"username": username,
		})
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"username": username,
		})
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during signup, rolling back", errors.New("panic"), map[string]interface{}{
				"username": username,
			})
		}
	}()

	business := &model.Business{Name: businessName}
	if err := s.businessRepo.Create(tx, business); err != nil {
		tx.Rollback()
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hashedPassword,
		BusinessID:   business.ID,
	}
	if err := s.userRepo.Create(tx, user); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit signup transaction", err, map[string]interface{}{
			"username": username,
		})
		return nil, err
	}

	logger.Info("Business signed up successfully", map[string]interface{}{
		"business_id": business.ID,
		"username":    username,
	})
	return business, nil
}

func (s *authService) Login(username, password string) (*util.AccessToken, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"username": username,
	})

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"username": username,
			})
			return nil, ErrInvalidCredentials
		}
		logger.Error("Failed to find user", err, map[string]interface{}{
			"username": username,
		})
		return nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"username": username,
		})
		return nil, ErrInvalidCredentials
	}

	token, err := util.GenerateAccessToken(user.Username, user.BusinessID, s.jwtSecret, s.accessExpiry)
	if err != nil {
		logger.Error("Failed to generate access token", err, map[string]interface{}{
			"username": username,
		})
		return nil, err
	}

	logger.Info("Login successful", map[string]interface{}{
		"username":    username,
		"business_id": user.BusinessID,
	})
	return token, nil
}

// Logout blacklists the token for its remaining lifetime. A token past its
// expiry needs no entry, it can no longer validate anyway.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := util.ValidateToken(token, s.jwtSecret)
	if err != nil {
		if errors.Is(err, util.ErrExpiredToken) {
			return nil
		}
		return err
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	if s.revoker == nil {
		logger.Warn("No revocation backend, token will expire naturally", map[string]interface{}{
			"username": claims.Subject,
		})
		return nil
	}

	if err := s.revoker.BlacklistToken(ctx, token, ttl); err != nil {
		logger.Error("Failed to blacklist token", err, map[string]interface{}{
			"username": claims.Subject,
		})
		return err
	}

	logger.Info("Token revoked", map[string]interface{}{
		"username": claims.Subject,
	})
	return nil
}

func (s *authService) GetUserByUsername(username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
