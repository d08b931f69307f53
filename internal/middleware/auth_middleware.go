package middleware

import (
	"context"
	goerrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jalvarez/washpoint-backend/internal/app/repository"
	"github.com/jalvarez/washpoint-backend/internal/errors"
	"github.com/jalvarez/washpoint-backend/pkg/util"
	"gorm.io/gorm"
)

// Context keys for the authenticated principal
const (
	UserIDKey     = "user_id"
	UsernameKey   = "username"
	BusinessIDKey = "business_id"
	TokenKey      = "access_token"
)

// TokenBlacklist answers whether a token has been revoked. A nil-backed
// implementation that always answers false is acceptable.
type TokenBlacklist interface {
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

type AuthMiddleware struct {
	jwtSecret string
	blacklist TokenBlacklist
	userRepo  repository.UserRepository
}

func NewAuthMiddleware(jwtSecret string, blacklist TokenBlacklist, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
		blacklist: blacklist,
		userRepo:  userRepo,
	}
}

// Authenticate validates the access token and scopes the request to the
// token's business. Every request behind this middleware carries a business
// id in context; handlers never see another tenant's id.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return m.authenticate(false)
}

// AuthenticateWebSocket additionally accepts the token as a query
// parameter, because browser websocket clients cannot set headers. It
// belongs on the board route only; everywhere else the query fallback
// would leak tokens into access logs.
func (m *AuthMiddleware) AuthenticateWebSocket() gin.HandlerFunc {
	return m.authenticate(true)
}

func (m *AuthMiddleware) authenticate(allowQueryToken bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		var token string

		// Try to get token from Authorization header first
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Warn("Invalid authorization header format", map[string]interface{}{
					"path": c.Request.URL.Path,
				})
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authorization header")
				c.Abort()
				return
			}
			token = parts[1]
		} else {
			if allowQueryToken {
				token = c.Query("token")
			}
			if token == "" {
				log.Warn("Missing authorization header", map[string]interface{}{
					"path": c.Request.URL.Path,
				})
				errors.Unauthorized(c, "Authentication required")
				c.Abort()
				return
			}
		}

		claims, err := util.ValidateToken(token, m.jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			if goerrors.Is(err, util.ErrExpiredToken) {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "Session expired")
			} else {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid access token")
			}
			c.Abort()
			return
		}

		if m.blacklist != nil {
			revoked, err := m.blacklist.IsTokenBlacklisted(c.Request.Context(), token)
			if err != nil {
				log.Error("Failed to check token blacklist", err, map[string]interface{}{
					"path": c.Request.URL.Path,
				})
				errors.InternalError(c, "Failed to verify session")
				c.Abort()
				return
			}
			if revoked {
				log.Warn("Revoked token presented", map[string]interface{}{
					"username": claims.Subject,
					"path":     c.Request.URL.Path,
				})
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenRevoked, "Session has been logged out")
				c.Abort()
				return
			}
		}

		// A valid signature is not enough: the user must still exist.
		user, err := m.userRepo.FindByUsername(claims.Subject)
		if err != nil {
			if goerrors.Is(err, gorm.ErrRecordNotFound) {
				log.Warn("Token subject no longer exists", map[string]interface{}{
					"username": claims.Subject,
					"path":     c.Request.URL.Path,
				})
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid access token")
				c.Abort()
				return
			}
			log.Error("Failed to load token subject", err, map[string]interface{}{
				"username": claims.Subject,
			})
			errors.InternalError(c, "Failed to verify session")
			c.Abort()
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(UsernameKey, user.Username)
		c.Set(BusinessIDKey, user.BusinessID)
		c.Set(TokenKey, token)

		log.Debug("User authenticated successfully", map[string]interface{}{
			"user_id":     user.ID,
			"username":    user.Username,
			"business_id": user.BusinessID,
		})

		c.Next()
	}
}

// GetUserID extracts the user ID from context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

// GetUsername extracts the username from context
func GetUsername(c *gin.Context) (string, bool) {
	username, exists := c.Get(UsernameKey)
	if !exists {
		return "", false
	}
	return username.(string), true
}

// GetBusinessID extracts the authenticated tenant from context
func GetBusinessID(c *gin.Context) (uint, bool) {
	businessID, exists := c.Get(BusinessIDKey)
	if !exists {
		return 0, false
	}
	return businessID.(uint), true
}

// GetToken extracts the raw access token from context
func GetToken(c *gin.Context) (string, bool) {
	token, exists := c.Get(TokenKey)
	if !exists {
		return "", false
	}
	return token.(string), true
}
