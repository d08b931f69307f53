package util

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims carried by an access token. BusinessID scopes every downstream
// read and write to the owning business.
type Claims struct {
	BusinessID uint `json:"business_id"`
	jwt.RegisteredClaims
}

// AccessToken is the credential returned by login.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// GenerateAccessToken signs an HS256 token asserting the username (subject)
// and the business id it is scoped to.
func GenerateAccessToken(username string, businessID uint, secret string, expiry time.Duration) (*AccessToken, error) {
	now := time.Now()
	claims := Claims{
		BusinessID: businessID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, err
	}

	return &AccessToken{
		AccessToken: signed,
		TokenType:   "bearer",
	}, nil
}

// ValidateToken parses and verifies an access token. A bad signature, a
// malformed payload and missing claims are all reported as ErrInvalidToken;
// only expiry gets its own error so the middleware can tell the client.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.BusinessID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
