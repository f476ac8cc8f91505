package jwtutil

import (
	"time"

	"menu-service/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	signingKey []byte
	expiration time.Duration
)

// Initialize configures the signing key and token lifetime from configuration
func Initialize(cfg *config.JWTConfig) {
	signingKey = []byte(cfg.SigningKey)
	expiration = cfg.ExpirationTime
}

// UserClaims represents the JWT claims for user authentication
type UserClaims struct {
	Email          string `json:"email"`
	UserID         uint   `json:"user_id"`
	BusinessTypeID *uint  `json:"business_type_id,omitempty"` // Tenant category the user belongs to
	Role           string `json:"role,omitempty"`             // User's role within the tenant
	jwt.RegisteredClaims
}

// GenerateToken creates a signed token for the given user
func GenerateToken(userID uint, email string, businessTypeID *uint, role string) (string, error) {
	now := time.Now()
	claims := &UserClaims{
		Email:          email,
		UserID:         userID,
		BusinessTypeID: businessTypeID,
		Role:           role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey)
}

// ValidateToken validates and parses the JWT token
func ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return signingKey, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
