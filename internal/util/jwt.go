package util

import (
	"errors"
	"time"

	"tutorhub_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

type Claims struct {
	UserID    uint           `json:"user_id"`
	Username  string         `json:"username"`
	Role      model.UserRole `json:"role"`
	TokenType string         `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenPair is the {access, refresh} pair handed out on register, login
// and refresh. The refresh token's jti is tracked server-side so it can
// be rotated and revoked.
//
// swagger:model TokenPair
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`

	// RefreshID is the refresh token's jti; not serialized, the auth
	// service records it in the token store.
	RefreshID string `json:"-"`
}

func GenerateToken(user *model.User, secret, tokenType string, expiration time.Duration) (string, string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	return signed, claims.ID, err
}

func GenerateTokenPair(user *model.User, secret string, accessTTL, refreshTTL time.Duration) (*TokenPair, error) {
	access, _, err := GenerateToken(user, secret, TokenAccess, accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, refreshID, err := GenerateToken(user, secret, TokenRefresh, refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh, RefreshID: refreshID}, nil
}

func ParseJWT(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func GetClaimsFromContext(c *gin.Context) *Claims {
	value, exists := c.Get("claims")
	if !exists {
		return nil
	}
	claims, ok := value.(*Claims)
	if !ok {
		return nil
	}
	return claims
}
