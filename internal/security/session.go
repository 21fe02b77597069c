package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrWrongTokenType = errors.New("wrong token type for this endpoint")

type SessionTokenType string

const (
	SessionTokenTypeAccess  SessionTokenType = "access"
	SessionTokenTypeRefresh SessionTokenType = "refresh"
)

// SessionClaims carry the authenticated principal between the boundary layer
// and the handlers.
type SessionClaims struct {
	UserID string           `json:"user_id"`
	Email  string           `json:"email,omitempty"`
	Type   SessionTokenType `json:"type"`
	jwt.RegisteredClaims
}

// SessionTokenManager issues and validates access/refresh tokens for the HTTP
// boundary.
type SessionTokenManager interface {
	GenerateAccessToken(userID uuid.UUID, email string) (string, error)
	GenerateRefreshToken(userID uuid.UUID, email string) (string, error)
	ValidateToken(token string, want SessionTokenType) (*SessionClaims, error)
}

type sessionTokenManager struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewSessionTokenManager(secret string, accessExpiry, refreshExpiry time.Duration) SessionTokenManager {
	return &sessionTokenManager{
		secret:        []byte(secret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (m *sessionTokenManager) GenerateAccessToken(userID uuid.UUID, email string) (string, error) {
	return m.generate(userID, email, SessionTokenTypeAccess, m.accessExpiry)
}

func (m *sessionTokenManager) GenerateRefreshToken(userID uuid.UUID, email string) (string, error) {
	return m.generate(userID, email, SessionTokenTypeRefresh, m.refreshExpiry)
}

func (m *sessionTokenManager) generate(userID uuid.UUID, email string, typ SessionTokenType, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID: userID.String(),
		Email:  email,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			Issuer:    "sponsorship-service",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *sessionTokenManager) ValidateToken(tokenString string, want SessionTokenType) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != want {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
