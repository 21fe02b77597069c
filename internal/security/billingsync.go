package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const billingSyncTokenType = "billing-sync"

// BillingSyncClaims identify a sponsoring installation in the key-exchange
// protocol between self-hosted and cloud deployments. Structurally similar to
// redemption claims but never interchangeable with them: both codecs reject
// each other's type marker.
type BillingSyncClaims struct {
	OrganizationID string `json:"organization_id"`
	BillingSyncKey string `json:"billing_sync_key"`
	Type           string `json:"type"`
	jwt.RegisteredClaims
}

// BillingSyncTokenCodec mints and verifies billing-sync tokens.
type BillingSyncTokenCodec interface {
	Encode(orgID, billingSyncKey string, ttl time.Duration) (string, error)
	Decode(token string) (*BillingSyncClaims, error)
}

type billingSyncTokenCodec struct {
	secret []byte
}

func NewBillingSyncTokenCodec(secret string) BillingSyncTokenCodec {
	return &billingSyncTokenCodec{secret: []byte(secret)}
}

func (c *billingSyncTokenCodec) Encode(orgID, billingSyncKey string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := BillingSyncClaims{
		OrganizationID: orgID,
		BillingSyncKey: billingSyncKey,
		Type:           billingSyncTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   orgID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "sponsorship-service",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

func (c *billingSyncTokenCodec) Decode(tokenString string) (*BillingSyncClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &BillingSyncClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*BillingSyncClaims)
	if !ok || !token.Valid || claims.Type != billingSyncTokenType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
