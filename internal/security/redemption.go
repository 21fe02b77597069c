package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

const redemptionTokenType = "sponsorship-offer"

// RedemptionClaims binds an offer to its recipient email. The signature keeps
// a holder of only the email address from minting a redeemable token.
type RedemptionClaims struct {
	Email               string `json:"email"`
	SponsorshipID       string `json:"sponsorship_id"`
	PlanSponsorshipType string `json:"plan_sponsorship_type"`
	Type                string `json:"type"`
	jwt.RegisteredClaims
}

// RedemptionTokenCodec mints and verifies sponsorship redemption tokens.
type RedemptionTokenCodec interface {
	Encode(email, sponsorshipID, planType string, ttl time.Duration) (string, error)
	Decode(token string) (*RedemptionClaims, error)
}

type redemptionTokenCodec struct {
	secret []byte
}

func NewRedemptionTokenCodec(secret string) RedemptionTokenCodec {
	return &redemptionTokenCodec{secret: []byte(secret)}
}

func (c *redemptionTokenCodec) Encode(email, sponsorshipID, planType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := RedemptionClaims{
		Email:               email,
		SponsorshipID:       sponsorshipID,
		PlanSponsorshipType: planType,
		Type:                redemptionTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "sponsorship-service",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

func (c *redemptionTokenCodec) Decode(tokenString string) (*RedemptionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &RedemptionClaims{}, func(token *jwt.Token) (interface{}, error) {
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

	claims, ok := token.Claims.(*RedemptionClaims)
	if !ok || !token.Valid || claims.Type != redemptionTokenType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
