package service

import (
	"context"

	"sponsorship-backend/internal/errors"
	"sponsorship-backend/internal/repository"
	"sponsorship-backend/internal/security"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.SessionTokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.SessionTokenManager) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", errors.Unauthorized("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", errors.Unauthorized("invalid email or password")
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", "", errors.Wrap(err, errors.CodeInternal, "failed to issue access token")
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", errors.Wrap(err, errors.CodeInternal, "failed to issue refresh token")
	}
	return access, refresh, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refreshToken, security.SessionTokenTypeRefresh)
	if err != nil {
		return "", "", errors.Unauthorized("invalid refresh token")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return "", "", errors.Unauthorized("invalid refresh token")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", "", errors.Unauthorized("invalid refresh token")
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", "", errors.Wrap(err, errors.CodeInternal, "failed to issue access token")
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", errors.Wrap(err, errors.CodeInternal, "failed to issue refresh token")
	}
	return access, refresh, nil
}
