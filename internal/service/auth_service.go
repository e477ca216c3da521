package service

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/ufuqacademy/ufuq/internal/domain"
)

// AuthService gates the admin surface. There is a single shared admin
// credential stored in the settings document; a correct password yields a
// JWT access token plus a persisted refresh token, so the admin session
// survives process restarts until logout or expiry.
type AuthService struct {
	settingsRepo domain.SettingsRepository
	tokenService *TokenService
}

// NewAuthService creates a new auth service
func NewAuthService(settingsRepo domain.SettingsRepository, tokenService *TokenService) *AuthService {
	return &AuthService{
		settingsRepo: settingsRepo,
		tokenService: tokenService,
	}
}

// Login checks the supplied password against the stored admin credential and,
// on match, issues a token pair. A wrong password returns ErrInvalidPassword
// with no further detail.
func (s *AuthService) Login(ctx context.Context, password, userAgent, ipAddress string) (*TokenPair, error) {
	settings, err := s.settingsRepo.LoadAdminSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin settings: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(password), []byte(settings.AdminPassword)) != 1 {
		return nil, domain.ErrInvalidPassword
	}

	return s.tokenService.GenerateTokenPair(ctx, userAgent, ipAddress)
}

// ChangePassword rotates the admin credential. The current password must
// match, and every outstanding session is revoked so old refresh tokens
// cannot outlive the old credential.
func (s *AuthService) ChangePassword(ctx context.Context, current, next string) error {
	if len(next) < 6 {
		return fmt.Errorf("new password must be at least 6 characters")
	}

	settings, err := s.settingsRepo.LoadAdminSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load admin settings: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(current), []byte(settings.AdminPassword)) != 1 {
		return domain.ErrInvalidPassword
	}

	settings.AdminPassword = next
	if err := s.settingsRepo.SaveAdminSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to save admin settings: %w", err)
	}

	if err := s.tokenService.RevokeAllTokens(ctx); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	return nil
}

// Logout revokes the session behind the given refresh token.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenService.RevokeRefreshToken(ctx, refreshToken)
}
