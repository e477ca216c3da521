package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ufuqacademy/ufuq/internal/config"
	"github.com/ufuqacademy/ufuq/internal/domain"
)

// ErrSessionInvalid covers every way a refresh token can be unusable:
// unknown, expired, or revoked. Callers get no finer detail.
var ErrSessionInvalid = errors.New("session invalid")

// TokenService issues short-lived JWT access tokens and manages the
// persisted sessions behind refresh tokens.
type TokenService struct {
	jwtConfig config.JWTConfig
	sessions  domain.SessionRepository
}

func NewTokenService(jwtConfig config.JWTConfig, sessions domain.SessionRepository) *TokenService {
	return &TokenService{jwtConfig: jwtConfig, sessions: sessions}
}

// TokenPair is the login/refresh response payload.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // Seconds until access token expires
}

// GenerateTokenPair mints an access token and opens a new session.
func (s *TokenService) GenerateTokenPair(ctx context.Context, userAgent, ipAddress string) (*TokenPair, error) {
	accessToken, err := s.mintAccessToken()
	if err != nil {
		return nil, fmt.Errorf("failed to mint access token: %w", err)
	}

	refreshToken, err := newRefreshToken()
	if err != nil {
		return nil, err
	}

	session := &domain.AdminSession{
		TokenHash: hashToken(refreshToken),
		IssuedAt:  time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(s.jwtConfig.RefreshTokenExpiry),
		UserAgent: userAgent,
		IP:        ipAddress,
	}
	if err := s.sessions.Insert(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtConfig.AccessTokenExpiry.Seconds()),
	}, nil
}

// RefreshAccessToken exchanges a refresh token for a fresh pair. The spent
// session is revoked first, so each refresh token works exactly once.
func (s *TokenService) RefreshAccessToken(ctx context.Context, refreshToken, userAgent, ipAddress string) (*TokenPair, error) {
	hash := hashToken(refreshToken)

	session, err := s.sessions.FindByTokenHash(ctx, hash)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrSessionInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}
	if !session.Active(time.Now().UTC()) {
		return nil, ErrSessionInvalid
	}

	if err := s.sessions.Revoke(ctx, hash); err != nil {
		return nil, fmt.Errorf("failed to rotate session: %w", err)
	}

	return s.GenerateTokenPair(ctx, userAgent, ipAddress)
}

// RevokeRefreshToken closes the session behind one refresh token (logout).
func (s *TokenService) RevokeRefreshToken(ctx context.Context, refreshToken string) error {
	return s.sessions.Revoke(ctx, hashToken(refreshToken))
}

// RevokeAllTokens closes every open session. Called on password change so
// old sessions cannot outlive the old credential.
func (s *TokenService) RevokeAllTokens(ctx context.Context) error {
	return s.sessions.RevokeAll(ctx)
}

func (s *TokenService) mintAccessToken() (string, error) {
	now := time.Now()
	claims := domain.AdminClaims{
		Role: domain.AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   domain.AdminRole,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtConfig.Secret))
}

// newRefreshToken returns 32 random bytes hex-encoded. Only its hash is ever
// stored.
func newRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
