package domain

import (
	"context"
	"time"
)

// AdminSession is the durable record behind a refresh token. Holding an
// active session is what lets the admin stay logged in across process
// restarts; logout marks it revoked, and a password change revokes all of
// them at once.
type AdminSession struct {
	ID        string     `bson:"_id,omitempty" json:"id"`
	TokenHash string     `bson:"token_hash" json:"-"` // SHA256 of the refresh token, never the token itself
	IssuedAt  time.Time  `bson:"issued_at" json:"issued_at"`
	ExpiresAt time.Time  `bson:"expires_at" json:"expires_at"`
	UserAgent string     `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	IP        string     `bson:"ip,omitempty" json:"ip,omitempty"`
	RevokedAt *time.Time `bson:"revoked_at,omitempty" json:"revoked_at,omitempty"`
}

// Active reports whether the session can still be exchanged for new tokens.
func (s *AdminSession) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// SessionRepository stores admin sessions keyed by refresh-token hash.
type SessionRepository interface {
	Insert(ctx context.Context, session *AdminSession) error
	// FindByTokenHash returns ErrNotFound for an unknown hash.
	FindByTokenHash(ctx context.Context, hash string) (*AdminSession, error)
	Revoke(ctx context.Context, hash string) error
	RevokeAll(ctx context.Context) error
	PurgeExpired(ctx context.Context) (int64, error)
}
