package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// AdminRole is the only role the platform knows; there is a single shared
// admin credential, not a user directory.
const AdminRole = "admin"

// AdminClaims represents the JWT claims carried by an admin access token
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
