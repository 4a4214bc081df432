package users

import (
	"time"

	"dms-backend/internal/shared/auth"
)

// User is an identity record. PasswordHash is never serialized; redaction to
// callers happens once, in the DTO layer.
type User struct {
	ID                   string
	UserName             string
	FirstName            string
	LastName             string
	Email                string
	PasswordHash         string
	Role                 auth.Role
	ResetPasswordToken   string
	ResetPasswordExpires *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Identity returns the {id, role} pair embedded in tokens for this user.
func (u User) Identity() auth.Identity {
	return auth.Identity{UserID: u.ID, Role: u.Role}
}
