package users

import "errors"

var (
	// ErrNotFound indicates the user record does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrEmailTaken indicates another user already registered the email.
	ErrEmailTaken = errors.New("user already exists")

	// ErrBadCredentials indicates the password did not match.
	ErrBadCredentials = errors.New("password does not match")

	// ErrResetExpired indicates the password-reset token is unknown or past its expiry.
	ErrResetExpired = errors.New("reset token is invalid or expired")
)
