package users

import (
	"context"
	"time"
)

// Repo defines persistence operations for users. It is the single seam where
// storage details are hidden from handlers and policy code.
type Repo interface {
	Create(ctx context.Context, user User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	SearchByUserName(ctx context.Context, keyword string) ([]User, error)
	UpdateProfile(ctx context.Context, user User) (User, error)
	SetResetToken(ctx context.Context, id, token string, expires time.Time) error
	GetByResetToken(ctx context.Context, token string) (User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}
