package users

import (
	"context"
	"time"

	"github.com/google/uuid"

	"dms-backend/internal/shared/auth"
	"dms-backend/internal/shared/crypto"
	"dms-backend/internal/shared/metrics"
)

const resetTokenTTL = time.Hour

// Service contains account and admin business logic for users.
type Service struct {
	Repo   Repo
	Hasher crypto.Hasher
	Signer auth.Signer
}

func NewService(repo Repo, hasher crypto.Hasher, signer auth.Signer) *Service {
	return &Service{Repo: repo, Hasher: hasher, Signer: signer}
}

// RegisterInput carries the validated registration fields.
type RegisterInput struct {
	UserName  string
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      auth.Role
}

// Register creates a user with a hashed password and issues a token for it.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, string, error) {
	if _, err := s.Repo.GetByEmail(ctx, in.Email); err == nil {
		return User{}, "", ErrEmailTaken
	} else if err != ErrNotFound {
		return User{}, "", err
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return User{}, "", err
	}

	now := time.Now().UTC()
	user := User{
		ID:           uuid.NewString(),
		UserName:     in.UserName,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, "", err
	}

	token, err := s.Signer.Sign(user.Identity())
	if err != nil {
		return User{}, "", err
	}
	metrics.IncUserRegistered()
	return user, token, nil
}

// Login verifies credentials and issues a token. An unknown email yields
// ErrNotFound; a wrong password yields ErrBadCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return User{}, "", err
	}
	if !s.Hasher.Verify(password, user.PasswordHash) {
		metrics.IncLoginFailed()
		return User{}, "", ErrBadCredentials
	}
	token, err := s.Signer.Sign(user.Identity())
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// Get fetches a single user record.
func (s *Service) Get(ctx context.Context, id string) (User, error) {
	return s.Repo.GetByID(ctx, id)
}

// ProfileInput carries the mutable profile fields.
type ProfileInput struct {
	UserName  string
	FirstName string
	LastName  string
	Email     string
}

// UpdateProfile updates the caller's profile. The password is not touched here.
func (s *Service) UpdateProfile(ctx context.Context, id string, in ProfileInput) (User, error) {
	return s.Repo.UpdateProfile(ctx, User{
		ID:        id,
		UserName:  in.UserName,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
	})
}

// ForgotPassword stores a fresh reset token for the account and returns it.
// Delivery of the token is left to the caller.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	token := uuid.NewString()
	expires := time.Now().UTC().Add(resetTokenTTL)
	if err := s.Repo.SetResetToken(ctx, user.ID, token, expires); err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword replaces the password for the user holding a live reset token.
func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	user, err := s.Repo.GetByResetToken(ctx, token)
	if err != nil {
		if err == ErrNotFound {
			return ErrResetExpired
		}
		return err
	}
	if user.ResetPasswordExpires == nil || time.Now().UTC().After(*user.ResetPasswordExpires) {
		return ErrResetExpired
	}
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return err
	}
	return s.Repo.UpdatePassword(ctx, user.ID, hash)
}

// List returns every user for administrative listing.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.Repo.List(ctx)
}

// Search returns users whose username contains the keyword.
func (s *Service) Search(ctx context.Context, keyword string) ([]User, error) {
	return s.Repo.SearchByUserName(ctx, keyword)
}

// Delete removes a user. Their documents remain, orphaned.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
