package users

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used in tests and as a dev fallback.
type MemoryRepo struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{users: make(map[string]User)}
}

func (r *MemoryRepo) Create(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return ErrEmailTaken
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepo) List(ctx context.Context) ([]User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, user)
	}
	sortByCreation(out)
	return out, nil
}

func (r *MemoryRepo) SearchByUserName(ctx context.Context, keyword string) ([]User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	needle := strings.ToLower(keyword)
	var out []User
	for _, user := range r.users {
		if strings.Contains(strings.ToLower(user.UserName), needle) {
			out = append(out, user)
		}
	}
	sortByCreation(out)
	return out, nil
}

func (r *MemoryRepo) UpdateProfile(ctx context.Context, user User) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[user.ID]
	if !ok {
		return User{}, ErrNotFound
	}
	for id, other := range r.users {
		if id != user.ID && strings.EqualFold(other.Email, user.Email) {
			return User{}, ErrEmailTaken
		}
	}
	existing.UserName = user.UserName
	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.Email = user.Email
	existing.UpdatedAt = time.Now().UTC()
	r.users[user.ID] = existing
	return existing, nil
}

func (r *MemoryRepo) SetResetToken(ctx context.Context, id, token string, expires time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	user.ResetPasswordToken = token
	user.ResetPasswordExpires = &expires
	user.UpdatedAt = time.Now().UTC()
	r.users[id] = user
	return nil
}

func (r *MemoryRepo) GetByResetToken(ctx context.Context, token string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if token == "" {
		return User{}, ErrNotFound
	}
	for _, user := range r.users {
		if user.ResetPasswordToken == token {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	user.PasswordHash = passwordHash
	user.ResetPasswordToken = ""
	user.ResetPasswordExpires = nil
	user.UpdatedAt = time.Now().UTC()
	r.users[id] = user
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func sortByCreation(users []User) {
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
}

var _ Repo = (*MemoryRepo)(nil)
