package users

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dms-backend/internal/shared/auth"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const userColumns = `id, user_name, first_name, last_name, email, password_hash, role_id, reset_password_token, reset_password_expires, created_at, updated_at`

// Create inserts a new user. A duplicate email surfaces as ErrEmailTaken.
func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, user_name, first_name, last_name, email, password_hash, role_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		user.ID,
		user.UserName,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		int(user.Role),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil && isUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

// GetByID fetches a user by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

// GetByEmail fetches a user by email, case-insensitively.
func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

// List returns all users ordered by creation time.
func (r *PGRepo) List(ctx context.Context) ([]User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY created_at`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// SearchByUserName returns users whose username contains the keyword, case-insensitively.
func (r *PGRepo) SearchByUserName(ctx context.Context, keyword string) ([]User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE user_name ILIKE '%' || $1 || '%' ORDER BY created_at`
	rows, err := r.DB.QueryContext(ctx, query, keyword)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// UpdateProfile updates the mutable profile fields and returns the new record.
// The password is not mutated through this path.
func (r *PGRepo) UpdateProfile(ctx context.Context, user User) (User, error) {
	const query = `
UPDATE users
SET user_name = $1, first_name = $2, last_name = $3, email = $4, updated_at = now()
WHERE id = $5
RETURNING ` + userColumns

	updated, err := r.scanOne(r.DB.QueryRowContext(
		ctx,
		query,
		user.UserName,
		user.FirstName,
		user.LastName,
		user.Email,
		user.ID,
	))
	if err != nil && isUniqueViolation(err) {
		return User{}, ErrEmailTaken
	}
	return updated, err
}

// SetResetToken stores a password-reset token and its expiry.
func (r *PGRepo) SetResetToken(ctx context.Context, id, token string, expires time.Time) error {
	const query = `
UPDATE users
SET reset_password_token = $1, reset_password_expires = $2, updated_at = now()
WHERE id = $3`
	res, err := r.DB.ExecContext(ctx, query, token, expires, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// GetByResetToken fetches the user holding the given reset token.
func (r *PGRepo) GetByResetToken(ctx context.Context, token string) (User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE reset_password_token = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, token))
}

// UpdatePassword replaces the password hash and clears any reset token.
func (r *PGRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `
UPDATE users
SET password_hash = $1, reset_password_token = NULL, reset_password_expires = NULL, updated_at = now()
WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a user. The user's documents are left in place.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) scanOne(row *sql.Row) (User, error) {
	var user User
	var role int
	var resetToken sql.NullString
	var resetExpires sql.NullTime
	err := row.Scan(
		&user.ID,
		&user.UserName,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&role,
		&resetToken,
		&resetExpires,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.Role = auth.Role(role)
	if resetToken.Valid {
		user.ResetPasswordToken = resetToken.String
	}
	if resetExpires.Valid {
		user.ResetPasswordExpires = &resetExpires.Time
	}
	return user, nil
}

func (r *PGRepo) scanMany(rows *sql.Rows) ([]User, error) {
	var out []User
	for rows.Next() {
		var user User
		var role int
		var resetToken sql.NullString
		var resetExpires sql.NullTime
		if err := rows.Scan(
			&user.ID,
			&user.UserName,
			&user.FirstName,
			&user.LastName,
			&user.Email,
			&user.PasswordHash,
			&role,
			&resetToken,
			&resetExpires,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		user.Role = auth.Role(role)
		if resetToken.Valid {
			user.ResetPasswordToken = resetToken.String
		}
		if resetExpires.Valid {
			user.ResetPasswordExpires = &resetExpires.Time
		}
		out = append(out, user)
	}
	return out, rows.Err()
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// isUniqueViolation matches Postgres unique-constraint errors (SQLSTATE 23505)
// without depending on driver error types.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	type sqlStater interface{ SQLState() string }
	var state sqlStater
	if errors.As(err, &state) {
		return state.SQLState() == "23505"
	}
	return false
}
