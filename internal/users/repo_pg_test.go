package users

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"dms-backend/internal/shared/auth"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

type fakeUniqueViolation struct{}

func (fakeUniqueViolation) Error() string    { return "duplicate key value violates unique constraint" }
func (fakeUniqueViolation) SQLState() string { return "23505" }

func TestPGRepoCreate(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	user := User{
		ID:           "user-1",
		UserName:     "Frankie1",
		FirstName:    "Frank",
		LastName:     "Osagie",
		Email:        "frank@example.com",
		PasswordHash: "hashed",
		Role:         auth.RoleStandard,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mock.ExpectExec("INSERT INTO users").
		WithArgs(
			user.ID,
			user.UserName,
			user.FirstName,
			user.LastName,
			user.Email,
			user.PasswordHash,
			int(user.Role),
			user.CreatedAt,
			user.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateMapsUniqueViolation(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(fmt.Errorf("exec: %w", fakeUniqueViolation{}))

	err := repo.Create(context.Background(), User{ID: "user-1", Email: "frank@example.com"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestPGRepoGetByEmailIsCaseInsensitive(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "user_name", "first_name", "last_name", "email", "password_hash",
		"role_id", "reset_password_token", "reset_password_expires", "created_at", "updated_at",
	}).AddRow("user-1", "Frankie1", "Frank", "Osagie", "frank@example.com", "hashed", 2, nil, nil, now, now)

	mock.ExpectQuery(`WHERE lower\(email\) = lower\(\$1\)`).
		WithArgs("FRANK@example.com").
		WillReturnRows(rows)

	user, err := repo.GetByEmail(context.Background(), "FRANK@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if user.ID != "user-1" || user.Role != auth.RoleStandard {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.ResetPasswordToken != "" || user.ResetPasswordExpires != nil {
		t.Fatalf("expected empty reset fields, got %+v", user)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT .+ FROM users WHERE id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoSearchUsesILike(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "user_name", "first_name", "last_name", "email", "password_hash",
		"role_id", "reset_password_token", "reset_password_expires", "created_at", "updated_at",
	}).AddRow("user-1", "Frankie1", "Frank", "Osagie", "frank@example.com", "hashed", 2, nil, nil, now, now)

	mock.ExpectQuery(`user_name ILIKE '%' \|\| \$1 \|\| '%'`).
		WithArgs("frank").
		WillReturnRows(rows)

	list, err := repo.SearchByUserName(context.Background(), "frank")
	if err != nil {
		t.Fatalf("SearchByUserName: %v", err)
	}
	if len(list) != 1 || list[0].UserName != "Frankie1" {
		t.Fatalf("unexpected result: %+v", list)
	}
}

func TestPGRepoUpdatePasswordClearsResetToken(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`SET password_hash = \$1, reset_password_token = NULL, reset_password_expires = NULL`).
		WithArgs("newhash", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdatePassword(context.Background(), "user-1", "newhash"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDeleteReportsAbsentRow(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM users").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
