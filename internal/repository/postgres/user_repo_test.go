package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/fiscalfit/server/internal/errs"
	"github.com/fiscalfit/server/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

const selectUserRe = `SELECT id, email, username, password_hash, full_name, created_at, last_login, preferences FROM users WHERE `

func userRows(u *model.User) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "email", "username", "password_hash", "full_name", "created_at", "last_login", "preferences"}).
		AddRow(u.ID, u.Email, u.Username, u.PasswordHash, u.FullName, u.CreatedAt, u.LastLogin, u.Preferences)
}

func TestUserRepo_Create_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()

	u := &model.User{
		ID:           uuid.Must(uuid.NewV4()),
		Email:        "a@x.com",
		Username:     "alice",
		PasswordHash: []byte("h"),
		FullName:     "Alice A",
	}
	created := time.Now()

	mock.ExpectQuery(`INSERT INTO users \(id, email, username, password_hash, full_name\) VALUES \(\$1, \$2, \$3, \$4, \$5\) RETURNING created_at`).
		WithArgs(u.ID, u.Email, u.Username, u.PasswordHash, u.FullName).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(created))

	require.NoError(t, r.Create(ctx, u))
	require.Equal(t, created, u.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create_UniqueViolations(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()

	u := &model.User{ID: uuid.Must(uuid.NewV4()), Email: "a@x.com", Username: "alice"}

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(u.ID, u.Email, u.Username, u.PasswordHash, u.FullName).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	require.ErrorIs(t, r.Create(ctx, u), errs.ErrEmailInUse)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(u.ID, u.Email, u.Username, u.PasswordHash, u.FullName).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})
	require.ErrorIs(t, r.Create(ctx, u), errs.ErrUsernameTaken)
}

func TestUserRepo_GetByID(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()

	want := &model.User{
		ID:           uuid.Must(uuid.NewV4()),
		Email:        "a@x.com",
		Username:     "alice",
		PasswordHash: []byte("h"),
		FullName:     "Alice A",
		CreatedAt:    time.Now(),
	}

	mock.ExpectQuery(selectUserRe + `id=\$1`).
		WithArgs(want.ID).
		WillReturnRows(userRows(want))
	got, err := r.GetByID(ctx, want.ID)
	require.NoError(t, err)
	require.Equal(t, want.ID, got.ID)
	require.Nil(t, got.LastLogin)

	mock.ExpectQuery(selectUserRe + `id=\$1`).
		WithArgs(want.ID).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetByID(ctx, want.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUserRepo_GetByEmailOrUsername(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()

	want := &model.User{
		ID:        uuid.Must(uuid.NewV4()),
		Email:     "a@x.com",
		Username:  "alice",
		CreatedAt: time.Now(),
	}

	mock.ExpectQuery(selectUserRe + `email=\$1 OR username=\$1`).
		WithArgs("alice").
		WillReturnRows(userRows(want))
	got, err := r.GetByEmailOrUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, want.Username, got.Username)

	mock.ExpectQuery(selectUserRe + `email=\$1 OR username=\$1`).
		WithArgs("nobody").
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetByEmailOrUsername(ctx, "nobody")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUserRepo_UpdateLastLogin(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())
	at := time.Now()

	mock.ExpectExec(`UPDATE users SET last_login=\$2 WHERE id=\$1`).
		WithArgs(id, at).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, r.UpdateLastLogin(ctx, id, at))

	mock.ExpectExec(`UPDATE users SET last_login=\$2 WHERE id=\$1`).
		WithArgs(id, at).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	require.ErrorIs(t, r.UpdateLastLogin(ctx, id, at), errs.ErrNotFound)
}
