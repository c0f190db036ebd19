package sqlrepo

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"dfseducation/internal/model"
)

func TestUserSQL_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserSQL(db)
	ctx := context.Background()

	now := time.Now().UTC()
	u := &model.User{
		Username:     "student1",
		Email:        "student1@example.com",
		PasswordHash: "hash",
		FirstName:    "Alma",
		LastName:     "Berisha",
		Phone:        "+38344123456",
		Role:         model.RoleUser,
		Status:       model.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mock.ExpectExec("INSERT INTO users").
		WithArgs(u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.Role, u.Status, u.IsSuperuser, u.CreatedAt, u.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(7, 1))

	result, err := repo.Create(ctx, u)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, int64(7), result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserSQL_FindByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserSQL(db)
	ctx := context.Background()

	cols := []string{"id", "username", "email", "password_hash", "first_name", "last_name", "phone", "role", "status", "is_superuser", "created_at", "updated_at"}

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(cols).
			AddRow(3, "agent1", "agent1@example.com", "hash", "Drin", "Gashi", "", model.RoleAgent, model.UserActive, false, time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM users WHERE username = ?").
			WithArgs("agent1").
			WillReturnRows(rows)

		u, err := repo.FindByUsername(ctx, "agent1")

		assert.NoError(t, err)
		assert.NotNil(t, u)
		assert.Equal(t, int64(3), u.ID)
		assert.Equal(t, model.RoleAgent, u.Role)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE username = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		u, err := repo.FindByUsername(ctx, "missing")

		assert.Error(t, err)
		assert.Equal(t, sql.ErrNoRows, err)
		assert.Nil(t, u)
	})
}

func TestUserSQL_EmailTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserSQL(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users WHERE email = \\? AND id != \\?").
		WithArgs("taken@example.com", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	taken, err := repo.EmailTaken(ctx, "taken@example.com", 0)

	assert.NoError(t, err)
	assert.True(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}
