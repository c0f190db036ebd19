package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"dfseducation/internal/model"
	repoMocks "dfseducation/internal/repository/mocks"
)

func newAuthForTest(users *repoMocks.MockUserRepository, sessions *repoMocks.MockSessionRepository) AuthService {
	return NewAuthService(users, sessions, "test-secret", 24*time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		sessions := new(repoMocks.MockSessionRepository)
		svc := newAuthForTest(users, sessions)

		users.On("FindByUsername", ctx, "newstudent").Return(nil, sql.ErrNoRows)
		users.On("EmailTaken", ctx, "new@example.com", int64(0)).Return(false, nil)
		users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.Username == "newstudent" &&
				u.Role == model.RoleUser &&
				u.Status == model.UserActive &&
				u.PasswordHash != "" && u.PasswordHash != "secret123"
		})).Return(&model.User{ID: 1, Username: "newstudent"}, nil)

		u, err := svc.Register(ctx, RegisterInput{
			Username: "newstudent",
			Email:    "new@example.com",
			Password: "secret123",
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
		users.AssertExpectations(t)
	})

	t.Run("username taken", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		svc := newAuthForTest(users, new(repoMocks.MockSessionRepository))

		users.On("FindByUsername", ctx, "taken").Return(&model.User{ID: 2}, nil)

		_, err := svc.Register(ctx, RegisterInput{Username: "taken", Email: "a@b.com", Password: "x"})
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("email taken", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		svc := newAuthForTest(users, new(repoMocks.MockSessionRepository))

		users.On("FindByUsername", ctx, "fresh").Return(nil, sql.ErrNoRows)
		users.On("EmailTaken", ctx, "dup@example.com", int64(0)).Return(true, nil)

		_, err := svc.Register(ctx, RegisterInput{Username: "fresh", Email: "dup@example.com", Password: "x"})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := newAuthForTest(new(repoMocks.MockUserRepository), new(repoMocks.MockSessionRepository))
		_, err := svc.Register(ctx, RegisterInput{Username: "only"})
		assert.ErrorIs(t, err, ErrMissingFields)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	active := &model.User{ID: 1, Username: "student1", PasswordHash: string(hash), Role: model.RoleUser, Status: model.UserActive}

	t.Run("success issues a token backed by a session", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		sessions := new(repoMocks.MockSessionRepository)
		svc := newAuthForTest(users, sessions)

		users.On("FindByUsername", ctx, "student1").Return(active, nil)
		sessions.On("Create", ctx, mock.MatchedBy(func(s *model.Session) bool {
			return s.ID != "" && s.UserID == 1 && s.ExpiresAt.After(time.Now())
		})).Return(nil)

		u, token, err := svc.Login(ctx, "student1", "secret123")

		assert.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
		assert.NotEmpty(t, token)
		sessions.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		svc := newAuthForTest(users, new(repoMocks.MockSessionRepository))

		users.On("FindByUsername", ctx, "student1").Return(active, nil)

		_, _, err := svc.Login(ctx, "student1", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		svc := newAuthForTest(users, new(repoMocks.MockSessionRepository))

		users.On("FindByUsername", ctx, "ghost").Return(nil, sql.ErrNoRows)

		_, _, err := svc.Login(ctx, "ghost", "x")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("suspended account", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		svc := newAuthForTest(users, new(repoMocks.MockSessionRepository))

		suspended := *active
		suspended.Status = model.UserSuspended
		users.On("FindByUsername", ctx, "student1").Return(&suspended, nil)

		_, _, err := svc.Login(ctx, "student1", "secret123")
		assert.ErrorIs(t, err, ErrAccountInactive)
	})
}

func TestAuthService_ValidateAndLogout(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	active := &model.User{ID: 1, Username: "student1", PasswordHash: string(hash), Role: model.RoleUser, Status: model.UserActive}

	users := new(repoMocks.MockUserRepository)
	sessions := new(repoMocks.MockSessionRepository)
	svc := newAuthForTest(users, sessions)

	users.On("FindByUsername", ctx, "student1").Return(active, nil)
	var sessionID string
	sessions.On("Create", ctx, mock.MatchedBy(func(s *model.Session) bool {
		sessionID = s.ID
		return true
	})).Return(nil)

	_, token, err := svc.Login(ctx, "student1", "secret123")
	assert.NoError(t, err)

	t.Run("valid token resolves the user", func(t *testing.T) {
		sessions.On("FindByID", ctx, sessionID).Return(&model.Session{
			ID:        sessionID,
			UserID:    1,
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil).Once()
		users.On("FindByID", ctx, int64(1)).Return(active, nil)

		u, err := svc.Validate(ctx, token)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
	})

	t.Run("revoked session rejects the token", func(t *testing.T) {
		sessions.On("FindByID", ctx, sessionID).Return(nil, sql.ErrNoRows).Once()

		_, err := svc.Validate(ctx, token)
		assert.ErrorIs(t, err, ErrSessionExpired)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Validate(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("logout deletes the session", func(t *testing.T) {
		sessions.On("Delete", ctx, sessionID).Return(nil).Once()
		assert.NoError(t, svc.Logout(ctx, token))
		sessions.AssertExpectations(t)
	})
}

func TestAuthService_CreateAdmin(t *testing.T) {
	ctx := context.Background()
	users := new(repoMocks.MockUserRepository)
	svc := newAuthForTest(users, new(repoMocks.MockSessionRepository))

	users.On("FindByUsername", ctx, "admin").Return(nil, sql.ErrNoRows)
	users.On("EmailTaken", ctx, "admin@example.com", int64(0)).Return(false, nil)
	users.On("Create", ctx, mock.Anything).Return(&model.User{ID: 9, Username: "admin"}, nil)
	users.On("Update", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.ID == 9 && u.IsSuperuser
	})).Return(nil)

	u, err := svc.CreateAdmin(ctx, "admin", "admin@example.com", "changeme")

	assert.NoError(t, err)
	assert.True(t, u.IsSuperuser)
	users.AssertExpectations(t)
}
