package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"dfseducation/internal/model"
	"dfseducation/internal/repository"
)

// RegisterInput holds the fields accepted at registration. Every new
// account gets the student role; staff roles are granted by an
// administrator.
type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// ProfileUpdate holds the mutable profile fields.
type ProfileUpdate struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// AuthService implements account and session use cases. Access tokens are
// signed JWTs that embed a server-side session ID, so logout and the
// clearsessions job revoke them immediately.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	// Login verifies credentials and returns the user plus a signed
	// access token.
	Login(ctx context.Context, username, password string) (*model.User, string, error)
	Logout(ctx context.Context, token string) error
	// Validate parses a token, checks its backing session, and returns
	// the authenticated user.
	Validate(ctx context.Context, token string) (*model.User, error)
	Profile(ctx context.Context, userID int64) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int64, in ProfileUpdate) (*model.User, error)
	ChangePassword(ctx context.Context, userID int64, current, next string) error
	// CreateAdmin creates an active superuser account. Used by the
	// createadmin command.
	CreateAdmin(ctx context.Context, username, email, password string) (*model.User, error)
	// ClearExpiredSessions deletes sessions past their expiry and returns
	// how many were removed.
	ClearExpiredSessions(ctx context.Context) (int64, error)
	// ListUsers returns accounts, optionally filtered by role.
	ListUsers(ctx context.Context, role string, limit, offset int) (*repository.PageResult[model.User], error)
}

type authService struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	secret     []byte
	sessionTTL time.Duration
	now        func() time.Time
}

// NewAuthService constructs an AuthService signing tokens with secret.
func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, secret string, sessionTTL time.Duration) AuthService {
	return &authService{
		users:      users,
		sessions:   sessions,
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

type accessClaims struct {
	SessionID string `json:"sid"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username, email, and password", ErrMissingFields)
	}

	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	taken, err := s.users.EmailTaken(ctx, in.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	return s.users.Create(ctx, &model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Role:         model.RoleUser,
		Status:       model.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (s *authService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	u, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !u.IsActive() {
		return nil, "", ErrAccountInactive
	}

	now := s.now().UTC()
	sess := &model.Session{
		ID:        uuid.New().String(),
		UserID:    u.ID,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}

	claims := accessClaims{
		SessionID: sess.ID,
		Role:      u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return u, token, nil
}

func (s *authService) parse(token string) (*accessClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &accessClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*accessClaims)
	if !ok || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return err
	}
	return s.sessions.Delete(ctx, claims.SessionID)
}

func (s *authService) Validate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.FindByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionExpired
		}
		return nil, err
	}
	if sess.Expired(s.now().UTC()) {
		_ = s.sessions.Delete(ctx, sess.ID)
		return nil, ErrSessionExpired
	}

	u, err := s.users.FindByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if !u.IsActive() {
		return nil, ErrAccountInactive
	}
	return u, nil
}

func (s *authService) Profile(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID int64, in ProfileUpdate) (*model.User, error) {
	u, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if email := strings.TrimSpace(in.Email); email != "" && email != u.Email {
		taken, err := s.users.EmailTaken(ctx, email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
		u.Email = email
	}
	if in.FirstName != "" {
		u.FirstName = in.FirstName
	}
	if in.LastName != "" {
		u.LastName = in.LastName
	}
	if in.Phone != "" {
		u.Phone = in.Phone
	}
	u.UpdatedAt = s.now().UTC()

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	u, err := s.Profile(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = s.now().UTC()
	return s.users.Update(ctx, u)
}

func (s *authService) CreateAdmin(ctx context.Context, username, email, password string) (*model.User, error) {
	u, err := s.Register(ctx, RegisterInput{Username: username, Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	u.IsSuperuser = true
	u.UpdatedAt = s.now().UTC()
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *authService) ClearExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, s.now().UTC())
}

func (s *authService) ListUsers(ctx context.Context, role string, limit, offset int) (*repository.PageResult[model.User], error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.List(ctx, role, repository.PageQuery{Limit: limit, Offset: offset})
}
