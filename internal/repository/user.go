package repository

import (
	"context"
	"time"

	"dfseducation/internal/model"
)

// UserRepository defines data access for accounts. Strictly persistence
// operations, no business logic.
type UserRepository interface {
	// Create inserts a new user and returns the stored record with its ID.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByID returns a user by primary key.
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// FindByUsername returns a user by its unique username.
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// EmailTaken reports whether another user (id != excludeID) already
	// uses the given email address.
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)

	// Update persists mutable profile fields of an existing user.
	Update(ctx context.Context, u *model.User) error

	// FirstActiveByRole returns the lowest-ID active user holding the
	// given role, or sql.ErrNoRows when none exists.
	FirstActiveByRole(ctx context.Context, role string) (*model.User, error)

	// List returns users, optionally filtered by role ("" for all).
	List(ctx context.Context, role string, pq PageQuery) (*PageResult[model.User], error)
}

// SessionRepository stores login sessions backing issued access tokens.
type SessionRepository interface {
	Create(ctx context.Context, s *model.Session) error
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error
	// DeleteExpired removes sessions whose expiry is at or before the
	// given time and returns how many rows were deleted.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// NotificationRepository stores in-app notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)
	// FindByID returns the notification only when it belongs to userID.
	FindByID(ctx context.Context, id, userID int64) (*model.Notification, error)
	ListByUser(ctx context.Context, userID int64, pq PageQuery) (*PageResult[model.Notification], error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
}
