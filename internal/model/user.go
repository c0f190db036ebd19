package model

import "time"

// Roles assigned to accounts. Registration always produces RoleUser;
// the other roles are invitation-only and granted by an administrator.
const (
	RoleUser         = "user"
	RoleOffice       = "office"
	RoleAgent        = "agent"
	RoleHeadquarters = "headquarters"
)

// Account statuses.
const (
	UserActive    = "active"
	UserInactive  = "inactive"
	UserSuspended = "suspended"
)

// User is an account in the system. PasswordHash holds a bcrypt hash and
// is never serialized.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	IsSuperuser  bool      `json:"is_superuser"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsActive reports whether the account may log in.
func (u *User) IsActive() bool {
	return u.Status == UserActive
}

// Session is a server-side login session. Access tokens embed the session
// ID so logout and the clearsessions job can revoke them.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Notification is an in-app message for a user. A copy is also sent by
// email when the mailer is configured.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      string    `json:"link,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
