package sqlrepo

import (
	"context"
	"database/sql"
	"time"

	"dfseducation/internal/model"
	"dfseducation/internal/repository"
)

// SessionSQL is the SQL implementation of repository.SessionRepository.
type SessionSQL struct {
	db *sql.DB
}

// NewSessionSQL creates a new SessionSQL repository.
func NewSessionSQL(db *sql.DB) *SessionSQL {
	return &SessionSQL{db: db}
}

var _ repository.SessionRepository = (*SessionSQL)(nil)

func (r *SessionSQL) Create(ctx context.Context, s *model.Session) error {
	const q = `INSERT INTO sessions (id, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, s.ID, s.UserID, s.ExpiresAt, s.CreatedAt)
	return err
}

func (r *SessionSQL) FindByID(ctx context.Context, id string) (*model.Session, error) {
	const q = `SELECT id, user_id, expires_at, created_at FROM sessions WHERE id = ?`
	var s model.Session
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.UserID, &s.ExpiresAt, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionSQL) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM sessions WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// DeleteExpired removes sessions expired at or before the given time.
func (r *SessionSQL) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	const q = `DELETE FROM sessions WHERE expires_at <= ?`
	res, err := r.db.ExecContext(ctx, q, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
