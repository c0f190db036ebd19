package sqlrepo

import (
	"context"
	"database/sql"

	"dfseducation/internal/model"
	"dfseducation/internal/repository"
)

// UserSQL is the SQL implementation of repository.UserRepository.
type UserSQL struct {
	db *sql.DB
}

// NewUserSQL creates a new UserSQL repository.
func NewUserSQL(db *sql.DB) *UserSQL {
	return &UserSQL{db: db}
}

var _ repository.UserRepository = (*UserSQL)(nil)

const userColumns = `id, username, email, password_hash, first_name, last_name, phone, role, status, is_superuser, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Phone,
		&u.Role,
		&u.Status,
		&u.IsSuperuser,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user row and returns the stored record.
func (r *UserSQL) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (username, email, password_hash, first_name, last_name, phone, role, status, is_superuser, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := r.db.ExecContext(ctx, q,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.FirstName,
		u.LastName,
		u.Phone,
		u.Role,
		u.Status,
		u.IsSuperuser,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *u
	out.ID = id
	return &out, nil
}

// FindByID fetches a single user by primary key.
func (r *UserSQL) FindByID(ctx context.Context, id int64) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

// FindByUsername fetches a single user by username.
func (r *UserSQL) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	return scanUser(r.db.QueryRowContext(ctx, q, username))
}

// EmailTaken reports whether another user already uses the email address.
func (r *UserSQL) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	const q = `SELECT COUNT(*) FROM users WHERE email = ? AND id != ?`
	var count int
	if err := r.db.QueryRowContext(ctx, q, email, excludeID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update persists mutable fields of an existing user.
func (r *UserSQL) Update(ctx context.Context, u *model.User) error {
	const q = `
		UPDATE users
		SET email = ?, password_hash = ?, first_name = ?, last_name = ?, phone = ?, role = ?, status = ?, is_superuser = ?, updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, q,
		u.Email,
		u.PasswordHash,
		u.FirstName,
		u.LastName,
		u.Phone,
		u.Role,
		u.Status,
		u.IsSuperuser,
		u.UpdatedAt,
		u.ID,
	)
	return err
}

// FirstActiveByRole returns the lowest-ID active user with the role.
func (r *UserSQL) FirstActiveByRole(ctx context.Context, role string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE role = ? AND status = 'active' ORDER BY id ASC LIMIT 1`
	return scanUser(r.db.QueryRowContext(ctx, q, role))
}

// List returns users, optionally filtered by role, with a total count.
func (r *UserSQL) List(ctx context.Context, role string, pq repository.PageQuery) (*repository.PageResult[model.User], error) {
	where := ""
	args := []any{}
	if role != "" {
		where = ` WHERE role = ?`
		args = append(args, role)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	listArgs := append(args, pq.Limit, pq.Offset)
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users`+where+` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, listArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.User]{Items: items, Total: total}, nil
}
