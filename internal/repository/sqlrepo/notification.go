package sqlrepo

import (
	"context"
	"database/sql"

	"dfseducation/internal/model"
	"dfseducation/internal/repository"
)

// NotificationSQL is the SQL implementation of
// repository.NotificationRepository.
type NotificationSQL struct {
	db *sql.DB
}

// NewNotificationSQL creates a new NotificationSQL repository.
func NewNotificationSQL(db *sql.DB) *NotificationSQL {
	return &NotificationSQL{db: db}
}

var _ repository.NotificationRepository = (*NotificationSQL)(nil)

const notificationColumns = `id, user_id, title, message, link, is_read, created_at`

func scanNotification(row interface{ Scan(...any) error }) (*model.Notification, error) {
	var n model.Notification
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Link, &n.IsRead, &n.CreatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationSQL) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	const q = `
		INSERT INTO notifications (user_id, title, message, link, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	res, err := r.db.ExecContext(ctx, q, n.UserID, n.Title, n.Message, n.Link, n.IsRead, n.CreatedAt)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *n
	out.ID = id
	return &out, nil
}

func (r *NotificationSQL) FindByID(ctx context.Context, id, userID int64) (*model.Notification, error) {
	const q = `SELECT ` + notificationColumns + ` FROM notifications WHERE id = ? AND user_id = ?`
	return scanNotification(r.db.QueryRowContext(ctx, q, id, userID))
}

func (r *NotificationSQL) ListByUser(ctx context.Context, userID int64, pq repository.PageQuery) (*repository.PageResult[model.Notification], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, err
	}

	const q = `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, userID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Notification]{Items: items, Total: total}, nil
}

func (r *NotificationSQL) MarkRead(ctx context.Context, id, userID int64) error {
	const q = `UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?`
	_, err := r.db.ExecContext(ctx, q, id, userID)
	return err
}

func (r *NotificationSQL) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	const q = `UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0`
	res, err := r.db.ExecContext(ctx, q, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *NotificationSQL) UnreadCount(ctx context.Context, userID int64) (int, error) {
	const q = `SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0`
	var count int
	if err := r.db.QueryRowContext(ctx, q, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
