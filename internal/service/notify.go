package service

import (
	"context"
	"log"
	"time"

	"dfseducation/internal/mailer"
	"dfseducation/internal/model"
	"dfseducation/internal/repository"
)

// NotificationListResult is the service-level DTO for paginated
// notifications.
type NotificationListResult struct {
	Items  []model.Notification `json:"data"`
	Total  int                  `json:"total"`
	Unread int                  `json:"unread"`
}

// Notifier creates in-app notifications and mirrors them by email.
// Mail delivery is best-effort: a failed send is logged and never
// propagates to the caller.
type Notifier interface {
	Notify(ctx context.Context, userID int64, title, message, link string) error
	List(ctx context.Context, userID int64, limit, offset int) (*NotificationListResult, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

type notifier struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	mail          mailer.Mailer
}

// NewNotifier constructs a Notifier.
func NewNotifier(notifications repository.NotificationRepository, users repository.UserRepository, mail mailer.Mailer) Notifier {
	return &notifier{notifications: notifications, users: users, mail: mail}
}

func (s *notifier) Notify(ctx context.Context, userID int64, title, message, link string) error {
	n := &model.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		Link:      link,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.notifications.Create(ctx, n); err != nil {
		return err
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		log.Printf("notification mail skipped, user %d lookup failed: %v", userID, err)
		return nil
	}
	if u.Email == "" {
		return nil
	}
	if err := s.mail.Send(u.Email, title, message); err != nil {
		log.Printf("notification mail to %s failed: %v", u.Email, err)
	}
	return nil
}

func (s *notifier) List(ctx context.Context, userID int64, limit, offset int) (*NotificationListResult, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.notifications.ListByUser(ctx, userID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	unread, err := s.notifications.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &NotificationListResult{Items: res.Items, Total: res.Total, Unread: unread}, nil
}

func (s *notifier) MarkRead(ctx context.Context, id, userID int64) error {
	return s.notifications.MarkRead(ctx, id, userID)
}

func (s *notifier) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.notifications.MarkAllRead(ctx, userID)
}
