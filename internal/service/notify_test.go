package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dfseducation/internal/model"
	repoMocks "dfseducation/internal/repository/mocks"
)

type failingMailer struct{ sent int }

func (m *failingMailer) Send(to, subject, body string) error {
	m.sent++
	return errors.New("dial tcp: connection refused")
}

func TestNotifier_Notify(t *testing.T) {
	ctx := context.Background()

	t.Run("mail failure does not fail the notification", func(t *testing.T) {
		notifications := new(repoMocks.MockNotificationRepository)
		users := new(repoMocks.MockUserRepository)
		mail := &failingMailer{}
		n := NewNotifier(notifications, users, mail)

		notifications.On("Create", mock.Anything, mock.MatchedBy(func(x *model.Notification) bool {
			return x.UserID == 5 && x.Title == "Application submitted"
		})).Return(&model.Notification{ID: 1}, nil).Once()
		users.On("FindByID", mock.Anything, int64(5)).Return(
			&model.User{ID: 5, Email: "student@example.com"}, nil).Once()

		err := n.Notify(ctx, 5, "Application submitted", "Your application was received.", "/student/applications/1")
		require.NoError(t, err)
		assert.Equal(t, 1, mail.sent)
		notifications.AssertExpectations(t)
	})

	t.Run("users without email skip the mail", func(t *testing.T) {
		notifications := new(repoMocks.MockNotificationRepository)
		users := new(repoMocks.MockUserRepository)
		mail := &failingMailer{}
		n := NewNotifier(notifications, users, mail)

		notifications.On("Create", mock.Anything, mock.Anything).Return(&model.Notification{ID: 2}, nil).Once()
		users.On("FindByID", mock.Anything, int64(6)).Return(&model.User{ID: 6}, nil).Once()

		require.NoError(t, n.Notify(ctx, 6, "t", "m", ""))
		assert.Zero(t, mail.sent)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		notifications := new(repoMocks.MockNotificationRepository)
		users := new(repoMocks.MockUserRepository)
		n := NewNotifier(notifications, users, &failingMailer{})

		notifications.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("disk full")).Once()

		assert.Error(t, n.Notify(ctx, 5, "t", "m", ""))
	})
}
