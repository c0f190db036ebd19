package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dfseducation/internal/model"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{model.StatusDraft, model.StatusSubmitted, true},
		{model.StatusSubmitted, model.StatusUnderReview, true},
		{model.StatusSubmitted, model.StatusApproved, true},
		{model.StatusSubmitted, model.StatusComplete, false},
		{model.StatusUnderReview, model.StatusDocumentsVerified, true},
		{model.StatusDocumentsVerified, model.StatusPaymentVerified, true},
		{model.StatusPaymentVerified, model.StatusRejected, true},
		{model.StatusApproved, model.StatusInProgress, true},
		{model.StatusInProgress, model.StatusLetterUploaded, true},
		{model.StatusLetterUploaded, model.StatusLetterApproved, true},
		{model.StatusLetterUploaded, model.StatusLetterPending, true},
		{model.StatusLetterPending, model.StatusLetterUploaded, true},
		{model.StatusLetterApproved, model.StatusJW02Uploaded, true},
		{model.StatusJW02Uploaded, model.StatusJW02Approved, true},
		{model.StatusJW02Uploaded, model.StatusJW02Pending, true},
		{model.StatusJW02Pending, model.StatusJW02Uploaded, true},
		{model.StatusJW02Approved, model.StatusComplete, true},
		{model.StatusComplete, model.StatusDraft, false},
		{model.StatusRejected, model.StatusSubmitted, false},
		{model.StatusDraft, model.StatusApproved, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestProgressFor(t *testing.T) {
	t.Run("draft requires action", func(t *testing.T) {
		p := ProgressFor(model.StatusDraft, false)
		assert.Equal(t, 0, p.Step)
		assert.Equal(t, 0, p.Percent)
		assert.True(t, p.ActionRequired)
		assert.Equal(t, "Complete Application", p.ActionLabel)
	})

	t.Run("documents verified asks for payment", func(t *testing.T) {
		p := ProgressFor(model.StatusDocumentsVerified, false)
		assert.Equal(t, 3, p.Step)
		assert.True(t, p.ActionRequired)
		assert.Equal(t, "Make Payment", p.ActionLabel)
	})

	t.Run("receipt uploaded suppresses the payment action", func(t *testing.T) {
		p := ProgressFor(model.StatusDocumentsVerified, true)
		assert.False(t, p.ActionRequired)
		assert.Equal(t, "Payment submitted. Waiting for verification.", p.Message)
	})

	t.Run("complete is full progress", func(t *testing.T) {
		p := ProgressFor(model.StatusComplete, false)
		assert.Equal(t, 11, p.Step)
		assert.Equal(t, 100, p.Percent)
		assert.False(t, p.ActionRequired)
	})

	t.Run("rejected has no progress", func(t *testing.T) {
		p := ProgressFor(model.StatusRejected, false)
		assert.Equal(t, -1, p.Step)
		assert.Equal(t, 0, p.Percent)
	})

	t.Run("revision statuses share the upload step", func(t *testing.T) {
		assert.Equal(t, 7, ProgressFor(model.StatusLetterPending, false).Step)
		assert.Equal(t, 9, ProgressFor(model.StatusJW02Pending, false).Step)
	})
}
