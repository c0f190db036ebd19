package sqlrepo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"dfseducation/internal/model"
	"dfseducation/internal/repository"
)

func applicationRows(id int64, status string) *sqlmock.Rows {
	cols := []string{"app_id", "scholarship_id", "user_id", "office_id", "status", "applied_date",
		"passport", "photo", "graduation_certificate", "criminal_record", "medical_examination",
		"letter_of_recommendation_1", "letter_of_recommendation_2", "study_plan", "english_certificate",
		"rejection_reason", "assigned_agent_id", "assigned_hq_id", "deadline", "approved_date", "completed_date"}
	return sqlmock.NewRows(cols).
		AddRow(id, 2, 5, nil, status, time.Now().UTC(),
			"", "", "", "", "", "", "", "", "",
			nil, nil, nil, nil, nil, nil)
}

func TestApplicationSQL_FindForUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewApplicationSQL(db)
	ctx := context.Background()

	t.Run("draft", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM applications\\s+WHERE user_id = \\? AND scholarship_id = \\? AND status = \\?").
			WithArgs(int64(5), int64(2), model.StatusDraft).
			WillReturnRows(applicationRows(1, model.StatusDraft))

		a, err := repo.FindForUser(ctx, 5, 2, true)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusDraft, a.Status)
	})

	t.Run("non draft", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM applications\\s+WHERE user_id = \\? AND scholarship_id = \\? AND status != \\?").
			WithArgs(int64(5), int64(2), model.StatusDraft).
			WillReturnRows(applicationRows(2, model.StatusSubmitted))

		a, err := repo.FindForUser(ctx, 5, 2, false)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusSubmitted, a.Status)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationSQL_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewApplicationSQL(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM applications WHERE user_id = \\?").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM applications WHERE user_id = \\? ORDER BY applied_date DESC").
		WithArgs(int64(5), 10, 0).
		WillReturnRows(applicationRows(1, model.StatusSubmitted))

	res, err := repo.List(ctx, repository.ApplicationFilter{UserID: 5}, repository.PageQuery{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationSQL_CountByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewApplicationSQL(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT status, COUNT\\(\\*\\) FROM applications GROUP BY status").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow(model.StatusSubmitted, 3).
			AddRow(model.StatusComplete, 1))

	counts, err := repo.CountByStatus(ctx, repository.ApplicationFilter{})

	assert.NoError(t, err)
	assert.Equal(t, 3, counts[model.StatusSubmitted])
	assert.Equal(t, 1, counts[model.StatusComplete])
}

func TestUploadTable(t *testing.T) {
	assert.Equal(t, "admission_letters", uploadTable(model.UploadKindLetter))
	assert.Equal(t, "jw02_forms", uploadTable(model.UploadKindJW02))
}

func TestApplicationSQL_CreateUpload(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewApplicationSQL(db)
	ctx := context.Background()

	hq := int64(8)
	u := &model.ReviewedUpload{
		Kind:          model.UploadKindJW02,
		ApplicationID: 1,
		UploadedByID:  &hq,
		FileKey:       "jw02_forms/app_1/form.pdf",
		Status:        model.UploadPendingVerification,
		UploadedAt:    time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO jw02_forms").
		WithArgs(u.ApplicationID, hq, u.FileKey, u.Status, "", u.UploadedAt, nil, nil).
		WillReturnResult(sqlmock.NewResult(4, 1))

	result, err := repo.CreateUpload(ctx, u)

	assert.NoError(t, err)
	assert.Equal(t, int64(4), result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
