package sqlrepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"dfseducation/internal/model"
	"dfseducation/internal/repository"
)

// ApplicationSQL is the SQL implementation of
// repository.ApplicationRepository.
type ApplicationSQL struct {
	db *sql.DB
}

// NewApplicationSQL creates a new ApplicationSQL repository.
func NewApplicationSQL(db *sql.DB) *ApplicationSQL {
	return &ApplicationSQL{db: db}
}

var _ repository.ApplicationRepository = (*ApplicationSQL)(nil)

const applicationColumns = `app_id, scholarship_id, user_id, office_id, status, applied_date,
passport, photo, graduation_certificate, criminal_record, medical_examination,
letter_of_recommendation_1, letter_of_recommendation_2, study_plan, english_certificate,
rejection_reason, assigned_agent_id, assigned_hq_id, deadline, approved_date, completed_date`

func scanApplication(row interface{ Scan(...any) error }) (*model.Application, error) {
	var a model.Application
	var officeID, agentID, hqID sql.NullInt64
	var rejection sql.NullString
	var deadline, approved, completed sql.NullTime
	if err := row.Scan(
		&a.ID,
		&a.ScholarshipID,
		&a.UserID,
		&officeID,
		&a.Status,
		&a.AppliedDate,
		&a.Documents.Passport,
		&a.Documents.Photo,
		&a.Documents.GraduationCertificate,
		&a.Documents.CriminalRecord,
		&a.Documents.MedicalExamination,
		&a.Documents.LetterOfRecommendation1,
		&a.Documents.LetterOfRecommendation2,
		&a.Documents.StudyPlan,
		&a.Documents.EnglishCertificate,
		&rejection,
		&agentID,
		&hqID,
		&deadline,
		&approved,
		&completed,
	); err != nil {
		return nil, err
	}
	a.OfficeID = idPtr(officeID)
	a.RejectionReason = rejection.String
	a.AssignedAgentID = idPtr(agentID)
	a.AssignedHQID = idPtr(hqID)
	a.Deadline = timePtr(deadline)
	a.ApprovedDate = timePtr(approved)
	a.CompletedDate = timePtr(completed)
	return &a, nil
}

func (r *ApplicationSQL) Create(ctx context.Context, a *model.Application) (*model.Application, error) {
	query := `INSERT INTO applications (scholarship_id, user_id, office_id, status, applied_date,
passport, photo, graduation_certificate, criminal_record, medical_examination,
letter_of_recommendation_1, letter_of_recommendation_2, study_plan, english_certificate,
rejection_reason, assigned_agent_id, assigned_hq_id, deadline, approved_date, completed_date)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		a.ScholarshipID, a.UserID, nullID(a.OfficeID), a.Status, a.AppliedDate,
		a.Documents.Passport, a.Documents.Photo, a.Documents.GraduationCertificate,
		a.Documents.CriminalRecord, a.Documents.MedicalExamination,
		a.Documents.LetterOfRecommendation1, a.Documents.LetterOfRecommendation2,
		a.Documents.StudyPlan, a.Documents.EnglishCertificate,
		a.RejectionReason, nullID(a.AssignedAgentID), nullID(a.AssignedHQID),
		nullTime(a.Deadline), nullTime(a.ApprovedDate), nullTime(a.CompletedDate),
	)
	if err != nil {
		return nil, fmt.Errorf("insert application: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert application id: %w", err)
	}
	a.ID = id
	return a, nil
}

func (r *ApplicationSQL) Update(ctx context.Context, a *model.Application) error {
	query := `UPDATE applications SET office_id = ?, status = ?,
passport = ?, photo = ?, graduation_certificate = ?, criminal_record = ?, medical_examination = ?,
letter_of_recommendation_1 = ?, letter_of_recommendation_2 = ?, study_plan = ?, english_certificate = ?,
rejection_reason = ?, assigned_agent_id = ?, assigned_hq_id = ?,
deadline = ?, approved_date = ?, completed_date = ?
WHERE app_id = ?`

	res, err := r.db.ExecContext(ctx, query,
		nullID(a.OfficeID), a.Status,
		a.Documents.Passport, a.Documents.Photo, a.Documents.GraduationCertificate,
		a.Documents.CriminalRecord, a.Documents.MedicalExamination,
		a.Documents.LetterOfRecommendation1, a.Documents.LetterOfRecommendation2,
		a.Documents.StudyPlan, a.Documents.EnglishCertificate,
		a.RejectionReason, nullID(a.AssignedAgentID), nullID(a.AssignedHQID),
		nullTime(a.Deadline), nullTime(a.ApprovedDate), nullTime(a.CompletedDate),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ApplicationSQL) FindByID(ctx context.Context, id int64) (*model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE app_id = ?`
	return scanApplication(r.db.QueryRowContext(ctx, query, id))
}

func (r *ApplicationSQL) FindForUser(ctx context.Context, userID, scholarshipID int64, draft bool) (*model.Application, error) {
	op := "!="
	if draft {
		op = "="
	}
	query := `SELECT ` + applicationColumns + ` FROM applications
WHERE user_id = ? AND scholarship_id = ? AND status ` + op + ` ?
ORDER BY app_id DESC LIMIT 1`
	return scanApplication(r.db.QueryRowContext(ctx, query, userID, scholarshipID, model.StatusDraft))
}

func applicationWhere(f repository.ApplicationFilter) (string, []any) {
	var conds []string
	var args []any
	if f.UserID != 0 {
		conds = append(conds, "user_id = ?")
		args = append(args, f.UserID)
	}
	if f.OfficeID != 0 {
		conds = append(conds, "office_id = ?")
		args = append(args, f.OfficeID)
	}
	if f.AssignedAgent != 0 {
		conds = append(conds, "assigned_agent_id = ?")
		args = append(args, f.AssignedAgent)
	}
	if f.AssignedHQ != 0 {
		conds = append(conds, "assigned_hq_id = ?")
		args = append(args, f.AssignedHQ)
	}
	if len(f.Statuses) > 0 {
		conds = append(conds, "status IN (?"+strings.Repeat(", ?", len(f.Statuses)-1)+")")
		for _, s := range f.Statuses {
			args = append(args, s)
		}
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *ApplicationSQL) List(ctx context.Context, f repository.ApplicationFilter, pq repository.PageQuery) (*repository.PageResult[model.Application], error) {
	where, args := applicationWhere(f)

	var total int
	countQuery := `SELECT COUNT(*) FROM applications` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}

	query := `SELECT ` + applicationColumns + ` FROM applications` + where +
		` ORDER BY applied_date DESC, app_id DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	items := make([]model.Application, 0, pq.Limit)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Application]{Items: items, Total: total}, nil
}

func (r *ApplicationSQL) CountByStatus(ctx context.Context, f repository.ApplicationFilter) (map[string]int, error) {
	where, args := applicationWhere(f)
	query := `SELECT status, COUNT(*) FROM applications` + where + ` GROUP BY status`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count applications by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *ApplicationSQL) AddHistory(ctx context.Context, h *model.StatusHistory) error {
	query := `INSERT INTO application_status_history (application_id, old_status, new_status, changed_by_id, note, changed_at)
VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		h.ApplicationID, h.OldStatus, h.NewStatus, nullID(h.ChangedByID), h.Note, h.ChangedAt)
	if err != nil {
		return fmt.Errorf("insert status history: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		h.ID = id
	}
	return nil
}

func (r *ApplicationSQL) ListHistory(ctx context.Context, applicationID int64) ([]model.StatusHistory, error) {
	query := `SELECT id, application_id, old_status, new_status, changed_by_id, note, changed_at
FROM application_status_history WHERE application_id = ? ORDER BY changed_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, applicationID)
	if err != nil {
		return nil, fmt.Errorf("list status history: %w", err)
	}
	defer rows.Close()

	var history []model.StatusHistory
	for rows.Next() {
		var h model.StatusHistory
		var oldStatus, note sql.NullString
		var changedBy sql.NullInt64
		if err := rows.Scan(&h.ID, &h.ApplicationID, &oldStatus, &h.NewStatus, &changedBy, &note, &h.ChangedAt); err != nil {
			return nil, err
		}
		h.OldStatus = oldStatus.String
		h.Note = note.String
		h.ChangedByID = idPtr(changedBy)
		history = append(history, h)
	}
	return history, rows.Err()
}

// uploadTable maps an upload kind to its backing table.
func uploadTable(kind string) string {
	if kind == model.UploadKindJW02 {
		return "jw02_forms"
	}
	return "admission_letters"
}

const uploadColumns = `id, application_id, uploaded_by_id, file_key, status, revision_note, uploaded_at, approved_at, approved_by_id`

func scanUpload(kind string, row interface{ Scan(...any) error }) (*model.ReviewedUpload, error) {
	var u model.ReviewedUpload
	var uploadedBy, approvedBy sql.NullInt64
	var note sql.NullString
	var approvedAt sql.NullTime
	if err := row.Scan(
		&u.ID,
		&u.ApplicationID,
		&uploadedBy,
		&u.FileKey,
		&u.Status,
		&note,
		&u.UploadedAt,
		&approvedAt,
		&approvedBy,
	); err != nil {
		return nil, err
	}
	u.Kind = kind
	u.UploadedByID = idPtr(uploadedBy)
	u.RevisionNote = note.String
	u.ApprovedAt = timePtr(approvedAt)
	u.ApprovedByID = idPtr(approvedBy)
	return &u, nil
}

func (r *ApplicationSQL) CreateUpload(ctx context.Context, u *model.ReviewedUpload) (*model.ReviewedUpload, error) {
	query := `INSERT INTO ` + uploadTable(u.Kind) + ` (application_id, uploaded_by_id, file_key, status, revision_note, uploaded_at, approved_at, approved_by_id)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		u.ApplicationID, nullID(u.UploadedByID), u.FileKey, u.Status, u.RevisionNote,
		u.UploadedAt, nullTime(u.ApprovedAt), nullID(u.ApprovedByID))
	if err != nil {
		return nil, fmt.Errorf("insert %s upload: %w", u.Kind, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert %s upload id: %w", u.Kind, err)
	}
	u.ID = id
	return u, nil
}

func (r *ApplicationSQL) UpdateUpload(ctx context.Context, u *model.ReviewedUpload) error {
	query := `UPDATE ` + uploadTable(u.Kind) + ` SET file_key = ?, status = ?, revision_note = ?, uploaded_at = ?, approved_at = ?, approved_by_id = ?
WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		u.FileKey, u.Status, u.RevisionNote, u.UploadedAt,
		nullTime(u.ApprovedAt), nullID(u.ApprovedByID), u.ID)
	if err != nil {
		return fmt.Errorf("update %s upload: %w", u.Kind, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ApplicationSQL) FindUploadByID(ctx context.Context, kind string, id int64) (*model.ReviewedUpload, error) {
	query := `SELECT ` + uploadColumns + ` FROM ` + uploadTable(kind) + ` WHERE id = ?`
	return scanUpload(kind, r.db.QueryRowContext(ctx, query, id))
}

func (r *ApplicationSQL) LatestUpload(ctx context.Context, kind string, applicationID int64, status string) (*model.ReviewedUpload, error) {
	query := `SELECT ` + uploadColumns + ` FROM ` + uploadTable(kind) + ` WHERE application_id = ?`
	args := []any{applicationID}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY uploaded_at DESC, id DESC LIMIT 1`
	return scanUpload(kind, r.db.QueryRowContext(ctx, query, args...))
}

func (r *ApplicationSQL) ListUploadsByStatus(ctx context.Context, kind, status string) ([]model.ReviewedUpload, error) {
	query := `SELECT ` + uploadColumns + ` FROM ` + uploadTable(kind) + ` WHERE status = ? ORDER BY uploaded_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("list %s uploads: %w", kind, err)
	}
	defer rows.Close()

	var uploads []model.ReviewedUpload
	for rows.Next() {
		u, err := scanUpload(kind, rows)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, *u)
	}
	return uploads, rows.Err()
}
