package sqlrepo

import (
	"context"
	"database/sql"

	"dfseducation/internal/model"
	"dfseducation/internal/repository"
)

// ScholarshipSQL is the SQL implementation of
// repository.ScholarshipRepository.
type ScholarshipSQL struct {
	db *sql.DB
}

// NewScholarshipSQL creates a new ScholarshipSQL repository.
func NewScholarshipSQL(db *sql.DB) *ScholarshipSQL {
	return &ScholarshipSQL{db: db}
}

var _ repository.ScholarshipRepository = (*ScholarshipSQL)(nil)

const scholarshipColumns = `id, name, description, city, major, degree, language, scholarship_type, deadline, semester, price, eligibility, note, agent_commission, hq_commission`

func scanScholarship(row interface{ Scan(...any) error }) (*model.Scholarship, error) {
	var s model.Scholarship
	var note sql.NullString
	if err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Description,
		&s.City,
		&s.Major,
		&s.Degree,
		&s.Language,
		&s.ScholarshipType,
		&s.Deadline,
		&s.Semester,
		&s.Price,
		&s.Eligibility,
		&note,
		&s.AgentCommission,
		&s.HQCommission,
	); err != nil {
		return nil, err
	}
	s.Note = note.String
	return &s, nil
}

func (r *ScholarshipSQL) Create(ctx context.Context, s *model.Scholarship) (*model.Scholarship, error) {
	const q = `
		INSERT INTO scholarships (name, description, city, major, degree, language, scholarship_type, deadline, semester, price, eligibility, note, agent_commission, hq_commission)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := r.db.ExecContext(ctx, q,
		s.Name, s.Description, s.City, s.Major, s.Degree, s.Language,
		s.ScholarshipType, s.Deadline, s.Semester, s.Price, s.Eligibility,
		s.Note, s.AgentCommission, s.HQCommission,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *s
	out.ID = id
	return &out, nil
}

func (r *ScholarshipSQL) FindByID(ctx context.Context, id int64) (*model.Scholarship, error) {
	const q = `SELECT ` + scholarshipColumns + ` FROM scholarships WHERE id = ?`
	return scanScholarship(r.db.QueryRowContext(ctx, q, id))
}

func (r *ScholarshipSQL) Update(ctx context.Context, s *model.Scholarship) error {
	const q = `
		UPDATE scholarships
		SET name = ?, description = ?, city = ?, major = ?, degree = ?, language = ?, scholarship_type = ?, deadline = ?, semester = ?, price = ?, eligibility = ?, note = ?, agent_commission = ?, hq_commission = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, q,
		s.Name, s.Description, s.City, s.Major, s.Degree, s.Language,
		s.ScholarshipType, s.Deadline, s.Semester, s.Price, s.Eligibility,
		s.Note, s.AgentCommission, s.HQCommission, s.ID,
	)
	return err
}

func (r *ScholarshipSQL) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM scholarships WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// List returns scholarships matching the filter, ordered by deadline
// descending.
func (r *ScholarshipSQL) List(ctx context.Context, f repository.ScholarshipFilter, pq repository.PageQuery) (*repository.PageResult[model.Scholarship], error) {
	where := ` WHERE 1=1`
	args := []any{}
	if f.Query != "" {
		like := "%" + f.Query + "%"
		where += ` AND (name LIKE ? OR city LIKE ? OR major LIKE ? OR description LIKE ?)`
		args = append(args, like, like, like, like)
	}
	if f.Degree != "" {
		where += ` AND degree = ?`
		args = append(args, f.Degree)
	}
	if f.Type != "" {
		where += ` AND scholarship_type = ?`
		args = append(args, f.Type)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM scholarships`+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	listArgs := append(args, pq.Limit, pq.Offset)
	rows, err := r.db.QueryContext(ctx, `SELECT `+scholarshipColumns+` FROM scholarships`+where+` ORDER BY deadline DESC, id DESC LIMIT ? OFFSET ?`, listArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Scholarship, 0)
	for rows.Next() {
		s, err := scanScholarship(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Scholarship]{Items: items, Total: total}, nil
}
