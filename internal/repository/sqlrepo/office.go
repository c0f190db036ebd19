package sqlrepo

import (
	"context"
	"database/sql"
	"fmt"

	"dfseducation/internal/model"
	"dfseducation/internal/repository"
)

// OfficeSQL is the SQL implementation of repository.OfficeRepository.
type OfficeSQL struct {
	db *sql.DB
}

// NewOfficeSQL creates a new OfficeSQL repository.
func NewOfficeSQL(db *sql.DB) *OfficeSQL {
	return &OfficeSQL{db: db}
}

var _ repository.OfficeRepository = (*OfficeSQL)(nil)

const officeColumns = `id, name, code, city, country, address, phone, email, is_default, is_active, created_at`

func scanOffice(row interface{ Scan(...any) error }) (*model.Office, error) {
	var o model.Office
	var address sql.NullString
	if err := row.Scan(
		&o.ID,
		&o.Name,
		&o.Code,
		&o.City,
		&o.Country,
		&address,
		&o.Phone,
		&o.Email,
		&o.IsDefault,
		&o.IsActive,
		&o.CreatedAt,
	); err != nil {
		return nil, err
	}
	o.Address = address.String
	return &o, nil
}

func (r *OfficeSQL) Create(ctx context.Context, o *model.Office) (*model.Office, error) {
	query := `INSERT INTO offices (name, code, city, country, address, phone, email, is_default, is_active, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		o.Name, o.Code, o.City, o.Country, o.Address, o.Phone, o.Email,
		o.IsDefault, o.IsActive, o.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert office: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert office id: %w", err)
	}
	o.ID = id
	return o, nil
}

func (r *OfficeSQL) Update(ctx context.Context, o *model.Office) error {
	query := `UPDATE offices SET name = ?, code = ?, city = ?, country = ?, address = ?, phone = ?, email = ?, is_default = ?, is_active = ?
WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		o.Name, o.Code, o.City, o.Country, o.Address, o.Phone, o.Email,
		o.IsDefault, o.IsActive, o.ID)
	if err != nil {
		return fmt.Errorf("update office: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *OfficeSQL) FindByID(ctx context.Context, id int64) (*model.Office, error) {
	query := `SELECT ` + officeColumns + ` FROM offices WHERE id = ?`
	return scanOffice(r.db.QueryRowContext(ctx, query, id))
}

func (r *OfficeSQL) List(ctx context.Context, activeOnly bool) ([]model.Office, error) {
	query := `SELECT ` + officeColumns + ` FROM offices`
	var args []any
	if activeOnly {
		query += ` WHERE is_active = ?`
		args = append(args, true)
	}
	query += ` ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list offices: %w", err)
	}
	defer rows.Close()

	var offices []model.Office
	for rows.Next() {
		o, err := scanOffice(rows)
		if err != nil {
			return nil, err
		}
		offices = append(offices, *o)
	}
	return offices, rows.Err()
}

func (r *OfficeSQL) ClearDefaultExcept(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE offices SET is_default = ? WHERE id != ?`, false, id)
	if err != nil {
		return fmt.Errorf("clear default offices: %w", err)
	}
	return nil
}

func (r *OfficeSQL) CreateRegion(ctx context.Context, reg *model.OfficeRegion) (*model.OfficeRegion, error) {
	query := `INSERT INTO office_regions (office_id, country_code, country_name, city) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, reg.OfficeID, reg.CountryCode, reg.CountryName, reg.City)
	if err != nil {
		return nil, fmt.Errorf("insert office region: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert office region id: %w", err)
	}
	reg.ID = id
	return reg, nil
}

func (r *OfficeSQL) DeleteRegion(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM office_regions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete office region: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *OfficeSQL) ListRegions(ctx context.Context, officeID int64) ([]model.OfficeRegion, error) {
	query := `SELECT id, office_id, country_code, country_name, city FROM office_regions`
	var args []any
	if officeID != 0 {
		query += ` WHERE office_id = ?`
		args = append(args, officeID)
	}
	query += ` ORDER BY country_code ASC, city ASC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list office regions: %w", err)
	}
	defer rows.Close()

	var regions []model.OfficeRegion
	for rows.Next() {
		var reg model.OfficeRegion
		if err := rows.Scan(&reg.ID, &reg.OfficeID, &reg.CountryCode, &reg.CountryName, &reg.City); err != nil {
			return nil, err
		}
		regions = append(regions, reg)
	}
	return regions, rows.Err()
}

func (r *OfficeSQL) FindForLocation(ctx context.Context, country, city string) (*model.Office, error) {
	// City-specific mapping wins over a country-wide one.
	query := `SELECT o.id, o.name, o.code, o.city, o.country, o.address, o.phone, o.email, o.is_default, o.is_active, o.created_at
FROM offices o
JOIN office_regions reg ON reg.office_id = o.id
WHERE o.is_active = ? AND (reg.country_code = ? OR reg.country_name = ?) AND (reg.city = ? OR reg.city = '')
ORDER BY CASE WHEN reg.city = ? THEN 0 ELSE 1 END
LIMIT 1`
	o, err := scanOffice(r.db.QueryRowContext(ctx, query, true, country, country, city, city))
	if err == nil {
		return o, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("find office for location: %w", err)
	}
	fallback := `SELECT ` + officeColumns + ` FROM offices WHERE is_active = ? AND is_default = ? LIMIT 1`
	return scanOffice(r.db.QueryRowContext(ctx, fallback, true, true))
}
