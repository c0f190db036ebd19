package repository

import (
	"context"

	"dfseducation/internal/model"
)

// OfficeRepository defines data access for branch offices and their
// region routing table.
type OfficeRepository interface {
	Create(ctx context.Context, o *model.Office) (*model.Office, error)
	Update(ctx context.Context, o *model.Office) error
	FindByID(ctx context.Context, id int64) (*model.Office, error)
	List(ctx context.Context, activeOnly bool) ([]model.Office, error)
	// ClearDefaultExcept unsets is_default on every office but the given
	// one, preserving the single-default invariant.
	ClearDefaultExcept(ctx context.Context, id int64) error

	CreateRegion(ctx context.Context, r *model.OfficeRegion) (*model.OfficeRegion, error)
	DeleteRegion(ctx context.Context, id int64) error
	ListRegions(ctx context.Context, officeID int64) ([]model.OfficeRegion, error)

	// FindForLocation returns the best-matching active office for a
	// country/city: city match first, then country-wide, then the default
	// office. sql.ErrNoRows when nothing matches.
	FindForLocation(ctx context.Context, country, city string) (*model.Office, error)
}

// SettingsRepository stores the site-settings singleton.
type SettingsRepository interface {
	// Get returns the settings row, creating it with defaults on first use.
	Get(ctx context.Context) (*model.SiteSettings, error)
	Update(ctx context.Context, s *model.SiteSettings) error
}
