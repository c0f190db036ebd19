package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dfseducation/internal/model"
	"dfseducation/internal/repository"
)

// SettingsSQL is the SQL implementation of repository.SettingsRepository.
// Settings live in a single row with id = 1.
type SettingsSQL struct {
	db *sql.DB
}

// NewSettingsSQL creates a new SettingsSQL repository.
func NewSettingsSQL(db *sql.DB) *SettingsSQL {
	return &SettingsSQL{db: db}
}

var _ repository.SettingsRepository = (*SettingsSQL)(nil)

const settingsColumns = `site_name, tagline, logo_key, favicon_key, meta_description, meta_keywords, og_image_key, contact_email, contact_phone, address, facebook_url, instagram_url, twitter_url, linkedin_url, youtube_url, whatsapp_number, google_analytics_id, footer_text`

func (r *SettingsSQL) Get(ctx context.Context) (*model.SiteSettings, error) {
	query := `SELECT ` + settingsColumns + ` FROM site_settings WHERE id = 1`
	var s model.SiteSettings
	var address sql.NullString
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.SiteName,
		&s.Tagline,
		&s.LogoKey,
		&s.FaviconKey,
		&s.MetaDescription,
		&s.MetaKeywords,
		&s.OGImageKey,
		&s.ContactEmail,
		&s.ContactPhone,
		&address,
		&s.FacebookURL,
		&s.InstagramURL,
		&s.TwitterURL,
		&s.LinkedInURL,
		&s.YoutubeURL,
		&s.WhatsappNumber,
		&s.GoogleAnalyticsID,
		&s.FooterText,
	)
	if err == nil {
		s.Address = address.String
		return &s, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find site settings: %w", err)
	}

	defaults := model.DefaultSiteSettings()
	if err := r.insert(ctx, defaults); err != nil {
		return nil, err
	}
	return defaults, nil
}

func (r *SettingsSQL) insert(ctx context.Context, s *model.SiteSettings) error {
	query := `INSERT INTO site_settings (id, ` + settingsColumns + `)
VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, settingsArgs(s)...)
	if err != nil {
		return fmt.Errorf("insert site settings: %w", err)
	}
	return nil
}

func (r *SettingsSQL) Update(ctx context.Context, s *model.SiteSettings) error {
	query := `UPDATE site_settings SET site_name = ?, tagline = ?, logo_key = ?, favicon_key = ?, meta_description = ?, meta_keywords = ?, og_image_key = ?, contact_email = ?, contact_phone = ?, address = ?, facebook_url = ?, instagram_url = ?, twitter_url = ?, linkedin_url = ?, youtube_url = ?, whatsapp_number = ?, google_analytics_id = ?, footer_text = ?
WHERE id = 1`
	res, err := r.db.ExecContext(ctx, query, settingsArgs(s)...)
	if err != nil {
		return fmt.Errorf("update site settings: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return r.insert(ctx, s)
	}
	return nil
}

func settingsArgs(s *model.SiteSettings) []any {
	return []any{
		s.SiteName, s.Tagline, s.LogoKey, s.FaviconKey, s.MetaDescription,
		s.MetaKeywords, s.OGImageKey, s.ContactEmail, s.ContactPhone, s.Address,
		s.FacebookURL, s.InstagramURL, s.TwitterURL, s.LinkedInURL, s.YoutubeURL,
		s.WhatsappNumber, s.GoogleAnalyticsID, s.FooterText,
	}
}
