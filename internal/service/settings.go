package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"dfseducation/internal/model"
	"dfseducation/internal/repository"
	"dfseducation/internal/storage"
)

// SettingsService manages the site-settings singleton, including the
// branding image uploads (logo, favicon, social preview).
type SettingsService interface {
	Get(ctx context.Context) (*model.SiteSettings, error)
	Update(ctx context.Context, in model.SiteSettings) (*model.SiteSettings, error)
	// UploadAsset stores a branding image and records its key in the
	// named slot: "logo", "favicon", or "og_image".
	UploadAsset(ctx context.Context, slot string, file DocumentUpload) (*model.SiteSettings, error)
}

type settingsService struct {
	settings repository.SettingsRepository
	store    storage.Storage
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(settings repository.SettingsRepository, store storage.Storage) SettingsService {
	return &settingsService{settings: settings, store: store}
}

func (s *settingsService) Get(ctx context.Context) (*model.SiteSettings, error) {
	return s.settings.Get(ctx)
}

func (s *settingsService) Update(ctx context.Context, in model.SiteSettings) (*model.SiteSettings, error) {
	if strings.TrimSpace(in.SiteName) == "" {
		return nil, fmt.Errorf("%w: site name", ErrMissingFields)
	}
	current, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	// Asset keys only change through UploadAsset.
	in.LogoKey = current.LogoKey
	in.FaviconKey = current.FaviconKey
	in.OGImageKey = current.OGImageKey
	if err := s.settings.Update(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

var assetExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".svg":  true,
	".ico":  true,
}

func (s *settingsService) UploadAsset(ctx context.Context, slot string, file DocumentUpload) (*model.SiteSettings, error) {
	current, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !assetExts[ext] {
		return nil, fmt.Errorf("%w: %s must be png, jpg, jpeg, svg, or ico", ErrInvalidDocument, slot)
	}
	key := fmt.Sprintf("site/%s_%s%s", slot, uuid.New().String(), ext)
	if _, err := s.store.Put(ctx, key, file.Reader, storage.PutObjectOptions{
		Size:        file.Size,
		ContentType: file.ContentType,
	}); err != nil {
		return nil, fmt.Errorf("store %s: %w", slot, err)
	}

	switch slot {
	case "logo":
		current.LogoKey = key
	case "favicon":
		current.FaviconKey = key
	case "og_image":
		current.OGImageKey = key
	default:
		return nil, fmt.Errorf("%w: unknown asset slot %q", ErrInvalidDocument, slot)
	}
	if err := s.settings.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}
