package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dfseducation/internal/model"
)

type MockOfficeRepository struct {
	mock.Mock
}

func (m *MockOfficeRepository) Create(ctx context.Context, o *model.Office) (*model.Office, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Office), args.Error(1)
}

func (m *MockOfficeRepository) Update(ctx context.Context, o *model.Office) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOfficeRepository) FindByID(ctx context.Context, id int64) (*model.Office, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Office), args.Error(1)
}

func (m *MockOfficeRepository) List(ctx context.Context, activeOnly bool) ([]model.Office, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Office), args.Error(1)
}

func (m *MockOfficeRepository) ClearDefaultExcept(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOfficeRepository) CreateRegion(ctx context.Context, r *model.OfficeRegion) (*model.OfficeRegion, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OfficeRegion), args.Error(1)
}

func (m *MockOfficeRepository) DeleteRegion(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOfficeRepository) ListRegions(ctx context.Context, officeID int64) ([]model.OfficeRegion, error) {
	args := m.Called(ctx, officeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OfficeRegion), args.Error(1)
}

func (m *MockOfficeRepository) FindForLocation(ctx context.Context, country, city string) (*model.Office, error) {
	args := m.Called(ctx, country, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Office), args.Error(1)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*model.SiteSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SiteSettings), args.Error(1)
}

func (m *MockSettingsRepository) Update(ctx context.Context, s *model.SiteSettings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
