package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dfseducation/internal/model"
	"dfseducation/internal/repository"
)

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, a *model.Application) (*model.Application, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) Update(ctx context.Context, a *model.Application) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockApplicationRepository) FindByID(ctx context.Context, id int64) (*model.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindForUser(ctx context.Context, userID, scholarshipID int64, draft bool) (*model.Application, error) {
	args := m.Called(ctx, userID, scholarshipID, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) List(ctx context.Context, f repository.ApplicationFilter, pq repository.PageQuery) (*repository.PageResult[model.Application], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Application]), args.Error(1)
}

func (m *MockApplicationRepository) CountByStatus(ctx context.Context, f repository.ApplicationFilter) (map[string]int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockApplicationRepository) AddHistory(ctx context.Context, h *model.StatusHistory) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockApplicationRepository) ListHistory(ctx context.Context, applicationID int64) ([]model.StatusHistory, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StatusHistory), args.Error(1)
}

func (m *MockApplicationRepository) CreateUpload(ctx context.Context, u *model.ReviewedUpload) (*model.ReviewedUpload, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReviewedUpload), args.Error(1)
}

func (m *MockApplicationRepository) UpdateUpload(ctx context.Context, u *model.ReviewedUpload) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockApplicationRepository) FindUploadByID(ctx context.Context, kind string, id int64) (*model.ReviewedUpload, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReviewedUpload), args.Error(1)
}

func (m *MockApplicationRepository) LatestUpload(ctx context.Context, kind string, applicationID int64, status string) (*model.ReviewedUpload, error) {
	args := m.Called(ctx, kind, applicationID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReviewedUpload), args.Error(1)
}

func (m *MockApplicationRepository) ListUploadsByStatus(ctx context.Context, kind, status string) ([]model.ReviewedUpload, error) {
	args := m.Called(ctx, kind, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReviewedUpload), args.Error(1)
}
