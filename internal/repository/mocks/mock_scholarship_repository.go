package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dfseducation/internal/model"
	"dfseducation/internal/repository"
)

type MockScholarshipRepository struct {
	mock.Mock
}

func (m *MockScholarshipRepository) Create(ctx context.Context, s *model.Scholarship) (*model.Scholarship, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Scholarship), args.Error(1)
}

func (m *MockScholarshipRepository) FindByID(ctx context.Context, id int64) (*model.Scholarship, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Scholarship), args.Error(1)
}

func (m *MockScholarshipRepository) Update(ctx context.Context, s *model.Scholarship) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockScholarshipRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockScholarshipRepository) List(ctx context.Context, f repository.ScholarshipFilter, pq repository.PageQuery) (*repository.PageResult[model.Scholarship], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Scholarship]), args.Error(1)
}
