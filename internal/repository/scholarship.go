package repository

import (
	"context"

	"dfseducation/internal/model"
)

// ScholarshipFilter narrows scholarship listings. Query matches name,
// city, major, or description case-insensitively.
type ScholarshipFilter struct {
	Query  string
	Degree string
	Type   string
}

// ScholarshipRepository defines data access for scholarship programs.
type ScholarshipRepository interface {
	Create(ctx context.Context, s *model.Scholarship) (*model.Scholarship, error)
	FindByID(ctx context.Context, id int64) (*model.Scholarship, error)
	Update(ctx context.Context, s *model.Scholarship) error
	// Delete removes a scholarship. It returns nil if the row did not exist.
	Delete(ctx context.Context, id int64) error
	// List returns scholarships ordered by deadline descending.
	List(ctx context.Context, f ScholarshipFilter, pq PageQuery) (*PageResult[model.Scholarship], error)
}
