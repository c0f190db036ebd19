package repository

import (
	"context"

	"dfseducation/internal/model"
)

// ApplicationFilter narrows application listings to one workflow
// perspective. Zero values are ignored.
type ApplicationFilter struct {
	UserID        int64
	OfficeID      int64
	AssignedAgent int64
	AssignedHQ    int64
	Statuses      []string
}

// ApplicationRepository defines data access for applications, their
// reviewable uploads (admission letters and JW02 forms), and the status
// audit trail.
type ApplicationRepository interface {
	Create(ctx context.Context, a *model.Application) (*model.Application, error)
	Update(ctx context.Context, a *model.Application) error
	FindByID(ctx context.Context, id int64) (*model.Application, error)

	// FindForUser returns the user's application for a scholarship in
	// (draft=true) or out of (draft=false) draft state, or sql.ErrNoRows.
	FindForUser(ctx context.Context, userID, scholarshipID int64, draft bool) (*model.Application, error)

	// List returns applications matching the filter, newest first.
	List(ctx context.Context, f ApplicationFilter, pq PageQuery) (*PageResult[model.Application], error)

	// CountByStatus returns per-status counts for the filter.
	CountByStatus(ctx context.Context, f ApplicationFilter) (map[string]int, error)

	AddHistory(ctx context.Context, h *model.StatusHistory) error
	ListHistory(ctx context.Context, applicationID int64) ([]model.StatusHistory, error)

	CreateUpload(ctx context.Context, u *model.ReviewedUpload) (*model.ReviewedUpload, error)
	UpdateUpload(ctx context.Context, u *model.ReviewedUpload) error
	FindUploadByID(ctx context.Context, kind string, id int64) (*model.ReviewedUpload, error)
	// LatestUpload returns the newest upload of the kind for an
	// application, optionally restricted to one status ("" for any), or
	// sql.ErrNoRows.
	LatestUpload(ctx context.Context, kind string, applicationID int64, status string) (*model.ReviewedUpload, error)
	// ListUploadsByStatus lists uploads of a kind in one status across
	// applications, newest first. Used for the HQ revision queue.
	ListUploadsByStatus(ctx context.Context, kind, status string) ([]model.ReviewedUpload, error)
}
