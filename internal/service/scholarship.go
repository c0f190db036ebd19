package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"dfseducation/internal/model"
	"dfseducation/internal/repository"
)

// ScholarshipInput holds the fields of a create/update request.
type ScholarshipInput struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	City            string          `json:"city"`
	Major           string          `json:"major"`
	Degree          string          `json:"degree"`
	Language        string          `json:"language"`
	ScholarshipType string          `json:"scholarship_type"`
	Deadline        time.Time       `json:"deadline"`
	Semester        string          `json:"semester"`
	Price           decimal.Decimal `json:"price"`
	Eligibility     string          `json:"eligibility"`
	Note            string          `json:"note"`
	AgentCommission decimal.Decimal `json:"agent_commission"`
	HQCommission    decimal.Decimal `json:"hq_commission"`
}

// ScholarshipListResult is the service-level DTO for paginated
// scholarships.
type ScholarshipListResult struct {
	Items []model.Scholarship `json:"data"`
	Total int                 `json:"total"`
}

// ScholarshipService defines the scholarship program use cases. Mutations
// are admin-only; listing and detail are public.
type ScholarshipService interface {
	Create(ctx context.Context, in ScholarshipInput) (*model.Scholarship, error)
	Update(ctx context.Context, id int64, in ScholarshipInput) (*model.Scholarship, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*model.Scholarship, error)
	List(ctx context.Context, f repository.ScholarshipFilter, limit, offset int) (*ScholarshipListResult, error)
}

type scholarshipService struct {
	scholarships repository.ScholarshipRepository
}

// NewScholarshipService constructs a ScholarshipService.
func NewScholarshipService(scholarships repository.ScholarshipRepository) ScholarshipService {
	return &scholarshipService{scholarships: scholarships}
}

func (in ScholarshipInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name", ErrMissingFields)
	}
	if !model.ValidDegree(in.Degree) {
		return fmt.Errorf("%w: unknown degree %q", ErrMissingFields, in.Degree)
	}
	if !model.ValidScholarshipType(in.ScholarshipType) {
		return fmt.Errorf("%w: unknown scholarship type %q", ErrMissingFields, in.ScholarshipType)
	}
	if in.Deadline.IsZero() {
		return fmt.Errorf("%w: deadline", ErrMissingFields)
	}
	return nil
}

func (in ScholarshipInput) apply(s *model.Scholarship) {
	s.Name = in.Name
	s.Description = in.Description
	s.City = in.City
	s.Major = in.Major
	s.Degree = in.Degree
	s.Language = in.Language
	s.ScholarshipType = in.ScholarshipType
	s.Deadline = in.Deadline
	s.Semester = in.Semester
	s.Price = in.Price
	s.Eligibility = in.Eligibility
	s.Note = in.Note
	s.AgentCommission = in.AgentCommission
	s.HQCommission = in.HQCommission
}

func (s *scholarshipService) Create(ctx context.Context, in ScholarshipInput) (*model.Scholarship, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var sch model.Scholarship
	in.apply(&sch)
	return s.scholarships.Create(ctx, &sch)
}

func (s *scholarshipService) Update(ctx context.Context, id int64, in ScholarshipInput) (*model.Scholarship, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	sch, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(sch)
	if err := s.scholarships.Update(ctx, sch); err != nil {
		return nil, err
	}
	return sch, nil
}

func (s *scholarshipService) Delete(ctx context.Context, id int64) error {
	return s.scholarships.Delete(ctx, id)
}

func (s *scholarshipService) Get(ctx context.Context, id int64) (*model.Scholarship, error) {
	sch, err := s.scholarships.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sch, nil
}

func (s *scholarshipService) List(ctx context.Context, f repository.ScholarshipFilter, limit, offset int) (*ScholarshipListResult, error) {
	if limit <= 0 {
		limit = 12
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.scholarships.List(ctx, f, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ScholarshipListResult{Items: res.Items, Total: res.Total}, nil
}
