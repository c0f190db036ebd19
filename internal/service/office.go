package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"dfseducation/internal/model"
	"dfseducation/internal/repository"
)

// OfficeInput holds the fields of an office create/update.
type OfficeInput struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	City      string `json:"city"`
	Country   string `json:"country"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	IsDefault bool   `json:"is_default"`
	IsActive  bool   `json:"is_active"`
}

// RegionInput maps a country (optionally a city) to an office.
type RegionInput struct {
	OfficeID    int64  `json:"office_id"`
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
	City        string `json:"city"`
}

// OfficeService implements branch office management and region routing.
type OfficeService interface {
	Create(ctx context.Context, in OfficeInput) (*model.Office, error)
	Update(ctx context.Context, id int64, in OfficeInput) (*model.Office, error)
	Get(ctx context.Context, id int64) (*model.Office, error)
	List(ctx context.Context, activeOnly bool) ([]model.Office, error)

	AddRegion(ctx context.Context, in RegionInput) (*model.OfficeRegion, error)
	RemoveRegion(ctx context.Context, id int64) error
	Regions(ctx context.Context, officeID int64) ([]model.OfficeRegion, error)

	// Route returns the office responsible for a location, falling back
	// to the default office.
	Route(ctx context.Context, country, city string) (*model.Office, error)
}

type officeService struct {
	offices repository.OfficeRepository
	now     func() time.Time
}

// NewOfficeService constructs an OfficeService.
func NewOfficeService(offices repository.OfficeRepository) OfficeService {
	return &officeService{offices: offices, now: time.Now}
}

func (s *officeService) Create(ctx context.Context, in OfficeInput) (*model.Office, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Code) == "" {
		return nil, fmt.Errorf("%w: name and code", ErrMissingFields)
	}
	o, err := s.offices.Create(ctx, &model.Office{
		Name:      in.Name,
		Code:      in.Code,
		City:      in.City,
		Country:   in.Country,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		IsDefault: in.IsDefault,
		IsActive:  in.IsActive,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	if o.IsDefault {
		if err := s.offices.ClearDefaultExcept(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (s *officeService) Update(ctx context.Context, id int64, in OfficeInput) (*model.Office, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Name = in.Name
	o.Code = in.Code
	o.City = in.City
	o.Country = in.Country
	o.Address = in.Address
	o.Phone = in.Phone
	o.Email = in.Email
	o.IsDefault = in.IsDefault
	o.IsActive = in.IsActive
	if err := s.offices.Update(ctx, o); err != nil {
		return nil, err
	}
	if o.IsDefault {
		if err := s.offices.ClearDefaultExcept(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (s *officeService) Get(ctx context.Context, id int64) (*model.Office, error) {
	o, err := s.offices.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (s *officeService) List(ctx context.Context, activeOnly bool) ([]model.Office, error) {
	return s.offices.List(ctx, activeOnly)
}

func (s *officeService) AddRegion(ctx context.Context, in RegionInput) (*model.OfficeRegion, error) {
	if in.OfficeID == 0 || strings.TrimSpace(in.CountryCode) == "" {
		return nil, fmt.Errorf("%w: office and country code", ErrMissingFields)
	}
	if _, err := s.Get(ctx, in.OfficeID); err != nil {
		return nil, err
	}
	return s.offices.CreateRegion(ctx, &model.OfficeRegion{
		OfficeID:    in.OfficeID,
		CountryCode: strings.ToUpper(in.CountryCode),
		CountryName: in.CountryName,
		City:        in.City,
	})
}

func (s *officeService) RemoveRegion(ctx context.Context, id int64) error {
	if err := s.offices.DeleteRegion(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *officeService) Regions(ctx context.Context, officeID int64) ([]model.OfficeRegion, error) {
	return s.offices.ListRegions(ctx, officeID)
}

func (s *officeService) Route(ctx context.Context, country, city string) (*model.Office, error) {
	o, err := s.offices.FindForLocation(ctx, country, city)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}
