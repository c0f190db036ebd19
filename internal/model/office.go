package model

import "time"

// Office is a physical branch. Office-role users and agents belong to an
// office; applications created by an office belong to that office. At most
// one office is the default fallback for unmatched regions.
type Office struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	City      string    `json:"city,omitempty"`
	Country   string    `json:"country,omitempty"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	IsDefault bool      `json:"is_default"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// OfficeRegion maps a country, optionally narrowed to a city, to an
// office. Used to auto-route students to the correct branch.
type OfficeRegion struct {
	ID          int64  `json:"id"`
	OfficeID    int64  `json:"office_id"`
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
	City        string `json:"city,omitempty"`
}
