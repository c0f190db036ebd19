package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Degree levels offered by scholarships.
const (
	DegreeBachelor = "bachelor"
	DegreeMaster   = "master"
	DegreePhD      = "phd"
)

// Scholarship funding types.
const (
	ScholarshipFull    = "full"
	ScholarshipPartial = "partial"
	ScholarshipMerit   = "merit"
)

// Intake semesters.
const (
	SemesterFall   = "fall"
	SemesterSpring = "spring"
	SemesterSummer = "summer"
)

// Scholarship is a program students can apply to. AgentCommission and
// HQCommission are the USD amounts earned per completed application; both
// are set by an administrator.
type Scholarship struct {
	ID              int64           `json:"id"`
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
	Note            string          `json:"note,omitempty"`
	AgentCommission decimal.Decimal `json:"agent_commission"`
	HQCommission    decimal.Decimal `json:"hq_commission"`
}

// ValidDegree reports whether d is one of the known degree levels.
func ValidDegree(d string) bool {
	return d == DegreeBachelor || d == DegreeMaster || d == DegreePhD
}

// ValidScholarshipType reports whether t is a known funding type.
func ValidScholarshipType(t string) bool {
	return t == ScholarshipFull || t == ScholarshipPartial || t == ScholarshipMerit
}
