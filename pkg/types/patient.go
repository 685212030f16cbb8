package types

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date format used throughout the stores
const DateLayout = "2006-01-02"

// DateTimeLayout is the local date-time format used for consultations
const DateTimeLayout = "2006-01-02T15:04:05"

// RiskLevel represents a patient's assessed risk
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// DefaultRiskLevel is substituted when a stored risk value is not recognized
const DefaultRiskLevel = RiskLow

// ParseRiskLevel parses a stored risk value, case-insensitively. The second
// return value reports whether the input named a known level; callers
// substitute DefaultRiskLevel when it did not.
func ParseRiskLevel(s string) (RiskLevel, bool) {
	switch RiskLevel(strings.ToUpper(strings.TrimSpace(s))) {
	case RiskLow:
		return RiskLow, true
	case RiskMedium:
		return RiskMedium, true
	case RiskHigh:
		return RiskHigh, true
	case RiskCritical:
		return RiskCritical, true
	}
	return DefaultRiskLevel, false
}

// Patient represents a patient record. Address is exposed as a single
// comma-joined string even though the store keeps street and city in
// separate columns.
type Patient struct {
	ID                   string     `json:"id"`
	NationalHealthNumber string     `json:"national_health_number"`
	Name                 string     `json:"name"`
	Address              string     `json:"address"`
	DateOfBirth          time.Time  `json:"date_of_birth"`
	ContactDetails       string     `json:"contact_details"`
	RiskAssessment       RiskLevel  `json:"risk_assessment"`
	Conditions           []string   `json:"conditions"`
	Sectioned            bool       `json:"sectioned"`
	SectionedDate        *time.Time `json:"sectioned_date,omitempty"`
	ReviewDate           *time.Time `json:"review_date,omitempty"`
}

// NewPatient creates a patient with defaults: risk LOW, not sectioned,
// empty condition list.
func NewPatient(id, nhNumber, name, address string, dateOfBirth time.Time, contact string) *Patient {
	return &Patient{
		ID:                   id,
		NationalHealthNumber: nhNumber,
		Name:                 name,
		Address:              address,
		DateOfBirth:          dateOfBirth,
		ContactDetails:       contact,
		RiskAssessment:       DefaultRiskLevel,
		Conditions:           []string{},
	}
}

// AddCondition records a condition, suppressing duplicates while keeping
// insertion order.
func (p *Patient) AddCondition(condition string) {
	for _, c := range p.Conditions {
		if c == condition {
			return
		}
	}
	p.Conditions = append(p.Conditions, condition)
}

// RemoveCondition drops a condition if present
func (p *Patient) RemoveCondition(condition string) {
	for i, c := range p.Conditions {
		if c == condition {
			p.Conditions = append(p.Conditions[:i], p.Conditions[i+1:]...)
			return
		}
	}
}

// Age returns the patient's age as a whole-year subtraction. The legacy
// system ignored month and day, so a patient born in December counts a
// full year on January 1st; kept for parity.
func (p *Patient) Age() int {
	return time.Now().Year() - p.DateOfBirth.Year()
}
