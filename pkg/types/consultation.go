package types

import "time"

// Consultation represents a clinical consultation. The Prescriptions field
// is populated in memory by callers joining the prescription store; it is
// never written to the consultation store (the column is reserved).
type Consultation struct {
	ID                    string          `json:"id"`
	PatientID             string          `json:"patient_id"`
	DateTime              time.Time       `json:"date_time"`
	StaffIDs              []string        `json:"staff_ids"`
	SubjectiveImpressions string          `json:"subjective_impressions,omitempty"`
	Diagnoses             []string        `json:"diagnoses"`
	Prescriptions         []*Prescription `json:"prescriptions,omitempty"`
	Referrals             []string        `json:"referrals"`
	RecordUpdated         bool            `json:"record_updated"`
}

// NewConsultation creates a consultation with all lists empty
func NewConsultation(id, patientID string, dateTime time.Time) *Consultation {
	return &Consultation{
		ID:            id,
		PatientID:     patientID,
		DateTime:      dateTime,
		StaffIDs:      []string{},
		Diagnoses:     []string{},
		Prescriptions: []*Prescription{},
		Referrals:     []string{},
	}
}

// AddStaffMember records an attending staff id, suppressing duplicates
func (c *Consultation) AddStaffMember(staffID string) {
	for _, id := range c.StaffIDs {
		if id == staffID {
			return
		}
	}
	c.StaffIDs = append(c.StaffIDs, staffID)
}

// AddDiagnosis appends a diagnosis
func (c *Consultation) AddDiagnosis(diagnosis string) {
	c.Diagnoses = append(c.Diagnoses, diagnosis)
}

// AddPrescription attaches a prescription to the in-memory record
func (c *Consultation) AddPrescription(prescription *Prescription) {
	c.Prescriptions = append(c.Prescriptions, prescription)
}

// AddReferral appends a referral
func (c *Consultation) AddReferral(referral string) {
	c.Referrals = append(c.Referrals, referral)
}
