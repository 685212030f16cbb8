package types

import "time"

// Prescription represents a medication prescription
type Prescription struct {
	ID           string     `json:"id"`
	PatientID    string     `json:"patient_id"`
	DrugName     string     `json:"drug_name"`
	Dosage       string     `json:"dosage"`
	Frequency    string     `json:"frequency"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	PrescriberID string     `json:"prescriber_id"`
	Repeat       bool       `json:"repeat"`
	Comments     string     `json:"comments,omitempty"`
}

// NewPrescription creates a prescription with the required fields set;
// repeat defaults to false.
func NewPrescription(id, patientID, drugName, dosage, frequency string, startDate time.Time, prescriberID string) *Prescription {
	return &Prescription{
		ID:           id,
		PatientID:    patientID,
		DrugName:     drugName,
		Dosage:       dosage,
		Frequency:    frequency,
		StartDate:    startDate,
		PrescriberID: prescriberID,
	}
}

// Active reports whether the prescription is current: started on or before
// the given day and not yet past its end date.
func (p *Prescription) Active(on time.Time) bool {
	if p.StartDate.After(on) {
		return false
	}
	if p.EndDate != nil && p.EndDate.Before(on) {
		return false
	}
	return true
}
