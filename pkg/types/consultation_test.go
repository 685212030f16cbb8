package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConsultationListsAreEmpty(t *testing.T) {
	when := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	consultation := NewConsultation("CONS001", "PAT001", when)

	assert.Empty(t, consultation.StaffIDs)
	assert.Empty(t, consultation.Diagnoses)
	assert.Empty(t, consultation.Prescriptions)
	assert.Empty(t, consultation.Referrals)
	assert.False(t, consultation.RecordUpdated)
}

func TestAddStaffMemberDeduplicates(t *testing.T) {
	when := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	consultation := NewConsultation("CONS001", "PAT001", when)

	consultation.AddStaffMember("USER001")
	consultation.AddStaffMember("USER002")
	consultation.AddStaffMember("USER001")

	assert.Equal(t, []string{"USER001", "USER002"}, consultation.StaffIDs)
}

func TestAddDiagnosisAllowsDuplicates(t *testing.T) {
	when := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	consultation := NewConsultation("CONS001", "PAT001", when)

	consultation.AddDiagnosis("Moderate depression")
	consultation.AddDiagnosis("Moderate depression")

	assert.Len(t, consultation.Diagnoses, 2)
}

func TestPrescriptionActive(t *testing.T) {
	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC)

	prescription := NewPrescription("PRES001", "PAT001", "Sertraline", "50mg", "daily", start, "USER001")

	t.Run("open ended after start", func(t *testing.T) {
		assert.True(t, prescription.Active(start.AddDate(1, 0, 0)))
	})

	t.Run("before start", func(t *testing.T) {
		assert.False(t, prescription.Active(start.AddDate(0, 0, -1)))
	})

	t.Run("within bounded period", func(t *testing.T) {
		prescription.EndDate = &end
		assert.True(t, prescription.Active(start.AddDate(0, 3, 0)))
	})

	t.Run("after end date", func(t *testing.T) {
		prescription.EndDate = &end
		assert.False(t, prescription.Active(end.AddDate(0, 0, 1)))
	})
}
