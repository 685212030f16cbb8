package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseRiskLevel(t *testing.T) {
	tests := []struct {
		input string
		want  RiskLevel
		known bool
	}{
		{"LOW", RiskLow, true},
		{"medium", RiskMedium, true},
		{" HIGH ", RiskHigh, true},
		{"CRITICAL", RiskCritical, true},
		{"SEVERE", DefaultRiskLevel, false},
		{"", DefaultRiskLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, known := ParseRiskLevel(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.known, known)
		})
	}
}

func TestNewPatientDefaults(t *testing.T) {
	dob := time.Date(1985, 3, 15, 0, 0, 0, 0, time.UTC)
	patient := NewPatient("PAT001", "NH123456", "Alice Brown", "12 Queen Street, Manchester", dob, "555-0101")

	assert.Equal(t, DefaultRiskLevel, patient.RiskAssessment)
	assert.False(t, patient.Sectioned)
	assert.Nil(t, patient.SectionedDate)
	assert.Nil(t, patient.ReviewDate)
	assert.NotNil(t, patient.Conditions)
	assert.Empty(t, patient.Conditions)
}

func TestAddConditionDeduplicates(t *testing.T) {
	dob := time.Date(1985, 3, 15, 0, 0, 0, 0, time.UTC)
	patient := NewPatient("PAT001", "NH123456", "Alice Brown", "12 Queen Street", dob, "555-0101")

	patient.AddCondition("Anxiety")
	patient.AddCondition("Depression")
	patient.AddCondition("Anxiety")

	assert.Equal(t, []string{"Anxiety", "Depression"}, patient.Conditions)
}

func TestRemoveCondition(t *testing.T) {
	dob := time.Date(1985, 3, 15, 0, 0, 0, 0, time.UTC)
	patient := NewPatient("PAT001", "NH123456", "Alice Brown", "12 Queen Street", dob, "555-0101")

	patient.AddCondition("Anxiety")
	patient.AddCondition("Depression")
	patient.RemoveCondition("Anxiety")
	patient.RemoveCondition("Insomnia")

	assert.Equal(t, []string{"Depression"}, patient.Conditions)
}

func TestAgeUsesYearSubtraction(t *testing.T) {
	// Born December 31st: the month and day are ignored, so the age ticks
	// over at new year rather than on the birthday.
	dob := time.Date(time.Now().Year()-30, 12, 31, 0, 0, 0, 0, time.UTC)
	patient := NewPatient("PAT001", "NH123456", "Alice Brown", "12 Queen Street", dob, "555-0101")

	assert.Equal(t, 30, patient.Age())
}
