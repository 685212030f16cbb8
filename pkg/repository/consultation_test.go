package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentcare/records/pkg/csvstore"
	"github.com/mentcare/records/pkg/logger"
	"github.com/mentcare/records/pkg/types"
)

func setupConsultationRepository(t *testing.T) (*ConsultationRepository, *csvstore.Store) {
	t.Helper()
	store := csvstore.New(t.TempDir(), logger.New("error"))
	return NewConsultationRepository(store, "consultations.csv", logger.New("error")), store
}

func TestConsultationRoundTrip(t *testing.T) {
	repo, _ := setupConsultationRepository(t)

	when := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	consultation := types.NewConsultation("CONS001", "PAT001", when)
	consultation.AddStaffMember("USER001")
	consultation.AddStaffMember("USER002")
	consultation.SubjectiveImpressions = "Patient presents with low mood"
	consultation.AddDiagnosis("Moderate depression")
	consultation.AddReferral("Community mental health team")
	consultation.RecordUpdated = true
	repo.Save(consultation)

	loaded, found := repo.FindByID("CONS001")
	require.True(t, found)
	assert.Equal(t, "PAT001", loaded.PatientID)
	assert.Equal(t, "2024-01-10T10:00:00", loaded.DateTime.Format(types.DateTimeLayout))
	assert.Equal(t, []string{"USER001", "USER002"}, loaded.StaffIDs)
	assert.Equal(t, "Patient presents with low mood", loaded.SubjectiveImpressions)
	assert.Equal(t, []string{"Moderate depression"}, loaded.Diagnoses)
	assert.Equal(t, []string{"Community mental health team"}, loaded.Referrals)
	assert.True(t, loaded.RecordUpdated)
}

func TestConsultationPrescriptionsColumnStaysEmpty(t *testing.T) {
	repo, store := setupConsultationRepository(t)

	when := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	consultation := types.NewConsultation("CONS001", "PAT001", when)
	consultation.AddPrescription(types.NewPrescription("PRES001", "PAT001", "Sertraline", "50mg", "daily", when, "USER001"))
	repo.Save(consultation)

	rows, err := store.ReadAll("consultations.csv")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "", rows[1][6], "prescriptions column is reserved")

	// In-memory prescriptions are never persisted with the consultation
	loaded, found := repo.FindByID("CONS001")
	require.True(t, found)
	assert.Empty(t, loaded.Prescriptions)
}

func TestConsultationMinimalRow(t *testing.T) {
	repo, store := setupConsultationRepository(t)

	rows := [][]string{
		ConsultationHeader,
		{"CONS001", "PAT001", "2024-01-10T10:00:00"},
	}
	require.NoError(t, store.WriteAll("consultations.csv", rows))

	consultations := repo.GetAll()
	require.Len(t, consultations, 1)
	assert.Empty(t, consultations[0].StaffIDs)
	assert.Empty(t, consultations[0].Diagnoses)
	assert.Empty(t, consultations[0].Referrals)
	assert.False(t, consultations[0].RecordUpdated)
}

func TestConsultationMalformedDateTimeSkipped(t *testing.T) {
	repo, store := setupConsultationRepository(t)

	rows := [][]string{
		ConsultationHeader,
		{"CONS001", "PAT001", "2024-01-10 10:00"},
		{"CONS002", "PAT001", "2024-02-05T14:30:00"},
	}
	require.NoError(t, store.WriteAll("consultations.csv", rows))

	consultations := repo.GetAll()
	require.Len(t, consultations, 1)
	assert.Equal(t, "CONS002", consultations[0].ID)
}

func TestConsultationGetByPatientPreservesOrder(t *testing.T) {
	repo, _ := setupConsultationRepository(t)

	base := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	repo.Save(types.NewConsultation("CONS003", "PAT001", base.AddDate(0, 2, 0)))
	repo.Save(types.NewConsultation("CONS001", "PAT001", base))
	repo.Save(types.NewConsultation("CONS002", "PAT002", base.AddDate(0, 1, 0)))

	matched := repo.GetByPatient("PAT001")
	require.Len(t, matched, 2)
	// File order, not chronological
	assert.Equal(t, "CONS003", matched[0].ID)
	assert.Equal(t, "CONS001", matched[1].ID)

	assert.Empty(t, repo.GetByPatient("PAT999"))
}

func TestConsultationDelete(t *testing.T) {
	repo, _ := setupConsultationRepository(t)

	when := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	repo.Save(types.NewConsultation("CONS001", "PAT001", when))
	repo.Save(types.NewConsultation("CONS002", "PAT002", when))

	repo.Delete("CONS001")

	consultations := repo.GetAll()
	require.Len(t, consultations, 1)
	assert.Equal(t, "CONS002", consultations[0].ID)
}
