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

func setupPrescriptionRepository(t *testing.T) (*PrescriptionRepository, *csvstore.Store) {
	t.Helper()
	store := csvstore.New(t.TempDir(), logger.New("error"))
	return NewPrescriptionRepository(store, "prescriptions.csv", logger.New("error")), store
}

func TestPrescriptionRoundTrip(t *testing.T) {
	repo, _ := setupPrescriptionRepository(t)

	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC)

	prescription := types.NewPrescription("PRES001", "PAT001", "Sertraline", "50mg", "once daily", start, "USER001")
	prescription.EndDate = &end
	prescription.Repeat = true
	prescription.Comments = "Review after six months"
	repo.Save(prescription)

	loaded, found := repo.FindByID("PRES001")
	require.True(t, found)
	assert.Equal(t, "PAT001", loaded.PatientID)
	assert.Equal(t, "Sertraline", loaded.DrugName)
	assert.Equal(t, "50mg", loaded.Dosage)
	assert.Equal(t, "once daily", loaded.Frequency)
	assert.Equal(t, "2024-01-10", loaded.StartDate.Format(types.DateLayout))
	require.NotNil(t, loaded.EndDate)
	assert.Equal(t, "2024-07-10", loaded.EndDate.Format(types.DateLayout))
	assert.Equal(t, "USER001", loaded.PrescriberID)
	assert.True(t, loaded.Repeat)
	assert.Equal(t, "Review after six months", loaded.Comments)
}

func TestPrescriptionOpenEnded(t *testing.T) {
	repo, _ := setupPrescriptionRepository(t)

	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	repo.Save(types.NewPrescription("PRES001", "PAT001", "Diazepam", "5mg", "as needed", start, "USER001"))

	loaded, found := repo.FindByID("PRES001")
	require.True(t, found)
	assert.Nil(t, loaded.EndDate)
	assert.False(t, loaded.Repeat)
}

func TestPrescriptionGetByPatient(t *testing.T) {
	repo, _ := setupPrescriptionRepository(t)

	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	repo.Save(types.NewPrescription("PRES001", "PAT001", "Sertraline", "50mg", "daily", start, "USER001"))
	repo.Save(types.NewPrescription("PRES002", "PAT002", "Fluoxetine", "20mg", "daily", start, "USER001"))
	repo.Save(types.NewPrescription("PRES003", "PAT001", "Diazepam", "5mg", "as needed", start, "USER004"))

	matched := repo.GetByPatient("PAT001")
	require.Len(t, matched, 2)
	assert.Equal(t, "PRES001", matched[0].ID)
	assert.Equal(t, "PRES003", matched[1].ID)
}

func TestPrescriptionGetByPrescriber(t *testing.T) {
	repo, _ := setupPrescriptionRepository(t)

	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	repo.Save(types.NewPrescription("PRES001", "PAT001", "Sertraline", "50mg", "daily", start, "USER001"))
	repo.Save(types.NewPrescription("PRES002", "PAT002", "Fluoxetine", "20mg", "daily", start, "USER004"))

	matched := repo.GetByPrescriber("USER004")
	require.Len(t, matched, 1)
	assert.Equal(t, "PRES002", matched[0].ID)
}

func TestPrescriptionDelete(t *testing.T) {
	repo, _ := setupPrescriptionRepository(t)

	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	repo.Save(types.NewPrescription("PRES001", "PAT001", "Sertraline", "50mg", "daily", start, "USER001"))
	repo.Save(types.NewPrescription("PRES002", "PAT002", "Fluoxetine", "20mg", "daily", start, "USER001"))

	repo.Delete("PRES002")

	prescriptions := repo.GetAll()
	require.Len(t, prescriptions, 1)
	assert.Equal(t, "PRES001", prescriptions[0].ID)
}

func TestPrescriptionMalformedStartDateSkipped(t *testing.T) {
	repo, store := setupPrescriptionRepository(t)

	rows := [][]string{
		PrescriptionHeader,
		{"PRES001", "PAT001", "Sertraline", "50mg", "daily", "10/01/2024", "", "USER001", "false", ""},
		{"PRES002", "PAT001", "Fluoxetine", "20mg", "daily", "2024-01-10", "", "USER001", "false", ""},
	}
	require.NoError(t, store.WriteAll("prescriptions.csv", rows))

	prescriptions := repo.GetAll()
	require.Len(t, prescriptions, 1)
	assert.Equal(t, "PRES002", prescriptions[0].ID)
}

func TestPrescriptionShortRowSkipped(t *testing.T) {
	repo, store := setupPrescriptionRepository(t)

	rows := [][]string{
		PrescriptionHeader,
		{"PRES001", "PAT001", "Sertraline", "50mg", "daily", "2024-01-10"},
	}
	require.NoError(t, store.WriteAll("prescriptions.csv", rows))

	assert.Empty(t, repo.GetAll())
}
