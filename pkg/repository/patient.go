package repository

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mentcare/records/pkg/csvstore"
	"github.com/mentcare/records/pkg/logger"
	"github.com/mentcare/records/pkg/monitoring"
	"github.com/mentcare/records/pkg/types"
)

// PatientHeader is the column layout of the patient store. Street and city
// are separate columns; the entity exposes them as one comma-joined address.
var PatientHeader = []string{
	"patientId", "nhNumber", "name", "address", "city", "dob", "contact",
	"risk", "sectioned", "sectionedDate", "reviewDate",
}

// PatientRepository implements patient persistence over the flat-file store
type PatientRepository struct {
	store  *csvstore.Store
	file   string
	logger *logger.Logger
}

// NewPatientRepository creates a new patient repository
func NewPatientRepository(store *csvstore.Store, file string, log *logger.Logger) *PatientRepository {
	return &PatientRepository{
		store:  store,
		file:   file,
		logger: log,
	}
}

// GetAll loads every patient from the store in file order
func (r *PatientRepository) GetAll() []*types.Patient {
	rows, err := r.store.ReadAll(r.file)
	if err != nil {
		r.logger.WithStore(r.file).WithError(err).Error("Failed to read patient store")
		return nil
	}

	if len(rows) > 0 && rows[0][0] == PatientHeader[0] {
		rows = rows[1:]
	}

	var patients []*types.Patient
	for _, row := range rows {
		patient, err := r.fromRow(row)
		if err != nil {
			r.logger.RowSkipped(r.file, row, err)
			monitoring.RecordRowSkipped(r.file)
			continue
		}
		patients = append(patients, patient)
	}

	return patients
}

// FindByID returns the patient with the given id; absent is a normal outcome
func (r *PatientRepository) FindByID(id string) (*types.Patient, bool) {
	for _, patient := range r.GetAll() {
		if patient.ID == id {
			return patient, true
		}
	}
	return nil, false
}

// Save writes the patient, replacing any existing row with the same id
func (r *PatientRepository) Save(patient *types.Patient) {
	patients := r.GetAll()

	kept := patients[:0]
	for _, p := range patients {
		if p.ID != patient.ID {
			kept = append(kept, p)
		}
	}
	kept = append(kept, patient)

	r.writeAll(kept)
}

// Delete removes the patient with the given id
func (r *PatientRepository) Delete(id string) {
	patients := r.GetAll()

	kept := patients[:0]
	for _, p := range patients {
		if p.ID != id {
			kept = append(kept, p)
		}
	}

	r.writeAll(kept)
}

func (r *PatientRepository) writeAll(patients []*types.Patient) {
	rows := [][]string{PatientHeader}
	for _, p := range patients {
		rows = append(rows, patientToRow(p))
	}

	if err := r.store.WriteAll(r.file, rows); err != nil {
		r.logger.WithStore(r.file).WithError(err).Error("Failed to write patient store")
	}
}

// fromRow maps a stored row to a patient. The first seven columns are
// required; risk, sectioned, sectionedDate and reviewDate are trailing
// optionals guarded by length checks. An unparseable date fails the row;
// an unknown risk level only falls back to LOW.
func (r *PatientRepository) fromRow(row []string) (*types.Patient, error) {
	if len(row) < 7 {
		return nil, fmt.Errorf("patient row has %d fields, want at least 7", len(row))
	}

	// Street and city are stored apart but exposed as one address string
	address := row[3]
	if row[4] != "" {
		address += ", " + row[4]
	}

	dob, err := time.Parse(types.DateLayout, row[5])
	if err != nil {
		return nil, fmt.Errorf("invalid date of birth %q: %w", row[5], err)
	}

	patient := types.NewPatient(row[0], row[1], row[2], address, dob, row[6])

	if len(row) > 7 && row[7] != "" {
		risk, ok := types.ParseRiskLevel(row[7])
		if !ok {
			r.logger.EnumFallback(r.file, "risk", row[7], string(types.DefaultRiskLevel))
		}
		patient.RiskAssessment = risk
	}

	if len(row) > 8 && row[8] != "" {
		patient.Sectioned = parseBool(row[8])
	}

	if len(row) > 9 && row[9] != "" {
		sectionedDate, err := time.Parse(types.DateLayout, row[9])
		if err != nil {
			return nil, fmt.Errorf("invalid sectioned date %q: %w", row[9], err)
		}
		patient.SectionedDate = &sectionedDate
	}

	if len(row) > 10 && row[10] != "" {
		reviewDate, err := time.Parse(types.DateLayout, row[10])
		if err != nil {
			return nil, fmt.Errorf("invalid review date %q: %w", row[10], err)
		}
		patient.ReviewDate = &reviewDate
	}

	return patient, nil
}

func patientToRow(p *types.Patient) []string {
	street := p.Address
	city := ""
	if parts := strings.SplitN(p.Address, ", ", 2); len(parts) == 2 {
		street, city = parts[0], parts[1]
	}

	return []string{
		p.ID,
		p.NationalHealthNumber,
		p.Name,
		street,
		city,
		p.DateOfBirth.Format(types.DateLayout),
		p.ContactDetails,
		string(p.RiskAssessment),
		strconv.FormatBool(p.Sectioned),
		formatDate(p.SectionedDate),
		formatDate(p.ReviewDate),
	}
}

// parseBool mirrors the legacy boolean parsing: "true" in any case is true,
// everything else is false, and nothing ever fails the row.
func parseBool(s string) bool {
	return strings.EqualFold(s, "true")
}

// formatDate serializes an optional date, empty when absent
func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(types.DateLayout)
}
