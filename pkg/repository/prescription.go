package repository

import (
	"fmt"
	"strconv"
	"time"

	"github.com/mentcare/records/pkg/csvstore"
	"github.com/mentcare/records/pkg/logger"
	"github.com/mentcare/records/pkg/monitoring"
	"github.com/mentcare/records/pkg/types"
)

// PrescriptionHeader is the column layout of the prescription store
var PrescriptionHeader = []string{
	"prescriptionId", "patientId", "drugName", "dosage", "frequency",
	"startDate", "endDate", "prescriberId", "isRepeat", "comments",
}

// PrescriptionRepository implements prescription persistence over the flat-file store
type PrescriptionRepository struct {
	store  *csvstore.Store
	file   string
	logger *logger.Logger
}

// NewPrescriptionRepository creates a new prescription repository
func NewPrescriptionRepository(store *csvstore.Store, file string, log *logger.Logger) *PrescriptionRepository {
	return &PrescriptionRepository{
		store:  store,
		file:   file,
		logger: log,
	}
}

// GetAll loads every prescription from the store in file order
func (r *PrescriptionRepository) GetAll() []*types.Prescription {
	rows, err := r.store.ReadAll(r.file)
	if err != nil {
		r.logger.WithStore(r.file).WithError(err).Error("Failed to read prescription store")
		return nil
	}

	if len(rows) > 0 && rows[0][0] == PrescriptionHeader[0] {
		rows = rows[1:]
	}

	var prescriptions []*types.Prescription
	for _, row := range rows {
		prescription, err := r.fromRow(row)
		if err != nil {
			r.logger.RowSkipped(r.file, row, err)
			monitoring.RecordRowSkipped(r.file)
			continue
		}
		prescriptions = append(prescriptions, prescription)
	}

	return prescriptions
}

// FindByID returns the prescription with the given id; absent is a normal outcome
func (r *PrescriptionRepository) FindByID(id string) (*types.Prescription, bool) {
	for _, prescription := range r.GetAll() {
		if prescription.ID == id {
			return prescription, true
		}
	}
	return nil, false
}

// GetByPatient returns the prescriptions for a patient in file order
func (r *PrescriptionRepository) GetByPatient(patientID string) []*types.Prescription {
	var matched []*types.Prescription
	for _, prescription := range r.GetAll() {
		if prescription.PatientID == patientID {
			matched = append(matched, prescription)
		}
	}
	return matched
}

// GetByPrescriber returns the prescriptions written by a staff member in file order
func (r *PrescriptionRepository) GetByPrescriber(prescriberID string) []*types.Prescription {
	var matched []*types.Prescription
	for _, prescription := range r.GetAll() {
		if prescription.PrescriberID == prescriberID {
			matched = append(matched, prescription)
		}
	}
	return matched
}

// Save writes the prescription, replacing any existing row with the same id
func (r *PrescriptionRepository) Save(prescription *types.Prescription) {
	prescriptions := r.GetAll()

	kept := prescriptions[:0]
	for _, p := range prescriptions {
		if p.ID != prescription.ID {
			kept = append(kept, p)
		}
	}
	kept = append(kept, prescription)

	r.writeAll(kept)
}

// Delete removes the prescription with the given id
func (r *PrescriptionRepository) Delete(id string) {
	prescriptions := r.GetAll()

	kept := prescriptions[:0]
	for _, p := range prescriptions {
		if p.ID != id {
			kept = append(kept, p)
		}
	}

	r.writeAll(kept)
}

func (r *PrescriptionRepository) writeAll(prescriptions []*types.Prescription) {
	rows := [][]string{PrescriptionHeader}
	for _, p := range prescriptions {
		rows = append(rows, prescriptionToRow(p))
	}

	if err := r.store.WriteAll(r.file, rows); err != nil {
		r.logger.WithStore(r.file).WithError(err).Error("Failed to write prescription store")
	}
}

// fromRow maps a stored row to a prescription. The first eight columns are
// required (endDate may be empty but its column must exist because
// prescriberId follows it); isRepeat and comments are trailing optionals.
func (r *PrescriptionRepository) fromRow(row []string) (*types.Prescription, error) {
	if len(row) < 8 {
		return nil, fmt.Errorf("prescription row has %d fields, want at least 8", len(row))
	}

	startDate, err := time.Parse(types.DateLayout, row[5])
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", row[5], err)
	}

	prescription := types.NewPrescription(row[0], row[1], row[2], row[3], row[4], startDate, row[7])

	if row[6] != "" {
		endDate, err := time.Parse(types.DateLayout, row[6])
		if err != nil {
			return nil, fmt.Errorf("invalid end date %q: %w", row[6], err)
		}
		prescription.EndDate = &endDate
	}

	if len(row) > 8 && row[8] != "" {
		prescription.Repeat = parseBool(row[8])
	}

	if len(row) > 9 && row[9] != "" {
		prescription.Comments = row[9]
	}

	return prescription, nil
}

func prescriptionToRow(p *types.Prescription) []string {
	return []string{
		p.ID,
		p.PatientID,
		p.DrugName,
		p.Dosage,
		p.Frequency,
		p.StartDate.Format(types.DateLayout),
		formatDate(p.EndDate),
		p.PrescriberID,
		strconv.FormatBool(p.Repeat),
		p.Comments,
	}
}
