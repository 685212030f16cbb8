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

// ConsultationHeader is the column layout of the consultation store. The
// prescriptions column is reserved: it is always written empty and never
// read back; prescriptions live in their own store keyed by patient.
var ConsultationHeader = []string{
	"consultationId", "patientId", "dateTime", "staffIds",
	"impressions", "diagnoses", "prescriptions", "referrals", "updated",
}

// ListSeparator joins list-valued cells; values must not contain it
const ListSeparator = ";"

// ConsultationRepository implements consultation persistence over the flat-file store
type ConsultationRepository struct {
	store  *csvstore.Store
	file   string
	logger *logger.Logger
}

// NewConsultationRepository creates a new consultation repository
func NewConsultationRepository(store *csvstore.Store, file string, log *logger.Logger) *ConsultationRepository {
	return &ConsultationRepository{
		store:  store,
		file:   file,
		logger: log,
	}
}

// GetAll loads every consultation from the store in file order
func (r *ConsultationRepository) GetAll() []*types.Consultation {
	rows, err := r.store.ReadAll(r.file)
	if err != nil {
		r.logger.WithStore(r.file).WithError(err).Error("Failed to read consultation store")
		return nil
	}

	if len(rows) > 0 && rows[0][0] == ConsultationHeader[0] {
		rows = rows[1:]
	}

	var consultations []*types.Consultation
	for _, row := range rows {
		consultation, err := r.fromRow(row)
		if err != nil {
			r.logger.RowSkipped(r.file, row, err)
			monitoring.RecordRowSkipped(r.file)
			continue
		}
		consultations = append(consultations, consultation)
	}

	return consultations
}

// FindByID returns the consultation with the given id; absent is a normal outcome
func (r *ConsultationRepository) FindByID(id string) (*types.Consultation, bool) {
	for _, consultation := range r.GetAll() {
		if consultation.ID == id {
			return consultation, true
		}
	}
	return nil, false
}

// GetByPatient returns the consultations for a patient in file order
func (r *ConsultationRepository) GetByPatient(patientID string) []*types.Consultation {
	var matched []*types.Consultation
	for _, consultation := range r.GetAll() {
		if consultation.PatientID == patientID {
			matched = append(matched, consultation)
		}
	}
	return matched
}

// Save writes the consultation, replacing any existing row with the same id
func (r *ConsultationRepository) Save(consultation *types.Consultation) {
	consultations := r.GetAll()

	kept := consultations[:0]
	for _, c := range consultations {
		if c.ID != consultation.ID {
			kept = append(kept, c)
		}
	}
	kept = append(kept, consultation)

	r.writeAll(kept)
}

// Delete removes the consultation with the given id
func (r *ConsultationRepository) Delete(id string) {
	consultations := r.GetAll()

	kept := consultations[:0]
	for _, c := range consultations {
		if c.ID != id {
			kept = append(kept, c)
		}
	}

	r.writeAll(kept)
}

func (r *ConsultationRepository) writeAll(consultations []*types.Consultation) {
	rows := [][]string{ConsultationHeader}
	for _, c := range consultations {
		rows = append(rows, consultationToRow(c))
	}

	if err := r.store.WriteAll(r.file, rows); err != nil {
		r.logger.WithStore(r.file).WithError(err).Error("Failed to write consultation store")
	}
}

// fromRow maps a stored row to a consultation. Only id, patientId and
// dateTime are required; every later column is a guarded optional.
func (r *ConsultationRepository) fromRow(row []string) (*types.Consultation, error) {
	if len(row) < 3 {
		return nil, fmt.Errorf("consultation row has %d fields, want at least 3", len(row))
	}

	dateTime, err := time.Parse(types.DateTimeLayout, row[2])
	if err != nil {
		return nil, fmt.Errorf("invalid consultation date-time %q: %w", row[2], err)
	}

	consultation := types.NewConsultation(row[0], row[1], dateTime)

	if len(row) > 3 && row[3] != "" {
		consultation.StaffIDs = strings.Split(row[3], ListSeparator)
	}

	if len(row) > 4 {
		consultation.SubjectiveImpressions = row[4]
	}

	if len(row) > 5 && row[5] != "" {
		consultation.Diagnoses = strings.Split(row[5], ListSeparator)
	}

	// row[6] is the reserved prescriptions column; never read back

	if len(row) > 7 && row[7] != "" {
		consultation.Referrals = strings.Split(row[7], ListSeparator)
	}

	if len(row) > 8 && row[8] != "" {
		consultation.RecordUpdated = parseBool(row[8])
	}

	return consultation, nil
}

func consultationToRow(c *types.Consultation) []string {
	return []string{
		c.ID,
		c.PatientID,
		c.DateTime.Format(types.DateTimeLayout),
		strings.Join(c.StaffIDs, ListSeparator),
		c.SubjectiveImpressions,
		strings.Join(c.Diagnoses, ListSeparator),
		"", // prescriptions: reserved column
		strings.Join(c.Referrals, ListSeparator),
		strconv.FormatBool(c.RecordUpdated),
	}
}
