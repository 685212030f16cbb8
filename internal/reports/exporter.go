// Package reports renders patient care summaries as spreadsheet workbooks
// for the clinic's administrative staff.
package reports

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mentcare/records/internal/records"
	"github.com/mentcare/records/pkg/logger"
	"github.com/mentcare/records/pkg/types"
)

// Column headers for each sheet of the care summary workbook
var (
	patientSheetHeader = []string{
		"Patient ID", "NHS Number", "Name", "Address", "Date of Birth", "Age",
		"Contact", "Risk Level", "Sectioned", "Sectioned Date", "Review Date",
	}
	consultationSheetHeader = []string{
		"Consultation ID", "Date & Time", "Staff", "Impressions", "Diagnoses", "Referrals", "Updated",
	}
	prescriptionSheetHeader = []string{
		"Prescription ID", "Drug", "Dosage", "Frequency", "Start Date", "End Date", "Prescriber", "Repeat", "Comments",
	}
)

// Exporter builds care summary workbooks from the records service
type Exporter struct {
	service *records.Service
	logger  *logger.Logger
}

// NewExporter creates a new report exporter
func NewExporter(service *records.Service, log *logger.Logger) *Exporter {
	return &Exporter{
		service: service,
		logger:  log,
	}
}

// PatientCareSummary renders one patient's full record as an xlsx workbook
// with a sheet each for demographics, consultations and prescriptions.
func (e *Exporter) PatientCareSummary(patientID string) ([]byte, error) {
	summary, err := e.service.GetPatientSummary(patientID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	// WriteTo needs the file open; close only on the error paths.

	if err := e.writePatientSheet(f, summary.Patient); err != nil {
		f.Close()
		return nil, err
	}
	if err := e.writeConsultationSheet(f, summary.Consultations); err != nil {
		f.Close()
		return nil, err
	}
	if err := e.writePrescriptionSheet(f, summary.Prescriptions); err != nil {
		f.Close()
		return nil, err
	}

	f.DeleteSheet("Sheet1")

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}

	e.logger.WithField("patient_id", patientID).Info("Generated care summary report")
	return buf.Bytes(), nil
}

func (e *Exporter) writePatientSheet(f *excelize.File, p *types.Patient) error {
	const sheet = "Patient"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	row := []interface{}{
		p.ID,
		p.NationalHealthNumber,
		p.Name,
		p.Address,
		p.DateOfBirth.Format(types.DateLayout),
		p.Age(),
		p.ContactDetails,
		string(p.RiskAssessment),
		p.Sectioned,
		optionalDate(p.SectionedDate),
		optionalDate(p.ReviewDate),
	}

	return writeSheet(f, sheet, patientSheetHeader, [][]interface{}{row})
}

func (e *Exporter) writeConsultationSheet(f *excelize.File, consultations []*types.Consultation) error {
	const sheet = "Consultations"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	rows := make([][]interface{}, 0, len(consultations))
	for _, c := range consultations {
		rows = append(rows, []interface{}{
			c.ID,
			c.DateTime.Format(types.DateTimeLayout),
			strings.Join(c.StaffIDs, ", "),
			c.SubjectiveImpressions,
			strings.Join(c.Diagnoses, ", "),
			strings.Join(c.Referrals, ", "),
			c.RecordUpdated,
		})
	}

	return writeSheet(f, sheet, consultationSheetHeader, rows)
}

func (e *Exporter) writePrescriptionSheet(f *excelize.File, prescriptions []*types.Prescription) error {
	const sheet = "Prescriptions"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	rows := make([][]interface{}, 0, len(prescriptions))
	for _, p := range prescriptions {
		rows = append(rows, []interface{}{
			p.ID,
			p.DrugName,
			p.Dosage,
			p.Frequency,
			p.StartDate.Format(types.DateLayout),
			optionalDate(p.EndDate),
			p.PrescriberID,
			p.Repeat,
			p.Comments,
		})
	}

	return writeSheet(f, sheet, prescriptionSheetHeader, rows)
}

// writeSheet fills one sheet: bold header row, then data rows
func writeSheet(f *excelize.File, sheet string, header []string, rows [][]interface{}) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return fmt.Errorf("failed to set header cell: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to style header cell: %w", err)
		}
	}

	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to set cell: %w", err)
			}
		}
	}

	return nil
}

// optionalDate serializes an optional date, empty when absent
func optionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(types.DateLayout)
}
