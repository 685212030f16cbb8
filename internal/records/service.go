package records

import (
	"github.com/mentcare/records/pkg/logger"
	"github.com/mentcare/records/pkg/repository"
	"github.com/mentcare/records/pkg/types"
)

// Service implements record management over the entity repositories. Every
// call goes straight through to the backing store; there is no caching
// between calls.
type Service struct {
	logger           *logger.Logger
	patientRepo      repository.PatientRepositoryInterface
	consultationRepo repository.ConsultationRepositoryInterface
	prescriptionRepo repository.PrescriptionRepositoryInterface
}

// NewService creates a new records service instance
func NewService(
	log *logger.Logger,
	patientRepo repository.PatientRepositoryInterface,
	consultationRepo repository.ConsultationRepositoryInterface,
	prescriptionRepo repository.PrescriptionRepositoryInterface,
) *Service {
	return &Service{
		logger:           log,
		patientRepo:      patientRepo,
		consultationRepo: consultationRepo,
		prescriptionRepo: prescriptionRepo,
	}
}

// PatientSummary bundles a patient with their consultation and prescription
// history for the summary and report views
type PatientSummary struct {
	Patient       *types.Patient        `json:"patient"`
	Consultations []*types.Consultation `json:"consultations"`
	Prescriptions []*types.Prescription `json:"prescriptions"`
}

// ListPatients returns every patient
func (s *Service) ListPatients() []*types.Patient {
	return s.patientRepo.GetAll()
}

// GetPatient returns one patient by id
func (s *Service) GetPatient(id string) (*types.Patient, error) {
	patient, ok := s.patientRepo.FindByID(id)
	if !ok {
		return nil, types.NewNotFoundError(types.ErrCodeNotFound, "Patient not found")
	}
	return patient, nil
}

// SavePatient creates or replaces a patient record
func (s *Service) SavePatient(patient *types.Patient) {
	s.patientRepo.Save(patient)
	s.logger.Audit("", "save", "patient", true, map[string]interface{}{"patient_id": patient.ID})
}

// DeletePatient removes a patient record
func (s *Service) DeletePatient(id string) {
	s.patientRepo.Delete(id)
	s.logger.Audit("", "delete", "patient", true, map[string]interface{}{"patient_id": id})
}

// ListConsultations returns every consultation
func (s *Service) ListConsultations() []*types.Consultation {
	return s.consultationRepo.GetAll()
}

// GetConsultation returns one consultation by id
func (s *Service) GetConsultation(id string) (*types.Consultation, error) {
	consultation, ok := s.consultationRepo.FindByID(id)
	if !ok {
		return nil, types.NewNotFoundError(types.ErrCodeNotFound, "Consultation not found")
	}
	return consultation, nil
}

// SaveConsultation creates or replaces a consultation record
func (s *Service) SaveConsultation(consultation *types.Consultation) {
	s.consultationRepo.Save(consultation)
}

// DeleteConsultation removes a consultation record
func (s *Service) DeleteConsultation(id string) {
	s.consultationRepo.Delete(id)
}

// PatientConsultations returns a patient's consultations in file order
func (s *Service) PatientConsultations(patientID string) []*types.Consultation {
	return s.consultationRepo.GetByPatient(patientID)
}

// ListPrescriptions returns every prescription
func (s *Service) ListPrescriptions() []*types.Prescription {
	return s.prescriptionRepo.GetAll()
}

// GetPrescription returns one prescription by id
func (s *Service) GetPrescription(id string) (*types.Prescription, error) {
	prescription, ok := s.prescriptionRepo.FindByID(id)
	if !ok {
		return nil, types.NewNotFoundError(types.ErrCodeNotFound, "Prescription not found")
	}
	return prescription, nil
}

// SavePrescription creates or replaces a prescription record
func (s *Service) SavePrescription(prescription *types.Prescription) {
	s.prescriptionRepo.Save(prescription)
}

// DeletePrescription removes a prescription record
func (s *Service) DeletePrescription(id string) {
	s.prescriptionRepo.Delete(id)
}

// PatientPrescriptions returns a patient's prescriptions in file order
func (s *Service) PatientPrescriptions(patientID string) []*types.Prescription {
	return s.prescriptionRepo.GetByPatient(patientID)
}

// GetPatientSummary assembles the full record for one patient. The
// prescription list on each consultation is populated here, in memory,
// by joining the prescription store on patient id — the consultation
// store's prescriptions column is reserved and never persisted.
func (s *Service) GetPatientSummary(patientID string) (*PatientSummary, error) {
	patient, ok := s.patientRepo.FindByID(patientID)
	if !ok {
		return nil, types.NewNotFoundError(types.ErrCodeNotFound, "Patient not found")
	}

	consultations := s.consultationRepo.GetByPatient(patientID)
	prescriptions := s.prescriptionRepo.GetByPatient(patientID)

	for _, consultation := range consultations {
		consultation.Prescriptions = prescriptions
	}

	return &PatientSummary{
		Patient:       patient,
		Consultations: consultations,
		Prescriptions: prescriptions,
	}, nil
}
