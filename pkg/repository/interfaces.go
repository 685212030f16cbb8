package repository

import "github.com/mentcare/records/pkg/types"

// The repository contract deliberately mirrors the legacy persistence layer:
// reads never fail outward (I/O problems degrade to an empty result), writes
// are silent best-effort, and an absent record is a normal outcome rather
// than an error.

// UserRepositoryInterface defines the interface for user data operations
type UserRepositoryInterface interface {
	GetAll() []*types.User
	FindByID(id string) (*types.User, bool)
	FindByUsername(username string) (*types.User, bool)
	Save(user *types.User)
	Delete(id string)
	Authenticate(username, password string) (*types.User, bool)
}

// PatientRepositoryInterface defines the interface for patient data operations
type PatientRepositoryInterface interface {
	GetAll() []*types.Patient
	FindByID(id string) (*types.Patient, bool)
	Save(patient *types.Patient)
	Delete(id string)
}

// ConsultationRepositoryInterface defines the interface for consultation data operations
type ConsultationRepositoryInterface interface {
	GetAll() []*types.Consultation
	FindByID(id string) (*types.Consultation, bool)
	GetByPatient(patientID string) []*types.Consultation
	Save(consultation *types.Consultation)
	Delete(id string)
}

// PrescriptionRepositoryInterface defines the interface for prescription data operations
type PrescriptionRepositoryInterface interface {
	GetAll() []*types.Prescription
	FindByID(id string) (*types.Prescription, bool)
	GetByPatient(patientID string) []*types.Prescription
	GetByPrescriber(prescriberID string) []*types.Prescription
	Save(prescription *types.Prescription)
	Delete(id string)
}
