package records

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mentcare/records/internal/iam"
	"github.com/mentcare/records/pkg/logger"
	"github.com/mentcare/records/pkg/types"
)

// Handlers contains HTTP handlers for patient, consultation and
// prescription records
type Handlers struct {
	service *Service
	logger  *logger.Logger
}

// NewHandlers creates new records HTTP handlers
func NewHandlers(service *Service, log *logger.Logger) *Handlers {
	return &Handlers{
		service: service,
		logger:  log,
	}
}

// RegisterRoutes registers record routes with the router. All routes
// require authentication; writes are additionally gated on the role
// permission matrix.
func (h *Handlers) RegisterRoutes(router *gin.Engine, authHandlers *iam.Handlers) {
	v1 := router.Group("/api/v1")
	v1.Use(authHandlers.AuthMiddleware())
	{
		patients := v1.Group("/patients")
		patients.Use(authHandlers.RequirePermission(iam.PermViewPatients))
		{
			patients.GET("", h.ListPatients)
			patients.GET("/:id", h.GetPatient)
			patients.GET("/:id/consultations", h.PatientConsultations)
			patients.GET("/:id/prescriptions", h.PatientPrescriptions)
			patients.GET("/:id/summary", h.PatientSummary)
			patients.POST("", authHandlers.RequirePermission(iam.PermEditPatients), h.SavePatient)
			patients.DELETE("/:id", authHandlers.RequirePermission(iam.PermEditPatients), h.DeletePatient)
		}

		consultations := v1.Group("/consultations")
		consultations.Use(authHandlers.RequirePermission(iam.PermViewPatients))
		{
			consultations.GET("", h.ListConsultations)
			consultations.GET("/:id", h.GetConsultation)
			consultations.POST("", authHandlers.RequirePermission(iam.PermEditPatients), h.SaveConsultation)
			consultations.DELETE("/:id", authHandlers.RequirePermission(iam.PermEditPatients), h.DeleteConsultation)
		}

		prescriptions := v1.Group("/prescriptions")
		prescriptions.Use(authHandlers.RequirePermission(iam.PermViewPatients))
		{
			prescriptions.GET("", h.ListPrescriptions)
			prescriptions.GET("/:id", h.GetPrescription)
			prescriptions.POST("", authHandlers.RequirePermission(iam.PermPrescribeMedication), h.SavePrescription)
			prescriptions.DELETE("/:id", authHandlers.RequirePermission(iam.PermPrescribeMedication), h.DeletePrescription)
		}
	}
}

// PatientRequest is the JSON payload for creating or replacing a patient.
// Dates travel as store-format strings; the id is assigned server-side
// when omitted.
type PatientRequest struct {
	ID                   string   `json:"id"`
	NationalHealthNumber string   `json:"national_health_number" binding:"required"`
	Name                 string   `json:"name" binding:"required"`
	Address              string   `json:"address" binding:"required"`
	DateOfBirth          string   `json:"date_of_birth" binding:"required"`
	ContactDetails       string   `json:"contact_details"`
	RiskAssessment       string   `json:"risk_assessment"`
	Conditions           []string `json:"conditions"`
	Sectioned            bool     `json:"sectioned"`
	SectionedDate        string   `json:"sectioned_date"`
	ReviewDate           string   `json:"review_date"`
}

// ListPatients returns every patient
func (h *Handlers) ListPatients(c *gin.Context) {
	patients := h.service.ListPatients()
	c.JSON(http.StatusOK, gin.H{"patients": patients, "count": len(patients)})
}

// GetPatient returns one patient by id
func (h *Handlers) GetPatient(c *gin.Context) {
	patient, err := h.service.GetPatient(c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"patient": patient})
}

// SavePatient creates or replaces a patient
func (h *Handlers) SavePatient(c *gin.Context) {
	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	patient, err := h.patientFromRequest(&req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.service.SavePatient(patient)
	c.JSON(http.StatusOK, gin.H{"patient": patient})
}

// DeletePatient removes a patient
func (h *Handlers) DeletePatient(c *gin.Context) {
	h.service.DeletePatient(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// PatientConsultations lists a patient's consultations
func (h *Handlers) PatientConsultations(c *gin.Context) {
	consultations := h.service.PatientConsultations(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"consultations": consultations, "count": len(consultations)})
}

// PatientPrescriptions lists a patient's prescriptions
func (h *Handlers) PatientPrescriptions(c *gin.Context) {
	prescriptions := h.service.PatientPrescriptions(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"prescriptions": prescriptions, "count": len(prescriptions)})
}

// PatientSummary returns the assembled record for one patient
func (h *Handlers) PatientSummary(c *gin.Context) {
	summary, err := h.service.GetPatientSummary(c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ConsultationRequest is the JSON payload for creating or replacing a
// consultation
type ConsultationRequest struct {
	ID                    string   `json:"id"`
	PatientID             string   `json:"patient_id" binding:"required"`
	DateTime              string   `json:"date_time" binding:"required"`
	StaffIDs              []string `json:"staff_ids"`
	SubjectiveImpressions string   `json:"subjective_impressions"`
	Diagnoses             []string `json:"diagnoses"`
	Referrals             []string `json:"referrals"`
	RecordUpdated         bool     `json:"record_updated"`
}

// ListConsultations returns every consultation
func (h *Handlers) ListConsultations(c *gin.Context) {
	consultations := h.service.ListConsultations()
	c.JSON(http.StatusOK, gin.H{"consultations": consultations, "count": len(consultations)})
}

// GetConsultation returns one consultation by id
func (h *Handlers) GetConsultation(c *gin.Context) {
	consultation, err := h.service.GetConsultation(c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"consultation": consultation})
}

// SaveConsultation creates or replaces a consultation
func (h *Handlers) SaveConsultation(c *gin.Context) {
	var req ConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	dateTime, err := time.Parse(types.DateTimeLayout, req.DateTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_time, want " + types.DateTimeLayout})
		return
	}

	consultation := types.NewConsultation(orNewID(req.ID), req.PatientID, dateTime)
	for _, staffID := range req.StaffIDs {
		consultation.AddStaffMember(staffID)
	}
	consultation.SubjectiveImpressions = req.SubjectiveImpressions
	consultation.Diagnoses = append(consultation.Diagnoses, req.Diagnoses...)
	consultation.Referrals = append(consultation.Referrals, req.Referrals...)
	consultation.RecordUpdated = req.RecordUpdated

	h.service.SaveConsultation(consultation)
	c.JSON(http.StatusOK, gin.H{"consultation": consultation})
}

// DeleteConsultation removes a consultation
func (h *Handlers) DeleteConsultation(c *gin.Context) {
	h.service.DeleteConsultation(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// PrescriptionRequest is the JSON payload for creating or replacing a
// prescription
type PrescriptionRequest struct {
	ID           string `json:"id"`
	PatientID    string `json:"patient_id" binding:"required"`
	DrugName     string `json:"drug_name" binding:"required"`
	Dosage       string `json:"dosage" binding:"required"`
	Frequency    string `json:"frequency" binding:"required"`
	StartDate    string `json:"start_date" binding:"required"`
	EndDate      string `json:"end_date"`
	PrescriberID string `json:"prescriber_id" binding:"required"`
	Repeat       bool   `json:"repeat"`
	Comments     string `json:"comments"`
}

// ListPrescriptions returns every prescription
func (h *Handlers) ListPrescriptions(c *gin.Context) {
	prescriptions := h.service.ListPrescriptions()
	c.JSON(http.StatusOK, gin.H{"prescriptions": prescriptions, "count": len(prescriptions)})
}

// GetPrescription returns one prescription by id
func (h *Handlers) GetPrescription(c *gin.Context) {
	prescription, err := h.service.GetPrescription(c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prescription": prescription})
}

// SavePrescription creates or replaces a prescription
func (h *Handlers) SavePrescription(c *gin.Context) {
	var req PrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	startDate, err := time.Parse(types.DateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date, want " + types.DateLayout})
		return
	}

	prescription := types.NewPrescription(
		orNewID(req.ID), req.PatientID, req.DrugName, req.Dosage, req.Frequency, startDate, req.PrescriberID)

	if req.EndDate != "" {
		endDate, err := time.Parse(types.DateLayout, req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date, want " + types.DateLayout})
			return
		}
		prescription.EndDate = &endDate
	}
	prescription.Repeat = req.Repeat
	prescription.Comments = req.Comments

	h.service.SavePrescription(prescription)
	c.JSON(http.StatusOK, gin.H{"prescription": prescription})
}

// DeletePrescription removes a prescription
func (h *Handlers) DeletePrescription(c *gin.Context) {
	h.service.DeletePrescription(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// patientFromRequest builds the entity, validating dates and the risk level
func (h *Handlers) patientFromRequest(req *PatientRequest) (*types.Patient, error) {
	dob, err := time.Parse(types.DateLayout, req.DateOfBirth)
	if err != nil {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "Invalid date_of_birth, want "+types.DateLayout)
	}

	patient := types.NewPatient(orNewID(req.ID), req.NationalHealthNumber, req.Name, req.Address, dob, req.ContactDetails)

	if req.RiskAssessment != "" {
		risk, ok := types.ParseRiskLevel(req.RiskAssessment)
		if !ok {
			return nil, types.NewValidationError(types.ErrCodeInvalidInput, "Unknown risk_assessment value")
		}
		patient.RiskAssessment = risk
	}

	for _, condition := range req.Conditions {
		patient.AddCondition(condition)
	}

	patient.Sectioned = req.Sectioned
	if req.SectionedDate != "" {
		sectionedDate, err := time.Parse(types.DateLayout, req.SectionedDate)
		if err != nil {
			return nil, types.NewValidationError(types.ErrCodeInvalidInput, "Invalid sectioned_date, want "+types.DateLayout)
		}
		patient.SectionedDate = &sectionedDate
	}
	if req.ReviewDate != "" {
		reviewDate, err := time.Parse(types.DateLayout, req.ReviewDate)
		if err != nil {
			return nil, types.NewValidationError(types.ErrCodeInvalidInput, "Invalid review_date, want "+types.DateLayout)
		}
		patient.ReviewDate = &reviewDate
	}

	return patient, nil
}

// orNewID returns the supplied id or assigns a fresh one. Stored ids are
// opaque strings, so server-assigned uuids coexist with legacy PATnnn ids.
func orNewID(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}

// handleError maps service errors to HTTP responses
func (h *Handlers) handleError(c *gin.Context, err error) {
	if mcErr, ok := err.(*types.MentcareError); ok {
		switch mcErr.Type {
		case types.ErrorTypeNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": mcErr.Message})
		case types.ErrorTypeValidation:
			c.JSON(http.StatusBadRequest, gin.H{"error": mcErr.Message})
		default:
			h.logger.WithError(err).Error("Internal error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	h.logger.WithError(err).Error("Unhandled error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
