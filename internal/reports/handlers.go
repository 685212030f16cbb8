package reports

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentcare/records/internal/iam"
	"github.com/mentcare/records/pkg/logger"
	"github.com/mentcare/records/pkg/types"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handlers contains HTTP handlers for report export
type Handlers struct {
	exporter *Exporter
	logger   *logger.Logger
}

// NewHandlers creates new report HTTP handlers
func NewHandlers(exporter *Exporter, log *logger.Logger) *Handlers {
	return &Handlers{
		exporter: exporter,
		logger:   log,
	}
}

// RegisterRoutes registers report routes with the router
func (h *Handlers) RegisterRoutes(router *gin.Engine, authHandlers *iam.Handlers) {
	v1 := router.Group("/api/v1/reports")
	v1.Use(authHandlers.AuthMiddleware(), authHandlers.RequirePermission(iam.PermGenerateReports))
	{
		v1.GET("/patients/:id", h.PatientCareSummary)
	}
}

// PatientCareSummary streams a patient's care summary workbook
func (h *Handlers) PatientCareSummary(c *gin.Context) {
	patientID := c.Param("id")

	workbook, err := h.exporter.PatientCareSummary(patientID)
	if err != nil {
		if mcErr, ok := err.(*types.MentcareError); ok && mcErr.Type == types.ErrorTypeNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": mcErr.Message})
			return
		}
		h.logger.WithError(err).Error("Failed to generate report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	filename := fmt.Sprintf("care-summary-%s.xlsx", patientID)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, workbook)
}
