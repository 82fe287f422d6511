package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/hireflow/internal/models"
	"github.com/yoockh/hireflow/internal/services"
)

type ApplicantHandler struct {
	applicants services.ApplicantService
	analytics  services.AnalyticsService
}

func NewApplicantHandler(applicants services.ApplicantService, analytics services.AnalyticsService) *ApplicantHandler {
	return &ApplicantHandler{applicants: applicants, analytics: analytics}
}

// List answers with the bare row array, no envelope.
func (h *ApplicantHandler) List(c *gin.Context) {
	rows, err := h.applicants.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if rows == nil {
		rows = []models.Applicant{}
	}

	c.JSON(http.StatusOK, rows)
}

func (h *ApplicantHandler) Analytics(c *gin.Context) {
	sum, err := h.analytics.Summary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "summary": sum})
}
