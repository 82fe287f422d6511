package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/hireflow/internal/services"
)

type WorkflowHandler struct {
	svc services.WorkflowService
}

func NewWorkflowHandler(svc services.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{svc: svc}
}

func (h *WorkflowHandler) SendCredentials(c *gin.Context) {
	sent, err := h.svc.SendCredentials(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Credentials sent to shortlisted candidates", "sent": sent})
}

func (h *WorkflowHandler) SyncApplicants(c *gin.Context) {
	if err := h.svc.SyncApplicants(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Applicant sync triggered"})
}

func (h *WorkflowHandler) EmailHired(c *gin.Context) {
	if err := h.svc.EmailHired(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Emails sent to hired candidates"})
}

func (h *WorkflowHandler) UpdateOnsiteInterview(c *gin.Context) {
	var req services.OnsiteInterview
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "WorkflowHandler.UpdateOnsiteInterview", "invalid request body", err)
		return
	}

	if err := h.svc.UpdateOnsiteInterview(c.Request.Context(), req); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Onsite interview updated"})
}
