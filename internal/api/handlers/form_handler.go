package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/hireflow/internal/models"
	"github.com/yoockh/hireflow/internal/services"
)

type FormHandler struct {
	svc services.FormService
}

func NewFormHandler(svc services.FormService) *FormHandler {
	return &FormHandler{svc: svc}
}

type CreateFormRequest struct {
	FormTitle   string             `json:"formTitle"`
	Description string             `json:"description"`
	Department  string             `json:"department"`
	Fields      []models.FieldSpec `json:"fields"`
}

// UpdateFormRequest leaves absent (or null) members untouched.
type UpdateFormRequest struct {
	FormTitle   *string             `json:"formTitle,omitempty"`
	Description *string             `json:"description,omitempty"`
	Department  *string             `json:"department,omitempty"`
	Fields      *[]models.FieldSpec `json:"fields,omitempty"`
}

func (h *FormHandler) Create(c *gin.Context) {
	var req CreateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "FormHandler.Create", "invalid request body", err)
		return
	}

	form, err := h.svc.Create(c.Request.Context(), req.FormTitle, req.Description, req.Department, req.Fields)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "form": form})
}

func (h *FormHandler) List(c *gin.Context) {
	forms, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if forms == nil {
		forms = []models.FormTemplate{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "forms": forms})
}

func (h *FormHandler) Get(c *gin.Context) {
	form, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "form": form})
}

func (h *FormHandler) Update(c *gin.Context) {
	var req UpdateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "FormHandler.Update", "invalid request body", err)
		return
	}

	patch := models.FormPatch{
		FormTitle:   req.FormTitle,
		Description: req.Description,
		Department:  req.Department,
		Fields:      req.Fields,
	}
	if err := h.svc.Update(c.Request.Context(), c.Param("id"), patch); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Form updated successfully"})
}

func (h *FormHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Form deleted successfully"})
}
