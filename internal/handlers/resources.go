package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openmcp/openmcp-backend/internal/requestdata"
	"github.com/openmcp/openmcp-backend/internal/services"
	"github.com/openmcp/openmcp-backend/internal/types"
)

type ResourceHandler struct {
	resourceService services.ResourceService
}

func NewResourceHandler(resourceService services.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

type createResourceRequest struct {
	Name        string             `json:"name" binding:"required"`
	Title       string             `json:"title"`
	URI         *string            `json:"uri"`
	Text        *string            `json:"text"`
	Description *string            `json:"description"`
	MimeType    *string            `json:"mime_type"`
	Annotations *types.Annotations `json:"annotations"`
}

func (h *ResourceHandler) Create(c *gin.Context) {
	var req createResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	createdBy := requestdata.Login(c.Request.Context())

	rec, err := h.resourceService.Create(c.Request.Context(), services.CreateResourceInput{
		Name:        req.Name,
		Title:       req.Title,
		URI:         req.URI,
		Text:        req.Text,
		Description: req.Description,
		MimeType:    req.MimeType,
		Annotations: req.Annotations,
	}, createdBy)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"resource": rec})
}

func (h *ResourceHandler) ListActual(c *gin.Context) {
	list, err := h.resourceService.ListActual(c.Request.Context(), c.Query("query"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"resources": list})
}

func (h *ResourceHandler) GetActual(c *gin.Context) {
	rec, err := h.resourceService.GetActual(c.Request.Context(), c.Param("name"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"resource": rec})
}

func (h *ResourceHandler) History(c *gin.Context) {
	list, err := h.resourceService.History(c.Request.Context(), c.Param("name"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"versions": list})
}

func (h *ResourceHandler) SetStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	status, err := types.ParseStatus(req.Status)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	version, ok := versionParam(c)
	if !ok {
		return
	}
	adminLogin := requestdata.Login(c.Request.Context())

	if err := h.resourceService.SetStatus(c.Request.Context(), c.Param("name"), version, status, adminLogin); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": status})
}

func (h *ResourceHandler) DeleteVersion(c *gin.Context) {
	version, ok := versionParam(c)
	if !ok {
		return
	}
	adminLogin := requestdata.Login(c.Request.Context())

	if err := h.resourceService.Delete(c.Request.Context(), c.Param("name"), version, adminLogin); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

func (h *ResourceHandler) DeleteAll(c *gin.Context) {
	adminLogin := requestdata.Login(c.Request.Context())

	if err := h.resourceService.DeleteAll(c.Request.Context(), c.Param("name"), adminLogin); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
