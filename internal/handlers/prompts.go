package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openmcp/openmcp-backend/internal/prompts"
	"github.com/openmcp/openmcp-backend/internal/requestdata"
	"github.com/openmcp/openmcp-backend/internal/services"
	"github.com/openmcp/openmcp-backend/internal/types"
)

type PromptHandler struct {
	promptService services.PromptService
}

func NewPromptHandler(promptService services.PromptService) *PromptHandler {
	return &PromptHandler{promptService: promptService}
}

type createPromptRequest struct {
	Name      string             `json:"name" binding:"required"`
	Title     string             `json:"title"`
	Messages  []prompts.Message  `json:"messages"`
	Arguments []prompts.Argument `json:"arguments"`
}

func (h *PromptHandler) Create(c *gin.Context) {
	var req createPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	createdBy := requestdata.Login(c.Request.Context())

	rec, err := h.promptService.Create(c.Request.Context(), req.Name, req.Title, req.Messages, req.Arguments, createdBy)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"prompt": rec})
}

func (h *PromptHandler) ListActual(c *gin.Context) {
	list, err := h.promptService.ListActual(c.Request.Context(), c.Query("query"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"prompts": list})
}

func (h *PromptHandler) GetActual(c *gin.Context) {
	rec, err := h.promptService.GetActual(c.Request.Context(), c.Param("name"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"prompt": rec})
}

func (h *PromptHandler) History(c *gin.Context) {
	list, err := h.promptService.History(c.Request.Context(), c.Param("name"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"versions": list})
}

type renderPromptRequest struct {
	Arguments map[string]string `json:"arguments"`
}

func (h *PromptHandler) Render(c *gin.Context) {
	var req renderPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}

	rendered, err := h.promptService.Render(c.Request.Context(), c.Param("name"), req.Arguments)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"rendered": rendered})
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *PromptHandler) SetStatus(c *gin.Context) {
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

	if err := h.promptService.SetStatus(c.Request.Context(), c.Param("name"), version, status, adminLogin); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": status})
}

func (h *PromptHandler) DeleteVersion(c *gin.Context) {
	version, ok := versionParam(c)
	if !ok {
		return
	}
	adminLogin := requestdata.Login(c.Request.Context())

	if err := h.promptService.Delete(c.Request.Context(), c.Param("name"), version, adminLogin); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

func (h *PromptHandler) DeleteAll(c *gin.Context) {
	adminLogin := requestdata.Login(c.Request.Context())

	if err := h.promptService.DeleteAll(c.Request.Context(), c.Param("name"), adminLogin); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

func versionParam(c *gin.Context) (int, bool) {
	version, err := strconv.Atoi(c.Param("version"))
	if err != nil || version < 1 {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return 0, false
	}
	return version, true
}
