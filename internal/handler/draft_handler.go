package handler

import (
	"net/http"

	"fieldreport/internal/middleware"
	"fieldreport/internal/model"
	"fieldreport/internal/service"
	"fieldreport/pkg/response"

	"github.com/gin-gonic/gin"
)

type DraftHandler struct {
	draftService service.DraftService
}

func NewDraftHandler(draftService service.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

func (h *DraftHandler) RegisterRoutes(router *gin.RouterGroup) {
	drafts := router.Group("/api/drafts")
	{
		drafts.GET("/me", middleware.RequireRole(model.RoleAO), h.LoadDraft)
		drafts.PUT("/me", middleware.RequireRole(model.RoleAO), h.SaveDraft)
		drafts.DELETE("/me", middleware.RequireRole(model.RoleAO), h.ClearDraft)
	}
}

// LoadDraft returns the caller's autosaved draft, if any
func (h *DraftHandler) LoadDraft(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Actor not found in context"))
		return
	}

	draft, err := h.draftService.Load(c.Request.Context(), actor.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, draft))
}

// SaveDraft stores the caller's in-progress form payload
func (h *DraftHandler) SaveDraft(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Actor not found in context"))
		return
	}

	var data model.ReportData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.draftService.Save(c.Request.Context(), actor.ID, data); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Draft saved"))
}

// ClearDraft discards the caller's autosaved draft
func (h *DraftHandler) ClearDraft(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Actor not found in context"))
		return
	}

	if err := h.draftService.Clear(c.Request.Context(), actor.ID); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Draft cleared"))
}
