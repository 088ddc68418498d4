package handler

import (
	"net/http"

	"fieldreport/internal/middleware"
	"fieldreport/internal/model"
	"fieldreport/internal/service"
	"fieldreport/pkg/response"

	"github.com/gin-gonic/gin"
)

type MasterDataHandler struct {
	masterDataService service.MasterDataService
}

func NewMasterDataHandler(masterDataService service.MasterDataService) *MasterDataHandler {
	return &MasterDataHandler{masterDataService: masterDataService}
}

func (h *MasterDataHandler) RegisterRoutes(router *gin.RouterGroup) {
	branches := router.Group("/api/branches")
	{
		branches.GET("", middleware.RequireRole(model.AllRoles...), h.ListBranches)
		branches.POST("", middleware.RequireRole(model.RoleAdmin), h.AddBranch)
		branches.DELETE("/:code", middleware.RequireRole(model.RoleAdmin), h.DeleteBranch)
	}

	areas := router.Group("/api/areas")
	{
		areas.GET("", middleware.RequireRole(model.AllRoles...), h.ListAreas)
		areas.POST("", middleware.RequireRole(model.RoleAdmin), h.AddArea)
		areas.DELETE("/:code", middleware.RequireRole(model.RoleAdmin), h.DeleteArea)
	}
}

type codeBody struct {
	Code string `json:"code" binding:"required"`
}

// ListBranches returns the branch code list
func (h *MasterDataHandler) ListBranches(c *gin.Context) {
	codes, err := h.masterDataService.ListBranches(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, codes))
}

// AddBranch registers a new branch code
func (h *MasterDataHandler) AddBranch(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Actor not found in context"))
		return
	}

	var body codeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	if err := h.masterDataService.AddBranch(c.Request.Context(), actor.ID, body.Code); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, body.Code))
}

// DeleteBranch removes a branch code
func (h *MasterDataHandler) DeleteBranch(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Actor not found in context"))
		return
	}

	if err := h.masterDataService.DeleteBranch(c.Request.Context(), actor.ID, c.Param("code")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Branch deleted"))
}

// ListAreas returns the area code list
func (h *MasterDataHandler) ListAreas(c *gin.Context) {
	codes, err := h.masterDataService.ListAreas(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, codes))
}

// AddArea registers a new area code
func (h *MasterDataHandler) AddArea(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Actor not found in context"))
		return
	}

	var body codeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	if err := h.masterDataService.AddArea(c.Request.Context(), actor.ID, body.Code); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, body.Code))
}

// DeleteArea removes an area code
func (h *MasterDataHandler) DeleteArea(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Actor not found in context"))
		return
	}

	if err := h.masterDataService.DeleteArea(c.Request.Context(), actor.ID, c.Param("code")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Area deleted"))
}
