package handler

import (
	"context"
	"errors"
	"net/http"

	"fieldreport/internal/middleware"
	"fieldreport/internal/model"
	"fieldreport/internal/service"
	"fieldreport/internal/workflow"
	"fieldreport/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/api/reports")
	{
		reports.GET("", middleware.RequireRole(model.AllRoles...), h.ListReports)
		reports.GET("/:id", middleware.RequireRole(model.AllRoles...), h.GetReport)
		reports.POST("", middleware.RequireRole(model.RoleAO), h.CreateReport)
		reports.PUT("/:id/draft", middleware.RequireRole(model.RoleAO), h.SaveProgress)
		reports.POST("/:id/submit", middleware.RequireRole(model.RoleAO), h.Resubmit)
		reports.POST("/:id/cancel", middleware.RequireRole(model.RoleAO), h.CancelSubmission)
		reports.POST("/:id/open", middleware.RequireRole(model.RoleAK), h.OpenReport)
		reports.POST("/:id/approve", middleware.RequireRole(model.RoleAK, model.RoleAKP), h.ApproveReport)
		reports.POST("/:id/return", middleware.RequireRole(model.RoleAK, model.RoleAKA, model.RoleAKP), h.ReturnReport)
		reports.POST("/:id/forward", middleware.RequireRole(model.RoleAK, model.RoleAKA), h.ForwardReport)
		reports.PUT("/:id/override", middleware.RequireRole(model.RoleITSupport), h.OverrideReport)
		reports.DELETE("/:id", middleware.RequireRole(model.RoleAO, model.RoleITSupport), h.DeleteReport)
	}
}

// statusFor maps workflow sentinel errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, workflow.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, workflow.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, workflow.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, workflow.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abortWorkflowErr(c *gin.Context, err error) {
	status := statusFor(err)
	c.JSON(status, response.Error(status, err.Error()))
}

// ListReports returns the reports visible to the caller, narrowed by filters
func (h *ReportHandler) ListReports(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Actor not found in context"))
		return
	}

	filter := service.ReportFilterDTO{
		Search:        c.Query("search"),
		Branch:        c.Query("branch"),
		ReportType:    c.Query("report_type"),
		Status:        c.Query("status"),
		AreaCode:      c.Query("area_code"),
		Date:          c.Query("date"),
		RevisionsOnly: c.Query("revisions_only") == "true",
	}

	reports, err := h.reportService.List(c.Request.Context(), actor, filter)
	if err != nil {
		abortWorkflowErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, reports))
}

// GetReport returns a single report if the caller may see it
func (h *ReportHandler) GetReport(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Actor not found in context"))
		return
	}

	report, err := h.reportService.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		abortWorkflowErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}

// CreateReport creates a new report, as a draft or directly submitted
func (h *ReportHandler) CreateReport(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Actor not found in context"))
		return
	}

	var req service.CreateReportDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	report, err := h.reportService.Create(c.Request.Context(), actor, req)
	if err != nil {
		abortWorkflowErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, report))
}

type reportDataBody struct {
	Data model.ReportData `json:"data" binding:"required"`
}

// SaveProgress replaces the payload of an owned DRAFT/RETURNED report
func (h *ReportHandler) SaveProgress(c *gin.Context) {
	h.applyWithData(c, h.reportService.SaveProgress)
}

// Resubmit validates and submits an owned DRAFT/RETURNED report
func (h *ReportHandler) Resubmit(c *gin.Context) {
	h.applyWithData(c, h.reportService.Resubmit)
}

// OverrideReport lets IT support replace a stuck report's payload
func (h *ReportHandler) OverrideReport(c *gin.Context) {
	h.applyWithData(c, h.reportService.OverrideData)
}

func (h *ReportHandler) applyWithData(
	c *gin.Context,
	fn func(ctx context.Context, actor model.Actor, id string, data model.ReportData) (service.ReportResponse, error),
) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Actor not found in context"))
		return
	}

	var body reportDataBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	report, err := fn(c.Request.Context(), actor, c.Param("id"), body.Data)
	if err != nil {
		abortWorkflowErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}

// OpenReport marks a submission as viewed by its AK
func (h *ReportHandler) OpenReport(c *gin.Context) {
	h.applySimple(c, h.reportService.Open)
}

// ApproveReport approves at the caller's stage
func (h *ReportHandler) ApproveReport(c *gin.Context) {
	h.applySimple(c, h.reportService.Approve)
}

// ForwardReport pushes an approved report to the next stage
func (h *ReportHandler) ForwardReport(c *gin.Context) {
	h.applySimple(c, h.reportService.Forward)
}

// CancelSubmission pulls back a submission the AK has not opened yet
func (h *ReportHandler) CancelSubmission(c *gin.Context) {
	h.applySimple(c, h.reportService.Cancel)
}

func (h *ReportHandler) applySimple(
	c *gin.Context,
	fn func(ctx context.Context, actor model.Actor, id string) (service.ReportResponse, error),
) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Actor not found in context"))
		return
	}

	report, err := fn(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		abortWorkflowErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}

type returnReportBody struct {
	Note string `json:"note"`
}

// ReturnReport sends a report back to the AO with a correction note
func (h *ReportHandler) ReturnReport(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Actor not found in context"))
		return
	}

	var body returnReportBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	report, err := h.reportService.Return(c.Request.Context(), actor, c.Param("id"), body.Note)
	if err != nil {
		abortWorkflowErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}

// DeleteReport removes a report (AO: own drafts only; IT support: any)
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Actor not found in context"))
		return
	}

	if err := h.reportService.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		abortWorkflowErr(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Report deleted successfully"))
}
