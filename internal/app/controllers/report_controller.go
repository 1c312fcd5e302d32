package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/zhangjiang/campuswall/internal/app/models/dto"
	"github.com/zhangjiang/campuswall/internal/app/services"
	"github.com/zhangjiang/campuswall/internal/middleware"
	"github.com/zhangjiang/campuswall/internal/pkg/helpers"
)

// ReportController handles content reports and their admin review
type ReportController struct {
	reportService *services.ReportService
	logger        zerolog.Logger
}

// NewReportController creates a new ReportController
func NewReportController(reportService *services.ReportService, logger zerolog.Logger) *ReportController {
	return &ReportController{
		reportService: reportService,
		logger:        logger,
	}
}

// Create files a report
// @Summary Report a post or comment
// @Description Flags content for admin review. The target reference must match the declared type.
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateReportRequest true "Report target and reason"
// @Success 201 {object} dto.APIResponse{data=dto.ReportResponse} "Report filed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or mismatched target"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Target not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports [post]
func (c *ReportController) Create(ctx *gin.Context) {
	var req dto.CreateReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	viewer := middleware.CurrentViewer(ctx)
	report, err := c.reportService.Create(ctx.Request.Context(), viewer.UserID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", viewer.UserID).Msg("Failed to file report")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: report})
}

// List returns reports for admin review
// @Summary List reports
// @Description Returns reports newest first, optionally filtered by status.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter" Enums(pending, resolved, rejected)
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.ReportListResponse} "Report queue"
// @Failure 400 {object} dto.ErrorResponse "Unknown status filter"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/reports [get]
func (c *ReportController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	list, err := c.reportService.List(ctx.Request.Context(), ctx.Query("status"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: list})
}

// Review closes a pending report
// @Summary Review a report
// @Description Applies a terminal decision to a pending report. The first decision stands; reviewing again is a conflict.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Param request body dto.ReviewReportRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=dto.ReportResponse} "Reviewed report"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or decision"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 404 {object} dto.ErrorResponse "Report not found"
// @Failure 409 {object} dto.ErrorResponse "Already reviewed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/reports/{id} [put]
func (c *ReportController) Review(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ReviewReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	report, err := c.reportService.Review(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("reportID", id).Str("status", req.Status).Msg("Report reviewed")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: report})
}
