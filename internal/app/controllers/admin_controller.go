package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/zhangjiang/campuswall/internal/app/models/dto"
	"github.com/zhangjiang/campuswall/internal/app/services"
	"github.com/zhangjiang/campuswall/internal/middleware"
)

// AdminController handles the identity verification request workflow
type AdminController struct {
	adminService *services.AdminService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService *services.AdminService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// RequestVerification opens an identity verification request
// @Summary Apply for identity verification
// @Description Opens a verification request for admin review. Each user holds at most one pending request.
// @Tags verification
// @Produce json
// @Security BearerAuth
// @Success 201 {object} dto.APIResponse{data=dto.SuccessResponse} "Request submitted"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 409 {object} dto.ErrorResponse "Pending request exists or profile already verified"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /verification-requests [post]
func (c *AdminController) RequestVerification(ctx *gin.Context) {
	viewer := middleware.CurrentViewer(ctx)

	id, err := c.adminService.RequestVerification(ctx.Request.Context(), viewer.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("requestID", id).Int64("userID", viewer.UserID).Msg("Verification request submitted")
	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "认证申请已提交，请等待管理员审核"},
	})
}

// ListRequests returns all verification requests
// @Summary List verification requests
// @Description Returns verification requests with pending ones first.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.VerificationRequestListResponse} "Request queue"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/verification-requests [get]
func (c *AdminController) ListRequests(ctx *gin.Context) {
	list, err := c.adminService.ListRequests(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: list})
}

// ReviewRequest applies an admin decision to a verification request
// @Summary Review a verification request
// @Description Approves or rejects a pending request. Approval marks the applicant's profile verified. Either decision is final.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param request body dto.ReviewVerificationRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=dto.VerificationRequestResponse} "Reviewed request"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or decision"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Already reviewed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/verification-requests/{id} [put]
func (c *AdminController) ReviewRequest(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ReviewVerificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	request, err := c.adminService.ReviewRequest(ctx.Request.Context(), id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("requestID", id).Str("status", req.Status).Msg("Verification request reviewed")
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: request})
}
