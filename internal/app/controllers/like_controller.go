package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/zhangjiang/campuswall/internal/app/models/dto"
	"github.com/zhangjiang/campuswall/internal/app/services"
	"github.com/zhangjiang/campuswall/internal/middleware"
)

// LikeController handles post like operations
type LikeController struct {
	likeService *services.LikeService
	logger      zerolog.Logger
}

// NewLikeController creates a new LikeController
func NewLikeController(likeService *services.LikeService, logger zerolog.Logger) *LikeController {
	return &LikeController{
		likeService: likeService,
		logger:      logger,
	}
}

// Like records a like on a post
// @Summary Like a post
// @Description Records a like. Liking a post twice is a conflict.
// @Tags likes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.LikeRequest true "Target post"
// @Success 201 {object} dto.APIResponse{data=dto.SuccessResponse} "Like recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 409 {object} dto.ErrorResponse "Already liked"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /likes [post]
func (c *LikeController) Like(ctx *gin.Context) {
	var req dto.LikeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	viewer := middleware.CurrentViewer(ctx)
	if err := c.likeService.Like(ctx.Request.Context(), req.PostID, viewer.UserID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "点赞成功"},
	})
}

// Unlike removes the viewer's like from a post
// @Summary Unlike a post
// @Description Removes the viewer's like. Unliking a post that was never liked is a 404.
// @Tags likes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.LikeRequest true "Target post"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Like removed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Like not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /likes [delete]
func (c *LikeController) Unlike(ctx *gin.Context) {
	var req dto.LikeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	viewer := middleware.CurrentViewer(ctx)
	if err := c.likeService.Unlike(ctx.Request.Context(), req.PostID, viewer.UserID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "已取消点赞"},
	})
}

// Status returns a post's like count and the viewer's like state
// @Summary Get like status
// @Description Returns the like count of a post. With a session token, also reports whether the viewer liked it.
// @Tags likes
// @Produce json
// @Param post_id query int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.LikeStatusResponse} "Like status"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid post_id"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /likes [get]
func (c *LikeController) Status(ctx *gin.Context) {
	postID, err := strconv.ParseInt(ctx.Query("post_id"), 10, 64)
	if err != nil || postID < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid post_id parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	viewer := middleware.CurrentViewer(ctx)
	status, err := c.likeService.Status(ctx.Request.Context(), postID, viewer.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: status})
}
