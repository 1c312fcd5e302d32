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

// CommentController handles comment operations
type CommentController struct {
	commentService *services.CommentService
	logger         zerolog.Logger
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService, logger zerolog.Logger) *CommentController {
	return &CommentController{
		commentService: commentService,
		logger:         logger,
	}
}

// List returns the comments of a post
// @Summary List comments
// @Description Returns all comments of a post in chronological order.
// @Tags comments
// @Produce json
// @Param post_id query int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.CommentListResponse} "Comments"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid post_id"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /comments [get]
func (c *CommentController) List(ctx *gin.Context) {
	postID, err := strconv.ParseInt(ctx.Query("post_id"), 10, 64)
	if err != nil || postID < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid post_id parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	list, err := c.commentService.ListByPost(ctx.Request.Context(), postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: list})
}

// Create adds a comment to a post
// @Summary Create a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCommentRequest true "Comment content"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse} "Created comment"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or empty content"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /comments [post]
func (c *CommentController) Create(ctx *gin.Context) {
	var req dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	viewer := middleware.CurrentViewer(ctx)
	comment, err := c.commentService.Create(ctx.Request.Context(), viewer, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", viewer.UserID).Msg("Failed to create comment")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: comment})
}

// Delete removes a comment
// @Summary Delete a comment
// @Description Deletes a comment. Owners and admins only.
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Comment deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /comments/{id} [delete]
func (c *CommentController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	viewer := middleware.CurrentViewer(ctx)
	if err := c.commentService.Delete(ctx.Request.Context(), viewer, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "评论已删除"},
	})
}
