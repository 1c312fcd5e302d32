package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/zhangjiang/campuswall/internal/app/models/dto"
	"github.com/zhangjiang/campuswall/internal/app/services"
	"github.com/zhangjiang/campuswall/internal/middleware"
)

// FileController handles image uploads
type FileController struct {
	fileService *services.FileService
	logger      zerolog.Logger
}

// NewFileController creates a new FileController
func NewFileController(fileService *services.FileService, logger zerolog.Logger) *FileController {
	return &FileController{
		fileService: fileService,
		logger:      logger,
	}
}

// Upload stores an image for embedding in posts
// @Summary Upload an image
// @Description Accepts a JPEG, PNG, GIF or WebP image up to 5 MB and returns the URL to embed in a post.
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Success 201 {object} dto.APIResponse{data=dto.FileUploadResponse} "Stored image URL"
// @Failure 400 {object} dto.ErrorResponse "Missing file, unsupported type or file too large"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /files [post]
func (c *FileController) Upload(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing file field")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	viewer := middleware.CurrentViewer(ctx)
	resp, err := c.fileService.Upload(ctx.Request.Context(), viewer.UserID, fileHeader)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", viewer.UserID).Msg("File upload failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}
