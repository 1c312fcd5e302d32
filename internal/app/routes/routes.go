package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/zhangjiang/campuswall/internal/app/controllers"
	"github.com/zhangjiang/campuswall/internal/app/models/dto"
	"github.com/zhangjiang/campuswall/internal/middleware"
)

// SetupRouter configures all application routes.
// Reads are public; every mutating endpoint requires a session token.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	postController *controllers.PostController,
	commentController *controllers.CommentController,
	likeController *controllers.LikeController,
	reportController *controllers.ReportController,
	adminController *controllers.AdminController,
	fileController *controllers.FileController,
	authMiddleware *middleware.AuthMiddleware,
	storagePath string,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", authController.Signup)
		auth.POST("/login", authController.Login)
		auth.POST("/verify", authController.VerifyEmail)
		// The emailed verification link lands here.
		auth.GET("/verify", authController.VerifyEmailLink)
		auth.PUT("/verify", authController.ResendVerification)
	}

	// --- Public read routes ---
	v1.GET("/posts", postController.List)
	v1.GET("/posts/:id", postController.Get)
	v1.GET("/comments", commentController.List)
	// Like status honors an optional session for the viewer's own state.
	v1.GET("/likes", authMiddleware.OptionalJWTAuth(), likeController.Status)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/profile", authController.GetProfile)

		authenticated.POST("/posts", postController.Create)
		authenticated.DELETE("/posts/:id", postController.Delete)

		authenticated.POST("/comments", commentController.Create)
		authenticated.DELETE("/comments/:id", commentController.Delete)

		authenticated.POST("/likes", likeController.Like)
		authenticated.DELETE("/likes", likeController.Unlike)

		authenticated.POST("/reports", reportController.Create)
		authenticated.POST("/verification-requests", adminController.RequestVerification)

		authenticated.POST("/files", fileController.Upload)

		// --- Admin routes ---
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.AdminRequired())
		{
			admin.GET("/reports", reportController.List)
			admin.PUT("/reports/:id", reportController.Review)
			admin.GET("/verification-requests", adminController.ListRequests)
			admin.PUT("/verification-requests/:id", adminController.ReviewRequest)
		}
	}

	// Uploaded images are served directly from local storage.
	router.Static("/uploads", storagePath)

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
