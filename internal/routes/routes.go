package routes

import (
	"civix_backend/internal/auth"
	"civix_backend/internal/handlers"
	"civix_backend/internal/middleware"
	"civix_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes registers every HTTP route of the API.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	tokens *auth.TokenManager,
	resetValidator middleware.ResetTokenValidator,
) {
	api := ginRouter.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", appHandlers.Auth.Register)
		authGroup.POST("/register/verify", appHandlers.Auth.VerifyRegisterCode)
		authGroup.POST("/register/resend", appHandlers.Auth.ResendRegisterCode)
		authGroup.POST("/login", appHandlers.Auth.Login)
		authGroup.POST("/refresh", appHandlers.Auth.Refresh)
		authGroup.POST("/logout", appHandlers.Auth.Logout)
		authGroup.POST("/recover-password", appHandlers.Auth.RecoverPassword)
		authGroup.POST("/recover-password/verify", appHandlers.Auth.VerifyRecoverPasswordCode)

		// Reset-password is guarded by the reset token, not an access token.
		reset := authGroup.Group("")
		reset.Use(middleware.ResetTokenGuard(resetValidator))
		reset.POST("/reset-password", appHandlers.Auth.ResetPassword)
	}

	users := api.Group("/users")
	users.Use(middleware.AuthMiddleware(tokens))
	{
		users.GET("/me", appHandlers.User.GetMe)

		admin := users.Group("")
		admin.Use(middleware.RequireRoles(models.UserRoleAdmin))
		{
			admin.GET("", appHandlers.User.List)
			admin.PATCH("/:id/status", appHandlers.User.UpdateStatus)
		}
	}

	reports := api.Group("/reports")
	reports.Use(middleware.AuthMiddleware(tokens))
	{
		reports.POST("", appHandlers.Report.Create)
		reports.GET("", appHandlers.Report.List)
		reports.GET("/followed", appHandlers.Report.ListFollowed)
		reports.GET("/:id", appHandlers.Report.GetByID)
		reports.POST("/:id/vote", appHandlers.Report.Vote)
		reports.DELETE("/:id/vote", appHandlers.Report.Unvote)
		reports.POST("/:id/follow", appHandlers.Report.Follow)
		reports.DELETE("/:id/follow", appHandlers.Report.Unfollow)

		admin := reports.Group("")
		admin.Use(middleware.RequireRoles(models.UserRoleAdmin))
		{
			admin.PATCH("/:id/status", appHandlers.Report.UpdateStatus)
		}
	}

	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))
	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
