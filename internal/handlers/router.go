package handlers

import (
	"github.com/SAP-F-2025/career-orientation-service/internal/auth"
	"github.com/SAP-F-2025/career-orientation-service/internal/models"
	"github.com/SAP-F-2025/career-orientation-service/internal/services"
	"github.com/SAP-F-2025/career-orientation-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	authHandler  *AuthHandler
	testHandler  *TestHandler
	adminHandler *AdminHandler
	authService  *auth.AuthService
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	authService *auth.AuthService,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler: NewAuthHandler(serviceManager.User(), logger),
		testHandler: NewTestHandler(serviceManager.Test(), logger),
		adminHandler: NewAdminHandler(
			serviceManager.User(), serviceManager.Admin(), serviceManager.Export(), logger),
		authService: authService,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	requireAuth := auth.RequireAuth(hm.authService)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", hm.authHandler.Register)
			authRoutes.POST("/login", hm.authHandler.Login)
			authRoutes.GET("/me", requireAuth, hm.authHandler.Me)
		}

		// Test taking
		tests := v1.Group("/tests/:test_id", requireAuth)
		{
			tests.POST("/modules/:module/answers", hm.testHandler.SaveAnswers)
			tests.GET("/progress", hm.testHandler.Progress)
			tests.POST("/complete", hm.testHandler.Complete)
			tests.GET("/results", hm.testHandler.Results)
		}

		admin := v1.Group("/admin", requireAuth, auth.RequireRole(models.RoleAdmin))
		{
			admin.GET("/users", hm.adminHandler.ListUsers)
			admin.PUT("/users/:id/access", hm.adminHandler.UpdateAccess)
			admin.GET("/users/:id/tests/:test_id", hm.adminHandler.GetUserTest)
			admin.DELETE("/users/:id/tests/:test_id", hm.adminHandler.ResetUserTest)
			admin.POST("/users/:id/tests/:test_id/rescore", hm.adminHandler.RescoreUserTest)

			admin.GET("/tests/:test_id/attempts", hm.adminHandler.ListTestAttempts)
			admin.GET("/tests/:test_id/export", hm.adminHandler.ExportTestResults)
		}
	}
}
