package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRoutes sets up the API routes
func SetupRoutes(handler *Handler, log *zap.SugaredLogger) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(Recovery())
	router.Use(CORS())
	router.Use(Logger(log))

	// Health check
	router.GET("/health", handler.HealthCheck)

	// API v1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/projects", handler.ListProjects)

		project := v1.Group("/projects/:key")
		{
			project.GET("/metrics", handler.GetProjectMetrics)
			project.GET("/issues", handler.GetIssues)
			project.GET("/quality-gate", handler.GetQualityGate)
			project.GET("/analyses", handler.GetAnalysisHistory)
			project.GET("/trends", handler.GetMetricTrends)
			project.GET("/repository", handler.GetRepositoryInfo)
			project.GET("/security", handler.GetSecurityAnalysis)
			project.GET("/health", handler.GetProjectHealth)
		}
	}

	return router
}
