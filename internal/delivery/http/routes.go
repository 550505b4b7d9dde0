package http

import (
	"github.com/dietdesk/backend/config"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	// Set Gin mode based on environment
	switch cfg.Server.Environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(RequestIDMiddleware())
	router.Use(RequestLoggingMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		calculators := v1.Group("/calculators")
		{
			calculators.POST("/bmi", handler.CalculateBMI)
			calculators.POST("/bmr", handler.CalculateBMR)
			calculators.POST("/tdee", handler.CalculateTDEE)
			calculators.POST("/macros", handler.CalculateMacros)
			calculators.POST("/ideal-weight", handler.CalculateIdealWeight)
			calculators.POST("/body-fat", handler.CalculateBodyFat)
			calculators.POST("/water-intake", handler.CalculateWaterIntake)
			calculators.POST("/protein-needs", handler.CalculateProteinNeeds)
			calculators.POST("/calorie-plan", handler.PlanCalories)
			calculators.POST("/profile", handler.CalculateProfile)
		}

		foods := v1.Group("/foods")
		{
			foods.GET("/search", handler.SearchFoods)
			foods.POST("/totals", handler.CalculateTotals)
			foods.GET("/:fdcId", handler.GetFood)
		}
	}

	return router
}
