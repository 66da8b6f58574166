package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mausham-bytes/nutrient-analyzer/config"
	"github.com/mausham-bytes/nutrient-analyzer/controllers"
	"github.com/mausham-bytes/nutrient-analyzer/middlewares"
	"github.com/mausham-bytes/nutrient-analyzer/services"
)

func SetupRouter(cfg *config.Config, vision controllers.FoodAnalyzer, food *services.FoodService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middlewares.RecoveryMiddleware())
	r.Use(middlewares.CORSMiddleware())

	analyze := controllers.NewAnalyzeController(cfg, vision)
	health := controllers.NewHealthController(cfg)
	foodCtl := controllers.NewFoodController(cfg, food)

	limit := middlewares.BodyLimitMiddleware(cfg.MaxUploadBytes)
	r.POST("/analyze", limit, analyze.Analyze)
	r.POST("/recognize", limit, foodCtl.RecognizeFood)
	r.GET("/nutrition", foodCtl.SearchFoods)
	r.GET("/health", health.Health)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})

	return r
}
