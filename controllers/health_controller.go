package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mausham-bytes/nutrient-analyzer/config"
)

type HealthController struct {
	cfg *config.Config
}

func NewHealthController(cfg *config.Config) *HealthController {
	return &HealthController{cfg: cfg}
}

// GET /health
func (h *HealthController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "CalorieTracker API is running",
		"api_configured": gin.H{
			"openai":      h.cfg.HasOpenAIKey(),
			"nutritionix": h.cfg.NutritionixConfigured(),
		},
	})
}
