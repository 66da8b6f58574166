package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mausham-bytes/nutrient-analyzer/config"
	"github.com/mausham-bytes/nutrient-analyzer/models"
	"github.com/mausham-bytes/nutrient-analyzer/services"
	"github.com/mausham-bytes/nutrient-analyzer/utils"
)

type FoodController struct {
	cfg  *config.Config
	food *services.FoodService
}

func NewFoodController(cfg *config.Config, food *services.FoodService) *FoodController {
	return &FoodController{cfg: cfg, food: food}
}

// GET /nutrition?query=1 cup rice
func (f *FoodController) SearchFoods(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		query = strings.TrimSpace(c.Query("q"))
	}
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter is required"})
		return
	}
	if !f.food.SearchConfigured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Nutritionix API is not configured"})
		return
	}

	out, err := f.food.Search(c.Request.Context(), query)
	if err != nil {
		utils.Log().Warnw("nutrition search failed", "query", query, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /recognize  multipart field "image"
func (f *FoodController) RecognizeFood(c *gin.Context) {
	if !f.food.RecognizeConfigured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image recognition is not configured"})
		return
	}

	upload, ok := receiveUpload(c, f.cfg.UploadDir, f.cfg.MaxUploadBytes)
	if !ok {
		return
	}

	out, err := f.recognize(c.Request.Context(), upload)
	if err != nil {
		var procErr *processError
		if errors.As(err, &procErr) {
			processingError(c, procErr.err)
			return
		}
		utils.Log().Warnw("label recognition failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// processError marks failures on our side, as opposed to upstream ones.
type processError struct{ err error }

func (e *processError) Error() string { return e.err.Error() }
func (e *processError) Unwrap() error { return e.err }

func (f *FoodController) recognize(ctx context.Context, upload *models.UploadedImage) (*services.Recognition, error) {
	defer removeTemp(upload.Path)

	normalized := utils.NormalizeImage(upload.Path)
	if normalized.Path != upload.Path {
		defer removeTemp(normalized.Path)
	}
	if len(normalized.Data) == 0 {
		return nil, &processError{err: fmt.Errorf("could not read uploaded image %q", upload.Filename)}
	}

	return f.food.Recognize(ctx, normalized.Data)
}
