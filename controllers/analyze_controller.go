package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mausham-bytes/nutrient-analyzer/config"
	"github.com/mausham-bytes/nutrient-analyzer/models"
	"github.com/mausham-bytes/nutrient-analyzer/services"
	"github.com/mausham-bytes/nutrient-analyzer/utils"
)

// FoodAnalyzer estimates nutrition from a base64 encoded JPEG.
type FoodAnalyzer interface {
	Analyze(ctx context.Context, imageBase64 string) (*models.AnalysisResult, error)
}

type AnalyzeController struct {
	cfg    *config.Config
	vision FoodAnalyzer
}

func NewAnalyzeController(cfg *config.Config, vision FoodAnalyzer) *AnalyzeController {
	return &AnalyzeController{cfg: cfg, vision: vision}
}

// POST /analyze  multipart field "image"
func (a *AnalyzeController) Analyze(c *gin.Context) {
	upload, ok := receiveUpload(c, a.cfg.UploadDir, a.cfg.MaxUploadBytes)
	if !ok {
		return
	}

	result, err := a.process(c.Request.Context(), upload)
	if err != nil {
		processingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// process runs normalize -> encode -> infer. Temp files are gone by the time
// it returns, whatever the outcome.
func (a *AnalyzeController) process(ctx context.Context, upload *models.UploadedImage) (*models.AnalysisResult, error) {
	defer removeTemp(upload.Path)

	normalized := utils.NormalizeImage(upload.Path)
	if normalized.Path != upload.Path {
		defer removeTemp(normalized.Path)
	}

	imageBase64, err := utils.EncodeImageToBase64(normalized.Path)
	if err != nil {
		return nil, err
	}

	return a.infer(ctx, imageBase64), nil
}

// infer never fails: anything that goes wrong inside inference turns into
// fallback data with a note saying why.
func (a *AnalyzeController) infer(ctx context.Context, imageBase64 string) *models.AnalysisResult {
	if !a.cfg.HasOpenAIKey() {
		return services.FallbackAnalysis()
	}

	res, err := a.vision.Analyze(ctx, imageBase64)
	switch {
	case err == nil && res != nil:
		return res
	case errors.Is(err, services.ErrVisionNotConfigured):
		utils.Log().Infow("OpenAI API key does not look valid, using fallback data")
		fb := services.FallbackAnalysis()
		fb.AnalysisNotes = services.DemoModeNotes
		return fb
	case err == nil:
		err = errors.New("vision service returned no result")
	}

	utils.Log().Warnw("OpenAI API failed, using fallback data", "error", err)
	fb := services.FallbackAnalysis()
	fb.AnalysisNotes = services.APIErrorNotes(err)
	return fb
}
