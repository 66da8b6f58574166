package services

import (
	"fmt"

	"github.com/mausham-bytes/nutrient-analyzer/models"
	"github.com/mausham-bytes/nutrient-analyzer/utils"
)

const (
	FallbackNotes    = "Using fallback nutritional data. Please configure API keys for accurate analysis."
	DemoModeNotes    = "Demo mode: Please configure OpenAI API key for actual food analysis"
	rawPreviewLength = 200
	errPreviewLength = 100
)

// FallbackAnalysis is served whenever inference is not configured or failed.
// It returns a new value on every call, so callers may edit the notes.
func FallbackAnalysis() *models.AnalysisResult {
	item := models.FoodItem{
		Name:        "Mixed Food Item",
		Calories:    250,
		Protein:     10,
		Carbs:       30,
		Fat:         8,
		Fiber:       3,
		Sugar:       15,
		ServingSize: "1 serving",
		Confidence:  0.3,
	}
	return &models.AnalysisResult{
		Foods:         []models.FoodItem{item},
		Summary:       models.Summarize([]models.FoodItem{item}),
		AnalysisNotes: FallbackNotes,
	}
}

// DegradedAnalysis is used when the model answered but its text could not be
// read as an analysis. The raw reply is kept (shortened) in the notes.
func DegradedAnalysis(raw string) *models.AnalysisResult {
	item := models.FoodItem{
		Name:        "Food Item",
		Calories:    300,
		Protein:     12,
		Carbs:       35,
		Fat:         10,
		Fiber:       4,
		Sugar:       8,
		ServingSize: "1 serving",
		Confidence:  0.5,
	}
	return &models.AnalysisResult{
		Foods:         []models.FoodItem{item},
		Summary:       models.Summarize([]models.FoodItem{item}),
		AnalysisNotes: fmt.Sprintf("Analysis completed. Raw response: %s...", utils.Truncate(raw, rawPreviewLength)),
	}
}

// APIErrorNotes annotates a fallback result with a short error summary.
func APIErrorNotes(err error) string {
	return fmt.Sprintf("API Error: %s...", utils.Truncate(err.Error(), errPreviewLength))
}
