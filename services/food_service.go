package services

import (
	"context"

	"github.com/mausham-bytes/nutrient-analyzer/models"
	"github.com/mausham-bytes/nutrient-analyzer/utils"
)

type FoodService struct {
	nix *NutritionixService
	rek *RekognitionService // nil when AWS is not configured
}

// Recognition is the answer of POST /recognize.
type Recognition struct {
	Labels    []Label                `json:"labels"`
	Nutrition *models.AnalysisResult `json:"nutrition,omitempty"`
}

func NewFoodService(nix *NutritionixService, rek *RekognitionService) *FoodService {
	return &FoodService{nix: nix, rek: rek}
}

func (s *FoodService) SearchConfigured() bool {
	return s.nix != nil && s.nix.Configured()
}

func (s *FoodService) RecognizeConfigured() bool {
	return s.rek != nil
}

// Search manually
func (s *FoodService) Search(ctx context.Context, query string) (*models.AnalysisResult, error) {
	if !s.SearchConfigured() {
		return nil, ErrNutritionixNotConfigured
	}
	return s.nix.Lookup(ctx, query)
}

// Recognize labels the image and, when possible, looks up nutrition for the
// best label. A failed lookup only drops the nutrition part.
func (s *FoodService) Recognize(ctx context.Context, image []byte) (*Recognition, error) {
	labels, err := s.rek.RecognizeLabels(ctx, image)
	if err != nil {
		return nil, err
	}

	out := &Recognition{Labels: labels}
	if len(labels) == 0 || !s.SearchConfigured() {
		return out, nil
	}

	nut, err := s.nix.Lookup(ctx, labels[0].Name)
	if err != nil {
		utils.Log().Warnw("nutrition lookup for recognized label failed", "label", labels[0].Name, "error", err)
		return out, nil
	}
	out.Nutrition = nut
	return out, nil
}
