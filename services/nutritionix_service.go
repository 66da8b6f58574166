package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mausham-bytes/nutrient-analyzer/config"
	"github.com/mausham-bytes/nutrient-analyzer/models"
)

var ErrNutritionixNotConfigured = errors.New("nutritionix credentials not configured")

const NutritionixNotes = "Nutrition data from Nutritionix"

type NutritionixService struct {
	appID, appKey string
	baseURL       string
	configured    bool
	client        *http.Client
}

// NewNutritionixService initializes the service with credentials and HTTP client
func NewNutritionixService(cfg *config.Config) *NutritionixService {
	return &NutritionixService{
		appID:      cfg.NutritionixAppID,
		appKey:     cfg.NutritionixAPIKey,
		baseURL:    cfg.NutritionixBaseURL,
		configured: cfg.NutritionixConfigured(),
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *NutritionixService) Configured() bool {
	return s.configured
}

type naturalNutrientsResponse struct {
	Foods []struct {
		FoodName    string  `json:"food_name"`
		ServingQty  float64 `json:"serving_qty"`
		ServingUnit string  `json:"serving_unit"`
		Calories    float64 `json:"nf_calories"`
		Protein     float64 `json:"nf_protein"`
		Carbs       float64 `json:"nf_total_carbohydrate"`
		Fat         float64 `json:"nf_total_fat"`
		Fiber       float64 `json:"nf_dietary_fiber"`
		Sugar       float64 `json:"nf_sugars"`
	} `json:"foods"`
}

// Lookup calls the natural language nutrients endpoint, e.g. "1 cup rice and
// 2 eggs", and maps the answer onto an AnalysisResult.
func (s *NutritionixService) Lookup(ctx context.Context, query string) (*models.AnalysisResult, error) {
	if !s.configured {
		return nil, ErrNutritionixNotConfigured
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query is required")
	}

	b, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal nutritionix payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/natural/nutrients", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create nutritionix request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-app-id", s.appID)
	req.Header.Set("x-app-key", s.appKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call nutritionix API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read nutritionix response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nutritionix API error %d: %s", resp.StatusCode, string(body))
	}

	var nr naturalNutrientsResponse
	if err := json.Unmarshal(body, &nr); err != nil {
		return nil, fmt.Errorf("failed to parse nutritionix JSON: %w", err)
	}
	if len(nr.Foods) == 0 {
		return nil, fmt.Errorf("nutritionix found no foods for %q", query)
	}

	foods := make([]models.FoodItem, 0, len(nr.Foods))
	for _, f := range nr.Foods {
		foods = append(foods, models.FoodItem{
			Name:        f.FoodName,
			Calories:    f.Calories,
			Protein:     f.Protein,
			Carbs:       f.Carbs,
			Fat:         f.Fat,
			Fiber:       f.Fiber,
			Sugar:       f.Sugar,
			ServingSize: servingSize(f.ServingQty, f.ServingUnit),
			Confidence:  1,
		})
	}
	res := &models.AnalysisResult{
		Foods:         foods,
		Summary:       models.Summarize(foods),
		AnalysisNotes: NutritionixNotes,
	}
	res.Sanitize()
	return res, nil
}

func servingSize(qty float64, unit string) string {
	if qty <= 0 {
		return strings.TrimSpace(unit)
	}
	return strings.TrimSpace(strconv.FormatFloat(qty, 'f', -1, 64) + " " + unit)
}
