package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mausham-bytes/nutrient-analyzer/config"
	"github.com/mausham-bytes/nutrient-analyzer/models"
	"github.com/mausham-bytes/nutrient-analyzer/utils"
)

var (
	// ErrVisionNotConfigured means no usable API key; no request was sent.
	ErrVisionNotConfigured = errors.New("vision API key not configured")
	// ErrUnparsableAnalysis means the model replied with text that holds no usable analysis.
	ErrUnparsableAnalysis = errors.New("vision reply did not contain a usable analysis")
)

const maxResponseBytes = 4 << 20

const analysisPrompt = `Analyze this food image and provide detailed nutritional information.
Identify every food item visible and estimate nutritional data for each item.

Return the response in the following JSON format:
{
    "foods": [
        {
            "name": "Food Item Name",
            "calories": 250,
            "protein": 15,
            "carbs": 30,
            "fat": 8,
            "fiber": 5,
            "sugar": 12,
            "serving_size": "1 cup",
            "confidence": 0.85
        }
    ],
    "summary": {
        "totalCalories": 500,
        "totalProtein": 25,
        "totalCarbs": 60,
        "totalFat": 15,
        "totalFiber": 8,
        "totalSugar": 20
    },
    "analysis_notes": "Brief description of what was identified"
}

Be as accurate as possible with the nutritional values and include confidence scores between 0 and 1.`

// APIError is a non-2xx answer from the inference endpoint.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("OpenAI API error: %d - %s", e.StatusCode, e.Body)
}

type VisionService struct {
	apiKey     string
	model      string
	baseURL    string
	maxTokens  int
	configured bool
	client     *http.Client
}

// NewVisionService captures the inference settings from cfg. The service is
// safe for concurrent use.
func NewVisionService(cfg *config.Config) *VisionService {
	return &VisionService{
		apiKey:     cfg.OpenAIAPIKey,
		model:      cfg.OpenAIModel,
		baseURL:    cfg.OpenAIBaseURL,
		maxTokens:  cfg.OpenAIMaxTokens,
		configured: cfg.OpenAIConfigured(),
		client:     &http.Client{Timeout: cfg.OpenAITimeout},
	}
}

func (v *VisionService) Configured() bool {
	return v.configured
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (v *VisionService) buildRequest(imageBase64 string) chatRequest {
	return chatRequest{
		Model: v.model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: analysisPrompt},
				{Type: "image_url", ImageURL: &imageURL{URL: "data:image/jpeg;base64," + imageBase64}},
			},
		}},
		MaxTokens: v.maxTokens,
	}
}

// Analyze sends the base64 JPEG to the vision model and returns its estimate.
//
// A reply that cannot be read as an analysis yields DegradedAnalysis rather
// than an error. Transport failures, non-2xx answers and malformed envelopes
// are returned as errors; falling back is up to the caller.
func (v *VisionService) Analyze(ctx context.Context, imageBase64 string) (*models.AnalysisResult, error) {
	if !v.configured {
		return nil, ErrVisionNotConfigured
	}

	b, err := json.Marshal(v.buildRequest(imageBase64))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vision payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create vision request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+v.apiKey)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call vision API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read vision response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, fmt.Errorf("failed to parse vision response JSON: %w", err)
	}
	if len(cr.Choices) == 0 {
		return nil, errors.New("vision response contained no choices")
	}

	content := cr.Choices[0].Message.Content
	result, err := ParseAnalysis(content)
	if err != nil {
		utils.Log().Warnw("vision reply not usable, returning degraded result", "error", err)
		return DegradedAnalysis(content), nil
	}
	return result, nil
}

// ParseAnalysis pulls an AnalysisResult out of free-form model text. It is
// the single place that decides what counts as a usable reply.
func ParseAnalysis(text string) (*models.AnalysisResult, error) {
	raw, ok := utils.ExtractJSONObject(text)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object found", ErrUnparsableAnalysis)
	}

	var res models.AnalysisResult
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsableAnalysis, err)
	}
	if len(res.Foods) == 0 {
		return nil, fmt.Errorf("%w: no foods listed", ErrUnparsableAnalysis)
	}

	res.Sanitize()
	if res.AnalysisNotes == "" {
		res.AnalysisNotes = "Analysis completed."
	}
	return &res, nil
}
