package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mausham-bytes/nutrient-analyzer/config"
	"github.com/mausham-bytes/nutrient-analyzer/services"
)

type stubDetector struct {
	labels []types.Label
	err    error
	called bool
}

func (s *stubDetector) DetectLabels(context.Context, *rekognition.DetectLabelsInput, ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error) {
	s.called = true
	if s.err != nil {
		return nil, s.err
	}
	return &rekognition.DetectLabelsOutput{Labels: s.labels}, nil
}

func foodRouter(cfg *config.Config, food *services.FoodService) *gin.Engine {
	r := gin.New()
	ctl := NewFoodController(cfg, food)
	r.GET("/nutrition", ctl.SearchFoods)
	r.POST("/recognize", ctl.RecognizeFood)
	return r
}

func nutritionixUpstream(t *testing.T, cfg *config.Config, status int, body string) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	cfg.NutritionixAppID = "id"
	cfg.NutritionixAPIKey = "key"
	cfg.NutritionixBaseURL = srv.URL
}

func get(r http.Handler, url string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestSearchFoods(t *testing.T) {
	cfg := testConfig(t)
	nutritionixUpstream(t, cfg, http.StatusOK, `{"foods":[{"food_name":"apple","serving_qty":1,"serving_unit":"medium","nf_calories":95,"nf_total_carbohydrate":25}]}`)
	r := foodRouter(cfg, services.NewFoodService(services.NewNutritionixService(cfg), nil))

	rec := get(r, "/nutrition?query=an+apple")

	require.Equal(t, http.StatusOK, rec.Code)
	res := decodeResult(t, rec)
	require.Len(t, res.Foods, 1)
	assert.Equal(t, "apple", res.Foods[0].Name)
	assert.Equal(t, 95.0, res.Summary.TotalCalories)
}

func TestSearchFoodsValidation(t *testing.T) {
	cfg := testConfig(t)
	r := foodRouter(cfg, services.NewFoodService(services.NewNutritionixService(cfg), nil))

	assert.Equal(t, http.StatusBadRequest, get(r, "/nutrition").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(r, "/nutrition?q=apple").Code)
}

func TestSearchFoodsUpstreamFailure(t *testing.T) {
	cfg := testConfig(t)
	nutritionixUpstream(t, cfg, http.StatusUnauthorized, `{"message":"bad key"}`)
	r := foodRouter(cfg, services.NewFoodService(services.NewNutritionixService(cfg), nil))

	rec := get(r, "/nutrition?query=apple")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func postRecognize(r http.Handler, t *testing.T, filename string, data []byte) *httptest.ResponseRecorder {
	body, ct := fileForm(t, "image", filename, data)
	req := httptest.NewRequest(http.MethodPost, "/recognize", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRecognizeFood(t *testing.T) {
	cfg := testConfig(t)
	det := &stubDetector{labels: []types.Label{{Name: aws.String("Burger"), Confidence: aws.Float32(96)}}}
	food := services.NewFoodService(services.NewNutritionixService(cfg), services.NewRekognitionService(det))
	r := foodRouter(cfg, food)

	rec := postRecognize(r, t, "burger.png", pngBytes(t, 20, 20))

	require.Equal(t, http.StatusOK, rec.Code)
	var out services.Recognition
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, []services.Label{{Name: "Burger", Confidence: 96}}, out.Labels)
	assert.Nil(t, out.Nutrition)
	assertDirEmpty(t, cfg.UploadDir)
}

func TestRecognizeFoodNotConfigured(t *testing.T) {
	cfg := testConfig(t)
	r := foodRouter(cfg, services.NewFoodService(services.NewNutritionixService(cfg), nil))

	rec := postRecognize(r, t, "burger.png", pngBytes(t, 8, 8))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assertDirEmpty(t, cfg.UploadDir)
}

func TestRecognizeFoodValidatesUpload(t *testing.T) {
	cfg := testConfig(t)
	det := &stubDetector{}
	r := foodRouter(cfg, services.NewFoodService(services.NewNutritionixService(cfg), services.NewRekognitionService(det)))

	rec := postRecognize(r, t, "burger.gif", []byte("GIF89a"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, det.called)
}

func TestRecognizeFoodUpstreamFailure(t *testing.T) {
	cfg := testConfig(t)
	det := &stubDetector{err: errors.New("throttled")}
	r := foodRouter(cfg, services.NewFoodService(services.NewNutritionixService(cfg), services.NewRekognitionService(det)))

	rec := postRecognize(r, t, "burger.jpg", pngBytes(t, 8, 8))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assertDirEmpty(t, cfg.UploadDir)
}
