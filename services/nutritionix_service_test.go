package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mausham-bytes/nutrient-analyzer/config"
)

const nutritionixReply = `{
	"foods": [
		{"food_name":"rice","serving_qty":1,"serving_unit":"cup","nf_calories":205.4,"nf_protein":4.3,"nf_total_carbohydrate":44.5,"nf_total_fat":0.4,"nf_dietary_fiber":0.6,"nf_sugars":0.1},
		{"food_name":"eggs","serving_qty":2,"serving_unit":"large","nf_calories":143,"nf_protein":12.6,"nf_total_carbohydrate":0.7,"nf_total_fat":9.5,"nf_dietary_fiber":0,"nf_sugars":null}
	]
}`

func newTestNutritionix(t *testing.T, handler http.HandlerFunc) *NutritionixService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewNutritionixService(&config.Config{
		NutritionixAppID:   "app-id",
		NutritionixAPIKey:  "app-key",
		NutritionixBaseURL: srv.URL,
	})
}

func TestNutritionixLookup(t *testing.T) {
	var query map[string]string
	var appID, appKey, path string
	s := newTestNutritionix(t, func(w http.ResponseWriter, r *http.Request) {
		appID, appKey, path = r.Header.Get("x-app-id"), r.Header.Get("x-app-key"), r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&query))
		_, _ = w.Write([]byte(nutritionixReply))
	})

	res, err := s.Lookup(context.Background(), " 1 cup rice and 2 eggs ")

	require.NoError(t, err)
	assert.Equal(t, "app-id", appID)
	assert.Equal(t, "app-key", appKey)
	assert.Equal(t, "/natural/nutrients", path)
	assert.Equal(t, "1 cup rice and 2 eggs", query["query"])

	require.Len(t, res.Foods, 2)
	assert.Equal(t, "rice", res.Foods[0].Name)
	assert.Equal(t, "1 cup", res.Foods[0].ServingSize)
	assert.Equal(t, "2 large", res.Foods[1].ServingSize)
	assert.Zero(t, res.Foods[1].Sugar)
	assert.InDelta(t, 348.4, res.Summary.TotalCalories, 1e-9)
	assert.Equal(t, NutritionixNotes, res.AnalysisNotes)
}

func TestNutritionixLookupNotConfigured(t *testing.T) {
	s := NewNutritionixService(&config.Config{})

	_, err := s.Lookup(context.Background(), "apple")

	assert.ErrorIs(t, err, ErrNutritionixNotConfigured)
}

func TestNutritionixLookupUpstreamError(t *testing.T) {
	s := newTestNutritionix(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"unauthorized"}`))
	})

	_, err := s.Lookup(context.Background(), "apple")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestNutritionixLookupNoFoods(t *testing.T) {
	s := newTestNutritionix(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"foods":[]}`))
	})

	_, err := s.Lookup(context.Background(), "asdfgh")

	assert.Error(t, err)
}

func TestServingSize(t *testing.T) {
	assert.Equal(t, "1.5 cup", servingSize(1.5, "cup"))
	assert.Equal(t, "slice", servingSize(0, "slice"))
	assert.Equal(t, "", servingSize(0, ""))
}
