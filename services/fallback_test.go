package services

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fallbackJSON = `{"foods":[{"name":"Mixed Food Item","calories":250,"protein":10,"carbs":30,"fat":8,"fiber":3,"sugar":15,"serving_size":"1 serving","confidence":0.3}],"summary":{"totalCalories":250,"totalProtein":10,"totalCarbs":30,"totalFat":8,"totalFiber":3,"totalSugar":15},"analysis_notes":"Using fallback nutritional data. Please configure API keys for accurate analysis."}`

func TestFallbackAnalysisIsDeterministic(t *testing.T) {
	a, err := json.Marshal(FallbackAnalysis())
	require.NoError(t, err)
	b, err := json.Marshal(FallbackAnalysis())
	require.NoError(t, err)

	assert.Equal(t, fallbackJSON, string(a))
	assert.Equal(t, a, b)
}

func TestFallbackAnalysisReturnsFreshValue(t *testing.T) {
	a := FallbackAnalysis()
	a.AnalysisNotes = "changed"
	a.Foods[0].Name = "changed"

	b := FallbackAnalysis()
	assert.Equal(t, FallbackNotes, b.AnalysisNotes)
	assert.Equal(t, "Mixed Food Item", b.Foods[0].Name)
}

func TestDegradedAnalysisTruncatesRawText(t *testing.T) {
	raw := strings.Repeat("x", 500)

	res := DegradedAnalysis(raw)

	assert.Equal(t, "Analysis completed. Raw response: "+strings.Repeat("x", 200)+"...", res.AnalysisNotes)
	assert.Equal(t, 300.0, res.Summary.TotalCalories)
	assert.Equal(t, 0.5, res.Foods[0].Confidence)
}

func TestAPIErrorNotes(t *testing.T) {
	err := errors.New(strings.Repeat("e", 150))

	notes := APIErrorNotes(err)

	assert.Equal(t, "API Error: "+strings.Repeat("e", 100)+"...", notes)
}
