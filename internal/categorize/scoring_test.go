package categorize

import (
	"testing"

	"github.com/dustin/jearn-categorizer/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classProbs(pairs ...interface{}) []model.ClassProbability {
	out := make([]model.ClassProbability, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, model.ClassProbability{Label: pairs[i].(string), Probability: pairs[i+1].(float64)})
	}
	return out
}

func strPtr(s string) *string { return &s }

func TestTopK_OrdersAndTruncates(t *testing.T) {
	preds := TopK(classProbs("a", 0.1, "b", 0.5, "c", 0.4), 2)

	assert.Equal(t, []Prediction{{Label: "b", Score: 0.5}, {Label: "c", Score: 0.4}}, preds)
}

func TestTopK_KLargerThanClasses(t *testing.T) {
	preds := TopK(classProbs("a", 0.1, "b", 0.9), 10)

	require.Len(t, preds, 2)
	assert.Equal(t, "b", preds[0].Label)
}

func TestTopK_TiesKeepClassOrder(t *testing.T) {
	preds := TopK(classProbs("a", 0.3, "b", 0.3, "c", 0.4), 3)

	assert.Equal(t, "c", preds[0].Label)
	assert.Equal(t, "a", preds[1].Label)
	assert.Equal(t, "b", preds[2].Label)
}

func TestAssess(t *testing.T) {
	testCases := []struct {
		name      string
		preds     []Prediction
		wantTop   float64
		wantGap   float64
		uncertain bool
	}{
		{"no predictions", nil, 0, 0, true},
		{"single low prediction", []Prediction{{"a", 0.2}}, 0.2, 0.2, true},
		{"decisive", []Prediction{{"a", 0.9}, {"b", 0.1}}, 0.9, 0.8, false},
		{"narrow gap", []Prediction{{"a", 0.5}, {"b", 0.48}}, 0.5, 0.02, true},
		{"top at threshold", []Prediction{{"a", 0.25}, {"b", 0}}, 0.25, 0.25, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := Assess(tc.preds, 0.25, 0.05)

			assert.InDelta(t, tc.wantTop, c.TopScore, 1e-12)
			assert.InDelta(t, tc.wantGap, c.Gap, 1e-12)
			assert.Equal(t, tc.uncertain, c.Uncertain)
		})
	}
}

func TestEnrich_EveryLabelOnce(t *testing.T) {
	labels := []*Label{
		{ID: "1", Name: "Math", JName: strPtr("数学")},
		{ID: "2", Name: "Music"},
		{ID: "3", Name: "Art"},
	}
	preds := []Prediction{{Label: "math", Score: 0.6}, {Label: "MUSIC", Score: 0.3}, {Label: "Cooking", Score: 0.1}}

	enriched := Enrich(labels, preds)

	require.Len(t, enriched, 3)
	assert.Equal(t, "Math", enriched[0].Label)
	assert.Equal(t, 0.6, enriched[0].RawScore)
	assert.Equal(t, "数学", *enriched[0].JName)
	assert.Equal(t, 0.3, enriched[1].RawScore)
	assert.Nil(t, enriched[1].JName)
	assert.Equal(t, 0.0, enriched[2].RawScore)
	assert.Equal(t, 0.0, enriched[2].Score)
}

func TestNormalize_DividesByMaxAndSorts(t *testing.T) {
	enriched := []*EnrichedPrediction{
		{Label: "Art", RawScore: 0, Score: 0},
		{Label: "Music", RawScore: 0.3, Score: 0.3},
		{Label: "Math", RawScore: 0.6, Score: 0.6},
	}

	Normalize(enriched)

	assert.Equal(t, "Math", enriched[0].Label)
	assert.InDelta(t, 1.0, enriched[0].Score, 1e-12)
	assert.Equal(t, "Music", enriched[1].Label)
	assert.InDelta(t, 0.5, enriched[1].Score, 1e-12)
	assert.Equal(t, 0.3, enriched[1].RawScore)
	assert.Equal(t, "Art", enriched[2].Label)
	assert.Equal(t, 0.0, enriched[2].Score)
}

func TestNormalize_AllZeroKeepsOrder(t *testing.T) {
	enriched := []*EnrichedPrediction{{Label: "b"}, {Label: "a"}}

	Normalize(enriched)

	assert.Equal(t, "b", enriched[0].Label)
	assert.Equal(t, 0.0, enriched[0].Score)
	assert.Equal(t, 0.0, enriched[1].Score)
}

func TestNormalize_Empty(t *testing.T) {
	assert.NotPanics(t, func() { Normalize(nil) })
}
