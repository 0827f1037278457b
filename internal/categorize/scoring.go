package categorize

import (
	"sort"
	"strings"

	"github.com/dustin/jearn-categorizer/internal/model"
)

// TopK pairs probabilities with labels, orders them by probability
// descending and keeps the first k. Equal probabilities keep class order.
func TopK(probs []model.ClassProbability, k int) []Prediction {
	preds := make([]Prediction, len(probs))
	for i, p := range probs {
		preds[i] = Prediction{Label: p.Label, Score: p.Probability}
	}

	sort.SliceStable(preds, func(i, j int) bool {
		return preds[i].Score > preds[j].Score
	})

	if k < len(preds) {
		preds = preds[:k]
	}
	return preds
}

// Assess computes the confidence gap over raw top-k predictions.
// Missing first or second predictions count as 0.
func Assess(preds []Prediction, minTopScore, minGap float64) Confidence {
	var top, second float64
	if len(preds) > 0 {
		top = preds[0].Score
	}
	if len(preds) > 1 {
		second = preds[1].Score
	}
	gap := top - second

	return Confidence{
		TopScore:    top,
		SecondScore: second,
		Gap:         gap,
		Uncertain:   top < minTopScore || gap < minGap,
	}
}

// Enrich emits every label once, scored with its raw probability or 0 when
// the label is not in the predictions. Matching ignores case.
func Enrich(labels []*Label, preds []Prediction) []*EnrichedPrediction {
	raw := make(map[string]float64, len(preds))
	for _, p := range preds {
		// labels differing only by case collapse; the later one wins
		raw[strings.ToLower(p.Label)] = p.Score
	}

	enriched := make([]*EnrichedPrediction, 0, len(labels))
	for _, l := range labels {
		score := raw[strings.ToLower(l.Name)]
		enriched = append(enriched, &EnrichedPrediction{
			ID:       l.ID,
			Label:    l.Name,
			JName:    l.JName,
			MyName:   l.MyName,
			RawScore: score,
			Score:    score,
		})
	}
	return enriched
}

// Normalize divides every display score by the maximum, or by 1 when the
// maximum is 0, then orders by display score descending.
func Normalize(enriched []*EnrichedPrediction) {
	var maxScore float64
	for _, e := range enriched {
		if e.Score > maxScore {
			maxScore = e.Score
		}
	}
	if maxScore == 0 {
		maxScore = 1
	}

	for _, e := range enriched {
		e.Score /= maxScore
	}

	sort.SliceStable(enriched, func(i, j int) bool {
		return enriched[i].Score > enriched[j].Score
	})
}
