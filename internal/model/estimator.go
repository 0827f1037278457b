package model

import "math"

// estimator maps a TF-IDF row to class probabilities in class order
type estimator interface {
	predictProba(row []feature) []float64
}

type multinomialNB struct {
	classLogPrior  []float64
	featureLogProb [][]float64
}

func (m *multinomialNB) predictProba(row []feature) []float64 {
	jll := make([]float64, len(m.classLogPrior))
	for c := range jll {
		score := m.classLogPrior[c]
		weights := m.featureLogProb[c]
		for _, f := range row {
			score += f.value * weights[f.index]
		}
		jll[c] = score
	}
	return softmax(jll)
}

type logisticRegression struct {
	coef      [][]float64
	intercept []float64
	ovr       bool

	// set only when the artifact names multinomial explicitly
	multinomialBinary bool
}

func (l *logisticRegression) predictProba(row []feature) []float64 {
	scores := make([]float64, len(l.coef))
	for c, weights := range l.coef {
		score := l.intercept[c]
		for _, f := range row {
			score += f.value * weights[f.index]
		}
		scores[c] = score
	}

	// binary models store a single decision row for the positive class;
	// a multinomial fit scores it as softmax([-d, d]) = sigmoid(2d)
	if len(scores) == 1 {
		d := scores[0]
		if l.multinomialBinary {
			d *= 2
		}
		p := sigmoid(d)
		return []float64{1 - p, p}
	}

	if !l.ovr {
		return softmax(scores)
	}

	var total float64
	for i, s := range scores {
		scores[i] = sigmoid(s)
		total += scores[i]
	}
	if total == 0 {
		return uniform(len(scores))
	}
	for i := range scores {
		scores[i] /= total
	}
	return scores
}

func newEstimator(c ClassifierArtifact) estimator {
	if c.Type == EstimatorLogisticRegression {
		return &logisticRegression{
			coef:      c.Coef,
			intercept: c.Intercept,
			ovr:       c.MultiClass == "ovr",

			multinomialBinary: c.MultiClass == "multinomial",
		}
	}
	return &multinomialNB{
		classLogPrior:  c.ClassLogPrior,
		featureLogProb: c.FeatureLogProb,
	}
}

// softmax converts log-likelihoods into probabilities using the log-sum-exp shift
func softmax(logits []float64) []float64 {
	if len(logits) == 0 {
		return nil
	}
	maxLogit := math.Inf(-1)
	for _, v := range logits {
		if v > maxLogit {
			maxLogit = v
		}
	}
	if math.IsInf(maxLogit, -1) {
		return uniform(len(logits))
	}

	probs := make([]float64, len(logits))
	var total float64
	for i, v := range logits {
		probs[i] = math.Exp(v - maxLogit)
		total += probs[i]
	}
	for i := range probs {
		probs[i] /= total
	}
	return probs
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func uniform(n int) []float64 {
	probs := make([]float64, n)
	for i := range probs {
		probs[i] = 1 / float64(n)
	}
	return probs
}
