package categorize

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/jearn-categorizer/config"
	"github.com/dustin/jearn-categorizer/internal/model"
	"github.com/dustin/jearn-categorizer/pkg/logger"
)

// service implements the Service interface
type service struct {
	predictor   model.Predictor
	labels      LabelSource
	defaultTopK int
	maxTopK     int
	minTopScore float64
	minGap      float64
	logger      *logger.Logger
}

// NewService creates a categorize service with validation and defaults
func NewService(cfg *config.CategorizerConfig, predictor model.Predictor, labels LabelSource, log *logger.Logger) (Service, error) {
	defaultTopK := 10
	maxTopK := 100
	minTopScore := 0.25
	minGap := 0.05

	if cfg != nil {
		var err error
		if defaultTopK, err = parsePositiveInt("default topk", cfg.DefaultTopK, defaultTopK); err != nil {
			return nil, err
		}
		if maxTopK, err = parsePositiveInt("max topk", cfg.MaxTopK, maxTopK); err != nil {
			return nil, err
		}
		if minTopScore, err = parseFloat("min top score", cfg.MinTopScore, minTopScore); err != nil {
			return nil, err
		}
		if minGap, err = parseFloat("min gap", cfg.MinGap, minGap); err != nil {
			return nil, err
		}
	}

	if defaultTopK > maxTopK {
		return nil, fmt.Errorf("default topk %d exceeds max topk %d", defaultTopK, maxTopK)
	}

	return &service{
		predictor:   predictor,
		labels:      labels,
		defaultTopK: defaultTopK,
		maxTopK:     maxTopK,
		minTopScore: minTopScore,
		minGap:      minGap,
		logger:      log.WithComponent("categorize-service"),
	}, nil
}

func parsePositiveInt(name, raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s': %v", name, raw, err)
	}
	if v < 1 {
		return 0, fmt.Errorf("invalid %s '%s': must be positive", name, raw)
	}
	return v, nil
}

func parseFloat(name, raw string, fallback float64) (float64, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s': %v", name, raw, err)
	}
	return v, nil
}

// resolveTopK applies the default for non-positive values and clamps to the maximum
func (s *service) resolveTopK(topK int) int {
	if topK < 1 {
		return s.defaultTopK
	}
	if topK > s.maxTopK {
		return s.maxTopK
	}
	return topK
}

func (s *service) PredictLabels(ctx context.Context, text string, topK int) ([]Prediction, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	probs, err := s.predictor.PredictProba(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("prediction failed: %w", err)
	}

	return TopK(probs, s.resolveTopK(topK)), nil
}

func (s *service) Categorize(ctx context.Context, text string, topK int) (*Result, error) {
	preds, err := s.PredictLabels(ctx, text, topK)
	if err != nil {
		return nil, err
	}

	confidence := Assess(preds, s.minTopScore, s.minGap)
	s.logger.Info(fmt.Sprintf("AI confidence: top=%.4f, gap=%.4f, uncertain=%t",
		confidence.TopScore, confidence.Gap, confidence.Uncertain))

	labels, err := s.labels.ListLabels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	enriched := Enrich(labels, preds)
	Normalize(enriched)

	return &Result{
		Uncertain:   confidence.Uncertain,
		Predictions: enriched,
	}, nil
}
