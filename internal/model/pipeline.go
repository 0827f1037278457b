package model

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dustin/jearn-categorizer/pkg/logger"
)

var ErrModelNotLoaded = errors.New("model not loaded")

// ClassProbability is the probability the pipeline assigns to one class
type ClassProbability struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

// Predictor scores text against every known class
type Predictor interface {
	PredictProba(ctx context.Context, text string) ([]ClassProbability, error)
	Name() string
}

// Pipeline is a fitted vectorizer + estimator loaded from an artifact
type Pipeline struct {
	name       string
	classes    []string
	vectorizer *vectorizer
	estimator  estimator
}

// NewPipeline builds a pipeline from a validated artifact
func NewPipeline(a *Artifact) (*Pipeline, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	name := a.Name
	if name == "" {
		name = a.Classifier.Type
	}

	return &Pipeline{
		name:       name,
		classes:    append([]string(nil), a.Classifier.Classes...),
		vectorizer: newVectorizer(a.Vectorizer),
		estimator:  newEstimator(a.Classifier),
	}, nil
}

// Load reads the artifact at path and builds a pipeline from it
func Load(path string) (*Pipeline, error) {
	a, err := ReadArtifact(path)
	if err != nil {
		return nil, err
	}
	return NewPipeline(a)
}

func (p *Pipeline) Name() string {
	return p.name
}

// Classes returns labels in the estimator's column order
func (p *Pipeline) Classes() []string {
	return p.classes
}

// PredictProba returns one probability per class, in class order, summing to 1
func (p *Pipeline) PredictProba(ctx context.Context, text string) ([]ClassProbability, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	probs := p.estimator.predictProba(p.vectorizer.transform(text))
	if len(probs) != len(p.classes) {
		return nil, fmt.Errorf("estimator returned %d probabilities for %d classes", len(probs), len(p.classes))
	}

	out := make([]ClassProbability, len(probs))
	for i, prob := range probs {
		out[i] = ClassProbability{Label: p.classes[i], Probability: prob}
	}
	return out, nil
}

// Holder owns the active local pipeline and swaps it when the artifact changes on disk
type Holder struct {
	mu       sync.RWMutex
	path     string
	pipeline *Pipeline
	modTime  time.Time
	logger   *logger.Logger
}

// NewHolder loads the artifact at path; a missing or broken artifact is a startup error
func NewHolder(path string, log *logger.Logger) (*Holder, error) {
	if path == "" {
		path = "models/sns_clf5.json"
	}

	h := &Holder{
		path:   path,
		logger: log.WithComponent("model-holder"),
	}
	if _, err := h.Reload(); err != nil {
		return nil, err
	}
	return h, nil
}

// Reload re-reads the artifact if its modification time changed.
// The previous pipeline stays active when loading fails.
func (h *Holder) Reload() (bool, error) {
	info, err := os.Stat(h.path)
	if err != nil {
		return false, fmt.Errorf("failed to stat model artifact: %w", err)
	}

	h.mu.RLock()
	unchanged := h.pipeline != nil && info.ModTime().Equal(h.modTime)
	h.mu.RUnlock()
	if unchanged {
		return false, nil
	}

	pipeline, err := Load(h.path)
	if err != nil {
		h.logger.Error("Failed to load model artifact " + h.path + ": " + err.Error())
		return false, err
	}

	h.mu.Lock()
	h.pipeline = pipeline
	h.modTime = info.ModTime()
	h.mu.Unlock()

	h.logger.Info(fmt.Sprintf("Loaded model %s from %s (%d classes)", pipeline.Name(), h.path, len(pipeline.Classes())))
	return true, nil
}

// ReloadIfChanged matches the worker job signature
func (h *Holder) ReloadIfChanged() error {
	_, err := h.Reload()
	return err
}

func (h *Holder) current() *Pipeline {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.pipeline
}

func (h *Holder) PredictProba(ctx context.Context, text string) ([]ClassProbability, error) {
	p := h.current()
	if p == nil {
		return nil, ErrModelNotLoaded
	}
	return p.PredictProba(ctx, text)
}

func (h *Holder) Name() string {
	if p := h.current(); p != nil {
		return p.Name()
	}
	return ""
}

// Path returns the artifact location
func (h *Holder) Path() string {
	return h.path
}

// ClassCount returns how many labels the active pipeline knows
func (h *Holder) ClassCount() int {
	if p := h.current(); p != nil {
		return len(p.Classes())
	}
	return 0
}
