package categorize

import (
	"context"
	"errors"
)

var ErrEmptyText = errors.New("text is required")

// Prediction is one of the top-k classifier outputs
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Label is a stored category as seen by the categorizer
type Label struct {
	ID     string
	Name   string
	JName  *string
	MyName *string
}

// LabelSource lists every known category
type LabelSource interface {
	ListLabels(ctx context.Context) ([]*Label, error)
}

// EnrichedPrediction is a category with its raw probability and display score
type EnrichedPrediction struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	JName    *string `json:"jname"`
	MyName   *string `json:"myname"`
	RawScore float64 `json:"rawScore"`
	Score    float64 `json:"score"`
}

// Confidence summarizes how decisive the raw top-k is
type Confidence struct {
	TopScore    float64 `json:"top_score"`
	SecondScore float64 `json:"second_score"`
	Gap         float64 `json:"gap"`
	Uncertain   bool    `json:"uncertain"`
}

// Result is the categorize response body
type Result struct {
	Uncertain   bool                  `json:"uncertain"`
	Predictions []*EnrichedPrediction `json:"predictions"`
}

// Request accepts the text under "text", its "content" alias, or post "html".
// TopK is optional; absent or non-positive values use the configured default.
type Request struct {
	Text    string `json:"text"`
	Content string `json:"content"`
	HTML    string `json:"html"`
	TopK    *int   `json:"topk"`
}

// Service defines the categorization flow
type Service interface {
	Categorize(ctx context.Context, text string, topK int) (*Result, error)
	PredictLabels(ctx context.Context, text string, topK int) ([]Prediction, error)
}
