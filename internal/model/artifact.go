package model

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Estimator types supported by the artifact exporter
const (
	EstimatorMultinomialNB      = "multinomial_nb"
	EstimatorLogisticRegression = "logistic_regression"
)

// Analyzer types
const (
	AnalyzerWord   = "word"
	AnalyzerChar   = "char"
	AnalyzerCharWB = "char_wb"
)

var ErrInvalidArtifact = errors.New("invalid model artifact")

// Artifact is the serialized form of a fitted vectorizer + classifier.
// It is produced offline from the trained pipeline; this service only reads it.
type Artifact struct {
	Name       string             `json:"name"`
	Vectorizer VectorizerArtifact `json:"vectorizer"`
	Classifier ClassifierArtifact `json:"classifier"`
}

// VectorizerArtifact holds the fitted TF-IDF parameters
type VectorizerArtifact struct {
	Analyzer     string         `json:"analyzer"`
	NgramRange   [2]int         `json:"ngram_range"`
	Lowercase    *bool          `json:"lowercase,omitempty"`
	StripAccents string         `json:"strip_accents,omitempty"`
	SublinearTF  bool           `json:"sublinear_tf"`
	Norm         string         `json:"norm,omitempty"`
	Vocabulary   map[string]int `json:"vocabulary"`
	IDF          []float64      `json:"idf,omitempty"`
}

// ClassifierArtifact holds the fitted estimator parameters.
// Naive Bayes uses ClassLogPrior/FeatureLogProb, logistic regression uses Coef/Intercept.
type ClassifierArtifact struct {
	Type           string      `json:"type"`
	Classes        []string    `json:"classes"`
	ClassLogPrior  []float64   `json:"class_log_prior,omitempty"`
	FeatureLogProb [][]float64 `json:"feature_log_prob,omitempty"`
	Coef           [][]float64 `json:"coef,omitempty"`
	Intercept      []float64   `json:"intercept,omitempty"`
	MultiClass     string      `json:"multi_class,omitempty"`
}

// ReadArtifact opens and decodes an artifact file. A .gz suffix means gzip-compressed JSON.
func ReadArtifact(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model artifact: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	return DecodeArtifact(r)
}

// DecodeArtifact decodes and validates an artifact from a reader
func DecodeArtifact(r io.Reader) (*Artifact, error) {
	var a Artifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact: %w", err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// Validate checks that every matrix agrees with the vocabulary size and class count
func (a *Artifact) Validate() error {
	v := a.Vectorizer
	c := a.Classifier

	switch v.Analyzer {
	case "", AnalyzerWord, AnalyzerChar, AnalyzerCharWB:
	default:
		return fmt.Errorf("%w: unknown analyzer %q", ErrInvalidArtifact, v.Analyzer)
	}
	if v.NgramRange[0] < 0 || v.NgramRange[1] < v.NgramRange[0] {
		return fmt.Errorf("%w: bad ngram range %v", ErrInvalidArtifact, v.NgramRange)
	}
	switch v.Norm {
	case "", "l1", "l2", "none":
	default:
		return fmt.Errorf("%w: unknown norm %q", ErrInvalidArtifact, v.Norm)
	}
	switch v.StripAccents {
	case "", "unicode", "ascii":
	default:
		return fmt.Errorf("%w: unknown strip_accents %q", ErrInvalidArtifact, v.StripAccents)
	}

	nFeatures := len(v.Vocabulary)
	if nFeatures == 0 {
		return fmt.Errorf("%w: empty vocabulary", ErrInvalidArtifact)
	}
	for term, idx := range v.Vocabulary {
		if idx < 0 || idx >= nFeatures {
			return fmt.Errorf("%w: vocabulary index %d for %q out of range", ErrInvalidArtifact, idx, term)
		}
	}
	if len(v.IDF) != 0 && len(v.IDF) != nFeatures {
		return fmt.Errorf("%w: idf has %d entries, vocabulary has %d", ErrInvalidArtifact, len(v.IDF), nFeatures)
	}

	nClasses := len(c.Classes)
	if nClasses == 0 {
		return fmt.Errorf("%w: no classes", ErrInvalidArtifact)
	}

	switch c.Type {
	case EstimatorMultinomialNB:
		if len(c.ClassLogPrior) != nClasses {
			return fmt.Errorf("%w: class_log_prior has %d entries, want %d", ErrInvalidArtifact, len(c.ClassLogPrior), nClasses)
		}
		if err := checkMatrix("feature_log_prob", c.FeatureLogProb, nClasses, nFeatures); err != nil {
			return err
		}
	case EstimatorLogisticRegression:
		rows := nClasses
		if nClasses == 2 {
			rows = 1
		}
		if err := checkMatrix("coef", c.Coef, rows, nFeatures); err != nil {
			return err
		}
		if len(c.Intercept) != rows {
			return fmt.Errorf("%w: intercept has %d entries, want %d", ErrInvalidArtifact, len(c.Intercept), rows)
		}
		switch c.MultiClass {
		case "", "multinomial", "ovr":
		default:
			return fmt.Errorf("%w: unknown multi_class %q", ErrInvalidArtifact, c.MultiClass)
		}
	default:
		return fmt.Errorf("%w: unknown classifier type %q", ErrInvalidArtifact, c.Type)
	}

	return nil
}

func checkMatrix(name string, m [][]float64, rows, cols int) error {
	if len(m) != rows {
		return fmt.Errorf("%w: %s has %d rows, want %d", ErrInvalidArtifact, name, len(m), rows)
	}
	for i, row := range m {
		if len(row) != cols {
			return fmt.Errorf("%w: %s row %d has %d columns, want %d", ErrInvalidArtifact, name, i, len(row), cols)
		}
	}
	return nil
}
