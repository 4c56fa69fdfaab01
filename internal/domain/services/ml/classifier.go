package ml

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/Yashr23-ui/agentic-honeypot-api/pkg/logger"
)

// Classifier is a fitted binary logistic regression over the vectorizer's
// feature space. Read-only after load, safe for concurrent use.
type Classifier struct {
	Coefficients []float64 `json:"coef"`
	Intercept    float64   `json:"intercept"`
}

// LoadClassifier reads a fitted classifier artifact from disk.
func LoadClassifier(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read classifier artifact: %w", err)
	}

	var c Classifier
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse classifier artifact: %w", err)
	}

	if len(c.Coefficients) == 0 {
		return nil, fmt.Errorf("classifier artifact %s has no coefficients", path)
	}

	return &c, nil
}

// PredictProba returns the probability of the positive (scam) class for a
// sparse feature vector. A zero vector yields the prior-driven probability
// sigmoid(intercept).
func (c *Classifier) PredictProba(vec map[int]float64) float64 {
	z := c.Intercept
	for idx, val := range vec {
		if idx < len(c.Coefficients) {
			z += c.Coefficients[idx] * val
		}
	}
	return sigmoid(z)
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// Pipeline chains the fitted vectorizer and classifier into the scam scorer
// the detection engine consumes: text in, probability in [0,1] out.
type Pipeline struct {
	vectorizer *Vectorizer
	classifier *Classifier
	logger     *logger.Logger
}

// NewPipeline assembles a pipeline from already-loaded artifacts.
func NewPipeline(v *Vectorizer, c *Classifier, log *logger.Logger) (*Pipeline, error) {
	if v.Size() != len(c.Coefficients) {
		return nil, fmt.Errorf("feature space mismatch: vectorizer has %d features, classifier has %d coefficients",
			v.Size(), len(c.Coefficients))
	}
	return &Pipeline{
		vectorizer: v,
		classifier: c,
		logger:     log.WithComponent("scam-classifier"),
	}, nil
}

// Load reads both artifacts from disk and assembles the pipeline.
// A missing or corrupt artifact is a startup-fatal condition for the caller.
func Load(vectorizerPath, modelPath string, log *logger.Logger) (*Pipeline, error) {
	v, err := LoadVectorizer(vectorizerPath)
	if err != nil {
		return nil, err
	}

	c, err := LoadClassifier(modelPath)
	if err != nil {
		return nil, err
	}

	p, err := NewPipeline(v, c, log)
	if err != nil {
		return nil, err
	}

	p.logger.Info().
		Int("vocabulary_size", v.Size()).
		Str("vectorizer", vectorizerPath).
		Str("model", modelPath).
		Msg("classifier artifacts loaded")

	return p, nil
}

// Score returns the estimated probability that text is a scam attempt.
func (p *Pipeline) Score(text string) float64 {
	return p.classifier.PredictProba(p.vectorizer.Transform(text))
}
