// AngelaMos | 2026
// classifier.go

package classifier

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	ErrModelNotLoaded = errors.New("classifier: no model loaded")
	ErrEmptyOutput    = errors.New("classifier: model returned no scores")
)

const (
	UnknownLabel = "Unknown Disease"
	DefaultTopK  = 3
)

// Model runs one forward pass over a preprocessed NHWC float32 tensor and
// returns the raw score vector.
type Model interface {
	Infer(ctx context.Context, input []float32) ([]float32, error)
	Close() error
}

type Result struct {
	Label      string  `json:"disease_name"`
	Confidence float64 `json:"confidence"`
	Index      int     `json:"class_index"`
}

type Options struct {
	// Degraded marks a fallback model whose labels are not trustworthy.
	Degraded bool
}

// Classifier is built once at startup and shared read-only by all requests.
type Classifier struct {
	model    Model
	labels   LabelMap
	degraded bool
}

func New(model Model, labels LabelMap, opts Options) *Classifier {
	if labels == nil {
		labels = DefaultLabels()
	}
	return &Classifier{
		model:    model,
		labels:   labels,
		degraded: opts.Degraded,
	}
}

// Predict returns the arg-max class of a single forward pass.
func (c *Classifier) Predict(
	ctx context.Context,
	input []float32,
) (Result, error) {
	scores, err := c.infer(ctx, input)
	if err != nil {
		return Result{}, err
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}

	return c.result(best, scores[best]), nil
}

// PredictTopK returns the k highest scoring classes of a single forward
// pass, best first. Ties keep index order. k <= 0 selects DefaultTopK.
func (c *Classifier) PredictTopK(
	ctx context.Context,
	input []float32,
	k int,
) ([]Result, error) {
	scores, err := c.infer(ctx, input)
	if err != nil {
		return nil, err
	}

	if k <= 0 {
		k = DefaultTopK
	}
	if k > len(scores) {
		k = len(scores)
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	results := make([]Result, 0, k)
	for _, idx := range order[:k] {
		results = append(results, c.result(idx, scores[idx]))
	}

	return results, nil
}

func (c *Classifier) infer(
	ctx context.Context,
	input []float32,
) ([]float32, error) {
	if c == nil || c.model == nil {
		return nil, ErrModelNotLoaded
	}

	scores, err := c.model.Infer(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("classifier: inference: %w", err)
	}

	if len(scores) == 0 {
		return nil, ErrEmptyOutput
	}

	return scores, nil
}

func (c *Classifier) result(idx int, score float32) Result {
	return Result{
		Label:      c.labels.Label(idx),
		Confidence: clamp(float64(score)),
		Index:      idx,
	}
}

func (c *Classifier) Degraded() bool {
	return c != nil && c.degraded
}

// Ping reports whether a model is loaded. It satisfies the health checker
// interface.
func (c *Classifier) Ping(_ context.Context) error {
	if c == nil || c.model == nil {
		return ErrModelNotLoaded
	}
	return nil
}

func (c *Classifier) Close() error {
	if c == nil || c.model == nil {
		return nil
	}
	return c.model.Close()
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
