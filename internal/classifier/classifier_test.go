// AngelaMos | 2026
// classifier_test.go

package classifier_test

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/glowguard-api/internal/classifier"
	"github.com/carterperez-dev/glowguard-api/internal/testutil"
)

func TestPredictArgMax(t *testing.T) {
	t.Parallel()

	model := &testutil.FakeModel{Scores: []float32{0.05, 0.1, 0.7, 0.15}}
	c := classifier.New(model, nil, classifier.Options{})

	res, err := c.Predict(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, "Psoriasis", res.Label)
	assert.Equal(t, 2, res.Index)
	assert.InDelta(t, 0.7, res.Confidence, 1e-6)
	assert.EqualValues(t, 1, model.Calls())
}

func TestPredictUnknownIndex(t *testing.T) {
	t.Parallel()

	labels := classifier.LabelMap{0: "Acne"}
	model := &testutil.FakeModel{Scores: []float32{0.1, 0.9}}
	c := classifier.New(model, labels, classifier.Options{})

	res, err := c.Predict(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, classifier.UnknownLabel, res.Label)
	assert.Equal(t, 1, res.Index)
}

func TestPredictClampsConfidence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		score float32
		want  float64
	}{
		{name: "logit above one", score: 4.2, want: 1},
		{name: "negative", score: -3, want: 0},
		{name: "nan", score: float32(math.NaN()), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := classifier.New(
				&testutil.FakeModel{Scores: []float32{tt.score}},
				nil,
				classifier.Options{},
			)
			res, err := c.Predict(context.Background(), nil)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, res.Confidence, 0)
		})
	}
}

func TestPredictTopK(t *testing.T) {
	t.Parallel()

	model := &testutil.FakeModel{
		Scores: []float32{0.1, 0.3, 0.05, 0.3, 0.25},
	}
	c := classifier.New(model, nil, classifier.Options{})

	results, err := c.PredictTopK(context.Background(), nil, 0)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, 1, results[0].Index, "ties keep index order")
	assert.Equal(t, 3, results[1].Index)
	assert.Equal(t, 4, results[2].Index)
	assert.Equal(t, "Eczema", results[0].Label)

	all, err := c.PredictTopK(context.Background(), nil, 50)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	top1, err := c.Predict(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, results[0], top1)
}

func TestPredictWithoutModel(t *testing.T) {
	t.Parallel()

	c := classifier.New(nil, nil, classifier.Options{})

	_, err := c.Predict(context.Background(), nil)
	require.ErrorIs(t, err, classifier.ErrModelNotLoaded)

	_, err = c.PredictTopK(context.Background(), nil, 3)
	require.ErrorIs(t, err, classifier.ErrModelNotLoaded)

	require.ErrorIs(t, c.Ping(context.Background()), classifier.ErrModelNotLoaded)

	var nilClassifier *classifier.Classifier
	_, err = nilClassifier.Predict(context.Background(), nil)
	require.ErrorIs(t, err, classifier.ErrModelNotLoaded)
}

func TestPredictPropagatesModelErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("interpreter exploded")
	c := classifier.New(&testutil.FakeModel{Err: boom}, nil, classifier.Options{})

	_, err := c.Predict(context.Background(), nil)
	require.ErrorIs(t, err, boom)

	empty := classifier.New(&testutil.FakeModel{}, nil, classifier.Options{})
	_, err = empty.Predict(context.Background(), nil)
	require.ErrorIs(t, err, classifier.ErrEmptyOutput)
}

func TestDegradedFlag(t *testing.T) {
	t.Parallel()

	c := classifier.New(&testutil.FakeModel{}, nil, classifier.Options{Degraded: true})
	assert.True(t, c.Degraded())
	assert.False(t, classifier.New(nil, nil, classifier.Options{}).Degraded())
}

func TestLoadLabelMap(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	objPath := filepath.Join(dir, "object.json")
	require.NoError(t, os.WriteFile(objPath, []byte(`{"0":"Acne","1":"Rosacea"}`), 0o600))
	labels, err := classifier.LoadLabelMap(objPath)
	require.NoError(t, err)
	assert.Equal(t, "Rosacea", labels.Label(1))
	assert.Equal(t, []string{"Acne", "Rosacea"}, labels.Names())

	listPath := filepath.Join(dir, "list.json")
	require.NoError(t, os.WriteFile(listPath, []byte(`["Acne","Eczema","Melanoma"]`), 0o600))
	labels, err = classifier.LoadLabelMap(listPath)
	require.NoError(t, err)
	assert.Equal(t, "Melanoma", labels.Label(2))

	labels, err = classifier.LoadLabelMap(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, classifier.DefaultLabels(), labels)

	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`{"zero":"Acne"}`), 0o600))
	_, err = classifier.LoadLabelMap(badPath)
	assert.Error(t, err)
}

func TestMetadata(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "metadata.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"model_type": "EfficientNetB4",
		"training_date": "2024-01-15",
		"dataset_size": 12000,
		"accuracy": 0.89,
		"recall_melanoma": 0.92,
		"preprocessing": "CLAHE + Bilateral Filter + ImageNet Norm",
		"augmentation": "Rotation, Brightness, Zoom (no flips)",
		"input_shape": [320, 320, 3]
	}`), 0o600))

	md, err := classifier.LoadMetadata(path)
	require.NoError(t, err)
	assert.Equal(t, "EfficientNetB4", md.ModelType)
	assert.Equal(t, "medical", md.PreprocessMode())

	w, h, ok := md.InputSize()
	assert.True(t, ok)
	assert.Equal(t, 320, w)
	assert.Equal(t, 320, h)

	missing, err := classifier.LoadMetadata(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.Empty(t, missing.PreprocessMode())
	_, _, ok = missing.InputSize()
	assert.False(t, ok)

	assert.Equal(t, "baseline", classifier.Metadata{Preprocessing: "rescale 1/255"}.PreprocessMode())
}
