// AngelaMos | 2026
// knowledge_test.go

package knowledge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		confidence float64
		want       Severity
	}{
		{0, SeverityNotDetected},
		{0.49999, SeverityNotDetected},
		{0.5, SeverityMild},
		{0.69, SeverityMild},
		{0.7, SeverityModerate},
		{0.8499, SeverityModerate},
		{0.85, SeveritySevere},
		{1, SeveritySevere},
		{-0.2, SeverityNotDetected},
		{math.NaN(), SeverityNotDetected},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SeverityFor(tt.confidence), "confidence %v", tt.confidence)
	}
}

func TestSeverityForIsMonotonic(t *testing.T) {
	t.Parallel()

	rank := map[Severity]int{
		SeverityNotDetected: 0,
		SeverityMild:        1,
		SeverityModerate:    2,
		SeveritySevere:      3,
	}

	prev := rank[SeverityFor(0)]
	for c := 0.0; c <= 1.0; c += 0.001 {
		cur := rank[SeverityFor(c)]
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestKnownDisease(t *testing.T) {
	t.Parallel()

	kb := Default()
	info := kb.Disease("Acne")

	assert.True(t, kb.Known("Acne"))
	assert.Contains(t, info.Description, "pimples")
	assert.Len(t, info.Causes, 5)
	assert.Equal(t, "Occasional pimples and blackheads", info.SeverityIndicators[SeverityMild])
	assert.Len(t, kb.Remedies("Acne"), 5)
	assert.Len(t, kb.Precautions("Acne"), 9)
	assert.Len(t, kb.Referral("Acne"), 5)
	assert.Equal(t, "8-10 glasses daily", kb.Diet("Acne").Water)
}

func TestUnknownDiseaseFallsBack(t *testing.T) {
	t.Parallel()

	kb := Default()
	info := kb.Disease("Unknown Disease")

	assert.False(t, kb.Known("Unknown Disease"))
	assert.Equal(t, "Disease information not available", info.Description)
	assert.Empty(t, info.Causes)
	assert.NotNil(t, info.Causes)
	assert.NotEmpty(t, kb.Remedies("Unknown Disease"))
	assert.NotEmpty(t, kb.Precautions("Unknown Disease"))
	assert.NotEmpty(t, kb.Referral("Unknown Disease"))

	diet := kb.Diet("Unknown Disease")
	assert.Equal(t, []string{"Fruits and vegetables", "Plenty of water"}, diet.Eat)
	assert.Equal(t, []string{"Processed foods", "Sugar"}, diet.Avoid)
	assert.Equal(t, "8-10 glasses daily", diet.Water)
	assert.Empty(t, diet.Supplements)
}

func TestEveryDefaultLabelHasRemedies(t *testing.T) {
	t.Parallel()

	kb := Default()
	labels := []string{
		"Acne", "Eczema", "Psoriasis", "Fungal Infection", "Dermatitis",
		"Pigmentation Disorder", "Hemangioma", "Melanoma", "Nevus", "Healthy Skin",
	}

	for _, label := range labels {
		assert.True(t, kb.Known(label), label)
		assert.NotEmpty(t, kb.Remedies(label), label)
		assert.NotEmpty(t, kb.Precautions(label), label)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	t.Parallel()

	kb := Default()

	remedies := kb.Remedies("Eczema")
	remedies[0] = "tampered"
	assert.NotEqual(t, "tampered", kb.Remedies("Eczema")[0])

	info := kb.Disease("Eczema")
	info.Causes[0] = "tampered"
	info.SeverityIndicators[SeverityMild] = "tampered"
	fresh := kb.Disease("Eczema")
	assert.NotEqual(t, "tampered", fresh.Causes[0])
	assert.NotEqual(t, "tampered", fresh.SeverityIndicators[SeverityMild])

	diet := kb.Diet("Psoriasis")
	diet.Eat[0] = "tampered"
	assert.NotEqual(t, "tampered", kb.Diet("Psoriasis").Eat[0])
}
