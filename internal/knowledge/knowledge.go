// AngelaMos | 2026
// knowledge.go

package knowledge

import (
	"math"
	"slices"
)

type Severity string

const (
	SeverityNotDetected Severity = "Not detected"
	SeverityMild        Severity = "mild"
	SeverityModerate    Severity = "moderate"
	SeveritySevere      Severity = "severe"
)

// SeverityFor buckets a classifier confidence. It is total: NaN and values
// below 0.5 map to SeverityNotDetected.
func SeverityFor(confidence float64) Severity {
	switch {
	case math.IsNaN(confidence) || confidence < 0.5:
		return SeverityNotDetected
	case confidence < 0.7:
		return SeverityMild
	case confidence < 0.85:
		return SeverityModerate
	default:
		return SeveritySevere
	}
}

type DiseaseInfo struct {
	Description        string              `json:"description"`
	Causes             []string            `json:"causes"`
	SeverityIndicators map[Severity]string `json:"severity_indicators"`
}

type DietAdvice struct {
	Eat         []string `json:"eat"`
	Avoid       []string `json:"avoid"`
	Water       string   `json:"water"`
	Supplements []string `json:"supplements"`
}

// Base is the read-only disease knowledge base. Every accessor returns a
// copy, so callers may mutate results freely.
type Base struct {
	diseases    map[string]DiseaseInfo
	remedies    map[string][]string
	diet        map[string]DietAdvice
	precautions map[string][]string
	referral    map[string][]string
}

// Default returns the built-in knowledge base.
func Default() *Base {
	return &Base{
		diseases:    diseaseTable,
		remedies:    remedyTable,
		diet:        dietTable,
		precautions: precautionTable,
		referral:    referralTable,
	}
}

// Known reports whether the label has a disease description.
func (b *Base) Known(disease string) bool {
	_, ok := b.diseases[disease]
	return ok
}

func (b *Base) Disease(disease string) DiseaseInfo {
	info, ok := b.diseases[disease]
	if !ok {
		return DiseaseInfo{
			Description:        unknownDescription,
			Causes:             []string{},
			SeverityIndicators: map[Severity]string{},
		}
	}

	indicators := make(map[Severity]string, len(info.SeverityIndicators))
	for k, v := range info.SeverityIndicators {
		indicators[k] = v
	}

	return DiseaseInfo{
		Description:        info.Description,
		Causes:             cloneOrEmpty(info.Causes),
		SeverityIndicators: indicators,
	}
}

func (b *Base) Remedies(disease string) []string {
	if r, ok := b.remedies[disease]; ok {
		return cloneOrEmpty(r)
	}
	return cloneOrEmpty(defaultRemedies)
}

func (b *Base) Diet(disease string) DietAdvice {
	d, ok := b.diet[disease]
	if !ok {
		d = defaultDiet
	}
	return DietAdvice{
		Eat:         cloneOrEmpty(d.Eat),
		Avoid:       cloneOrEmpty(d.Avoid),
		Water:       d.Water,
		Supplements: cloneOrEmpty(d.Supplements),
	}
}

func (b *Base) Precautions(disease string) []string {
	if p, ok := b.precautions[disease]; ok {
		return cloneOrEmpty(p)
	}
	return cloneOrEmpty(defaultPrecautions)
}

// Referral lists when to see a dermatologist.
func (b *Base) Referral(disease string) []string {
	if r, ok := b.referral[disease]; ok {
		return cloneOrEmpty(r)
	}
	return cloneOrEmpty(defaultReferral)
}

func cloneOrEmpty(s []string) []string {
	if len(s) == 0 {
		return []string{}
	}
	return slices.Clone(s)
}
