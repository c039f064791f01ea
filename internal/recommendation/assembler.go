// AngelaMos | 2026
// assembler.go

package recommendation

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/glowguard-api/internal/core"
	"github.com/carterperez-dev/glowguard-api/internal/knowledge"
	"github.com/carterperez-dev/glowguard-api/internal/product"
)

type ProductSource interface {
	ForCondition(ctx context.Context, disease string) ([]product.Product, error)
}

// Bundle is everything the app shows for one diagnosis.
type Bundle struct {
	Disease            string
	Description        string
	Causes             []string
	SeverityIndicators map[knowledge.Severity]string
	Remedies           []string
	Diet               knowledge.DietAdvice
	Precautions        []string
	Referral           []string
	Products           []product.Product
}

type Assembler struct {
	kb       *knowledge.Base
	products ProductSource
}

func NewAssembler(kb *knowledge.Base, products ProductSource) *Assembler {
	return &Assembler{kb: kb, products: products}
}

// Assemble never fails for an unknown label; knowledge lookups fall back to
// generic advice. Only a catalog failure is an error.
func (a *Assembler) Assemble(ctx context.Context, disease string) (*Bundle, error) {
	info := a.kb.Disease(disease)

	products, err := a.products.ForCondition(ctx, disease)
	if err != nil {
		return nil, fmt.Errorf("assemble %q: %w", disease, err)
	}

	return &Bundle{
		Disease:            disease,
		Description:        info.Description,
		Causes:             info.Causes,
		SeverityIndicators: info.SeverityIndicators,
		Remedies:           a.kb.Remedies(disease),
		Diet:               a.kb.Diet(disease),
		Precautions:        a.kb.Precautions(disease),
		Referral:           a.kb.Referral(disease),
		Products:           products,
	}, nil
}

// Rows flattens a bundle into persisted rows. The output depends only on
// the bundle, so regenerating rows for a prediction yields the same set.
func Rows(predictionID string, b *Bundle) []Recommendation {
	now := core.Now()
	var rows []Recommendation

	add := func(category string, contents []string) {
		for i, c := range contents {
			rows = append(rows, Recommendation{
				ID:           uuid.New().String(),
				PredictionID: predictionID,
				Category:     category,
				Content:      c,
				Position:     i,
				CreatedAt:    now,
			})
		}
	}

	add(CategoryRemedies, b.Remedies)
	add(CategoryPrecautions, b.Precautions)
	add(CategoryDiet, dietLines(b.Diet))

	products := make([]string, 0, len(b.Products))
	for _, p := range b.Products {
		products = append(products, productLine(p))
	}
	add(CategoryProducts, products)

	return rows
}

func dietLines(d knowledge.DietAdvice) []string {
	var lines []string
	if len(d.Eat) > 0 {
		lines = append(lines, "Eat: "+strings.Join(d.Eat, ", "))
	}
	if len(d.Avoid) > 0 {
		lines = append(lines, "Avoid: "+strings.Join(d.Avoid, ", "))
	}
	if d.Water != "" {
		lines = append(lines, "Water: "+d.Water)
	}
	if len(d.Supplements) > 0 {
		lines = append(lines, "Supplements: "+strings.Join(d.Supplements, ", "))
	}
	return lines
}

func productLine(p product.Product) string {
	name := p.Name
	if p.Brand != "" && !strings.HasPrefix(p.Name, p.Brand) {
		name = p.Brand + " " + p.Name
	}
	if p.PriceRange != "" {
		name += " (" + p.PriceRange + ")"
	}
	return name
}
