// AngelaMos | 2026
// entity.go

package product

import (
	"strings"
	"time"
)

type Product struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	Category       string    `db:"category"`
	Brand          string    `db:"brand"`
	PriceRange     string    `db:"price_range"`
	ImageURL       string    `db:"image_url"`
	Description    string    `db:"description"`
	PurchaseLink   string    `db:"purchase_link"`
	RecommendedFor string    `db:"recommended_for"`
	CreatedAt      time.Time `db:"created_at"`

	Conditions []string `db:"-"`
}

// NormalizeTag is the canonical form of a condition tag. Disease labels
// from the classifier map onto tags through the same function.
func NormalizeTag(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
