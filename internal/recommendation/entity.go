// AngelaMos | 2026
// entity.go

package recommendation

import (
	"time"
)

const (
	CategoryRemedies    = "remedies"
	CategoryPrecautions = "precautions"
	CategoryDiet        = "diet"
	CategoryProducts    = "products"
)

func ValidCategory(c string) bool {
	switch c {
	case CategoryRemedies, CategoryPrecautions, CategoryDiet, CategoryProducts:
		return true
	}
	return false
}

type Recommendation struct {
	ID           string    `db:"id"`
	PredictionID string    `db:"prediction_id"`
	Category     string    `db:"category"`
	Content      string    `db:"content"`
	Position     int       `db:"position"`
	CreatedAt    time.Time `db:"created_at"`
}

// PredictionRef is the part of a stored prediction this package needs.
// UserID is empty for anonymous analyses.
type PredictionRef struct {
	ID          string
	UserID      string
	DiseaseName string
}
