// AngelaMos | 2026
// entity.go

package prediction

import (
	"time"
)

// Prediction is written once per analysis and never updated. UserID is nil
// for anonymous analyses.
type Prediction struct {
	ID            string    `db:"id"`
	UserID        *string   `db:"user_id"`
	ImagePath     string    `db:"image_path"`
	DiseaseName   string    `db:"disease_name"`
	Confidence    float64   `db:"confidence"`
	Severity      string    `db:"severity"`
	Description   string    `db:"description"`
	Causes        string    `db:"causes"`
	ModelDegraded bool      `db:"model_degraded"`
	CreatedAt     time.Time `db:"created_at"`
}

func (p *Prediction) Owner() string {
	if p.UserID == nil {
		return ""
	}
	return *p.UserID
}

func (p *Prediction) OwnedBy(userID string) bool {
	return userID != "" && p.Owner() == userID
}
