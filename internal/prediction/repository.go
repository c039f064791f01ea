// AngelaMos | 2026
// repository.go

package prediction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/glowguard-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, p *Prediction) error
	GetByID(ctx context.Context, id string) (*Prediction, error)
	ListByUser(
		ctx context.Context,
		userID string,
		params ListParams,
	) ([]Prediction, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const predictionColumns = `
	id, user_id, image_path, disease_name, confidence, severity,
	description, causes, model_degraded, created_at`

func (r *repository) Create(ctx context.Context, p *Prediction) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = core.Now()
	}

	query := `
		INSERT INTO predictions (id, user_id, image_path, disease_name, confidence,
		                         severity, description, causes, model_degraded, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		p.ID,
		p.UserID,
		p.ImagePath,
		p.DiseaseName,
		p.Confidence,
		p.Severity,
		p.Description,
		p.Causes,
		p.ModelDegraded,
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create prediction: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Prediction, error) {
	query := "SELECT " + predictionColumns + " FROM predictions WHERE id = ?"

	var p Prediction
	err := r.db.GetContext(ctx, &p, r.db.Rebind(query), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get prediction: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get prediction: %w", err)
	}

	return &p, nil
}

// ListByUser returns one page of a user's predictions, newest first, and
// the total count.
func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
	params ListParams,
) ([]Prediction, int, error) {
	params.Normalize()

	var total int
	err := r.db.GetContext(ctx, &total,
		r.db.Rebind("SELECT COUNT(*) FROM predictions WHERE user_id = ?"),
		userID,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("count predictions: %w", err)
	}

	query := "SELECT " + predictionColumns + `
		FROM predictions
		WHERE user_id = ?
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?`

	predictions := []Prediction{}
	err = r.db.SelectContext(ctx, &predictions, r.db.Rebind(query),
		userID,
		params.PageSize,
		params.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list predictions: %w", err)
	}

	return predictions, total, nil
}
