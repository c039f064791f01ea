// AngelaMos | 2026
// repository.go

package recommendation

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/glowguard-api/internal/core"
)

type Repository interface {
	InsertBatch(ctx context.Context, rows []Recommendation) error
	ListByPrediction(ctx context.Context, predictionID string) ([]Recommendation, error)
	ListByCategoryForUser(ctx context.Context, userID, category string) ([]Recommendation, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// InsertBatch skips rows whose (prediction, category, position) slot is
// already filled, so concurrent regeneration converges on one set.
func (r *repository) InsertBatch(ctx context.Context, rows []Recommendation) error {
	query := r.db.Rebind(`
		INSERT INTO recommendations (id, prediction_id, category, content, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (prediction_id, category, position) DO NOTHING`)

	for _, row := range rows {
		_, err := r.db.ExecContext(ctx, query,
			row.ID,
			row.PredictionID,
			row.Category,
			row.Content,
			row.Position,
			row.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert recommendation: %w", err)
		}
	}

	return nil
}

func (r *repository) ListByPrediction(
	ctx context.Context,
	predictionID string,
) ([]Recommendation, error) {
	query := `
		SELECT id, prediction_id, category, content, position, created_at
		FROM recommendations
		WHERE prediction_id = ?
		ORDER BY CASE category
		           WHEN 'remedies' THEN 0
		           WHEN 'precautions' THEN 1
		           WHEN 'diet' THEN 2
		           ELSE 3
		         END, position`

	var rows []Recommendation
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), predictionID); err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}

	return rows, nil
}

func (r *repository) ListByCategoryForUser(
	ctx context.Context,
	userID, category string,
) ([]Recommendation, error) {
	query := `
		SELECT r.id, r.prediction_id, r.category, r.content, r.position, r.created_at
		FROM recommendations r
		JOIN predictions p ON p.id = r.prediction_id
		WHERE p.user_id = ? AND r.category = ?
		ORDER BY p.created_at DESC, r.position`

	var rows []Recommendation
	if err := r.db.SelectContext(
		ctx,
		&rows,
		r.db.Rebind(query),
		userID,
		category,
	); err != nil {
		return nil, fmt.Errorf("list recommendations by category: %w", err)
	}

	return rows, nil
}
