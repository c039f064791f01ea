// AngelaMos | 2026
// service.go

package recommendation

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/glowguard-api/internal/core"
)

type Service struct {
	db        *sqlx.DB
	repo      Repository
	assembler *Assembler
}

func NewService(db *sqlx.DB, assembler *Assembler) *Service {
	return &Service{db: db, repo: NewRepository(db), assembler: assembler}
}

func (s *Service) Assembler() *Assembler {
	return s.assembler
}

// EnsureForPrediction returns the stored rows for a prediction, generating
// and storing them first when none exist. The set is written in one
// transaction so a failed regeneration leaves no partial rows behind.
func (s *Service) EnsureForPrediction(
	ctx context.Context,
	ref PredictionRef,
) ([]Recommendation, error) {
	rows, err := s.repo.ListByPrediction(ctx, ref.ID)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		return rows, nil
	}

	bundle, err := s.assembler.Assemble(ctx, ref.DiseaseName)
	if err != nil {
		return nil, err
	}

	rows = Rows(ref.ID, bundle)
	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return NewRepository(tx).InsertBatch(ctx, rows)
	})
	if err != nil {
		return nil, fmt.Errorf("regenerate recommendations: %w", err)
	}

	return s.repo.ListByPrediction(ctx, ref.ID)
}

func (s *Service) ByCategoryForUser(
	ctx context.Context,
	userID, category string,
) ([]Recommendation, error) {
	return s.repo.ListByCategoryForUser(ctx, userID, category)
}

// Grouped maps category to contents in position order.
func Grouped(rows []Recommendation) map[string][]string {
	out := make(map[string][]string)
	for _, r := range rows {
		out[r.Category] = append(out[r.Category], r.Content)
	}
	return out
}
