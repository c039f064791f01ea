// AngelaMos | 2026
// service.go

package prediction

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/glowguard-api/internal/classifier"
	"github.com/carterperez-dev/glowguard-api/internal/core"
	"github.com/carterperez-dev/glowguard-api/internal/knowledge"
	"github.com/carterperez-dev/glowguard-api/internal/preprocess"
	"github.com/carterperez-dev/glowguard-api/internal/product"
	"github.com/carterperez-dev/glowguard-api/internal/recommendation"
	"github.com/carterperez-dev/glowguard-api/internal/upload"
)

type Deps struct {
	DB              *core.Database
	Store           *upload.Store
	Preprocessor    *preprocess.Preprocessor
	Classifier      *classifier.Classifier
	Knowledge       *knowledge.Base
	Recommendations *recommendation.Service
	Metrics         *core.Metrics
	Logger          *slog.Logger
	TopK            int
}

// Service runs the analysis pipeline and serves stored predictions. Every
// dependency is shared and read-only, so one Service handles all requests.
type Service struct {
	db      *core.Database
	repo    Repository
	store   *upload.Store
	pre     *preprocess.Preprocessor
	clf     *classifier.Classifier
	kb      *knowledge.Base
	recs    *recommendation.Service
	metrics *core.Metrics
	logger  *slog.Logger
	topK    int
}

func NewService(d Deps) *Service {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		db:      d.DB,
		repo:    NewRepository(d.DB.DB),
		store:   d.Store,
		pre:     d.Preprocessor,
		clf:     d.Classifier,
		kb:      d.Knowledge,
		recs:    d.Recommendations,
		metrics: d.Metrics,
		logger:  logger,
		topK:    d.TopK,
	}
}

// Analyze stores the upload, classifies it and persists the prediction
// together with its recommendations. userID is empty for anonymous callers.
// On any failure after the upload was written the file is removed again.
func (s *Service) Analyze(
	ctx context.Context,
	userID, filename string,
	body io.Reader,
) (resp *AnalysisResponse, err error) {
	ctx, span := core.StartSpan(ctx, "prediction.analyze",
		attribute.Bool("anonymous", userID == ""),
	)
	defer span.End()
	defer func() {
		if err != nil {
			core.SetSpanError(ctx, err)
		}
	}()

	path, err := s.save(ctx, filename, body)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err == nil {
			return
		}
		if rmErr := s.store.Remove(path); rmErr != nil {
			s.logger.Warn("remove upload after failed analysis",
				"path", path,
				"error", rmErr,
			)
		}
	}()

	tensor, err := s.tensor(ctx, path)
	if err != nil {
		return nil, err
	}

	ranked, err := s.classify(ctx, tensor)
	if err != nil {
		return nil, err
	}
	top := ranked[0]
	severity := knowledge.SeverityFor(top.Confidence)
	info := s.kb.Disease(top.Label)

	bundle, err := s.recs.Assembler().Assemble(ctx, top.Label)
	if err != nil {
		return nil, fmt.Errorf("assemble recommendations: %w", err)
	}

	var owner *string
	if userID != "" {
		owner = &userID
	}

	p := &Prediction{
		ID:            uuid.New().String(),
		UserID:        owner,
		ImagePath:     path,
		DiseaseName:   top.Label,
		Confidence:    top.Confidence,
		Severity:      string(severity),
		Description:   info.Description,
		Causes:        strings.Join(info.Causes, ", "),
		ModelDegraded: s.clf.Degraded(),
		CreatedAt:     core.Now(),
	}
	rows := recommendation.Rows(p.ID, bundle)

	if err := s.persist(ctx, p, rows); err != nil {
		return nil, err
	}

	s.metrics.RecordPrediction(p.DiseaseName, p.Severity, p.ModelDegraded)
	s.logger.InfoContext(ctx, "prediction stored",
		"prediction_id", p.ID,
		"disease", p.DiseaseName,
		"confidence", p.Confidence,
		"severity", p.Severity,
		"model_degraded", p.ModelDegraded,
	)

	return &AnalysisResponse{
		Prediction: s.toResponse(p),
		Analysis: AnalysisResult{
			DiseaseName:        p.DiseaseName,
			Confidence:         p.Confidence,
			Severity:           p.Severity,
			Description:        bundle.Description,
			Causes:             bundle.Causes,
			SeverityIndicators: bundle.SeverityIndicators,
			Remedies:           bundle.Remedies,
			Precautions:        bundle.Precautions,
			DietAdvice:         bundle.Diet,
			Referral:           bundle.Referral,
			Products:           product.ToProductResponseList(bundle.Products),
		},
		Recommendations: toRecommendationResponses(rows),
		Differential:    ranked,
		ModelDegraded:   p.ModelDegraded,
		Disclaimer:      Disclaimer,
	}, nil
}

func (s *Service) save(
	ctx context.Context,
	filename string,
	body io.Reader,
) (string, error) {
	ctx, span := core.StartSpan(ctx, "prediction.upload")
	defer span.End()

	path, err := s.store.Save(ctx, filename, body)
	if err != nil {
		if reason := upload.Reason(err); reason != "" {
			s.metrics.RecordUploadRejection(reason)
		}
		return "", fmt.Errorf("save upload: %w", err)
	}

	return path, nil
}

func (s *Service) tensor(ctx context.Context, path string) ([]float32, error) {
	_, span := core.StartSpan(ctx, "prediction.preprocess",
		attribute.String("mode", string(s.pre.Mode())),
	)
	defer span.End()

	tensor, err := s.pre.Tensor(path)
	if err != nil {
		return nil, fmt.Errorf("preprocess: %w", err)
	}

	return tensor, nil
}

func (s *Service) classify(
	ctx context.Context,
	tensor []float32,
) ([]classifier.Result, error) {
	ctx, span := core.StartSpan(ctx, "prediction.classify")
	defer span.End()

	start := time.Now()
	ranked, err := s.clf.PredictTopK(ctx, tensor, s.topK)
	s.metrics.ObserveInference(time.Since(start))
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.String("disease", ranked[0].Label),
		attribute.Float64("confidence", ranked[0].Confidence),
	)

	return ranked, nil
}

func (s *Service) persist(
	ctx context.Context,
	p *Prediction,
	rows []recommendation.Recommendation,
) error {
	ctx, span := core.StartSpan(ctx, "prediction.persist",
		attribute.Int("recommendations", len(rows)),
	)
	defer span.End()

	err := core.InTx(ctx, s.db.DB, func(tx *sqlx.Tx) error {
		if err := NewRepository(tx).Create(ctx, p); err != nil {
			return err
		}
		return recommendation.NewRepository(tx).InsertBatch(ctx, rows)
	})
	if err != nil {
		return fmt.Errorf("persist prediction: %w", err)
	}

	return nil
}

// History returns the caller's own predictions. Asking for anyone else's
// history is forbidden whether or not that user exists.
func (s *Service) History(
	ctx context.Context,
	callerID, userID string,
	params ListParams,
) ([]PredictionResponse, int, error) {
	if callerID == "" || callerID != userID {
		return nil, 0, fmt.Errorf("history: %w", core.ErrForbidden)
	}

	predictions, total, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, 0, err
	}

	out := make([]PredictionResponse, 0, len(predictions))
	for i := range predictions {
		out = append(out, s.toResponse(&predictions[i]))
	}

	return out, total, nil
}

// Detail returns a prediction and its recommendations, regenerating the
// recommendations first when none were stored. A missing id is reported as
// forbidden, same as someone else's prediction.
func (s *Service) Detail(
	ctx context.Context,
	callerID, id string,
) (*DetailResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("detail: %w", core.ErrForbidden)
	}
	if err != nil {
		return nil, err
	}

	if !p.OwnedBy(callerID) {
		return nil, fmt.Errorf("detail: %w", core.ErrForbidden)
	}

	rows, err := s.recs.EnsureForPrediction(ctx, refOf(p))
	if err != nil {
		return nil, fmt.Errorf("load recommendations: %w", err)
	}

	return &DetailResponse{
		Prediction:      s.toResponse(p),
		Recommendations: toRecommendationResponses(rows),
	}, nil
}

// Reference implements recommendation.PredictionLookup.
func (s *Service) Reference(
	ctx context.Context,
	id string,
) (recommendation.PredictionRef, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return recommendation.PredictionRef{}, err
	}
	return refOf(p), nil
}

func refOf(p *Prediction) recommendation.PredictionRef {
	return recommendation.PredictionRef{
		ID:          p.ID,
		UserID:      p.Owner(),
		DiseaseName: p.DiseaseName,
	}
}

func (s *Service) toResponse(p *Prediction) PredictionResponse {
	return PredictionResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		ImageURL:      s.store.PublicURL(p.ImagePath),
		DiseaseName:   p.DiseaseName,
		Confidence:    p.Confidence,
		Severity:      p.Severity,
		Description:   p.Description,
		Causes:        p.Causes,
		ModelDegraded: p.ModelDegraded,
		CreatedAt:     p.CreatedAt,
	}
}

var _ recommendation.PredictionLookup = (*Service)(nil)
