// AngelaMos | 2026
// handler.go

package recommendation

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/glowguard-api/internal/core"
	"github.com/carterperez-dev/glowguard-api/internal/middleware"
)

// PredictionLookup resolves a prediction id without importing the
// prediction package.
type PredictionLookup interface {
	Reference(ctx context.Context, id string) (PredictionRef, error)
}

type Handler struct {
	service     *Service
	predictions PredictionLookup
}

func NewHandler(service *Service, predictions PredictionLookup) *Handler {
	return &Handler{service: service, predictions: predictions}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/recommendations", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/by-prediction/{predictionID}", h.ByPrediction)
		r.Get("/by-category/{category}", h.ByCategory)
	})
}

func (h *Handler) ByPrediction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	// unknown ids answer the same as foreign ones
	ref, err := h.predictions.Reference(r.Context(), chi.URLParam(r, "predictionID"))
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		core.InternalServerError(w, err)
		return
	}

	if err != nil || ref.UserID == "" || ref.UserID != userID {
		core.Forbidden(w, "not authorized to view this prediction")
		return
	}

	rows, err := h.service.EnsureForPrediction(r.Context(), ref)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, Grouped(rows))
}

type itemResponse struct {
	ID           string `json:"id"`
	PredictionID string `json:"prediction_id"`
	Content      string `json:"content"`
}

func (h *Handler) ByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if !ValidCategory(category) {
		core.BadRequest(w, "category must be one of: remedies, precautions, diet, products")
		return
	}

	rows, err := h.service.ByCategoryForUser(
		r.Context(),
		middleware.GetUserID(r.Context()),
		category,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	items := make([]itemResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, itemResponse{
			ID:           row.ID,
			PredictionID: row.PredictionID,
			Content:      row.Content,
		})
	}

	core.OK(w, items)
}
