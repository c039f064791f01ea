// AngelaMos | 2026
// dto.go

package prediction

import (
	"time"

	"github.com/carterperez-dev/glowguard-api/internal/classifier"
	"github.com/carterperez-dev/glowguard-api/internal/knowledge"
	"github.com/carterperez-dev/glowguard-api/internal/product"
	"github.com/carterperez-dev/glowguard-api/internal/recommendation"
)

const Disclaimer = "This tool does not provide a medical diagnosis. Results are " +
	"preliminary and for educational purposes only and must be reviewed by a " +
	"qualified dermatologist before any treatment decision. If you notice " +
	"concerning skin changes, consult a healthcare provider promptly."

type ListParams struct {
	Page     int
	PageSize int
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type PredictionResponse struct {
	ID            string    `json:"id"`
	UserID        *string   `json:"user_id"`
	ImageURL      string    `json:"image_url"`
	DiseaseName   string    `json:"disease_name"`
	Confidence    float64   `json:"confidence"`
	Severity      string    `json:"severity"`
	Description   string    `json:"description"`
	Causes        string    `json:"causes"`
	ModelDegraded bool      `json:"model_degraded"`
	CreatedAt     time.Time `json:"created_at"`
}

type AnalysisResult struct {
	DiseaseName        string                        `json:"disease_name"`
	Confidence         float64                       `json:"confidence"`
	Severity           string                        `json:"severity"`
	Description        string                        `json:"description"`
	Causes             []string                      `json:"causes"`
	SeverityIndicators map[knowledge.Severity]string `json:"severity_indicators"`
	Remedies           []string                      `json:"remedies"`
	Precautions        []string                      `json:"precautions"`
	DietAdvice         knowledge.DietAdvice          `json:"diet_advice"`
	Referral           []string                      `json:"dermatologist_referral"`
	Products           []product.ProductResponse     `json:"products"`
}

type RecommendationResponse struct {
	ID           string    `json:"id"`
	PredictionID string    `json:"prediction_id"`
	Category     string    `json:"category"`
	Content      string    `json:"content"`
	Position     int       `json:"position"`
	CreatedAt    time.Time `json:"created_at"`
}

type AnalysisResponse struct {
	Prediction      PredictionResponse       `json:"prediction"`
	Analysis        AnalysisResult           `json:"analysis"`
	Recommendations []RecommendationResponse `json:"recommendations"`
	Differential    []classifier.Result      `json:"differential"`
	ModelDegraded   bool                     `json:"model_degraded"`
	Disclaimer      string                   `json:"disclaimer"`
}

type DetailResponse struct {
	Prediction      PredictionResponse       `json:"prediction"`
	Recommendations []RecommendationResponse `json:"recommendations"`
}

func toRecommendationResponses(
	rows []recommendation.Recommendation,
) []RecommendationResponse {
	out := make([]RecommendationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, RecommendationResponse{
			ID:           r.ID,
			PredictionID: r.PredictionID,
			Category:     r.Category,
			Content:      r.Content,
			Position:     r.Position,
			CreatedAt:    r.CreatedAt,
		})
	}
	return out
}
