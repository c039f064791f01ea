// AngelaMos | 2026
// dto.go

package product

import (
	"time"
)

type ProductResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Brand          string    `json:"brand"`
	PriceRange     string    `json:"price_range"`
	ImageURL       string    `json:"image_url,omitempty"`
	Description    string    `json:"description"`
	PurchaseLink   string    `json:"purchase_link"`
	RecommendedFor string    `json:"recommended_for"`
	Conditions     []string  `json:"conditions"`
	CreatedAt      time.Time `json:"created_at"`
}

type ListParams struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
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

func ToProductResponse(p *Product) ProductResponse {
	conditions := p.Conditions
	if conditions == nil {
		conditions = []string{}
	}

	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Category:       p.Category,
		Brand:          p.Brand,
		PriceRange:     p.PriceRange,
		ImageURL:       p.ImageURL,
		Description:    p.Description,
		PurchaseLink:   p.PurchaseLink,
		RecommendedFor: p.RecommendedFor,
		Conditions:     conditions,
		CreatedAt:      p.CreatedAt,
	}
}

func ToProductResponseList(products []Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, ToProductResponse(&p))
	}
	return responses
}
