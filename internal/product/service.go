// AngelaMos | 2026
// service.go

package product

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	conditionCacheTTL     = 5 * time.Minute
	conditionCacheCleanup = 10 * time.Minute
)

// Service reads the catalog. Condition lookups sit on the analysis hot path
// and are cached in process; the catalog only changes through Seed.
type Service struct {
	repo  Repository
	cache *cache.Cache
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(conditionCacheTTL, conditionCacheCleanup),
	}
}

func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListParams,
) ([]Product, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) ByCategory(
	ctx context.Context,
	category string,
) ([]Product, error) {
	return s.repo.ListByCategory(ctx, category)
}

// ForCondition returns the products tagged with the disease label. The
// returned slice is a copy and may be modified by the caller.
func (s *Service) ForCondition(
	ctx context.Context,
	disease string,
) ([]Product, error) {
	tag := NormalizeTag(disease)

	if cached, ok := s.cache.Get(tag); ok {
		return cloneProducts(cached.([]Product)), nil
	}

	products, err := s.repo.ListByCondition(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("products for %q: %w", disease, err)
	}

	s.cache.SetDefault(tag, cloneProducts(products))

	return products, nil
}

func (s *Service) FlushCache() {
	s.cache.Flush()
}

func cloneProducts(in []Product) []Product {
	out := make([]Product, len(in))
	for i, p := range in {
		p.Conditions = append([]string(nil), p.Conditions...)
		out[i] = p
	}
	return out
}
