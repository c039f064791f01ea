// AngelaMos | 2026
// catalog.go

package product

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"gopkg.in/yaml.v3"

	"github.com/carterperez-dev/glowguard-api/internal/core"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type CatalogEntry struct {
	Name         string   `yaml:"name"`
	Category     string   `yaml:"category"`
	Brand        string   `yaml:"brand"`
	PriceRange   string   `yaml:"price_range"`
	ImageURL     string   `yaml:"image_url"`
	Description  string   `yaml:"description"`
	PurchaseLink string   `yaml:"purchase_link"`
	Conditions   []string `yaml:"conditions"`
}

type catalogFile struct {
	Products []CatalogEntry `yaml:"products"`
}

func DefaultCatalog() ([]CatalogEntry, error) {
	return ParseCatalog(defaultCatalog)
}

func ParseCatalog(data []byte) ([]CatalogEntry, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	names := make(map[string]struct{}, len(file.Products))
	for i, e := range file.Products {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("catalog entry %d: name is required", i)
		}
		if e.Category == "" {
			return nil, fmt.Errorf("catalog entry %q: category is required", e.Name)
		}
		if len(e.Conditions) == 0 {
			return nil, fmt.Errorf("catalog entry %q: at least one condition is required", e.Name)
		}
		if _, ok := names[e.Name]; ok {
			return nil, fmt.Errorf("catalog entry %q: duplicate name", e.Name)
		}
		names[e.Name] = struct{}{}
	}

	return file.Products, nil
}

func (e CatalogEntry) toProduct() *Product {
	return &Product{
		ID:             uuid.New().String(),
		Name:           e.Name,
		Category:       e.Category,
		Brand:          e.Brand,
		PriceRange:     e.PriceRange,
		ImageURL:       e.ImageURL,
		Description:    e.Description,
		PurchaseLink:   e.PurchaseLink,
		RecommendedFor: strings.Join(e.Conditions, ", "),
		Conditions:     e.Conditions,
	}
}

// Seed inserts catalog entries whose name is not yet stored, all in one
// transaction, and returns how many were added.
func Seed(
	ctx context.Context,
	db *core.Database,
	entries []CatalogEntry,
) (int, error) {
	inserted := 0

	err := core.InTx(ctx, db.DB, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)

		for _, e := range entries {
			_, err := repo.GetByName(ctx, e.Name)
			if err == nil {
				continue
			}
			if !errors.Is(err, core.ErrNotFound) {
				return err
			}

			if err := repo.Create(ctx, e.toProduct()); err != nil {
				return fmt.Errorf("seed %q: %w", e.Name, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.Info("product catalog seeded",
		"inserted", inserted,
		"entries", len(entries),
	)

	return inserted, nil
}
