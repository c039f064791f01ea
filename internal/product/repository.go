// AngelaMos | 2026
// repository.go

package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/glowguard-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	GetByName(ctx context.Context, name string) (*Product, error)
	List(ctx context.Context, params ListParams) ([]Product, int, error)
	ListByCategory(ctx context.Context, category string) ([]Product, error)
	ListByCondition(ctx context.Context, tag string) ([]Product, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const productColumns = `
	p.id, p.name, p.category, p.brand, p.price_range, p.image_url,
	p.description, p.purchase_link, p.recommended_for, p.created_at`

// Create inserts the product and its condition tags. Callers wanting both
// writes to be atomic pass a transaction as the repository's DBTX.
func (r *repository) Create(ctx context.Context, p *Product) error {
	p.CreatedAt = core.Now()

	query := `
		INSERT INTO products (id, name, category, brand, price_range, image_url,
		                      description, purchase_link, recommended_for, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		p.ID,
		p.Name,
		p.Category,
		p.Brand,
		p.PriceRange,
		p.ImageURL,
		p.Description,
		p.PurchaseLink,
		p.RecommendedFor,
		p.CreatedAt,
	)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create product: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create product: %w", err)
	}

	seen := make(map[string]struct{}, len(p.Conditions))
	tags := make([]string, 0, len(p.Conditions))
	for _, c := range p.Conditions {
		tag := NormalizeTag(c)
		if _, ok := seen[tag]; ok || tag == "" {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)

		_, err := r.db.ExecContext(ctx,
			r.db.Rebind("INSERT INTO product_conditions (product_id, tag) VALUES (?, ?)"),
			p.ID,
			tag,
		)
		if err != nil {
			return fmt.Errorf("create product condition: %w", err)
		}
	}
	p.Conditions = tags

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	return r.getOne(ctx, "get product", "p.id = ?", id)
}

func (r *repository) GetByName(
	ctx context.Context,
	name string,
) (*Product, error) {
	return r.getOne(ctx, "get product by name", "p.name = ?", name)
}

func (r *repository) getOne(
	ctx context.Context,
	op, where string,
	arg any,
) (*Product, error) {
	query := "SELECT " + productColumns + " FROM products p WHERE " + where

	var p Product
	err := r.db.GetContext(ctx, &p, r.db.Rebind(query), arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	products := []Product{p}
	if err := r.attachConditions(ctx, products); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &products[0], nil
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
) ([]Product, int, error) {
	params.Normalize()

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM products"); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := "SELECT " + productColumns + `
		FROM products p
		ORDER BY p.category, p.name
		LIMIT ? OFFSET ?`

	var products []Product
	if err := r.db.SelectContext(
		ctx,
		&products,
		r.db.Rebind(query),
		params.PageSize,
		params.Offset(),
	); err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}

	if err := r.attachConditions(ctx, products); err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}

	return products, total, nil
}

func (r *repository) ListByCategory(
	ctx context.Context,
	category string,
) ([]Product, error) {
	query := "SELECT " + productColumns + `
		FROM products p
		WHERE p.category = ?
		ORDER BY p.name`

	var products []Product
	if err := r.db.SelectContext(ctx, &products, r.db.Rebind(query), category); err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}

	if err := r.attachConditions(ctx, products); err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}

	return products, nil
}

func (r *repository) ListByCondition(
	ctx context.Context,
	tag string,
) ([]Product, error) {
	query := "SELECT " + productColumns + `
		FROM products p
		JOIN product_conditions pc ON pc.product_id = p.id
		WHERE pc.tag = ?
		ORDER BY p.category, p.name`

	var products []Product
	if err := r.db.SelectContext(
		ctx,
		&products,
		r.db.Rebind(query),
		NormalizeTag(tag),
	); err != nil {
		return nil, fmt.Errorf("list products by condition: %w", err)
	}

	if err := r.attachConditions(ctx, products); err != nil {
		return nil, fmt.Errorf("list products by condition: %w", err)
	}

	return products, nil
}

func (r *repository) attachConditions(
	ctx context.Context,
	products []Product,
) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]string, len(products))
	index := make(map[string]int, len(products))
	for i := range products {
		ids[i] = products[i].ID
		index[products[i].ID] = i
		products[i].Conditions = []string{}
	}

	query, args, err := sqlx.In(
		"SELECT product_id, tag FROM product_conditions WHERE product_id IN (?) ORDER BY tag",
		ids,
	)
	if err != nil {
		return fmt.Errorf("build condition query: %w", err)
	}

	var rows []struct {
		ProductID string `db:"product_id"`
		Tag       string `db:"tag"`
	}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("load conditions: %w", err)
	}

	for _, row := range rows {
		i := index[row.ProductID]
		products[i].Conditions = append(products[i].Conditions, row.Tag)
	}

	return nil
}
