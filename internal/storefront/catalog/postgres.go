package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront-workers/internal/models"
)

const selectStoreBySlug = `SELECT id, slug, name, description, theme, template_preference, logo_url, currency, template_config, updated_at FROM stores WHERE slug = $1`

const selectCategoriesByStore = `SELECT id, name, slug, image_url, position FROM categories WHERE store_id = $1 ORDER BY position, name`

// PostgresStoreRepository reads stores and their categories.
type PostgresStoreRepository struct {
	db *sql.DB
}

func NewPostgresStoreRepository(db *sql.DB) *PostgresStoreRepository {
	return &PostgresStoreRepository{db: db}
}

func (r *PostgresStoreRepository) FetchStore(ctx context.Context, slug string) (*models.Store, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrEmptySlug
	}

	var (
		store                                          models.Store
		description, theme, preference, logo, currency sql.NullString
		templateConfig                                 []byte
	)
	err := r.db.QueryRowContext(ctx, selectStoreBySlug, slug).Scan(
		&store.ID, &store.Slug, &store.Name, &description, &theme,
		&preference, &logo, &currency, &templateConfig, &store.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrStoreNotFound, slug)
	}
	if err != nil {
		return nil, fmt.Errorf("query store %s: %w", slug, err)
	}

	store.Description = description.String
	store.Theme = theme.String
	store.TemplatePreference = preference.String
	store.LogoURL = logo.String
	store.Currency = currency.String
	if len(templateConfig) > 0 {
		store.TemplateConfig = append([]byte(nil), templateConfig...)
	}

	categories, err := r.fetchCategories(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	store.Categories = categories
	return &store, nil
}

func (r *PostgresStoreRepository) fetchCategories(ctx context.Context, storeID string) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx, selectCategoriesByStore, storeID)
	if err != nil {
		return nil, fmt.Errorf("query categories for store %s: %w", storeID, err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var (
			c     models.Category
			image sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &image, &c.Position); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.ImageURL = image.String
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

// PostgresProductRepository is the relational product source.
type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

const selectProducts = `SELECT p.id, p.store_id, p.name, p.slug, p.brand, p.category_id, p.price, p.compare_at_price, p.currency, p.image_url, p.featured, p.rating, p.stock FROM products p JOIN stores s ON s.id = p.store_id`

// buildProductQuery returns the statement and positional args for filter.
func buildProductQuery(filter models.ProductFilter) (string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)
	if filter.StoreID != "" {
		args = append(args, filter.StoreID)
		where = append(where, fmt.Sprintf("p.store_id = $%d", len(args)))
	} else {
		args = append(args, filter.StoreSlug)
		where = append(where, fmt.Sprintf("s.slug = $%d", len(args)))
	}
	if filter.FeaturedOnly {
		where = append(where, "p.featured = TRUE")
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		where = append(where, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	args = append(args, clampLimit(filter.Limit))

	query := selectProducts +
		" WHERE " + strings.Join(where, " AND ") +
		fmt.Sprintf(" ORDER BY p.featured DESC, p.rating DESC, p.name LIMIT $%d", len(args))
	return query, args
}

func (r *PostgresProductRepository) FetchProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	if filter.StoreID == "" && strings.TrimSpace(filter.StoreSlug) == "" {
		return nil, ErrEmptySlug
	}

	query, args := buildProductQuery(filter)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var (
			p                            models.Product
			brand, category, image, curr sql.NullString
			compareAt, rating            sql.NullFloat64
		)
		if err := rows.Scan(&p.ID, &p.StoreID, &p.Name, &p.Slug, &brand, &category, &p.Price,
			&compareAt, &curr, &image, &p.Featured, &rating, &p.Stock); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.Brand = brand.String
		p.CategoryID = category.String
		p.Currency = curr.String
		p.ImageURL = image.String
		p.Rating = rating.Float64
		if compareAt.Valid {
			v := compareAt.Float64
			p.CompareAtPrice = &v
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}
