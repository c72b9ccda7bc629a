package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	Name        string
	Slug        string
	Description string
	PriceCents  int64
	Stock       int
	Sizes       string
	SizeStocks  string
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	adminID, err := ensureSuperAdmin(ctx, pool, "admin@storefront.local", "admin123")
	if err != nil {
		return fmt.Errorf("ensure super admin: %w", err)
	}

	categoryID, err := ensureCategory(ctx, pool, "Apparel", "apparel")
	if err != nil {
		return fmt.Errorf("ensure category: %w", err)
	}

	products := []productSeed{
		{
			Name:        "Classic T-Shirt",
			Slug:        "classic-t-shirt",
			Description: "Soft cotton tee in the house colors",
			PriceCents:  1999,
			Stock:       120,
			Sizes:       `["S","M","L","XL"]`,
			SizeStocks:  `[30,40,30,20]`,
		},
		{
			Name:        "Canvas Tote",
			Slug:        "canvas-tote",
			Description: "Heavy duty tote for groceries and gear",
			PriceCents:  1299,
			Stock:       80,
			Sizes:       `[]`,
			SizeStocks:  `[]`,
		},
	}
	for _, p := range products {
		if err := upsertProduct(ctx, pool, categoryID, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Slug, err)
		}
	}

	if err := upsertSlide(ctx, pool, "New season drop", "/images/hero-season.jpg", "/products", 0); err != nil {
		return fmt.Errorf("upsert hero slide: %w", err)
	}

	if err := upsertPost(ctx, pool, adminID, "Welcome to the store", "welcome", "First post from the team."); err != nil {
		return fmt.Errorf("upsert post: %w", err)
	}

	return nil
}

func ensureSuperAdmin(ctx context.Context, pool *pgxpool.Pool, email, password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	// The password hash is only written on first insert so a rotated
	// password survives reseeding.
	const q = `
INSERT INTO users (email, password_hash, name, role)
VALUES ($1, $2, 'Store Admin', 'SUPER_ADMIN')
ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, email, string(hashed)).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureCategory(ctx context.Context, pool *pgxpool.Pool, name, slug string) (string, error) {
	const q = `
INSERT INTO categories (name, slug)
VALUES ($1, $2)
ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, name, slug).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, categoryID string, p productSeed) error {
	const q = `
INSERT INTO products (name, slug, description, price_cents, stock, image_urls, sizes, size_stocks, category_id)
VALUES ($1, $2, $3, $4, $5, '[]'::jsonb, $6::jsonb, $7::jsonb, $8)
ON CONFLICT (slug) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    stock = EXCLUDED.stock,
    sizes = EXCLUDED.sizes,
    size_stocks = EXCLUDED.size_stocks,
    category_id = EXCLUDED.category_id
`
	_, err := pool.Exec(ctx, q, p.Name, p.Slug, p.Description, p.PriceCents, p.Stock, p.Sizes, p.SizeStocks, categoryID)
	return err
}

func upsertSlide(ctx context.Context, pool *pgxpool.Pool, title, imageURL, linkURL string, position int) error {
	const q = `
INSERT INTO hero_slides (title, image_url, link_url, position, is_active)
VALUES ($1, $2, $3, $4, true)
ON CONFLICT (position) DO UPDATE
SET title = EXCLUDED.title,
    image_url = EXCLUDED.image_url,
    link_url = EXCLUDED.link_url
`
	_, err := pool.Exec(ctx, q, title, imageURL, linkURL, position)
	return err
}

func upsertPost(ctx context.Context, pool *pgxpool.Pool, authorID, title, slug, content string) error {
	const q = `
INSERT INTO posts (title, slug, content, published, author_id)
VALUES ($1, $2, $3, true, $4)
ON CONFLICT (slug) DO UPDATE
SET title = EXCLUDED.title,
    content = EXCLUDED.content,
    updated_at = now()
`
	_, err := pool.Exec(ctx, q, title, slug, content, authorID)
	return err
}
