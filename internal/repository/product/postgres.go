package product

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `
p.id::text, p.name, p.slug, COALESCE(p.description, ''), p.price_cents, p.stock,
p.image_urls, p.sizes, p.size_stocks, p.category_id::text, p.supplier_id::text, p.created_at,
c.id::text, c.name, c.slug, c.created_at,
s.id::text, s.name`

const productJoins = `
FROM products p
JOIN categories c ON c.id = p.category_id
LEFT JOIN suppliers s ON s.id = p.supplier_id`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `SELECT ` + productColumns + productJoins + `
ORDER BY p.created_at DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `SELECT ` + productColumns + productJoins + `
WHERE p.id = $1`
	return r.getOne(ctx, q, id)
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	const q = `SELECT ` + productColumns + productJoins + `
WHERE p.slug = $1`
	return r.getOne(ctx, q, slug)
}

func (r *postgresRepo) getOne(ctx context.Context, q, arg string) (*domain.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, q, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get arg=%s error=%v", arg, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	imageJSON, sizesJSON, stocksJSON, err := marshalArrays(p)
	if err != nil {
		return nil, err
	}
	const q = `
INSERT INTO products (name, slug, description, price_cents, stock, image_urls, sizes, size_stocks, category_id, supplier_id)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10)
RETURNING id::text, created_at
`
	var out domain.Product
	err = r.pool.QueryRow(ctx, q,
		p.Name, p.Slug, p.Description, p.PriceCents, p.Stock,
		imageJSON, sizesJSON, stocksJSON, p.CategoryID, p.SupplierID,
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, r.mapWriteErr("create", p.Slug, err)
	}
	return r.GetByID(ctx, out.ID)
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	imageJSON, sizesJSON, stocksJSON, err := marshalArrays(p)
	if err != nil {
		return nil, err
	}
	const q = `
UPDATE products
SET name = $1, slug = $2, description = NULLIF($3, ''), price_cents = $4, stock = $5,
    image_urls = $6, sizes = $7, size_stocks = $8, category_id = $9, supplier_id = $10
WHERE id = $11
`
	cmd, err := r.pool.Exec(ctx, q,
		p.Name, p.Slug, p.Description, p.PriceCents, p.Stock,
		imageJSON, sizesJSON, stocksJSON, p.CategoryID, p.SupplierID, p.ID,
	)
	if err != nil {
		return nil, r.mapWriteErr("update", p.Slug, err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, p.ID)
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) mapWriteErr(op, slug string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrAlreadyExists
	}
	r.logger.Printf("product repo: %s slug=%s error=%v", op, slug, err)
	return err
}

func marshalArrays(p domain.Product) ([]byte, []byte, []byte, error) {
	imageJSON, err := json.Marshal(emptyIfNil(p.ImageURLs))
	if err != nil {
		return nil, nil, nil, err
	}
	sizesJSON, err := json.Marshal(emptyIfNil(p.Sizes))
	if err != nil {
		return nil, nil, nil, err
	}
	stocksJSON, err := json.Marshal(emptyIntsIfNil(p.SizeStocks))
	if err != nil {
		return nil, nil, nil, err
	}
	return imageJSON, sizesJSON, stocksJSON, nil
}

func emptyIfNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func emptyIntsIfNil(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	var imageJSON, sizesJSON, stocksJSON []byte
	var supplierID *string
	var cat domain.Category
	var supID, supName *string
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.PriceCents, &p.Stock,
		&imageJSON, &sizesJSON, &stocksJSON, &p.CategoryID, &supplierID, &p.CreatedAt,
		&cat.ID, &cat.Name, &cat.Slug, &cat.CreatedAt,
		&supID, &supName,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(imageJSON, &p.ImageURLs); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(sizesJSON, &p.Sizes); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(stocksJSON, &p.SizeStocks); err != nil {
		return nil, err
	}
	p.SupplierID = supplierID
	p.Category = &cat
	if supID != nil {
		p.Supplier = &domain.Supplier{ID: *supID}
		if supName != nil {
			p.Supplier.Name = *supName
		}
	}
	return &p, nil
}
