package category

import (
	"context"
	"errors"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Category, error) {
	const q = `
SELECT id::text, name, slug, created_at
FROM categories
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	const q = `
SELECT id::text, name, slug, created_at
FROM categories
WHERE id = $1
`
	return scanCategory(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
INSERT INTO categories (name, slug)
VALUES ($1, $2)
RETURNING id::text, name, slug, created_at
`
	return scanCategory(r.pool.QueryRow(ctx, q, c.Name, c.Slug))
}

func (r *postgresRepo) Update(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
UPDATE categories
SET name = $1, slug = $2
WHERE id = $3
RETURNING id::text, name, slug, created_at
`
	return scanCategory(r.pool.QueryRow(ctx, q, c.Name, c.Slug, c.ID))
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &c, nil
}
