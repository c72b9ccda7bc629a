package heroslide

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

const slideColumns = `id::text, title, description, image_url, link_url, position, is_active, created_at`

func (r *postgresRepo) List(ctx context.Context, activeOnly bool) ([]domain.HeroSlide, error) {
	q := `SELECT ` + slideColumns + ` FROM hero_slides`
	if activeOnly {
		q += ` WHERE is_active`
	}
	q += ` ORDER BY position ASC`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.HeroSlide
	for rows.Next() {
		var s domain.HeroSlide
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.ImageURL, &s.LinkURL, &s.Position, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Create(ctx context.Context, s domain.HeroSlide) (*domain.HeroSlide, error) {
	const q = `
INSERT INTO hero_slides (title, description, image_url, link_url, position, is_active)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + slideColumns
	return scanSlide(r.pool.QueryRow(ctx, q, s.Title, s.Description, s.ImageURL, s.LinkURL, s.Position, s.IsActive))
}

func (r *postgresRepo) Update(ctx context.Context, s domain.HeroSlide) (*domain.HeroSlide, error) {
	const q = `
UPDATE hero_slides
SET title = $1, description = $2, image_url = $3, link_url = $4, position = $5, is_active = $6
WHERE id = $7
RETURNING ` + slideColumns
	return scanSlide(r.pool.QueryRow(ctx, q, s.Title, s.Description, s.ImageURL, s.LinkURL, s.Position, s.IsActive, s.ID))
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM hero_slides WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanSlide(row pgx.Row) (*domain.HeroSlide, error) {
	var s domain.HeroSlide
	err := row.Scan(&s.ID, &s.Title, &s.Description, &s.ImageURL, &s.LinkURL, &s.Position, &s.IsActive, &s.CreatedAt)
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
	return &s, nil
}
