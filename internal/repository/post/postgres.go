package post

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

const postColumns = `
p.id::text, p.title, p.slug, p.content, p.image_url, p.published,
p.author_id::text, COALESCE(u.name, ''), p.created_at, p.updated_at`

const postJoins = `
FROM posts p
JOIN users u ON u.id = p.author_id`

func (r *postgresRepo) List(ctx context.Context, publishedOnly bool) ([]domain.Post, error) {
	q := `SELECT ` + postColumns + postJoins
	if publishedOnly {
		q += `
WHERE p.published`
	}
	q += `
ORDER BY p.created_at DESC`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
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

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	const q = `SELECT ` + postColumns + postJoins + `
WHERE p.id = $1`
	return mapScan(scanPost(r.pool.QueryRow(ctx, q, id)))
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	const q = `SELECT ` + postColumns + postJoins + `
WHERE p.slug = $1`
	return mapScan(scanPost(r.pool.QueryRow(ctx, q, slug)))
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Post) (*domain.Post, error) {
	const q = `
INSERT INTO posts (title, slug, content, image_url, published, author_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id::text
`
	var id string
	err := r.pool.QueryRow(ctx, q, p.Title, p.Slug, p.Content, p.ImageURL, p.Published, p.AuthorID).Scan(&id)
	if err != nil {
		return nil, mapWriteErr(err)
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Post) (*domain.Post, error) {
	const q = `
UPDATE posts
SET title = $1, slug = $2, content = $3, image_url = $4, published = $5, updated_at = now()
WHERE id = $6
`
	cmd, err := r.pool.Exec(ctx, q, p.Title, p.Slug, p.Content, p.ImageURL, p.Published, p.ID)
	if err != nil {
		return nil, mapWriteErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, p.ID)
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var p domain.Post
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.ImageURL, &p.Published,
		&p.AuthorID, &p.AuthorName, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func mapScan(p *domain.Post, err error) (*domain.Post, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrAlreadyExists
	}
	return err
}
