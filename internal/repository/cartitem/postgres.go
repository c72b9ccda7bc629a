package cartitem

import (
	"context"
	"io"
	"log"

	"storefront/internal/domain"
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

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.CartLine, error) {
	const q = `
SELECT ci.id::text, ci.product_id::text, p.name, p.price_cents,
       COALESCE(p.image_urls->>0, ''), ci.quantity, ci.selected_size, p.slug, ci.created_at
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.user_id = $1
ORDER BY ci.created_at ASC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		r.logger.Printf("cartitem repo: list user_id=%s error=%v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.CartLine
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(&l.ID, &l.ProductID, &l.Name, &l.PriceCents, &l.ImageURL, &l.Quantity, &l.SelectedSize, &l.Slug, &l.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Upsert performs the insert-or-increment in a single statement so that
// concurrent adds against the same key serialize in the database instead of
// racing a read-then-write.
func (r *postgresRepo) Upsert(ctx context.Context, userID, productID, selectedSize string, quantityDelta int) error {
	const q = `
INSERT INTO cart_items (user_id, product_id, selected_size, quantity)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, product_id, selected_size)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
`
	if _, err := r.pool.Exec(ctx, q, userID, productID, selectedSize, quantityDelta); err != nil {
		r.logger.Printf("cartitem repo: upsert user_id=%s product_id=%s error=%v", userID, productID, err)
		return err
	}
	return nil
}

func (r *postgresRepo) UpdateQuantity(ctx context.Context, rowID, userID string, quantity int) error {
	const q = `
UPDATE cart_items
SET quantity = $1
WHERE id = $2 AND user_id = $3
`
	cmd, err := r.pool.Exec(ctx, q, quantity, rowID, userID)
	if err != nil {
		r.logger.Printf("cartitem repo: update id=%s user_id=%s error=%v", rowID, userID, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, rowID, userID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, rowID, userID)
	if err != nil {
		r.logger.Printf("cartitem repo: delete id=%s user_id=%s error=%v", rowID, userID, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) DeleteAll(ctx context.Context, userID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		r.logger.Printf("cartitem repo: delete all user_id=%s error=%v", userID, err)
		return err
	}
	return nil
}

func (r *postgresRepo) ListAll(ctx context.Context, userID string) ([]domain.CartRow, error) {
	q := `
SELECT ci.id::text, ci.user_id::text, u.name, u.email,
       ci.product_id::text, p.name, p.price_cents,
       COALESCE(p.image_urls->>0, ''), p.slug, ci.quantity, ci.selected_size, ci.created_at
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
JOIN users u ON u.id = ci.user_id
`
	args := []interface{}{}
	if userID != "" {
		q += `WHERE ci.user_id = $1
`
		args = append(args, userID)
	}
	q += `ORDER BY ci.created_at DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("cartitem repo: list all error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.CartRow
	for rows.Next() {
		var row domain.CartRow
		if err := rows.Scan(
			&row.ID,
			&row.UserID,
			&row.UserName,
			&row.UserEmail,
			&row.ProductID,
			&row.ProductName,
			&row.ProductPrice,
			&row.ProductImageURL,
			&row.ProductSlug,
			&row.Quantity,
			&row.SelectedSize,
			&row.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
