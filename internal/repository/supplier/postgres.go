package supplier

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

const supplierColumns = `id::text, name, contact_email, contact_phone, address, created_at`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Supplier, error) {
	const q = `SELECT ` + supplierColumns + ` FROM suppliers ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Supplier
	for rows.Next() {
		var s domain.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.ContactEmail, &s.ContactPhone, &s.Address, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Supplier, error) {
	const q = `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`
	return scanSupplier(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) Create(ctx context.Context, s domain.Supplier) (*domain.Supplier, error) {
	const q = `
INSERT INTO suppliers (name, contact_email, contact_phone, address)
VALUES ($1, $2, $3, $4)
RETURNING ` + supplierColumns
	return scanSupplier(r.pool.QueryRow(ctx, q, s.Name, s.ContactEmail, s.ContactPhone, s.Address))
}

func (r *postgresRepo) Update(ctx context.Context, s domain.Supplier) (*domain.Supplier, error) {
	const q = `
UPDATE suppliers
SET name = $1, contact_email = $2, contact_phone = $3, address = $4
WHERE id = $5
RETURNING ` + supplierColumns
	return scanSupplier(r.pool.QueryRow(ctx, q, s.Name, s.ContactEmail, s.ContactPhone, s.Address, s.ID))
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanSupplier(row pgx.Row) (*domain.Supplier, error) {
	var s domain.Supplier
	err := row.Scan(&s.ID, &s.Name, &s.ContactEmail, &s.ContactPhone, &s.Address, &s.CreatedAt)
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
