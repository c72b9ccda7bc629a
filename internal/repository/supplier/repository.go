package supplier

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Supplier, error)
	GetByID(ctx context.Context, id string) (*domain.Supplier, error)
	Create(ctx context.Context, s domain.Supplier) (*domain.Supplier, error)
	Update(ctx context.Context, s domain.Supplier) (*domain.Supplier, error)
	Delete(ctx context.Context, id string) error
}
