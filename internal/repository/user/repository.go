package user

import (
	"context"

	"storefront/internal/domain"
)

// UpdateInput carries the fields the admin back-office may change.
type UpdateInput struct {
	Name  string
	Email string
	Role  domain.Role
}

type Repository interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id string, in UpdateInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
