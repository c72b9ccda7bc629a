package post

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// List returns posts newest-first. When publishedOnly is set, drafts are
	// skipped.
	List(ctx context.Context, publishedOnly bool) ([]domain.Post, error)
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Post, error)
	Create(ctx context.Context, p domain.Post) (*domain.Post, error)
	Update(ctx context.Context, p domain.Post) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
}
