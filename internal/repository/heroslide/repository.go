package heroslide

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// List returns all slides ordered by position. When activeOnly is set,
	// inactive slides are skipped.
	List(ctx context.Context, activeOnly bool) ([]domain.HeroSlide, error)
	Create(ctx context.Context, s domain.HeroSlide) (*domain.HeroSlide, error)
	Update(ctx context.Context, s domain.HeroSlide) (*domain.HeroSlide, error)
	Delete(ctx context.Context, id string) error
}
