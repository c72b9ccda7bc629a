package category

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/domain"
	categoryrepo "storefront/internal/repository/category"
)

type Service struct {
	repo categoryrepo.Repository
}

func New(repo categoryrepo.Repository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Category, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, domain.Category{Name: strings.TrimSpace(in.Name), Slug: strings.TrimSpace(in.Slug)})
}

func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.Category, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, domain.Category{ID: id, Name: strings.TrimSpace(in.Name), Slug: strings.TrimSpace(in.Slug)})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func validate(in Input) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Slug) == "" {
		return fmt.Errorf("%w: slug is required", domain.ErrInvalidInput)
	}
	return nil
}
