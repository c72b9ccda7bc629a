package heroslide

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/domain"
	sliderepo "storefront/internal/repository/heroslide"
)

type Service struct {
	repo sliderepo.Repository
}

func New(repo sliderepo.Repository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	LinkURL     string `json:"linkUrl"`
	Position    int    `json:"position"`
	IsActive    bool   `json:"isActive"`
}

// List returns slides in display order. The storefront asks for active
// slides only; the back-office lists everything.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]domain.HeroSlide, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.HeroSlide, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, toDomain("", in))
}

func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.HeroSlide, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, toDomain(id, in))
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func validate(in Input) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.ImageURL) == "" {
		return fmt.Errorf("%w: imageUrl is required", domain.ErrInvalidInput)
	}
	if in.Position < 0 {
		return fmt.Errorf("%w: position cannot be negative", domain.ErrInvalidInput)
	}
	return nil
}

func toDomain(id string, in Input) domain.HeroSlide {
	return domain.HeroSlide{
		ID:          id,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		LinkURL:     strings.TrimSpace(in.LinkURL),
		Position:    in.Position,
		IsActive:    in.IsActive,
	}
}
