package product

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

// Service validates catalog writes and delegates to the repository.
type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Input mirrors the admin product payload.
type Input struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	PriceCents  int64    `json:"priceCents"`
	Stock       int      `json:"stock"`
	ImageURLs   []string `json:"imageUrls"`
	Sizes       []string `json:"sizes"`
	SizeStocks  []int    `json:"sizeStocks"`
	CategoryID  string   `json:"categoryId"`
	SupplierID  *string  `json:"supplierId"`
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Product, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, toDomain("", in))
}

func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.Product, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, toDomain(id, in))
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
	if in.CategoryID == "" {
		return fmt.Errorf("%w: categoryId is required", domain.ErrInvalidInput)
	}
	if in.PriceCents < 1 {
		return fmt.Errorf("%w: price must be positive", domain.ErrInvalidInput)
	}
	if in.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", domain.ErrInvalidInput)
	}
	if len(in.SizeStocks) > 0 && len(in.SizeStocks) != len(in.Sizes) {
		return fmt.Errorf("%w: sizeStocks must match sizes", domain.ErrInvalidInput)
	}
	return nil
}

func toDomain(id string, in Input) domain.Product {
	return domain.Product{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Slug:        strings.TrimSpace(in.Slug),
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Stock:       in.Stock,
		ImageURLs:   in.ImageURLs,
		Sizes:       in.Sizes,
		SizeStocks:  in.SizeStocks,
		CategoryID:  in.CategoryID,
		SupplierID:  in.SupplierID,
	}
}
