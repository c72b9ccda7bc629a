package supplier

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/domain"
	supplierrepo "storefront/internal/repository/supplier"
)

type Service struct {
	repo supplierrepo.Repository
}

func New(repo supplierrepo.Repository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
	Address      string `json:"address"`
}

func (s *Service) List(ctx context.Context) ([]domain.Supplier, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Supplier, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Supplier, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	return s.repo.Create(ctx, toDomain("", in))
}

func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.Supplier, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	return s.repo.Update(ctx, toDomain(id, in))
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func toDomain(id string, in Input) domain.Supplier {
	return domain.Supplier{
		ID:           id,
		Name:         strings.TrimSpace(in.Name),
		ContactEmail: strings.TrimSpace(in.ContactEmail),
		ContactPhone: strings.TrimSpace(in.ContactPhone),
		Address:      strings.TrimSpace(in.Address),
	}
}
