package post

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/domain"
	postrepo "storefront/internal/repository/post"
)

type Service struct {
	repo postrepo.Repository
}

func New(repo postrepo.Repository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Content   string `json:"content"`
	ImageURL  string `json:"imageUrl"`
	Published bool   `json:"published"`
}

// List returns posts newest-first. Drafts are included only for the
// back-office.
func (s *Service) List(ctx context.Context, includeDrafts bool) ([]domain.Post, error) {
	return s.repo.List(ctx, !includeDrafts)
}

// GetBySlug serves the public blog page: a draft behaves as if it does not
// exist.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !p.Published {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// GetByID serves the back-office editor and does not filter on published.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, author domain.User, in Input) (*domain.Post, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	p := toDomain("", in)
	p.AuthorID = author.ID
	return s.repo.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.Post, error) {
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
	if strings.TrimSpace(in.Slug) == "" {
		return fmt.Errorf("%w: slug is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}
	return nil
}

func toDomain(id string, in Input) domain.Post {
	return domain.Post{
		ID:        id,
		Title:     strings.TrimSpace(in.Title),
		Slug:      strings.TrimSpace(in.Slug),
		Content:   in.Content,
		ImageURL:  strings.TrimSpace(in.ImageURL),
		Published: in.Published,
	}
}
