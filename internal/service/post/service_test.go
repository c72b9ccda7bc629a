package post

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
)

type stubRepo struct {
	posts map[string]domain.Post
}

func newStubRepo(posts ...domain.Post) *stubRepo {
	r := &stubRepo{posts: map[string]domain.Post{}}
	for _, p := range posts {
		r.posts[p.ID] = p
	}
	return r
}

func (r *stubRepo) List(_ context.Context, publishedOnly bool) ([]domain.Post, error) {
	var out []domain.Post
	for _, p := range r.posts {
		if publishedOnly && !p.Published {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *stubRepo) GetByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *stubRepo) GetBySlug(_ context.Context, slug string) (*domain.Post, error) {
	for _, p := range r.posts {
		if p.Slug == slug {
			match := p
			return &match, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubRepo) Create(_ context.Context, p domain.Post) (*domain.Post, error) {
	p.ID = "p" + p.Slug
	r.posts[p.ID] = p
	return &p, nil
}

func (r *stubRepo) Update(_ context.Context, p domain.Post) (*domain.Post, error) {
	if _, ok := r.posts[p.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	r.posts[p.ID] = p
	return &p, nil
}

func (r *stubRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

var (
	published = domain.Post{ID: "1", Title: "Hello", Slug: "hello", Content: "...", Published: true}
	draft     = domain.Post{ID: "2", Title: "Draft", Slug: "draft", Content: "...", Published: false}
)

func TestListFiltersDrafts(t *testing.T) {
	svc := New(newStubRepo(published, draft))
	ctx := context.Background()

	posts, err := svc.List(ctx, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != published.ID {
		t.Fatalf("public list = %v, want only the published post", posts)
	}

	posts, err = svc.List(ctx, true)
	if err != nil {
		t.Fatalf("list with drafts: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("back-office list has %d posts, want 2", len(posts))
	}
}

func TestGetBySlugHidesDrafts(t *testing.T) {
	svc := New(newStubRepo(published, draft))
	ctx := context.Background()

	if _, err := svc.GetBySlug(ctx, "hello"); err != nil {
		t.Fatalf("published slug: %v", err)
	}
	if _, err := svc.GetBySlug(ctx, "draft"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("draft slug: err = %v, want ErrNotFound", err)
	}
}

func TestGetByIDReturnsDrafts(t *testing.T) {
	svc := New(newStubRepo(published, draft))

	p, err := svc.GetByID(context.Background(), draft.ID)
	if err != nil {
		t.Fatalf("get draft by id: %v", err)
	}
	if p.Published {
		t.Fatal("expected the draft")
	}
}

func TestCreateSetsAuthor(t *testing.T) {
	svc := New(newStubRepo())
	author := domain.User{ID: "u1", Role: domain.RoleAdmin}

	p, err := svc.Create(context.Background(), author, Input{Title: "T", Slug: "t", Content: "body"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.AuthorID != author.ID {
		t.Fatalf("authorId = %q, want %q", p.AuthorID, author.ID)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := New(newStubRepo())
	author := domain.User{ID: "u1", Role: domain.RoleAdmin}

	for _, in := range []Input{
		{Slug: "t", Content: "body"},
		{Title: "T", Content: "body"},
		{Title: "T", Slug: "t"},
	} {
		if _, err := svc.Create(context.Background(), author, in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("input %+v: err = %v, want ErrInvalidInput", in, err)
		}
	}
}
