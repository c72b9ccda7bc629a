package user

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
	userrepo "storefront/internal/repository/user"
)

type stubRepo struct {
	users   map[string]domain.User
	deleted []string
}

func newStubRepo(users ...domain.User) *stubRepo {
	r := &stubRepo{users: map[string]domain.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubRepo) Create(_ context.Context, u domain.User) (*domain.User, error) {
	r.users[u.ID] = u
	return &u, nil
}

func (r *stubRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *stubRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			match := u
			return &match, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubRepo) List(_ context.Context) ([]domain.User, error) { return nil, nil }

func (r *stubRepo) Update(_ context.Context, id string, in userrepo.UpdateInput) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u.Name, u.Email, u.Role = in.Name, in.Email, in.Role
	r.users[id] = u
	return &u, nil
}

func (r *stubRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	r.deleted = append(r.deleted, id)
	return nil
}

var (
	superAdmin = domain.User{ID: "sa", Email: "sa@example.com", Role: domain.RoleSuperAdmin}
	admin      = domain.User{ID: "ad", Email: "ad@example.com", Role: domain.RoleAdmin}
	otherAdmin = domain.User{ID: "ad2", Email: "ad2@example.com", Role: domain.RoleAdmin}
	customer   = domain.User{ID: "cu", Email: "cu@example.com", Name: "Customer", Role: domain.RoleCustomer}
)

func newTestService() (*Service, *stubRepo) {
	repo := newStubRepo(superAdmin, admin, otherAdmin, customer)
	return New(repo), repo
}

func TestAdminManagesCustomer(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	updated, err := svc.Update(ctx, admin, customer.ID, UpdateInput{Name: "Renamed"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Fatalf("name = %q, want Renamed", updated.Name)
	}
	if updated.Role != domain.RoleCustomer {
		t.Fatalf("role = %s, want CUSTOMER kept", updated.Role)
	}

	if err := svc.Delete(ctx, admin, customer.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != customer.ID {
		t.Fatalf("deleted = %v, want [%s]", repo.deleted, customer.ID)
	}
}

func TestAdminCannotManageStaff(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for _, target := range []domain.User{otherAdmin, superAdmin} {
		if _, err := svc.Update(ctx, admin, target.ID, UpdateInput{Name: "x"}); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("update %s: err = %v, want ErrForbidden", target.Role, err)
		}
		if err := svc.Delete(ctx, admin, target.ID); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("delete %s: err = %v, want ErrForbidden", target.Role, err)
		}
	}
}

func TestAdminCannotPromote(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), admin, customer.ID, UpdateInput{Role: domain.RoleAdmin})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestSuperAdminPromotes(t *testing.T) {
	svc, _ := newTestService()

	updated, err := svc.Update(context.Background(), superAdmin, customer.ID, UpdateInput{Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("role = %s, want ADMIN", updated.Role)
	}
}

func TestSuperAdminManagesOtherStaff(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Update(context.Background(), superAdmin, admin.ID, UpdateInput{Name: "x"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := svc.Delete(context.Background(), superAdmin, otherAdmin.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestNobodyManagesThemselves(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for _, actor := range []domain.User{admin, superAdmin} {
		if _, err := svc.Update(ctx, actor, actor.ID, UpdateInput{Name: "me"}); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("%s self update: err = %v, want ErrForbidden", actor.Role, err)
		}
		if err := svc.Delete(ctx, actor, actor.ID); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("%s self delete: err = %v, want ErrForbidden", actor.Role, err)
		}
	}
}

func TestCustomerCannotManage(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Update(context.Background(), customer, admin.ID, UpdateInput{Name: "x"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestUpdateRejectsUnknownRole(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), superAdmin, customer.ID, UpdateInput{Role: "OVERLORD"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestUpdateKeepsUnsetFields(t *testing.T) {
	svc, _ := newTestService()

	updated, err := svc.Update(context.Background(), superAdmin, customer.ID, UpdateInput{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != customer.Name || updated.Email != customer.Email || updated.Role != customer.Role {
		t.Fatalf("unset fields changed: %+v", updated)
	}
}

func TestUpdateMissingTarget(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Update(context.Background(), superAdmin, "ghost", UpdateInput{}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
