package user

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/domain"
	userrepo "storefront/internal/repository/user"
)

// Service implements the admin user management rules. Every mutation is
// checked against the role hierarchy: an account never manages itself, an
// ADMIN only manages customers, and staff tiers are granted by a
// SUPER_ADMIN alone.
type Service struct {
	repo userrepo.Repository
}

func New(repo userrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// UpdateInput mirrors the admin user edit payload. Empty fields keep the
// target's current value.
type UpdateInput struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// Update edits the target account on behalf of the actor.
func (s *Service) Update(ctx context.Context, actor domain.User, targetID string, in UpdateInput) (*domain.User, error) {
	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if err := canManage(actor, *target); err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = target.Role
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}
	if role != domain.RoleCustomer && actor.Role != domain.RoleSuperAdmin {
		return nil, fmt.Errorf("%w: only a super admin may assign the %s role", domain.ErrForbidden, role)
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = target.Name
	}
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		email = target.Email
	}

	return s.repo.Update(ctx, targetID, userrepo.UpdateInput{
		Name:  name,
		Email: email,
		Role:  role,
	})
}

// Delete removes the target account on behalf of the actor.
func (s *Service) Delete(ctx context.Context, actor domain.User, targetID string) error {
	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if err := canManage(actor, *target); err != nil {
		return err
	}
	return s.repo.Delete(ctx, targetID)
}

func canManage(actor, target domain.User) error {
	if !actor.Role.IsStaff() {
		return fmt.Errorf("%w: admin access required", domain.ErrForbidden)
	}
	if actor.ID == target.ID {
		return fmt.Errorf("%w: you cannot manage your own account", domain.ErrForbidden)
	}
	if actor.Role == domain.RoleAdmin && target.Role.IsStaff() {
		return fmt.Errorf("%w: only a super admin may manage staff accounts", domain.ErrForbidden)
	}
	return nil
}
