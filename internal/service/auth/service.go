package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/domain"
	tokenrepo "storefront/internal/repository/token"
	userrepo "storefront/internal/repository/user"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service handles registration, login and token validation.
type Service struct {
	users       userrepo.Repository
	tokens      *tokenManager
	accessTTL   time.Duration
	refreshTTL  time.Duration
	passwordMin int
}

// New creates a Service with sane defaults.
func New(users userrepo.Repository, tokens tokenrepo.Repository) *Service {
	return &Service{
		users:       users,
		tokens:      newTokenManager(tokens),
		accessTTL:   48 * time.Hour,
		refreshTTL:  30 * 24 * time.Hour,
		passwordMin: 6,
	}
}

// RegisterInput captures fields expected by the register endpoint.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account. The role is always CUSTOMER; admin tiers
// are granted afterwards through the user management API.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if !validEmail(email) {
		return nil, fmt.Errorf("%w: a valid email is required", domain.ErrInvalidInput)
	}
	password := strings.TrimSpace(in.Password)
	if len(password) < s.passwordMin {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, s.passwordMin)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.users.Create(ctx, domain.User{
		Email:        email,
		PasswordHash: string(hashed),
		Name:         strings.TrimSpace(in.Name),
		Role:         domain.RoleCustomer,
	})
}

// Login validates credentials and returns issued tokens plus the user.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	password = strings.TrimSpace(password)
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	access, err := s.tokens.Issue(ctx, u.ID, "access", s.accessTTL)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := s.tokens.Issue(ctx, u.ID, "refresh", s.refreshTTL)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

// LookupByToken returns the user bound to a valid access token.
func (s *Service) LookupByToken(ctx context.Context, token string) (*domain.User, error) {
	meta, ok := s.tokens.Validate(ctx, token)
	if !ok {
		return nil, ErrInvalidToken
	}
	u, err := s.users.GetByID(ctx, meta.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

// AccessTTLSeconds exposes the access token lifetime in seconds.
func (s *Service) AccessTTLSeconds() int {
	return int(s.accessTTL.Seconds())
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at < 1 {
		return false
	}
	domainPart := email[at+1:]
	return strings.Contains(domainPart, ".") && !strings.HasPrefix(domainPart, ".") && !strings.HasSuffix(domainPart, ".")
}
