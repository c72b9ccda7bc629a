package cartitem

import (
	"context"

	"storefront/internal/domain"
)

// Repository is the persistent side of the cart. Every operation is scoped
// to the owning user: a row id alone never grants access to another user's
// rows.
type Repository interface {
	// ListByUser returns the user's cart lines joined with product display
	// attributes, oldest-added first.
	ListByUser(ctx context.Context, userID string) ([]domain.CartLine, error)
	// Upsert inserts a row for (userID, productID, selectedSize) or
	// atomically increments the existing row's quantity by quantityDelta.
	Upsert(ctx context.Context, userID, productID, selectedSize string, quantityDelta int) error
	// UpdateQuantity sets the quantity of the user's row. domain.ErrNotFound
	// when no such row belongs to the user.
	UpdateQuantity(ctx context.Context, rowID, userID string, quantity int) error
	// Delete removes the user's row. domain.ErrNotFound when absent.
	Delete(ctx context.Context, rowID, userID string) error
	// DeleteAll removes every row owned by the user.
	DeleteAll(ctx context.Context, userID string) error
	// ListAll returns cart rows across all users for the admin back-office,
	// optionally filtered by owner. Empty userID means no filter.
	ListAll(ctx context.Context, userID string) ([]domain.CartRow, error)
}
