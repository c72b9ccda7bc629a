package cart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"storefront/internal/domain"
)

var (
	// ErrNotLoaded is returned by mutating operations before SetSession has
	// resolved the principal.
	ErrNotLoaded = errors.New("cart not loaded")
	// ErrStoreUnavailable wraps persistent store failures. In-memory state is
	// left unchanged and the call is not retried.
	ErrStoreUnavailable = errors.New("cart store unavailable")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
)

// State is the engine's lifecycle position.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateGuestReady
	StateAuthReady
)

// Store is the persistent side of an authenticated cart. Every operation is
// scoped to the owning user.
type Store interface {
	ListByUser(ctx context.Context, userID string) ([]domain.CartLine, error)
	Upsert(ctx context.Context, userID, productID, selectedSize string, quantityDelta int) error
	UpdateQuantity(ctx context.Context, rowID, userID string, quantity int) error
	Delete(ctx context.Context, rowID, userID string) error
	DeleteAll(ctx context.Context, userID string) error
}

// Catalog resolves a product for snapshotting display attributes into guest
// lines.
type Catalog interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// Engine holds the cart of one principal, guest or authenticated, and
// dispatches each operation to the backing store that is authoritative for
// the current mode. It is not safe for concurrent use; construct one per
// principal.
//
// Authenticated operations are read-after-write: after any successful
// mutation the line set is re-fetched from the store rather than patched
// locally, so Lines always reflects state the store acknowledged.
type Engine struct {
	store   Store
	catalog Catalog
	local   LocalStore
	logger  *log.Logger

	state  State
	userID string
	lines  []domain.CartLine
}

func New(store Store, catalog Catalog, local LocalStore, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Engine{store: store, catalog: catalog, local: local, logger: logger}
}

// SetSession resolves the principal and loads the matching cart. An empty
// userID resolves to guest mode, reading the device-local snapshot. A
// non-empty userID resolves to authenticated mode: any pending guest lines
// are merged into the persistent cart first, then the cart is loaded from
// the store.
func (e *Engine) SetSession(ctx context.Context, userID string) error {
	e.state = StateLoading
	e.userID = userID

	if userID == "" {
		e.lines = e.loadGuestLines(ctx)
		e.state = StateGuestReady
		return nil
	}

	e.mergeOnLogin(ctx)
	if err := e.reload(ctx); err != nil {
		return err
	}
	e.state = StateAuthReady
	return nil
}

// Add puts quantity units of the product into the cart. A line already
// holding the same (productID, selectedSize) pair has its quantity
// incremented instead of a second line being created.
func (e *Engine) Add(ctx context.Context, productID, selectedSize string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	switch e.state {
	case StateGuestReady:
		p, err := e.catalog.GetByID(ctx, productID)
		if err != nil {
			return fmt.Errorf("resolve product: %w", err)
		}
		e.upsertGuestLine(*p, selectedSize, quantity)
		return e.saveGuest(ctx)
	case StateAuthReady:
		if _, err := e.catalog.GetByID(ctx, productID); err != nil {
			return fmt.Errorf("resolve product: %w", err)
		}
		if err := e.store.Upsert(ctx, e.userID, productID, selectedSize, quantity); err != nil {
			return storeErr(err)
		}
		return e.reload(ctx)
	default:
		return ErrNotLoaded
	}
}

// Remove deletes the line with the given id. A line that no longer exists is
// treated as already removed and reported as success.
func (e *Engine) Remove(ctx context.Context, lineID string) error {
	switch e.state {
	case StateGuestReady:
		kept := make([]domain.CartLine, 0, len(e.lines))
		for _, l := range e.lines {
			if l.ID != lineID {
				kept = append(kept, l)
			}
		}
		e.lines = kept
		return e.saveGuest(ctx)
	case StateAuthReady:
		if err := e.store.Delete(ctx, lineID, e.userID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return storeErr(err)
		}
		return e.reload(ctx)
	default:
		return ErrNotLoaded
	}
}

// UpdateQuantity sets the line's quantity. Values below 1 are normalized to
// 1: this path never removes a line, removal is a separate operation. A
// missing line is a no-op success.
func (e *Engine) UpdateQuantity(ctx context.Context, lineID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	switch e.state {
	case StateGuestReady:
		for i := range e.lines {
			if e.lines[i].ID == lineID {
				e.lines[i].Quantity = quantity
				return e.saveGuest(ctx)
			}
		}
		return nil
	case StateAuthReady:
		if err := e.store.UpdateQuantity(ctx, lineID, e.userID, quantity); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return storeErr(err)
		}
		return e.reload(ctx)
	default:
		return ErrNotLoaded
	}
}

// Clear removes every line from the cart.
func (e *Engine) Clear(ctx context.Context) error {
	switch e.state {
	case StateGuestReady:
		e.lines = nil
		return e.saveGuest(ctx)
	case StateAuthReady:
		if err := e.store.DeleteAll(ctx, e.userID); err != nil {
			return storeErr(err)
		}
		return e.reload(ctx)
	default:
		return ErrNotLoaded
	}
}

// Lines returns the current line set, oldest-added first.
func (e *Engine) Lines() []domain.CartLine {
	return e.lines
}

func (e *Engine) TotalCents() int64 { return domain.CartTotalCents(e.lines) }

func (e *Engine) ItemCount() int { return domain.CartItemCount(e.lines) }

func (e *Engine) Loading() bool { return e.state == StateUninitialized || e.state == StateLoading }

func (e *Engine) State() State { return e.state }

// mergeOnLogin replays the guest snapshot against the persistent store, one
// upsert per line in guest order. Per-line failures are logged and skipped,
// and the snapshot is deleted regardless of them. The caller reloads
// afterwards.
func (e *Engine) mergeOnLogin(ctx context.Context) {
	guest := e.loadGuestLines(ctx)
	if len(guest) == 0 {
		return
	}
	for _, l := range guest {
		qty := l.Quantity
		if qty < 1 {
			qty = 1
		}
		if err := e.store.Upsert(ctx, e.userID, l.ProductID, l.SelectedSize, qty); err != nil {
			e.logger.Printf("cart merge: line %s: %v", l.Key(), err)
		}
	}
	if err := e.local.Clear(ctx); err != nil {
		e.logger.Printf("cart merge: clear guest snapshot: %v", err)
	}
}

func (e *Engine) upsertGuestLine(p domain.Product, selectedSize string, quantity int) {
	for i := range e.lines {
		if e.lines[i].ProductID == p.ID && e.lines[i].SelectedSize == selectedSize {
			e.lines[i].Quantity += quantity
			return
		}
	}
	line := domain.CartLine{
		ProductID:    p.ID,
		Name:         p.Name,
		PriceCents:   p.PriceCents,
		ImageURL:     p.FirstImageURL(),
		Quantity:     quantity,
		SelectedSize: selectedSize,
		Slug:         p.Slug,
	}
	line.ID = line.Key()
	e.lines = append(e.lines, line)
}

func (e *Engine) loadGuestLines(ctx context.Context) []domain.CartLine {
	data, err := e.local.Load(ctx)
	if err != nil {
		e.logger.Printf("cart: load guest snapshot: %v", err)
		return nil
	}
	return decodeGuestLines(data, e.logger)
}

func (e *Engine) saveGuest(ctx context.Context) error {
	data, err := encodeGuestLines(e.lines)
	if err != nil {
		return err
	}
	return e.local.Save(ctx, data)
}

func (e *Engine) reload(ctx context.Context) error {
	lines, err := e.store.ListByUser(ctx, e.userID)
	if err != nil {
		return storeErr(err)
	}
	e.lines = lines
	return nil
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
