package cart

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	products map[string]domain.Product
}

func (s *stubCatalog) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

type fakeRow struct {
	id           string
	userID       string
	productID    string
	selectedSize string
	quantity     int
}

// fakeStore is a user-scoped in-memory Store with the same upsert and
// scoping semantics as the SQL implementation.
type fakeStore struct {
	rows     []*fakeRow
	nextID   int
	catalog  map[string]domain.Product
	failNext error
}

func (s *fakeStore) takeFailure() error {
	err := s.failNext
	s.failNext = nil
	return err
}

func (s *fakeStore) ListByUser(_ context.Context, userID string) ([]domain.CartLine, error) {
	if err := s.takeFailure(); err != nil {
		return nil, err
	}
	var lines []domain.CartLine
	for _, r := range s.rows {
		if r.userID != userID {
			continue
		}
		line := domain.CartLine{
			ID:           r.id,
			ProductID:    r.productID,
			Quantity:     r.quantity,
			SelectedSize: r.selectedSize,
		}
		if p, ok := s.catalog[r.productID]; ok {
			line.Name = p.Name
			line.PriceCents = p.PriceCents
			line.Slug = p.Slug
			line.ImageURL = p.FirstImageURL()
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (s *fakeStore) Upsert(_ context.Context, userID, productID, selectedSize string, quantityDelta int) error {
	if err := s.takeFailure(); err != nil {
		return err
	}
	for _, r := range s.rows {
		if r.userID == userID && r.productID == productID && r.selectedSize == selectedSize {
			r.quantity += quantityDelta
			return nil
		}
	}
	s.nextID++
	s.rows = append(s.rows, &fakeRow{
		id:           "row-" + strconv.Itoa(s.nextID),
		userID:       userID,
		productID:    productID,
		selectedSize: selectedSize,
		quantity:     quantityDelta,
	})
	return nil
}

func (s *fakeStore) UpdateQuantity(_ context.Context, rowID, userID string, quantity int) error {
	if err := s.takeFailure(); err != nil {
		return err
	}
	for _, r := range s.rows {
		if r.id == rowID && r.userID == userID {
			r.quantity = quantity
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *fakeStore) Delete(_ context.Context, rowID, userID string) error {
	if err := s.takeFailure(); err != nil {
		return err
	}
	for i, r := range s.rows {
		if r.id == rowID && r.userID == userID {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *fakeStore) DeleteAll(_ context.Context, userID string) error {
	if err := s.takeFailure(); err != nil {
		return err
	}
	kept := s.rows[:0]
	for _, r := range s.rows {
		if r.userID != userID {
			kept = append(kept, r)
		}
	}
	s.rows = kept
	return nil
}

var testProducts = map[string]domain.Product{
	"p1": {ID: "p1", Name: "Tee", Slug: "tee", PriceCents: 10000, ImageURLs: []string{"/img/tee.jpg"}},
	"p2": {ID: "p2", Name: "Cap", Slug: "cap", PriceCents: 5000},
}

type fixture struct {
	engine *Engine
	store  *fakeStore
	local  *MemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := &fakeStore{catalog: testProducts}
	local := NewMemoryStore()
	return &fixture{
		engine: New(store, &stubCatalog{products: testProducts}, local, nil),
		store:  store,
		local:  local,
	}
}

func (f *fixture) asGuest(t *testing.T) {
	t.Helper()
	require.NoError(t, f.engine.SetSession(context.Background(), ""))
}

func (f *fixture) asUser(t *testing.T, userID string) {
	t.Helper()
	require.NoError(t, f.engine.SetSession(context.Background(), userID))
}

func TestAddMergesSameKey(t *testing.T) {
	ctx := context.Background()

	t.Run("guest", func(t *testing.T) {
		f := newFixture(t)
		f.asGuest(t)
		require.NoError(t, f.engine.Add(ctx, "p1", "M", 2))
		require.NoError(t, f.engine.Add(ctx, "p1", "M", 3))

		lines := f.engine.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 5, lines[0].Quantity)
	})

	t.Run("authenticated", func(t *testing.T) {
		f := newFixture(t)
		f.asUser(t, "u1")
		require.NoError(t, f.engine.Add(ctx, "p1", "M", 2))
		require.NoError(t, f.engine.Add(ctx, "p1", "M", 3))

		lines := f.engine.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 5, lines[0].Quantity)
	})
}

func TestAddDistinctSizesKeepSeparateLines(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.asGuest(t)

	require.NoError(t, f.engine.Add(ctx, "p1", "M", 1))
	require.NoError(t, f.engine.Add(ctx, "p1", "L", 1))

	lines := f.engine.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "p1-M", lines[0].ID)
	assert.Equal(t, "p1-L", lines[1].ID)
}

func TestUpdateQuantityFloorsAtOne(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.asGuest(t)
	require.NoError(t, f.engine.Add(ctx, "p1", "", 4))

	for _, qty := range []int{0, -5} {
		require.NoError(t, f.engine.UpdateQuantity(ctx, "p1", qty))
		lines := f.engine.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 1, lines[0].Quantity)
	}
}

func TestTotalAndItemCount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.asGuest(t)

	require.NoError(t, f.engine.Add(ctx, "p1", "", 2))
	require.NoError(t, f.engine.Add(ctx, "p2", "", 3))

	assert.Equal(t, int64(35000), f.engine.TotalCents())
	assert.Equal(t, 5, f.engine.ItemCount())
}

func TestClearEmptiesCart(t *testing.T) {
	ctx := context.Background()

	t.Run("guest", func(t *testing.T) {
		f := newFixture(t)
		f.asGuest(t)
		require.NoError(t, f.engine.Add(ctx, "p1", "", 2))

		require.NoError(t, f.engine.Clear(ctx))
		assert.Empty(t, f.engine.Lines())
		assert.Zero(t, f.engine.TotalCents())
		assert.Zero(t, f.engine.ItemCount())
	})

	t.Run("authenticated", func(t *testing.T) {
		f := newFixture(t)
		f.asUser(t, "u1")
		require.NoError(t, f.engine.Add(ctx, "p1", "", 2))

		require.NoError(t, f.engine.Clear(ctx))
		assert.Empty(t, f.engine.Lines())
		assert.Empty(t, f.store.rows)
	})
}

func TestMergeOnLoginSumsQuantities(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.store.Upsert(ctx, "u1", "p1", "M", 1))

	f.asGuest(t)
	require.NoError(t, f.engine.Add(ctx, "p1", "M", 2))

	f.asUser(t, "u1")

	lines := f.engine.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, "M", lines[0].SelectedSize)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.False(t, f.local.Exists(), "guest snapshot should be deleted after merge")
}

func TestMergeOnLoginIntoEmptyCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.asGuest(t)
	require.NoError(t, f.engine.Add(ctx, "p1", "M", 1))
	require.NoError(t, f.engine.Add(ctx, "p2", "", 4))

	f.asUser(t, "u1")

	lines := f.engine.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, "M", lines[0].SelectedSize)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, "p2", lines[1].ProductID)
	assert.Empty(t, lines[1].SelectedSize)
	assert.Equal(t, 4, lines[1].Quantity)
	assert.False(t, f.local.Exists())
}

func TestMergeOnLoginEmptyGuestIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.store.Upsert(ctx, "u1", "p1", "", 2))

	f.asUser(t, "u1")

	lines := f.engine.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestRemoveScopedToOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.store.Upsert(ctx, "userB", "p1", "", 1))
	rowID := f.store.rows[0].id

	f.asUser(t, "userA")
	require.NoError(t, f.engine.Remove(ctx, rowID))

	require.Len(t, f.store.rows, 1, "another user's row must survive")
	assert.Equal(t, "userB", f.store.rows[0].userID)
}

func TestRemoveMissingLineIsNoop(t *testing.T) {
	ctx := context.Background()

	t.Run("guest", func(t *testing.T) {
		f := newFixture(t)
		f.asGuest(t)
		require.NoError(t, f.engine.Add(ctx, "p1", "", 1))

		require.NoError(t, f.engine.Remove(ctx, "nope"))
		assert.Len(t, f.engine.Lines(), 1)
	})

	t.Run("authenticated", func(t *testing.T) {
		f := newFixture(t)
		f.asUser(t, "u1")
		require.NoError(t, f.engine.Add(ctx, "p1", "", 1))

		require.NoError(t, f.engine.Remove(ctx, "nope"))
		assert.Len(t, f.engine.Lines(), 1)
	})
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	f := newFixture(t)
	f.asGuest(t)

	err := f.engine.Add(context.Background(), "p1", "", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Empty(t, f.engine.Lines())
}

func TestAddUnknownProduct(t *testing.T) {
	f := newFixture(t)
	f.asGuest(t)

	err := f.engine.Add(context.Background(), "ghost", "", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.engine.Lines())
}

func TestStoreFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.asUser(t, "u1")
	require.NoError(t, f.engine.Add(ctx, "p1", "", 2))

	f.store.failNext = errors.New("connection refused")
	err := f.engine.Add(ctx, "p2", "", 1)
	require.ErrorIs(t, err, ErrStoreUnavailable)

	lines := f.engine.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestOperationsBeforeSessionResolve(t *testing.T) {
	f := newFixture(t)

	assert.True(t, f.engine.Loading())
	assert.ErrorIs(t, f.engine.Add(context.Background(), "p1", "", 1), ErrNotLoaded)
	assert.ErrorIs(t, f.engine.Remove(context.Background(), "p1"), ErrNotLoaded)
	assert.ErrorIs(t, f.engine.Clear(context.Background()), ErrNotLoaded)
}

func TestGuestCartPersistsAcrossEngines(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.asGuest(t)
	require.NoError(t, f.engine.Add(ctx, "p1", "M", 2))

	second := New(f.store, &stubCatalog{products: testProducts}, f.local, nil)
	require.NoError(t, second.SetSession(ctx, ""))

	lines := second.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p1-M", lines[0].ID)
	assert.Equal(t, "Tee", lines[0].Name)
	assert.Equal(t, int64(10000), lines[0].PriceCents)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestMergePartialFailureStillClearsSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.asGuest(t)
	require.NoError(t, f.engine.Add(ctx, "p1", "", 1))
	require.NoError(t, f.engine.Add(ctx, "p2", "", 1))

	f.store.failNext = fmt.Errorf("connection refused")
	f.asUser(t, "u1")

	lines := f.engine.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].ProductID)
	assert.False(t, f.local.Exists(), "snapshot is deleted even when a line fails to merge")
}
