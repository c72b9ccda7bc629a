package cart

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"storefront/internal/domain"
)

// GuestCartKey is the fixed device-local key (and cookie name) under which
// the guest cart snapshot lives.
const GuestCartKey = "guest_cart"

// LocalStore is the device-local side of a guest cart: one JSON snapshot
// under GuestCartKey. Load returns (nil, nil) when no snapshot exists.
type LocalStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}

// MemoryStore is an in-process LocalStore.
type MemoryStore struct {
	mu     sync.Mutex
	data   []byte
	exists bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.exists {
		return nil, nil
	}
	return m.data, nil
}

func (m *MemoryStore) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.exists = true
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	m.exists = false
	return nil
}

// Exists reports whether a snapshot is currently stored.
func (m *MemoryStore) Exists() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exists
}

// decodeGuestLines parses a guest snapshot. A malformed snapshot fails open
// to an empty cart and is logged, never surfaced to the caller.
func decodeGuestLines(data []byte, logger *log.Logger) []domain.CartLine {
	if len(data) == 0 {
		return nil
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		logger.Printf("cart: malformed guest snapshot, starting empty: %v", err)
		return nil
	}
	return lines
}

func encodeGuestLines(lines []domain.CartLine) ([]byte, error) {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return json.Marshal(lines)
}
