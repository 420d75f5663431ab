package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/stylefinder/backend/internal/domain"
)

// Store is an immutable, in-memory catalog of fashion items. It is
// constructed once at startup and read-only afterward, so concurrent
// reads need no synchronization.
type Store struct {
	items     []domain.CatalogItem
	dimension int
}

// NewStore validates the items and builds a store. Construction fails
// on an empty catalog or on embeddings of unequal or zero length.
func NewStore(items []domain.CatalogItem) (*Store, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyCatalog
	}

	dimension := len(items[0].Embedding)
	if dimension == 0 {
		return nil, fmt.Errorf("%w: item 0 (%q) has an empty embedding", domain.ErrDimensionMismatch, items[0].DisplayName())
	}

	for i, item := range items {
		if len(item.Embedding) != dimension {
			return nil, fmt.Errorf("%w: item %d (%q) has dimension %d, want %d",
				domain.ErrDimensionMismatch, i, item.DisplayName(), len(item.Embedding), dimension)
		}
	}

	// Copy the slice header so callers can't grow the catalog underneath us
	stored := make([]domain.CatalogItem, len(items))
	copy(stored, items)

	return &Store{
		items:     stored,
		dimension: dimension,
	}, nil
}

// LoadFile reads a JSON array of catalog items from disk and builds a store
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var items []domain.CatalogItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode catalog file: %w", err)
	}

	store, err := NewStore(items)
	if err != nil {
		return nil, err
	}

	log.Printf("[CATALOG] Loaded %d items (dimension %d) from %s", store.Len(), store.Dimension(), path)
	return store, nil
}

// Items returns the catalog contents in insertion order. Callers must
// not mutate the returned slice.
func (s *Store) Items() []domain.CatalogItem {
	return s.items
}

// Dimension returns the embedding length shared by every item
func (s *Store) Dimension() int {
	return s.dimension
}

// Len returns the number of items in the catalog
func (s *Store) Len() int {
	return len(s.items)
}
