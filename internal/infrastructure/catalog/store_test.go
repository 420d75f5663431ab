package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stylefinder/backend/internal/domain"
)

func TestNewStore(t *testing.T) {
	t.Run("builds store from valid items", func(t *testing.T) {
		items := []domain.CatalogItem{
			{Name: "Elegant Blazer", Embedding: []float64{1, 0, 0}},
			{Name: "Classic Shirt", Embedding: []float64{0, 1, 0}},
		}

		store, err := NewStore(items)
		require.NoError(t, err)
		assert.Equal(t, 2, store.Len())
		assert.Equal(t, 3, store.Dimension())
		assert.Equal(t, "Elegant Blazer", store.Items()[0].Name)
	})

	t.Run("rejects empty catalog", func(t *testing.T) {
		_, err := NewStore(nil)
		assert.ErrorIs(t, err, domain.ErrEmptyCatalog)
	})

	t.Run("rejects zero-length embedding", func(t *testing.T) {
		items := []domain.CatalogItem{{Name: "Blazer"}}
		_, err := NewStore(items)
		assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	})

	t.Run("rejects ragged embeddings", func(t *testing.T) {
		items := []domain.CatalogItem{
			{Name: "Blazer", Embedding: []float64{1, 0, 0}},
			{Name: "Shirt", Embedding: []float64{0, 1}},
		}
		_, err := NewStore(items)
		assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		items := []domain.CatalogItem{
			{Name: "A", Embedding: []float64{1}},
			{Name: "B", Embedding: []float64{2}},
			{Name: "C", Embedding: []float64{3}},
		}

		store, err := NewStore(items)
		require.NoError(t, err)

		names := make([]string, 0, store.Len())
		for _, item := range store.Items() {
			names = append(names, item.Name)
		}
		assert.Equal(t, []string{"A", "B", "C"}, names)
	})

	t.Run("copies input slice", func(t *testing.T) {
		items := []domain.CatalogItem{{Name: "A", Embedding: []float64{1}}}
		store, err := NewStore(items)
		require.NoError(t, err)

		items[0].Name = "mutated"
		assert.Equal(t, "A", store.Items()[0].Name)
	})
}

func TestLoadFile(t *testing.T) {
	writeCatalog := func(t *testing.T, v interface{}) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "catalog.json")
		data, err := json.Marshal(v)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, data, 0o644))
		return path
	}

	t.Run("loads catalog from JSON file", func(t *testing.T) {
		path := writeCatalog(t, []domain.CatalogItem{
			{Name: "Designer Dress", Brand: "Trendy Brand", Price: "$199", SourceID: "http://example.com/dress.jpg", Embedding: []float64{0.1, 0.2}},
		})

		store, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 1, store.Len())
		assert.Equal(t, 2, store.Dimension())
		assert.Equal(t, "Trendy Brand", store.Items()[0].Brand)
	})

	t.Run("fails on missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})

	t.Run("fails on malformed JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		_, err := LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("fails on empty array", func(t *testing.T) {
		path := writeCatalog(t, []domain.CatalogItem{})
		_, err := LoadFile(path)
		assert.ErrorIs(t, err, domain.ErrEmptyCatalog)
	})
}
