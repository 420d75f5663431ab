package domain

// CatalogItem represents one fashion item in the reference catalog.
// Embedding is the precomputed visual feature vector for the item's
// source photo; SourceID groups items that appear in the same photo.
type CatalogItem struct {
	Name      string    `json:"name"`
	Brand     string    `json:"brand,omitempty"`
	Price     string    `json:"price,omitempty"`
	Category  string    `json:"category,omitempty"`
	SourceID  string    `json:"sourceId,omitempty"`
	Embedding []float64 `json:"embedding"`
}

// Default labels substituted when a catalog field is absent
const (
	DefaultItemName = "Fashion Item"
	DefaultBrand    = "Unknown"
	DefaultPrice    = "N/A"
	DefaultCategory = "Fashion"
)

// DisplayName returns the item name or the default label when absent
func (i CatalogItem) DisplayName() string {
	if i.Name == "" {
		return DefaultItemName
	}
	return i.Name
}

// MatchResult represents the outcome of matching a query vector
// against the catalog
type MatchResult struct {
	Item  CatalogItem `json:"item"`
	Score float64     `json:"score"` // Cosine similarity in [-1, 1]
}

// RelatedItem is one entry of the candidate group shown to the user
// as an alternative. Optional fields are empty when absent, never a
// placeholder string; rendering consults the default labels instead.
type RelatedItem struct {
	Name     string `json:"name"`
	Brand    string `json:"brand,omitempty"`
	Price    string `json:"price,omitempty"`
	Category string `json:"category,omitempty"`
	SourceID string `json:"sourceId,omitempty"`
}

// ImageEncoding is the encoder capability's output for one image:
// the feature vector used for matching plus a base64 payload that can
// be attached to a generation request.
type ImageEncoding struct {
	Vector  []float64 `json:"vector"`
	Payload string    `json:"payload,omitempty"`
}
