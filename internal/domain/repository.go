package domain

import "context"

// ImageEncoder defines the interface for the external visual-feature
// encoder capability. Implementations must return an encoding whose
// Vector is non-empty, or an error; never both.
type ImageEncoder interface {
	EncodeImage(ctx context.Context, path string) (*ImageEncoding, error)
}

// TextGenerator defines the interface for the external text-generation
// backend. imageBase64 may be empty when no image payload is attached.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, imageBase64 string) (string, error)
	CheckConnection(ctx context.Context) error
}

// CatalogRepository defines read access to the immutable item catalog
type CatalogRepository interface {
	Items() []CatalogItem
	Dimension() int
	Len() int
}
