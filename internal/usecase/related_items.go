package usecase

import (
	"github.com/stylefinder/backend/internal/domain"
)

// RelatedItemsService collects the catalog entries that depict the same
// source photo as a matched item
type RelatedItemsService struct {
	catalog domain.CatalogRepository
}

// NewRelatedItemsService creates a new related-items service over the given catalog
func NewRelatedItemsService(catalog domain.CatalogRepository) *RelatedItemsService {
	return &RelatedItemsService{catalog: catalog}
}

// Group returns every catalog entry sharing the matched item's source
// photo, in catalog order. When the matched item has no source photo or
// no siblings, it returns a singleton synthesized from the matched
// item's own fields with the default labels filling any gaps, so the
// result is never empty.
func (s *RelatedItemsService) Group(matched domain.CatalogItem) []domain.RelatedItem {
	var group []domain.RelatedItem

	if matched.SourceID != "" {
		for _, item := range s.catalog.Items() {
			if item.SourceID == matched.SourceID {
				group = append(group, domain.RelatedItem{
					Name:     item.Name,
					Brand:    item.Brand,
					Price:    item.Price,
					Category: item.Category,
					SourceID: item.SourceID,
				})
			}
		}
	}

	if len(group) == 0 {
		group = []domain.RelatedItem{synthesizeRelatedItem(matched)}
	}

	return group
}

// synthesizeRelatedItem builds a stand-in entry from the matched item,
// substituting the default labels for any absent field
func synthesizeRelatedItem(matched domain.CatalogItem) domain.RelatedItem {
	item := domain.RelatedItem{
		Name:     matched.Name,
		Brand:    matched.Brand,
		Price:    matched.Price,
		Category: matched.Category,
		SourceID: matched.SourceID,
	}

	if item.Name == "" {
		item.Name = domain.DefaultItemName
	}
	if item.Brand == "" {
		item.Brand = domain.DefaultBrand
	}
	if item.Price == "" {
		item.Price = domain.DefaultPrice
	}
	if item.Category == "" {
		item.Category = domain.DefaultCategory
	}

	return item
}
