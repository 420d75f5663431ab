package usecase

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/stylefinder/backend/internal/domain"
)

// zeroNormScore is assigned when either vector has zero magnitude, so
// such entries lose to anything with a real similarity
const zeroNormScore = -1.0

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	EnableDebugLogging bool
}

// MatchingService finds the catalog item whose embedding is closest to
// a query vector by cosine similarity
type MatchingService struct {
	catalog            domain.CatalogRepository
	enableDebugLogging bool
}

// NewMatchingService creates a new matching service over the given catalog
func NewMatchingService(catalog domain.CatalogRepository, config MatchConfig) *MatchingService {
	return &MatchingService{
		catalog:            catalog,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Match scans the catalog and returns the entry with the highest cosine
// similarity to the query. Ties are broken by catalog order, so the
// result is deterministic for a fixed catalog.
func (s *MatchingService) Match(ctx context.Context, query []float64) (*domain.MatchResult, error) {
	if s.catalog.Len() == 0 {
		return nil, domain.ErrEmptyCatalog
	}

	if len(query) != s.catalog.Dimension() {
		return nil, fmt.Errorf("%w: query has dimension %d, catalog has %d",
			domain.ErrDimensionMismatch, len(query), s.catalog.Dimension())
	}

	queryNorm := vectorNorm(query)

	var best *domain.MatchResult
	highestScore := math.Inf(-1)

	for _, item := range s.catalog.Items() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		score := cosineSimilarity(query, queryNorm, item.Embedding)

		if s.enableDebugLogging {
			log.Printf("[MATCH] Item: %q | Score: %.4f", item.DisplayName(), score)
		}

		if score > highestScore {
			highestScore = score
			best = &domain.MatchResult{
				Item:  item,
				Score: score,
			}
		}
	}

	if s.enableDebugLogging {
		log.Printf("[MATCH] Best match: %q (similarity: %.4f)", best.Item.DisplayName(), best.Score)
	}

	return best, nil
}

// cosineSimilarity computes dot(query, embedding) / (|query| * |embedding|).
// The query norm is precomputed once per scan.
func cosineSimilarity(query []float64, queryNorm float64, embedding []float64) float64 {
	embeddingNorm := vectorNorm(embedding)
	if queryNorm == 0 || embeddingNorm == 0 {
		return zeroNormScore
	}

	dot := 0.0
	for i := range query {
		dot += query[i] * embedding[i]
	}

	return dot / (queryNorm * embeddingNorm)
}

// vectorNorm returns the Euclidean magnitude of a vector
func vectorNorm(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
