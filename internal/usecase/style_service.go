package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/stylefinder/backend/internal/domain"
)

// StyleServiceConfig holds configuration for the style service
type StyleServiceConfig struct {
	SimilarityThreshold float64
	MinReportLength     int
	EnableDebugLogging  bool
}

// StyleService orchestrates the analysis pipeline for one image:
// resolve the file, encode it, match it against the catalog, collect
// related items, and synthesize the report. It is the only layer that
// renders failures as user-facing text; everything below it works with
// typed errors.
type StyleService struct {
	encoder            domain.ImageEncoder
	matchingService    *MatchingService
	relatedItems       *RelatedItemsService
	reportService      *ReportService
	enableDebugLogging bool
}

// NewStyleService creates a new style service with dependencies
func NewStyleService(
	catalog domain.CatalogRepository,
	encoder domain.ImageEncoder,
	generator domain.TextGenerator,
	config StyleServiceConfig,
) *StyleService {
	matchingService := NewMatchingService(catalog, MatchConfig{
		EnableDebugLogging: config.EnableDebugLogging,
	})

	reportService := NewReportService(generator, ReportConfig{
		SimilarityThreshold: config.SimilarityThreshold,
		MinReportLength:     config.MinReportLength,
		EnableDebugLogging:  config.EnableDebugLogging,
	})

	return &StyleService{
		encoder:            encoder,
		matchingService:    matchingService,
		relatedItems:       NewRelatedItemsService(catalog),
		reportService:      reportService,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// AnalyzeImage runs the full pipeline for the image at imagePath and
// always returns a user-facing string: either the style report or a
// stage-specific error message. There is no retry; a failed request
// needs a new submission.
func (s *StyleService) AnalyzeImage(ctx context.Context, imagePath string) string {
	report, err := s.analyze(ctx, imagePath)
	if err != nil {
		log.Printf("[STYLE] Analysis failed for %s: %v", imagePath, err)
		return userMessage(err)
	}
	return report
}

// analyze executes the pipeline stages, short-circuiting on the first
// typed error. Generation failures never reach this level; the report
// service absorbs them.
func (s *StyleService) analyze(ctx context.Context, imagePath string) (string, error) {
	if err := checkReadable(imagePath); err != nil {
		return "", err
	}

	encoding, err := s.encoder.EncodeImage(ctx, imagePath)
	if err != nil {
		return "", err
	}

	if s.enableDebugLogging {
		log.Printf("[STYLE] Image encoded, vector dimension: %d", len(encoding.Vector))
	}

	match, err := s.matchingService.Match(ctx, encoding.Vector)
	if err != nil {
		return "", err
	}

	log.Printf("[STYLE] Closest match: %q (similarity: %.2f)", match.Item.DisplayName(), match.Score)

	related := s.relatedItems.Group(match.Item)

	return s.reportService.Synthesize(ctx, encoding.Payload, match.Item, related, match.Score), nil
}

// checkReadable verifies that the image reference resolves to a regular readable file
func checkReadable(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty image path", domain.ErrInvalidImage)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", domain.ErrInvalidImage, path)
	}

	return nil
}

// userMessage renders a typed pipeline error as the explanatory string
// returned to the caller
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidImage):
		return "Error: Image file not found or unreadable. Please upload a valid image."
	case errors.Is(err, domain.ErrEncodingFailed), errors.Is(err, domain.ErrEncoderUnavailable):
		return "Error: Unable to process the image. Please try another image."
	case errors.Is(err, domain.ErrDimensionMismatch):
		return "Error: Unable to find a match due to a configuration problem. Please contact support."
	case errors.Is(err, domain.ErrEmptyCatalog):
		return "Error: Unable to find a match. Please try another image."
	default:
		return fmt.Sprintf("Error processing image: %v", err)
	}
}
