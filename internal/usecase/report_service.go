package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/stylefinder/backend/internal/domain"
)

// ReportConfig holds configuration for the report service
type ReportConfig struct {
	SimilarityThreshold float64
	MinReportLength     int
	EnableDebugLogging  bool
}

// ReportService builds the style-analysis prompt, invokes the text
// generator, and validates and repairs the generated report. It never
// fails: generation errors degrade to a deterministic fallback report.
type ReportService struct {
	generator           domain.TextGenerator
	similarityThreshold float64
	minReportLength     int
	enableDebugLogging  bool
}

// NewReportService creates a new report service with the given configuration
func NewReportService(generator domain.TextGenerator, config ReportConfig) *ReportService {
	threshold := config.SimilarityThreshold
	if threshold <= 0 {
		threshold = 0.8
	}

	minLength := config.MinReportLength
	if minLength <= 0 {
		minLength = 100
	}

	return &ReportService{
		generator:           generator,
		similarityThreshold: threshold,
		minReportLength:     minLength,
		enableDebugLogging:  config.EnableDebugLogging,
	}
}

// Synthesize produces the final style report for a matched item and its
// related-items group. imagePayload may be empty when no image is
// attached to the generation request.
func (s *ReportService) Synthesize(
	ctx context.Context,
	imagePayload string,
	matched domain.CatalogItem,
	related []domain.RelatedItem,
	score float64,
) string {
	itemsText := buildItemsListing(related)
	matchQuality, confidence := s.classifyMatch(score)

	prompt := buildPrompt(matched, itemsText, matchQuality, confidence, score)

	report, err := s.generator.Generate(ctx, prompt, imagePayload)
	if err != nil {
		log.Printf("[REPORT] Generation failed, using fallback report: %v", err)
		return s.fallbackReport(matched, matchQuality, itemsText, score)
	}

	if len(strings.TrimSpace(report)) < s.minReportLength {
		log.Printf("[REPORT] Generated report too short (%d chars), using fallback report", len(strings.TrimSpace(report)))
		return s.fallbackReport(matched, matchQuality, itemsText, score)
	}

	// The alternatives listing must always reach the user, even when
	// the model ignored that part of the instruction
	if !strings.Contains(report, "RELATED ITEMS") && !strings.Contains(report, "Related Items") {
		if s.enableDebugLogging {
			log.Printf("[REPORT] Generated report missing related-items section, appending listing")
		}
		report += fmt.Sprintf("\n\n## Related Items Found\n\n%s", itemsText)
	}

	return report
}

// classifyMatch frames the report wording based on the similarity threshold
func (s *ReportService) classifyMatch(score float64) (matchQuality, confidence string) {
	if score >= s.similarityThreshold {
		return "excellent match", "high confidence"
	}
	return "similar item", "moderate confidence"
}

// buildItemsListing renders the related items as a markdown bullet
// list. Absent fields are omitted, never rendered as placeholders.
func buildItemsListing(related []domain.RelatedItem) string {
	lines := make([]string, 0, len(related))
	for _, item := range related {
		var b strings.Builder
		b.WriteString("* ")
		if item.Name != "" {
			b.WriteString(item.Name)
		} else {
			b.WriteString(domain.DefaultItemName)
		}
		if item.Price != "" {
			b.WriteString(fmt.Sprintf(" - Price: %s", item.Price))
		}
		if item.Brand != "" {
			b.WriteString(fmt.Sprintf(" - Brand: %s", item.Brand))
		}
		if item.SourceID != "" {
			b.WriteString(fmt.Sprintf(" - [View Image](%s)", item.SourceID))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// buildPrompt constructs the structured generation request
func buildPrompt(matched domain.CatalogItem, itemsText, matchQuality, confidence string, score float64) string {
	return fmt.Sprintf(`You are a fashion expert analyzing a user's uploaded image.

The user's image has been matched with %s in our database with %s (similarity score: %.2f).

MATCHED ITEM DETAILS:
- Item Name: %s
- Brand: %s
- Price: %s
- Category: %s

RELATED ITEMS IN DATABASE:
%s

Please provide a detailed fashion analysis including:
1. Description of the main item in the user's image
2. Style analysis (colors, patterns, fit, occasion)
3. Fashion recommendations and styling tips
4. Similar alternatives from our database

Keep the response informative, engaging, and fashion-focused. Use markdown formatting for better readability.`,
		matchQuality, confidence, score,
		orUnknown(matched.Name),
		orUnknown(matched.Brand),
		orUnknown(matched.Price),
		orUnknown(matched.Category),
		itemsText,
	)
}

// fallbackReport builds the deterministic report used when generation
// fails or returns unusable text
func (s *ReportService) fallbackReport(matched domain.CatalogItem, matchQuality, itemsText string, score float64) string {
	return fmt.Sprintf(`## Fashion Analysis Results

Based on your image, I've identified a %s in our database:

**Matched Item:** %s
**Brand:** %s
**Price:** %s
**Similarity Score:** %.2f

## Related Items Found

%s

*Note: The AI analysis was incomplete, but here are the items we found in our database that match your image.*`,
		matchQuality,
		orUnknown(matched.Name),
		orUnknown(matched.Brand),
		orUnknown(matched.Price),
		score,
		itemsText,
	)
}

// orUnknown renders an absent matched-item attribute in the labeled block
func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
