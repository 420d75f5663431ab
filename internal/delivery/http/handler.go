package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// StyleAnalyzer runs the full analysis pipeline for one uploaded image
type StyleAnalyzer interface {
	AnalyzeImage(ctx context.Context, imagePath string) string
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	styleService StyleAnalyzer
}

// NewHandler creates a new HTTP handler
func NewHandler(styleService StyleAnalyzer) *Handler {
	return &Handler{
		styleService: styleService,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "stylefinder-backend",
		"version": "1.0.0",
	})
}

// AnalyzeStyle handles fashion image analysis requests. The upload is
// written to a temp file that lives only for this request; removal
// failure is logged, never surfaced.
func (h *Handler) AnalyzeStyle(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "image file is required (multipart field 'image')",
		})
		return
	}

	tmpFile, err := os.CreateTemp("", fmt.Sprintf("stylefinder-*%s", filepath.Ext(fileHeader.Filename)))
	if err != nil {
		log.Printf("[HTTP] Failed to create temp file: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to store uploaded image",
		})
		return
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			log.Printf("[HTTP] Failed to remove temp file %s: %v", tmpPath, err)
		}
	}()

	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		log.Printf("[HTTP] Failed to save upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to store uploaded image",
		})
		return
	}

	report := h.styleService.AnalyzeImage(c.Request.Context(), tmpPath)

	c.JSON(http.StatusOK, gin.H{
		"report": report,
	})
}
