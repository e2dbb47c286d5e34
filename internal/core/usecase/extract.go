package usecase

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/trinamix-ai/documantra-saas/internal/core/domain"
	"github.com/trinamix-ai/documantra-saas/internal/core/ports"
)

type TextExtractor struct {
	service       ports.TextExtractionService
	compartmentID string
	logger        *slog.Logger
}

func NewTextExtractor(service ports.TextExtractionService, compartmentID string, logger *slog.Logger) *TextExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &TextExtractor{
		service:       service,
		compartmentID: compartmentID,
		logger:        logger,
	}
}

// Extract returns every line of every page joined by "\n". Failures are
// logged and returned wrapped in domain.ErrExtraction.
func (e *TextExtractor) Extract(ctx context.Context, path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		e.logger.Warn("extract_failed", "file", path, "stage", "read", "error", err)
		return "", domain.WrapError(domain.ErrExtraction, "read document", err)
	}

	pages, err := e.service.ExtractText(ctx, content, e.compartmentID)
	if err != nil {
		e.logger.Warn("extract_failed", "file", path, "stage", "analyze", "error", err)
		return "", domain.WrapError(domain.ErrExtraction, "analyze document", err)
	}

	var lines []string
	for _, page := range pages {
		lines = append(lines, page.Lines...)
	}
	e.logger.Debug("extract_completed", "file", path, "pages", len(pages), "lines", len(lines))
	return strings.Join(lines, "\n"), nil
}
