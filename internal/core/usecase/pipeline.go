package usecase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/trinamix-ai/documantra-saas/internal/core/domain"
	"github.com/trinamix-ai/documantra-saas/internal/core/ports"
)

// ClassifyDocumentUseCase runs one document through extraction, prompting,
// chat classification and categorization. It holds no per-call state and is
// safe for concurrent use.
type ClassifyDocumentUseCase struct {
	extractor  *TextExtractor
	classifier *AnswerClassifier
	textLimit  int
	logger     *slog.Logger
}

func NewClassifyDocumentUseCase(
	extraction ports.TextExtractionService,
	chat ports.ChatClassificationService,
	settings domain.ClassifierSettings,
	logger *slog.Logger,
) *ClassifyDocumentUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClassifyDocumentUseCase{
		extractor:  NewTextExtractor(extraction, settings.CompartmentID, logger),
		classifier: NewAnswerClassifier(chat, settings),
		textLimit:  settings.TextLimit,
		logger:     logger,
	}
}

// ClassifyFile always yields a category once path exists; the only error it
// returns wraps domain.ErrTargetNotFound.
func (uc *ClassifyDocumentUseCase) ClassifyFile(ctx context.Context, path string) (domain.ClassificationResult, error) {
	started := time.Now()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ClassificationResult{}, domain.WrapError(domain.ErrTargetNotFound, "stat target", err)
		}
		return domain.ClassificationResult{}, domain.WrapError(domain.ErrTargetNotFound, "stat target", fmt.Errorf("%s: %w", path, err))
	}

	result := domain.ClassificationResult{File: filepath.Base(path)}
	switch DocumentKindOf(path) {
	case DocumentKindSpreadsheet:
		result.Category = domain.ExcelDocs()
	case DocumentKindPDF:
		uc.classifyPDF(ctx, path, &result)
	default:
		result.Category = domain.UnsupportedFileType()
	}

	result.Label = result.Category.String()
	result.Duration = time.Since(started)
	uc.logger.Info("document_classified",
		"file", result.File,
		"category", result.Category.Kind,
		"text_length", result.TextLength,
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

func (uc *ClassifyDocumentUseCase) classifyPDF(ctx context.Context, path string, result *domain.ClassificationResult) {
	text, err := uc.extractor.Extract(ctx, path)
	if err != nil || text == "" {
		result.Category = Categorize(path, false, "")
		return
	}
	result.TextExtracted = true
	result.TextLength = len([]rune(text))

	prompt := BuildClassificationPrompt(TruncateText(text, uc.textLimit))
	answer, err := uc.classifier.Classify(ctx, prompt)
	if err != nil {
		uc.logger.Warn("classify_failed", "file", result.File, "error", err)
		result.Answer = "Error: " + err.Error()
		result.Category = domain.UnsurePdf(result.Answer)
		return
	}
	result.Answer = answer
	result.Category = Categorize(path, true, answer)
}
