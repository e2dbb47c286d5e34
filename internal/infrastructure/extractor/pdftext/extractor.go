package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/trinamix-ai/documantra-saas/internal/core/domain"
)

// Extractor reads the embedded text layer of a PDF. Scanned documents
// without a text layer come back as pages with no lines.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) ExtractText(ctx context.Context, content []byte, _ string) (pages []domain.Page, err error) {
	if len(content) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "read pdf", errors.New("empty document"))
	}

	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	total := reader.NumPage()
	pages = make([]domain.Page, 0, total)
	for num := 1; num <= total; num++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(num)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("read page %d: %w", num, err)
		}
		pages = append(pages, domain.Page{Number: num, Lines: rowsToLines(rows)})
	}
	return pages, nil
}

func rowsToLines(rows pdf.Rows) []string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		var b strings.Builder
		for _, text := range row.Content {
			b.WriteString(text.S)
		}
		line := strings.TrimSpace(b.String())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
