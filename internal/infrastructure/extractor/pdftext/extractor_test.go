package pdftext

import (
	"context"
	"testing"

	"github.com/ledongthuc/pdf"

	"github.com/trinamix-ai/documantra-saas/internal/core/domain"
)

func TestRowsToLinesJoinsRowText(t *testing.T) {
	rows := pdf.Rows{
		{Position: 700, Content: pdf.TextHorizontal{{S: "Purchase "}, {S: "Order"}}},
		{Position: 680, Content: pdf.TextHorizontal{{S: "   "}}},
		{Position: 660, Content: pdf.TextHorizontal{{S: "PO Number: 17"}}},
	}

	lines := rowsToLines(rows)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), lines)
	}
	if lines[0] != "Purchase Order" || lines[1] != "PO Number: 17" {
		t.Fatalf("unexpected lines %q", lines)
	}
}

func TestExtractTextRejectsEmptyInput(t *testing.T) {
	_, err := NewExtractor().ExtractText(context.Background(), nil, "")
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestExtractTextFailsOnNonPDF(t *testing.T) {
	_, err := NewExtractor().ExtractText(context.Background(), []byte("plain text, not a pdf"), "")
	if err == nil {
		t.Fatalf("expected error for non-pdf input")
	}
}
