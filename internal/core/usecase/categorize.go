package usecase

import (
	"path/filepath"
	"strings"

	"github.com/trinamix-ai/documantra-saas/internal/core/domain"
)

type DocumentKind int

const (
	DocumentKindOther DocumentKind = iota
	DocumentKindSpreadsheet
	DocumentKindPDF
)

// DocumentKindOf dispatches on the lower-cased file extension.
func DocumentKindOf(path string) DocumentKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls", ".csv":
		return DocumentKindSpreadsheet
	case ".pdf":
		return DocumentKindPDF
	default:
		return DocumentKindOther
	}
}

// Categorize maps a file and the model answer onto the taxonomy. Answer
// matching is a case-sensitive substring test and "PO" wins over "Invoice",
// so an answer such as "POSSIBLE Invoice" lands on PurchaseOrder.
func Categorize(path string, extracted bool, answer string) domain.Category {
	switch DocumentKindOf(path) {
	case DocumentKindSpreadsheet:
		return domain.ExcelDocs()
	case DocumentKindPDF:
		if !extracted {
			return domain.Unknown()
		}
		switch {
		case strings.Contains(answer, "PO"):
			return domain.PurchaseOrder()
		case strings.Contains(answer, "Invoice"):
			return domain.Invoice()
		default:
			return domain.UnsurePdf(answer)
		}
	default:
		return domain.UnsupportedFileType()
	}
}
