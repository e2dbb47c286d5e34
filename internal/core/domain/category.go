package domain

import "time"

type CategoryKind string

const (
	CategoryExcelDocs       CategoryKind = "excel_docs"
	CategoryPurchaseOrder   CategoryKind = "purchase_order"
	CategoryInvoice         CategoryKind = "invoice"
	CategoryUnsurePdf       CategoryKind = "unsure_pdf"
	CategoryUnsupportedType CategoryKind = "unsupported_file_type"
	CategoryUnknown         CategoryKind = "unknown"
)

// Category is the terminal outcome of one pipeline run. Answer is only set
// for CategoryUnsurePdf and carries the raw model answer for diagnostics.
type Category struct {
	Kind   CategoryKind `json:"kind"`
	Answer string       `json:"answer,omitempty"`
}

func ExcelDocs() Category           { return Category{Kind: CategoryExcelDocs} }
func PurchaseOrder() Category       { return Category{Kind: CategoryPurchaseOrder} }
func Invoice() Category             { return Category{Kind: CategoryInvoice} }
func UnsupportedFileType() Category { return Category{Kind: CategoryUnsupportedType} }
func Unknown() Category             { return Category{Kind: CategoryUnknown} }

func UnsurePdf(answer string) Category {
	return Category{Kind: CategoryUnsurePdf, Answer: answer}
}

// String renders the label printed on the FINAL CLASSIFICATION line.
func (c Category) String() string {
	switch c.Kind {
	case CategoryExcelDocs:
		return "Excel docs"
	case CategoryPurchaseOrder:
		return "PO/pdf"
	case CategoryInvoice:
		return "Invoice/pdf"
	case CategoryUnsurePdf:
		return "Unsure/pdf (" + c.Answer + ")"
	case CategoryUnsupportedType:
		return "Unsupported File Type"
	default:
		return "Unknown"
	}
}

// ClassifierSettings is the read-only part of the classifier configuration
// the use cases need at request time.
type ClassifierSettings struct {
	CompartmentID string
	ModelID       string
	Temperature   float64
	MaxTokens     int
	TextLimit     int
}

// Page is one page of text lines as returned by an extraction backend, in reading order.
type Page struct {
	Number int
	Lines  []string
}

type ChatRequest struct {
	ModelID       string
	CompartmentID string
	Message       string
	Temperature   float64
	MaxTokens     int
}

type ClassificationResult struct {
	File          string        `json:"file"`
	Category      Category      `json:"category"`
	Label         string        `json:"label"`
	TextExtracted bool          `json:"text_extracted"`
	TextLength    int           `json:"text_length"`
	Answer        string        `json:"answer,omitempty"`
	Duration      time.Duration `json:"duration"`
}
