package usecase

// TruncateText keeps the first limit characters of text. It counts runes, so
// a multi-byte character is never split.
func TruncateText(text string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	count := 0
	for idx := range text {
		if count == limit {
			return text[:idx]
		}
		count++
	}
	return text
}

// BuildClassificationPrompt renders the fixed PO/Invoice instruction around text.
func BuildClassificationPrompt(text string) string {
	return `Role: You are a Document Classifier.

Task:
Classify the document into EXACTLY ONE of the following categories:
- PO
- Invoice

Input Text:
` + text + `

Classification Rules (to be followed in order):

1. Invoice
   - If the document contains keywords such as: "Invoice", "Tax Invoice", "Bill To", or "Amount Due".
   - OR if it requests a payment.

2. PO (Purchase Order)
   - If the document contains keywords such as: "Purchase Order", "PO Number", "Order #", "Ship To".
   - AND it lists items to be bought/shipped.

Output Rules:
- Output ONLY one of the following exact strings:
  PO
  Invoice
- Do not add punctuation or explanations.
`
}
