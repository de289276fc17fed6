package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one row of the credit-note item table, exactly as entered by
// the operator. Quantity and unit price stay as raw text: unparsable or blank
// numeric entry degrades to zero during recomputation instead of blocking.
type LineItem struct {
	Description string
	Quantity    string
	UnitPrice   string
}

// Blank reports whether every field of the row is blank after trimming.
// Fully blank rows are skipped during export so the item table stays
// contiguous.
func (li LineItem) Blank() bool {
	return strings.TrimSpace(li.Description) == "" &&
		strings.TrimSpace(li.Quantity) == "" &&
		strings.TrimSpace(li.UnitPrice) == ""
}

// Contributes reports whether the row counts towards the subtotal. Only the
// description decides: rows without one never contribute, whatever their
// quantity and price say.
func (li LineItem) Contributes() bool {
	return strings.TrimSpace(li.Description) != ""
}

// CalculationResult carries the derived monetary values of a credit note.
// All decimals keep full precision; rounding to two places happens only at
// the presentation boundary (DTO rendering and workbook cells).
type CalculationResult struct {
	Subtotal               decimal.Decimal
	ReferenceInvoiceAmount decimal.Decimal
	Difference             decimal.Decimal
	VAT                    decimal.Decimal
	TotalWithVAT           decimal.Decimal
	TotalWithVATThaiText   string
	// ItemAmounts holds the per-row amount aligned with the input rows;
	// a nil entry marks a non-contributing row that renders empty.
	ItemAmounts []*decimal.Decimal
}

// CreditNote is the fully populated document handed to the exporters.
type CreditNote struct {
	DocumentNumber   string
	IssueDate        time.Time
	InvoiceDate      time.Time
	ReferenceInvoice string
	CustomerID       string
	CustomerName     string
	CustomerAddress  string
	Reason           string
	Items            []LineItem
	Result           CalculationResult
}
