package dto

// LineItemRequest is one operator-entered row; all fields arrive as raw text.
type LineItemRequest struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

// RecomputeRequest asks the calculator to re-derive all totals.
type RecomputeRequest struct {
	Items                  []LineItemRequest `json:"items"`
	ReferenceInvoiceAmount string            `json:"reference_invoice_amount"`
}

// CalculationResponse mirrors the read-only display fields of the form.
// All monetary values are rendered to exactly two decimal places here, at
// the presentation boundary.
type CalculationResponse struct {
	Subtotal               string   `json:"subtotal"`
	ReferenceInvoiceAmount string   `json:"reference_invoice_amount"`
	Difference             string   `json:"difference"`
	VAT                    string   `json:"vat"`
	TotalWithVAT           string   `json:"total_with_vat"`
	TotalWithVATThaiText   string   `json:"total_with_vat_thai_text"`
	ItemAmounts            []string `json:"item_amounts"` // "" for non-contributing rows
}

// ExportRequest carries everything the operator entered on the form.
// Dates are ISO (YYYY-MM-DD); blank dates default to today.
type ExportRequest struct {
	Items                  []LineItemRequest `json:"items"`
	ReferenceInvoiceAmount string            `json:"reference_invoice_amount"`
	IssueDate              string            `json:"issue_date"`
	InvoiceDate            string            `json:"invoice_date"`
	ReferenceInvoice       string            `json:"reference_invoice"`
	CustomerID             string            `json:"customer_id"`
	CustomerName           string            `json:"customer_name"`
	CustomerAddress        string            `json:"customer_address"`
	Reason                 string            `json:"reason"`
}

// ExportResponse reports the committed document and the regenerated preview
// number for the operator's next action.
type ExportResponse struct {
	DocumentNumber string              `json:"document_number"`
	OutputPath     string              `json:"output_path"`
	NextNumber     string              `json:"next_number"`
	Result         CalculationResponse `json:"result"`
}

// NextNumberResponse is the preview number for "today".
type NextNumberResponse struct {
	DocumentNumber string `json:"document_number"`
}

// DocumentRecordResponse is one committed audit entry.
type DocumentRecordResponse struct {
	ID               string `json:"id"`
	DocumentNumber   string `json:"document_number"`
	IssueDate        string `json:"issue_date"`
	IssueTime        string `json:"issue_time"`
	ReferenceInvoice string `json:"reference_invoice"`
	CustomerID       string `json:"customer_id"`
	CustomerName     string `json:"customer_name"`
	TotalWithVAT     string `json:"total_with_vat"`
}

// ErrorResponse is the uniform error body of the API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
