package entity

// DocumentRecord is one committed audit entry of the sequence log. Records
// are append-only: the application never edits or deletes them.
type DocumentRecord struct {
	ID               string `json:"id"`
	DocumentNumber   string `json:"credit_note_no"`
	IssueDate        string `json:"date"` // ISO date, the bucket key
	IssueTime        string `json:"time"` // HH:MM:SS
	ReferenceInvoice string `json:"invoice_ref"`
	CustomerID       string `json:"customer_id"`
	CustomerName     string `json:"customer_name"`
	TotalWithVAT     string `json:"total_with_vat"`
}

// SequenceLog maps ISO date strings to the documents issued that day, in
// issuance order. The next sequence for a day is always re-derived as
// len(bucket)+1, never cached.
type SequenceLog map[string][]DocumentRecord

// CountFor returns how many documents were issued on the given date key.
func (l SequenceLog) CountFor(dateKey string) int {
	return len(l[dateKey])
}
