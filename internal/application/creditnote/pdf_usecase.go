package creditnote

import (
	"fmt"
	"time"

	"github.com/Thaworapong/credit-note/internal/application/dto"
	"github.com/Thaworapong/credit-note/internal/domain"
	"github.com/Thaworapong/credit-note/internal/domain/entity"
	"github.com/Thaworapong/credit-note/internal/domain/repository"
)

// PDFUseCase renders the graphic representation of a credit note. Rendering
// is stateless: it stamps the current preview number but commits nothing, so
// the operator can print a draft before exporting.
type PDFUseCase struct {
	store    repository.SequenceLogRepository
	renderer DocumentPDFRenderer
	now      func() time.Time
}

// NewPDFUseCase builds the use case.
func NewPDFUseCase(store repository.SequenceLogRepository, renderer DocumentPDFRenderer) *PDFUseCase {
	return &PDFUseCase{store: store, renderer: renderer, now: time.Now}
}

// GeneratePDF recomputes totals from the submitted inputs and renders the
// document as PDF bytes.
func (uc *PDFUseCase) GeneratePDF(in dto.ExportRequest) ([]byte, error) {
	now := uc.now()
	issueDate, err := parseISODate(in.IssueDate, now)
	if err != nil {
		return nil, fmt.Errorf("%w: issue_date %q", domain.ErrInvalidInput, in.IssueDate)
	}
	invoiceDate, err := parseISODate(in.InvoiceDate, now)
	if err != nil {
		return nil, fmt.Errorf("%w: invoice_date %q", domain.ErrInvalidInput, in.InvoiceDate)
	}

	seqLog, err := uc.store.Load()
	if err != nil {
		return nil, err
	}

	items := ItemsFromDTO(in.Items)
	note := &entity.CreditNote{
		DocumentNumber:   GenerateNumber(now, seqLog),
		IssueDate:        issueDate,
		InvoiceDate:      invoiceDate,
		ReferenceInvoice: in.ReferenceInvoice,
		CustomerID:       in.CustomerID,
		CustomerName:     in.CustomerName,
		CustomerAddress:  in.CustomerAddress,
		Reason:           in.Reason,
		Items:            items,
		Result:           Recompute(items, in.ReferenceInvoiceAmount),
	}
	return uc.renderer.Render(note)
}
