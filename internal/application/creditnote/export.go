package creditnote

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Thaworapong/credit-note/internal/application/dto"
	"github.com/Thaworapong/credit-note/internal/domain"
	"github.com/Thaworapong/credit-note/internal/domain/entity"
	"github.com/Thaworapong/credit-note/internal/domain/repository"
	"github.com/Thaworapong/credit-note/pkg/logger"
	"github.com/Thaworapong/credit-note/pkg/thai"
)

// ExportUseCase owns the numbering/export/commit critical section. The local
// HTTP surface serves requests concurrently even though the operator is
// singular, so load → generate → export → append runs under a mutex.
type ExportUseCase struct {
	store        repository.SequenceLogRepository
	exporter     WorkbookExporter
	templatePath string
	outputDir    string
	log          *logger.Logger

	mu  sync.Mutex
	now func() time.Time
}

// ExportOption customizes the use case at construction.
type ExportOption func(*ExportUseCase)

// WithClock replaces the wall clock that dates documents and scopes their
// sequence numbers; tests pin it to a fixed instant.
func WithClock(now func() time.Time) ExportOption {
	return func(uc *ExportUseCase) { uc.now = now }
}

// NewExportUseCase builds the use case.
func NewExportUseCase(
	store repository.SequenceLogRepository,
	exporter WorkbookExporter,
	templatePath, outputDir string,
	log *logger.Logger,
	opts ...ExportOption,
) *ExportUseCase {
	uc := &ExportUseCase{
		store:        store,
		exporter:     exporter,
		templatePath: templatePath,
		outputDir:    outputDir,
		log:          log,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// NextNumber returns the preview document number for today. Re-derived from
// the persisted log on every call; previews are only finalized by a
// successful export.
func (uc *ExportUseCase) NextNumber() (string, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	log, err := uc.store.Load()
	if err != nil {
		return "", err
	}
	return GenerateNumber(uc.now(), log), nil
}

// Export runs the full flow: recompute totals from the submitted inputs,
// populate the template, persist the workbook, commit the audit record, and
// regenerate the preview number.
//
// The number is assigned inside the critical section, so a crowded day can
// never hand the same number to two exports. If the log append fails after
// the workbook was written, the workbook is removed again: an export is only
// complete once both the file and the log entry exist.
func (uc *ExportUseCase) Export(in dto.ExportRequest) (*dto.ExportResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := uc.now()
	issueDate, err := parseISODate(in.IssueDate, now)
	if err != nil {
		return nil, fmt.Errorf("%w: issue_date %q", domain.ErrInvalidInput, in.IssueDate)
	}
	invoiceDate, err := parseISODate(in.InvoiceDate, now)
	if err != nil {
		return nil, fmt.Errorf("%w: invoice_date %q", domain.ErrInvalidInput, in.InvoiceDate)
	}

	if _, err := os.Stat(uc.templatePath); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, uc.templatePath)
	}

	seqLog, err := uc.store.Load()
	if err != nil {
		return nil, err
	}
	number := GenerateNumber(now, seqLog)

	items := ItemsFromDTO(in.Items)
	result := Recompute(items, in.ReferenceInvoiceAmount)

	note := &entity.CreditNote{
		DocumentNumber:   number,
		IssueDate:        issueDate,
		InvoiceDate:      invoiceDate,
		ReferenceInvoice: in.ReferenceInvoice,
		CustomerID:       in.CustomerID,
		CustomerName:     in.CustomerName,
		CustomerAddress:  in.CustomerAddress,
		Reason:           in.Reason,
		Items:            items,
		Result:           result,
	}

	outputPath := filepath.Join(uc.outputDir, number+".xlsx")
	if err := uc.exporter.Export(note, outputPath); err != nil {
		uc.log.Error().Err(err).Str("number", number).Msg("workbook export failed")
		return nil, fmt.Errorf("export workbook: %w", err)
	}

	record := entity.DocumentRecord{
		ID:               uuid.New().String(),
		DocumentNumber:   number,
		IssueDate:        DateKey(now),
		IssueTime:        now.Format("15:04:05"),
		ReferenceInvoice: in.ReferenceInvoice,
		CustomerID:       in.CustomerID,
		CustomerName:     in.CustomerName,
		TotalWithVAT:     result.TotalWithVAT.StringFixed(2),
	}
	if err := uc.store.Append(record); err != nil {
		// Compensating cleanup: without a log entry the workbook must not
		// survive, or the file and the log would diverge.
		if rmErr := os.Remove(outputPath); rmErr != nil {
			uc.log.Error().Err(rmErr).Str("path", outputPath).
				Msg("could not remove workbook after failed log append")
		}
		return nil, err
	}

	seqLog[record.IssueDate] = append(seqLog[record.IssueDate], record)
	next := GenerateNumber(now, seqLog)

	uc.log.Info().
		Str("number", number).
		Str("path", outputPath).
		Str("total_with_vat", record.TotalWithVAT).
		Msg("credit note exported")

	resp := &dto.ExportResponse{
		DocumentNumber: number,
		OutputPath:     outputPath,
		NextNumber:     next,
		Result:         CalculationToDTO(result),
	}
	return resp, nil
}

// History lists committed documents, optionally restricted to one ISO date.
func (uc *ExportUseCase) History(dateKey string) ([]dto.DocumentRecordResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	seqLog, err := uc.store.Load()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(seqLog))
	if dateKey != "" {
		keys = append(keys, dateKey)
	} else {
		for k := range seqLog {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}

	out := make([]dto.DocumentRecordResponse, 0)
	for _, k := range keys {
		for _, r := range seqLog[k] {
			out = append(out, dto.DocumentRecordResponse{
				ID:               r.ID,
				DocumentNumber:   r.DocumentNumber,
				IssueDate:        r.IssueDate,
				IssueTime:        r.IssueTime,
				ReferenceInvoice: r.ReferenceInvoice,
				CustomerID:       r.CustomerID,
				CustomerName:     r.CustomerName,
				TotalWithVAT:     r.TotalWithVAT,
			})
		}
	}
	return out, nil
}

// ItemsFromDTO maps submitted rows onto domain line items.
func ItemsFromDTO(rows []dto.LineItemRequest) []entity.LineItem {
	items := make([]entity.LineItem, len(rows))
	for i, r := range rows {
		items[i] = entity.LineItem{
			Description: r.Description,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
		}
	}
	return items
}

// CalculationToDTO renders a result for display: every monetary field to
// exactly two decimal places, ASCII digits.
func CalculationToDTO(res entity.CalculationResult) dto.CalculationResponse {
	amounts := make([]string, len(res.ItemAmounts))
	for i, a := range res.ItemAmounts {
		if a != nil {
			amounts[i] = a.StringFixed(2)
		}
	}
	return dto.CalculationResponse{
		Subtotal:               res.Subtotal.StringFixed(2),
		ReferenceInvoiceAmount: res.ReferenceInvoiceAmount.StringFixed(2),
		Difference:             res.Difference.StringFixed(2),
		VAT:                    res.VAT.StringFixed(2),
		TotalWithVAT:           res.TotalWithVAT.StringFixed(2),
		TotalWithVATThaiText:   res.TotalWithVATThaiText,
		ItemAmounts:            amounts,
	}
}

// parseISODate parses an operator-entered ISO date; blank falls back to def.
func parseISODate(s string, def time.Time) (time.Time, error) {
	s = strings.TrimSpace(thai.ToASCIIDigits(s))
	if s == "" {
		return def, nil
	}
	return time.Parse("2006-01-02", s)
}
