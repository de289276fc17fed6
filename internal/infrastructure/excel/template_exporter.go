// Package excel populates the organization's credit-note workbook template.
// The template is treated as a black box: the code only knows the named
// cells it writes to and never touches the template's own layout.
package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Thaworapong/credit-note/internal/application/creditnote"
	"github.com/Thaworapong/credit-note/internal/domain/entity"
	"github.com/Thaworapong/credit-note/pkg/thai"
)

// Accounting display format: thousands separators, two decimals,
// parenthesized negatives.
const accountingNumFmt = `_(* #,##0.00_);_(* (#,##0.00);_(* "-"??_);_(@_)`

// The two near-identical sheets of the template. A template that lacks one
// of them is filled on the sheets it does have.
var sheetNames = []string{
	"ต้นฉบับ", // original
	"สำเนา",  // copy
}

// Fixed cell map of the template.
const (
	cellDocumentNumber  = "H3"
	cellCustomerID      = "D9"
	cellIssueDate       = "I9"
	cellCustomerName    = "B10"
	cellCustomerAddress = "B11"
	cellReferenceInv    = "D12"
	cellInvoiceDate     = "H12"
	cellReferenceAmount = "I26"
	cellSubtotal        = "I27"
	cellDifference      = "I28"
	cellVAT             = "I29"
	cellTotalWithVAT    = "I30"
	cellBahtText        = "A30"
	cellReason          = "D32"

	itemStartRow = 16
)

// TemplateExporter implements creditnote.WorkbookExporter with excelize.
type TemplateExporter struct {
	templatePath string
}

// NewTemplateExporter builds the exporter for the given template file.
func NewTemplateExporter(templatePath string) *TemplateExporter {
	return &TemplateExporter{templatePath: templatePath}
}

// Export opens the template, fills both sheets, and saves the workbook at
// outputPath, replacing any previous export of the same number.
func (e *TemplateExporter) Export(note *entity.CreditNote, outputPath string) error {
	f, err := excelize.OpenFile(e.templatePath)
	if err != nil {
		return fmt.Errorf("open template %s: %w", e.templatePath, err)
	}
	defer f.Close()

	numFmt := accountingNumFmt
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("create accounting style: %w", err)
	}

	for _, sheet := range sheetNames {
		idx, err := f.GetSheetIndex(sheet)
		if err != nil || idx < 0 {
			continue // sheet not present in this template
		}
		if err := populateSheet(f, sheet, note, moneyStyle); err != nil {
			return fmt.Errorf("populate sheet %s: %w", sheet, err)
		}
	}

	return saveAtomic(f, outputPath)
}

// saveAtomic writes the workbook to a temp file and renames it into place, so
// a failed save never leaves a truncated workbook at outputPath.
func saveAtomic(f *excelize.File, outputPath string) error {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".credit_note-*.xlsx")
	if err != nil {
		return fmt.Errorf("create temp workbook: %w", err)
	}
	tmpName := tmp.Name()
	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close workbook: %w", err)
	}
	if err := os.Rename(tmpName, outputPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// sheetWriter accumulates the first cell-level error so populateSheet reads
// as a straight sequence of cell assignments.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) set(cell string, value any) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellValue(w.sheet, cell, value)
}

func (w *sheetWriter) setMoney(cell string, value float64, style int) {
	w.set(cell, value)
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellStyle(w.sheet, cell, cell, style)
}

func populateSheet(f *excelize.File, sheet string, note *entity.CreditNote, moneyStyle int) error {
	w := &sheetWriter{f: f, sheet: sheet}
	res := note.Result

	w.set(cellDocumentNumber, note.DocumentNumber)
	w.set(cellIssueDate, buddhistDate(note.IssueDate))
	w.set(cellReferenceInv, note.ReferenceInvoice)
	w.set(cellInvoiceDate, buddhistDate(note.InvoiceDate))
	w.set(cellReferenceAmount, res.ReferenceInvoiceAmount.StringFixed(2))
	w.set(cellCustomerID, note.CustomerID)
	w.set(cellCustomerName, note.CustomerName)
	w.set(cellCustomerAddress, note.CustomerAddress)
	w.set(cellReason, note.Reason)

	w.setMoney(cellSubtotal, roundedFloat(res.Subtotal), moneyStyle)
	w.setMoney(cellDifference, roundedFloat(res.Difference), moneyStyle)
	w.setMoney(cellVAT, roundedFloat(res.VAT), moneyStyle)
	w.setMoney(cellTotalWithVAT, roundedFloat(res.TotalWithVAT), moneyStyle)
	w.set(cellBahtText, res.TotalWithVATThaiText)

	// Item table: blank rows are skipped, not left as gaps, so the cursor
	// advances only on written rows.
	row := itemStartRow
	for i, item := range note.Items {
		amount := res.ItemAmounts[i]
		if item.Blank() && amount == nil {
			continue
		}
		amountValue := 0.0
		if amount != nil {
			amountValue = roundedFloat(*amount)
		}
		qty, _ := creditnote.ParseAmount(item.Quantity).Float64()
		price, _ := creditnote.ParseAmount(item.UnitPrice).Float64()

		w.setMoney(fmt.Sprintf("A%d", row), qty, moneyStyle)
		w.set(fmt.Sprintf("B%d", row), strings.TrimSpace(item.Description))
		w.setMoney(fmt.Sprintf("G%d", row), price, moneyStyle)
		w.setMoney(fmt.Sprintf("I%d", row), amountValue, moneyStyle)
		row++
	}

	return w.err
}

// buddhistDate renders dd/mm/yyyy with the Buddhist year, digits normalized
// to ASCII.
func buddhistDate(t time.Time) string {
	s := fmt.Sprintf("%02d/%02d/%d", t.Day(), int(t.Month()), t.Year()+543)
	return thai.ToASCIIDigits(s)
}

func roundedFloat(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
