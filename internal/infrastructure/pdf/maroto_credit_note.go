// Package pdf renders the graphic representation of a credit note as an A4
// page: header with document number and Buddhist-calendar date, customer
// block, item table, totals block and the baht-text line.
package pdf

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"
	"github.com/shopspring/decimal"

	"github.com/Thaworapong/credit-note/internal/domain/entity"
)

// Thai UTF-8 font shipped as an external asset next to the template; the
// built-in core fonts cannot represent Thai glyphs, so the baht-text line and
// customer names depend on these files being present.
const (
	fontFamily      = "sarabun"
	fontFileRegular = "Sarabun-Regular.ttf"
	fontFileBold    = "Sarabun-Bold.ttf"
)

var (
	colorPrimary = &props.Color{Red: 153, Green: 27, Blue: 27}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoRenderer implements creditnote.DocumentPDFRenderer using Maroto v2
// with the Sarabun font registered, so Thai content renders in the PDF the
// same as in the workbook.
type MarotoRenderer struct {
	fontDir string
}

// NewMarotoRenderer builds the renderer. fontDir must contain the Sarabun
// regular and bold TTF files.
func NewMarotoRenderer(fontDir string) *MarotoRenderer {
	return &MarotoRenderer{fontDir: fontDir}
}

// Render produces the PDF bytes for a populated credit note.
func (r *MarotoRenderer) Render(note *entity.CreditNote) ([]byte, error) {
	regular := filepath.Join(r.fontDir, fontFileRegular)
	bold := filepath.Join(r.fontDir, fontFileBold)
	fonts, err := repository.New().
		AddUTF8Font(fontFamily, fontstyle.Normal, regular).
		AddUTF8Font(fontFamily, fontstyle.Bold, bold).
		AddUTF8Font(fontFamily, fontstyle.Italic, regular).
		AddUTF8Font(fontFamily, fontstyle.BoldItalic, bold).
		Load()
	if err != nil {
		return nil, fmt.Errorf("pdf: load fonts from %s: %w", r.fontDir, err)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithCustomFonts(fonts).
		WithDefaultFont(&props.Font{Family: fontFamily, Size: 9}).
		WithTitle("Credit Note "+note.DocumentNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(note))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(note))
	m.AddRows(referenceRow(note))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, itemRow := range itemRows(note) {
		m.AddRows(itemRow)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(note))
	m.AddRows(bahtTextRow(note))
	if strings.TrimSpace(note.Reason) != "" {
		m.AddRows(reasonRow(note))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: document title on the left, number and issue date on the right.
func headerRow(note *entity.CreditNote) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("CREDIT NOTE", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Customer copy", props.Text{
				Size: 8, Top: 10, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(note.DocumentNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 2,
			}),
			text.New("Date: "+buddhistDate(note.IssueDate), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// customerRow: identifier, name and address of the credited customer.
func customerRow(note *entity.CreditNote) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("CUSTOMER", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   %s", note.CustomerID, note.CustomerName), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(note.CustomerAddress, props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

// referenceRow: the invoice being credited and its amount.
func referenceRow(note *entity.CreditNote) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Reference invoice: %s   |   Invoice date: %s   |   Invoice amount: %s",
				note.ReferenceInvoice,
				buddhistDate(note.InvoiceDate),
				formatAccounting(note.Result.ReferenceInvoiceAmount),
			), props.Text{Size: 8, Top: 3, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Qty", 2, align.Center),
		h("Description", 5, align.Left),
		h("Unit Price", 2, align.Right),
		h("Amount", 3, align.Right),
	)
}

// itemRows: one row per non-blank line item, contiguous like the workbook.
func itemRows(note *entity.CreditNote) []core.Row {
	rows := make([]core.Row, 0, len(note.Items))
	for i, item := range note.Items {
		amount := note.Result.ItemAmounts[i]
		if item.Blank() && amount == nil {
			continue
		}
		amountText := ""
		if amount != nil {
			amountText = formatAccounting(*amount)
		}
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(
				strings.TrimSpace(item.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				strings.TrimSpace(item.Description),
				props.Text{Size: 8, Align: align.Left, Top: 1},
			)),
			col.New(2).Add(text.New(
				strings.TrimSpace(item.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
			col.New(3).Add(text.New(
				amountText,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return rows
}

// totalsRow: right-aligned totals block.
func totalsRow(note *entity.CreditNote) core.Row {
	res := note.Result
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(30).Add(
		col.New(5),
		col.New(4).Add(
			label("Total credit:"),
			label("Difference:"),
			label("VAT 7%:"),
			grandLabel("TOTAL (incl. VAT):"),
		),
		col.New(3).Add(
			value(formatAccounting(res.Subtotal)),
			value(formatAccounting(res.Difference)),
			value(formatAccounting(res.VAT)),
			grandValue(formatAccounting(res.TotalWithVAT)),
		),
	)
}

func bahtTextRow(note *entity.CreditNote) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(note.Result.TotalWithVATThaiText, props.Text{
				Size: 9, Align: align.Center, Top: 2, Color: colorGray,
			}),
		),
	)
}

func reasonRow(note *entity.CreditNote) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("Reason for credit: "+note.Reason, props.Text{
				Size: 8, Top: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ──────────────────────────────────────────────────────────────────

// buddhistDate renders dd/mm/yyyy with the Buddhist year.
func buddhistDate(t time.Time) string {
	return fmt.Sprintf("%02d/%02d/%d", t.Day(), int(t.Month()), t.Year()+543)
}

// formatAccounting renders an amount with thousands separators, two decimals
// and parenthesized negatives, matching the workbook's accounting format.
func formatAccounting(d decimal.Decimal) string {
	neg := d.IsNegative()
	s := d.Abs().Round(2).StringFixed(2)
	parts := strings.SplitN(s, ".", 2)
	out := groupThousands(parts[0]) + "." + parts[1]
	if neg {
		return "(" + out + ")"
	}
	return out
}

// groupThousands inserts commas into an integer digit string.
// "1234567" → "1,234,567"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, s[i])
	}
	return string(buf)
}
