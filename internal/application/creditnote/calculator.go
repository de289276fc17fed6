package creditnote

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Thaworapong/credit-note/internal/domain/entity"
	"github.com/Thaworapong/credit-note/pkg/thai"
)

// Thailand standard VAT rate, charged only on a positive residual between
// the reference invoice amount and the credited subtotal.
var vatRate = decimal.New(7, -2)

// ParseAmount parses operator-entered numeric text. Thai digits are
// normalized first; blank or unparsable text degrades to zero so a typo
// never blocks recomputation.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(thai.ToASCIIDigits(s))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Recompute derives every monetary field of the credit note from scratch.
// It is pure and is invoked in full after any edit; there is no incremental
// patching, so cached partial sums can never drift from the current inputs.
//
// Rules:
//   - a row contributes only if its description is non-blank after trimming
//   - amount = quantity × unitPrice, summed at full precision
//   - difference = referenceInvoiceAmount − subtotal
//   - difference > 0: vat = difference × 7%, total = difference + vat;
//     otherwise vat = 0 and total = difference (possibly negative)
//   - the Thai text rendering of the total degrades to "" on conversion
//     failure; rounding to two places happens only at presentation
func Recompute(items []entity.LineItem, referenceInvoiceAmount string) entity.CalculationResult {
	res := entity.CalculationResult{
		ItemAmounts: make([]*decimal.Decimal, len(items)),
	}

	subtotal := decimal.Zero
	for i, item := range items {
		if !item.Contributes() {
			continue
		}
		amount := ParseAmount(item.Quantity).Mul(ParseAmount(item.UnitPrice))
		res.ItemAmounts[i] = &amount
		subtotal = subtotal.Add(amount)
	}

	res.Subtotal = subtotal
	res.ReferenceInvoiceAmount = ParseAmount(referenceInvoiceAmount)
	res.Difference = res.ReferenceInvoiceAmount.Sub(subtotal)

	if res.Difference.IsPositive() {
		res.VAT = res.Difference.Mul(vatRate)
		res.TotalWithVAT = res.Difference.Add(res.VAT)
	} else {
		res.VAT = decimal.Zero
		res.TotalWithVAT = res.Difference
	}

	if text, err := thai.BahtText(res.TotalWithVAT.Round(2)); err == nil {
		res.TotalWithVATThaiText = text
	}
	return res
}
