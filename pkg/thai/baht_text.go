package thai

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Reading scale: up to and including 16 integer digits (หนึ่งสิบล้านล้าน...).
// Anything wider has no conventional cheque reading and is rejected.
const maxIntegerDigits = 16

var (
	digitNames = [10]string{"ศูนย์", "หนึ่ง", "สอง", "สาม", "สี่", "ห้า", "หก", "เจ็ด", "แปด", "เก้า"}
	placeNames = [6]string{"", "สิบ", "ร้อย", "พัน", "หมื่น", "แสน"}
)

// BahtText renders an amount as cheque-style Thai text, the reading printed
// on the amount line of Thai financial documents. Examples:
//
//	80.25   → "แปดสิบบาทยี่สิบห้าสตางค์"
//	100     → "หนึ่งร้อยบาทถ้วน"
//	-100    → "ลบหนึ่งร้อยบาทถ้วน"
//
// The amount is rounded to satang (2 places) first. Amounts whose integer
// part is wider than 16 digits return an error; callers rendering documents
// degrade the text to empty instead of failing the document.
func BahtText(amount decimal.Decimal) (string, error) {
	amount = amount.Round(2)

	var b strings.Builder
	if amount.IsNegative() {
		b.WriteString("ลบ")
		amount = amount.Neg()
	}

	baht := amount.Truncate(0)
	satang := amount.Sub(baht).Mul(decimal.NewFromInt(100)).IntPart()

	bahtDigits := baht.String()
	if len(bahtDigits) > maxIntegerDigits {
		return "", fmt.Errorf("thai: amount %s exceeds the supported reading scale", amount)
	}

	switch {
	case baht.IsZero() && satang == 0:
		return "ศูนย์บาทถ้วน", nil
	case baht.IsZero():
		b.WriteString(readInteger(fmt.Sprintf("%d", satang)))
		b.WriteString("สตางค์")
		return b.String(), nil
	}

	b.WriteString(readInteger(bahtDigits))
	b.WriteString("บาท")
	if satang == 0 {
		b.WriteString("ถ้วน")
	} else {
		b.WriteString(readInteger(fmt.Sprintf("%d", satang)))
		b.WriteString("สตางค์")
	}
	return b.String(), nil
}

// readInteger reads a non-negative ASCII digit string. Groups of six digits
// are joined by ล้าน, so "1000000000000" reads หนึ่งล้านล้าน.
func readInteger(s string) string {
	var groups []string
	for len(s) > 6 {
		groups = append([]string{s[len(s)-6:]}, groups...)
		s = s[:len(s)-6]
	}
	groups = append([]string{s}, groups...)

	var b strings.Builder
	for i, g := range groups {
		b.WriteString(readGroup(g, anyNonZero(groups[:i])))
		if i < len(groups)-1 {
			b.WriteString("ล้าน")
		}
	}
	return b.String()
}

// readGroup reads a group of up to six digits. hasHigher reports whether any
// more-significant group carries a non-zero digit, which turns a trailing
// หนึ่ง into เอ็ด (e.g. 1000001 → หนึ่งล้านเอ็ด).
func readGroup(g string, hasHigher bool) string {
	g = strings.TrimLeft(g, "0")
	if g == "" {
		return ""
	}

	n := len(g)
	var b strings.Builder
	for i := 0; i < n; i++ {
		d := int(g[i] - '0')
		place := n - 1 - i
		if d == 0 {
			continue
		}
		switch place {
		case 0:
			if d == 1 && (hasHigher || n > 1) {
				b.WriteString("เอ็ด")
			} else {
				b.WriteString(digitNames[d])
			}
		case 1:
			switch d {
			case 1:
				b.WriteString("สิบ")
			case 2:
				b.WriteString("ยี่สิบ")
			default:
				b.WriteString(digitNames[d])
				b.WriteString("สิบ")
			}
		default:
			b.WriteString(digitNames[d])
			b.WriteString(placeNames[place])
		}
	}
	return b.String()
}

func anyNonZero(groups []string) bool {
	for _, g := range groups {
		if strings.TrimLeft(g, "0") != "" {
			return true
		}
	}
	return false
}
