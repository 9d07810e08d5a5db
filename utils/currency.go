package utils

import "strconv"

// FormatCurrencyVND formats an amount of Vietnamese dong for display.
// VND has no minor unit, so there is never a decimal part.
// Example: 40000 -> "40.000đ"
func FormatCurrencyVND(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)

	// Insert a dot every three digits from the right.
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}

	result := string(out) + "đ"
	if negative {
		return "-" + result
	}
	return result
}
