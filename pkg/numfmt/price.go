package numfmt

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatPrice renders a quoted price with two decimals, e.g. "1,234.50 円".
func FormatPrice(v float64) string { return Yen.FormatPrice(v) }

// FormatPrice renders v grouped by thousands with two decimals and the base unit.
// Rounding matches strconv on the binary value, so 0.125 renders as "0.12".
func (u Units) FormatPrice(v float64) string {
	return GroupFixed(v, 2) + " " + u.Base
}

// GroupFixed formats v with prec decimals and comma-separated thousands.
func GroupFixed(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")

	n, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		// Inf and NaN come back as words.
		return sign + s
	}
	out := sign + humanize.BigComma(n)
	if hasFrac {
		out += "." + frac
	}
	return out
}

// FormatDelta formats a price change the same way as FormatPrice.
func FormatDelta(v float64) string { return Yen.FormatDelta(v) }

// FormatDelta keeps the sign of v; a zero change renders unsigned.
func (u Units) FormatDelta(v float64) string {
	if v == 0 {
		v = 0 // drop negative zero
	}
	return u.FormatPrice(v)
}
