package numfmt

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Units holds the words used to render large currency amounts.
type Units struct {
	Large       string // 10^12
	Minor       string // 10^8
	Base        string // currency suffix
	Placeholder string // returned for missing or non-numeric input
}

// Yen renders amounts with the Japanese 兆 / 億 grouping.
var Yen = Units{
	Large:       "兆",
	Minor:       "億",
	Base:        "円",
	Placeholder: "no data",
}

var (
	largeUnit = decimal.New(1, 12)
	minorUnit = decimal.New(1, 8)
)

// FormatMarketCap formats v with the Yen units.
func FormatMarketCap(v *float64) string { return Yen.FormatMarketCap(v) }

// FormatValue formats a loosely typed value with the Yen units.
func FormatValue(v any) string { return Yen.FormatValue(v) }

// WithPlaceholder returns a copy of u using p for missing values.
func (u Units) WithPlaceholder(p string) Units {
	u.Placeholder = p
	return u
}

// FormatMarketCap formats an optional market capitalization.
// A nil pointer, NaN or an infinity yields the placeholder.
func (u Units) FormatMarketCap(v *float64) string {
	if v == nil {
		return u.Placeholder
	}
	return u.FormatValue(*v)
}

// FormatValue classifies v as numeric or not before formatting it.
// Strings are never parsed: "123" is not a number here.
func (u Units) FormatValue(v any) string {
	d, ok := toDecimal(v)
	if !ok {
		return u.Placeholder
	}
	return u.format(d)
}

// format truncates inside the unit bands; only the base band rounds.
func (u Units) format(d decimal.Decimal) string {
	switch {
	case d.GreaterThanOrEqual(largeUnit):
		major, rem := d.QuoRem(largeUnit, 0)
		minor, _ := rem.QuoRem(minorUnit, 0)
		if minor.IsPositive() {
			return fmt.Sprintf("%s%s %s%s%s", major.String(), u.Large, minor.String(), u.Minor, u.Base)
		}
		return fmt.Sprintf("%s%s%s", major.String(), u.Large, u.Base)
	case d.GreaterThanOrEqual(minorUnit):
		minor, _ := d.QuoRem(minorUnit, 0)
		return fmt.Sprintf("%s%s%s", minor.String(), u.Minor, u.Base)
	default:
		return humanize.BigComma(d.RoundBank(0).BigInt()) + u.Base
	}
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case nil:
		return decimal.Decimal{}, false
	case decimal.Decimal:
		return x, true
	case *decimal.Decimal:
		if x == nil {
			return decimal.Decimal{}, false
		}
		return *x, true
	case json.Number:
		d, err := decimal.NewFromString(string(x))
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return decimal.Decimal{}, false
		}
		return toDecimal(rv.Elem().Interface())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(rv.Uint()), 0), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Decimal{}, false
		}
		if rv.Kind() == reflect.Float32 {
			return decimal.NewFromFloat32(float32(f)), true
		}
		return decimal.NewFromFloat(f), true
	default:
		return decimal.Decimal{}, false
	}
}
