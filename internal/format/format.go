// Package format renders nullable financial figures for display.
//
// Every formatter takes a pointer so that a missing value can be told apart
// from zero; nil always renders as NotAvailable.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// NotAvailable is rendered for missing values.
const NotAvailable = "N/A"

// Number is any numeric kind the backend sends.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Currency formats a whole-dollar US amount: 3000000 -> "$3,000,000",
// -500000 -> "-$500,000".
func Currency[T Number](v *T) string {
	if v == nil {
		return NotAvailable
	}

	rounded := int64(math.Round(float64(*v)))
	if rounded < 0 {
		return "-$" + humanize.Comma(-rounded)
	}
	return "$" + humanize.Comma(rounded)
}

// Percent formats a fraction as a percentage with one decimal: 0.897 -> "89.7%".
func Percent[T Number](v *T) string {
	if v == nil {
		return NotAvailable
	}
	return fixed(float64(*v)*100, 1) + "%"
}

type compactUnit struct {
	suffix string
	size   float64
}

// Largest first.
var compactUnits = []compactUnit{
	{suffix: "T", size: 1e12},
	{suffix: "B", size: 1e9},
	{suffix: "M", size: 1e6},
	{suffix: "K", size: 1e3},
}

// CompactNumber formats a number in short notation with at most one decimal:
// 500 -> "500", 1000000 -> "1M", 1500000000 -> "1.5B".
func CompactNumber[T Number](v *T) string {
	if v == nil {
		return NotAvailable
	}

	f := float64(*v)
	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}

	// Walk from the smallest unit up so a value that rounds to 1000 of one
	// unit is promoted to the next ("999.96K" -> "1M").
	scaled, suffix := roundOne(f), ""
	for i := len(compactUnits) - 1; i >= 0; i-- {
		u := compactUnits[i]
		if f < u.size && scaled < 1000 {
			break
		}
		scaled, suffix = roundOne(f/u.size), u.suffix
		if scaled < 1000 {
			break
		}
	}

	if scaled == 0 {
		return "0"
	}
	return sign + humanize.FtoaWithDigits(scaled, 1) + suffix
}

// Count formats an integer counter with thousands separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}

func roundOne(f float64) float64 {
	return math.Round(f*10) / 10
}

// fixed renders f with exactly digits decimals and thousands separators in
// the integer part.
func fixed(f float64, digits int) string {
	s := strconv.FormatFloat(f, 'f', digits, 64)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac, _ := strings.Cut(s, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return sign + s
	}
	if frac == "" {
		return sign + humanize.Comma(n)
	}
	return sign + humanize.Comma(n) + "." + frac
}
