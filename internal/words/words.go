// Package words spells non-negative decimal amounts in English for
// price-in-words display, with a "point <cents>" suffix for the
// fractional part.
package words

import (
	"math"
	"strings"
)

var ones = [...]string{"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}

var tens = [...]string{"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety"}

var teens = [...]string{"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen", "eighteen", "nineteen"}

// FromAmount converts a non-negative decimal amount into its English
// spelling. The fractional part is taken at two-decimal (cents) precision:
// round((amount - floor(amount)) * 100). An amount of exactly 0 yields
// "zero". Every non-negative finite amount produces a string.
func FromAmount(amount float64) string {
	if amount == 0 {
		return "zero"
	}

	whole := int(math.Floor(amount))
	cents := int(math.Round((amount - math.Floor(amount)) * 100))

	var b strings.Builder
	b.WriteString(spellWhole(whole))
	if cents > 0 {
		b.WriteString("point ")
		b.WriteString(spellWhole(cents))
	}
	return strings.TrimSpace(b.String())
}

// spellWhole spells any non-negative integer with a trailing space, or ""
// for 0. Scale groups recurse on the leading group so no magnitude indexes
// past the digit tables.
func spellWhole(n int) string {
	switch {
	case n >= 1_000_000_000:
		return spellGroup(n, 1_000_000_000, "billion")
	case n >= 1_000_000:
		return spellGroup(n, 1_000_000, "million")
	case n >= 1_000:
		return spellGroup(n, 1_000, "thousand")
	default:
		return lessThanThousand(n)
	}
}

func spellGroup(n, scale int, name string) string {
	var b strings.Builder
	b.WriteString(spellWhole(n / scale))
	b.WriteString(name)
	b.WriteString(" ")
	if r := n % scale; r > 0 {
		b.WriteString(spellWhole(r))
	}
	return b.String()
}

// lessThanThousand spells n in [0,999] with a trailing space, or "" for 0.
func lessThanThousand(n int) string {
	if n == 0 {
		return ""
	}

	var b strings.Builder

	if n >= 100 {
		b.WriteString(ones[n/100])
		b.WriteString(" hundred ")
		n %= 100
		if n > 0 {
			b.WriteString("and ")
		}
	}

	if n >= 20 {
		b.WriteString(tens[n/10])
		b.WriteString(" ")
		n %= 10
	} else if n >= 10 {
		b.WriteString(teens[n-10])
		b.WriteString(" ")
		return b.String()
	}

	if n > 0 {
		b.WriteString(ones[n])
		b.WriteString(" ")
	}

	return b.String()
}
