// Package numparse extracts integers from free-form text typed into score
// sheet fields. Parsing never fails: text without digits yields zero or an
// empty list.
package numparse

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// listSeparator is used when writing a normalized list back to a field.
const listSeparator = ", "

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// appendDigit returns 10*value + the digit c, saturating at math.MaxInt so a
// long run of digits never wraps negative.
func appendDigit(value int, c byte) int {
	d := int(c - '0')
	if value > (math.MaxInt-d)/10 {
		return math.MaxInt
	}
	return 10*value + d
}

// ExtractInt builds one integer from every digit found in text, read left to
// right ("a1b2c3" -> 123). When allowNegative is set, a '-' seen before the
// first digit makes the result negative; otherwise '-' is just another
// ignored character. Values too large for an int stop at math.MaxInt.
func ExtractInt(text string, allowNegative bool) int {
	value := 0
	seenDigit := false
	negative := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if allowNegative && !seenDigit && c == '-' {
			negative = true
			continue
		}
		if !isDigit(c) {
			continue
		}
		seenDigit = true
		value = appendDigit(value, c)
	}
	if negative {
		value = -value
	}
	return value
}

// ExtractIntList returns one integer per run of consecutive digits in text,
// in order of appearance. When allowNegative is set, a '-' immediately
// before the first digit of a run makes that run negative.
func ExtractIntList(text string, allowNegative bool) []int {
	values := []int{}
	curr := 0
	inRun := false
	negative := false

	flush := func() {
		if !inRun {
			return
		}
		if negative {
			curr = -curr
		}
		values = append(values, curr)
		curr, inRun, negative = 0, false, false
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		if !isDigit(c) {
			flush()
			continue
		}
		if allowNegative && !inRun && i > 0 && text[i-1] == '-' {
			negative = true
		}
		inRun = true
		curr = appendDigit(curr, c)
	}
	flush()
	return values
}

// DestinationList parses a destination ticket field: values are extracted
// without signs, sorted ascending, and the leading zeros are dropped since a
// zero-point ticket only comes from stray input.
func DestinationList(text string) []int {
	values := ExtractIntList(text, false)
	slices.Sort(values)
	firstNonZero := 0
	for firstNonZero < len(values) && values[firstNonZero] == 0 {
		firstNonZero++
	}
	return values[firstNonZero:]
}

// FormatList joins values the way a committed list field is displayed.
func FormatList(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, listSeparator)
}
