package ingest

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/divan/num2words"
	"github.com/shopspring/decimal"
)

const defaultDiamondPhrase = "Natural Diamonds"

var earringVariants = map[string]bool{
	"earring":   true,
	"ear rings": true,
	"ear-ring":  true,
	"ear-rings": true,
}

// diamondCount parses the cell as a decimal and truncates toward zero.
// Unparseable cells count as 0.
func diamondCount(raw string) int {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return int(d.IntPart())
}

// countWords spells n as cardinal English words without hyphens, e.g. 21 -> "Twenty one".
func countWords(n int) string {
	return capitalize(strings.ReplaceAll(num2words.Convert(n), "-", " "))
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// normalizeJewel maps earring spellings to "pair of earrings".
func normalizeJewel(desc string) string {
	if earringVariants[strings.ToLower(desc)] {
		return "pair of earrings"
	}
	return desc
}

func describe(metalColor, jewel, grossWeight string, count int, phrase string) string {
	return fmt.Sprintf("One %s %s, weighing in total %sg, containing, %s (%d) %s",
		metalColor, jewel, grossWeight, countWords(count), count, phrase)
}

func shapeAndCut(count int, shape string) string {
	return fmt.Sprintf("(%d) %s Brilliant", count, shape)
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
