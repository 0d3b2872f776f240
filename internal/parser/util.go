package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Number and identifier patterns shared by the German statement variants.
var (
	// German amount: dot thousands separator, comma decimal ("1.234,56").
	germanAmountPattern = regexp.MustCompile(`[-+]?\d{1,3}(?:\.\d{3})*,\d{2}`)
	// Inverse convention: comma thousands, dot decimal ("1,234.56").
	dotAmountPattern = regexp.MustCompile(`[+-]?\d+(?:,\d{3})*\.\d{2}`)
	// German IBAN with the whitespace already stripped.
	ibanPattern = regexp.MustCompile(`DE\d{20}`)
	// Merchant reference codes: five or more leading digits.
	longCodePattern = regexp.MustCompile(`^\d{5,}`)
)

// ParseGermanAmount converts "1.234,56" / "-12,50" to a decimal.
// The bool reports whether the string was a well-formed amount.
func ParseGermanAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if !germanAmountPattern.MatchString(s) {
		return decimal.Zero, false
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// LastGermanAmount returns the final amount-shaped token in a line.
// Statement lines put the booking amount after the descriptive text, so the
// last occurrence is the one that counts.
func LastGermanAmount(line string) (decimal.Decimal, bool) {
	matches := germanAmountPattern.FindAllString(line, -1)
	if len(matches) == 0 {
		return decimal.Zero, false
	}
	return ParseGermanAmount(matches[len(matches)-1])
}

// LastDotAmount returns the final dot-decimal amount in a line, for layouts
// that use the comma-thousands convention.
func LastDotAmount(line string) (decimal.Decimal, bool) {
	matches := dotAmountPattern.FindAllString(line, -1)
	if len(matches) == 0 {
		return decimal.Zero, false
	}
	s := strings.ReplaceAll(matches[len(matches)-1], ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// CleanNumber parses a cell value that may carry currency symbols, stray
// spaces, and either separator convention. Unparseable input yields zero
// rather than an error: a bad amount must not discard the whole row.
func CleanNumber(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	s = regexp.MustCompile(`[^\d,.\-+]`).ReplaceAllString(s, "")
	if s == "" {
		return decimal.Zero
	}
	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ".", "")
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FindIBANs returns every IBAN-shaped token in the text, in order of
// occurrence, excluding the holder's own IBAN. Whitespace is stripped first
// because PDF extraction splits IBANs across space runs.
func FindIBANs(text, ownIBAN string) []string {
	stripped := regexp.MustCompile(`\s+`).ReplaceAllString(text, "")
	var ibans []string
	for _, iban := range ibanPattern.FindAllString(stripped, -1) {
		if ownIBAN != "" && iban == ownIBAN {
			continue
		}
		ibans = append(ibans, iban)
	}
	return ibans
}

// CounterpartyIBAN picks the counterparty from a block: the last IBAN-shaped
// token wins, matching how statements place it after sender metadata.
func CounterpartyIBAN(blockText, ownIBAN string) string {
	ibans := FindIBANs(blockText, ownIBAN)
	if len(ibans) == 0 {
		return ""
	}
	return ibans[len(ibans)-1]
}

// ScanPayee extracts the payee from the text immediately following the
// amount token. Words accumulate until a stop word (bank jargon, reference
// code prefixes) or a long numeric code appears. If nothing survives, the
// first non-stop-word token is the fallback.
func ScanPayee(blockText string, stopWords []string) string {
	loc := germanAmountPattern.FindStringIndex(blockText)
	if loc == nil {
		return ""
	}
	words := strings.Fields(strings.TrimSpace(blockText[loc[1]:]))

	isStop := func(word string) bool {
		for _, stop := range stopWords {
			if strings.HasPrefix(word, stop) {
				return true
			}
		}
		return false
	}

	var payeeWords []string
	for _, word := range words {
		if isStop(word) || longCodePattern.MatchString(word) {
			break
		}
		payeeWords = append(payeeWords, word)
	}
	if len(payeeWords) > 0 {
		return strings.Join(payeeWords, " ")
	}

	for _, word := range words {
		if !isStop(word) {
			return word
		}
	}
	return ""
}
