package enrich

import (
	"regexp"
	"strings"
)

// noisePatterns strip statement boilerplate from the classifier input text:
// card-processing jargon, customer/invoice number tails, URLs, and embedded
// monetary values, none of which carry category signal.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)issuer`),
	regexp.MustCompile(`(?i)visa\s+debitkartenumsatz`),
	regexp.MustCompile(`(?i)karten?abrechnung.*?`),
	regexp.MustCompile(`(?i)kundennummer.*?`),
	regexp.MustCompile(`(?i)rechnung.*?`),
	regexp.MustCompile(`(?i)darlehensrate.*?`),
	regexp.MustCompile(`(?i)www\.\S+`),
	regexp.MustCompile(`\d{3,}[.,]\d{2}`),
}

// CleanText removes the noise patterns and trims the result.
func CleanText(text string) string {
	for _, pattern := range noisePatterns {
		text = pattern.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(spaceRuns.ReplaceAllString(text, " "))
}

var spaceRuns = regexp.MustCompile(`\s+`)
