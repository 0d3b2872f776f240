package extractor

import (
	"strings"
	"testing"
)

func TestIsReadableText(t *testing.T) {
	tests := []struct {
		name     string
		pages    []string
		expected bool
	}{
		{
			"german statement text",
			[]string{"Kontoauszug Nr. 3/2024 für Ihr Girokonto. Kontostand am 31.03.2024: 3.412,88 EUR. Buchungen im März."},
			true,
		},
		{
			"english statement text",
			[]string{"Your account statement for March 2024. Closing balance 3,412.88. All amounts in EUR."},
			true,
		},
		{
			"too short",
			[]string{"Kontoauszug"},
			false,
		},
		{
			"no statement vocabulary",
			[]string{strings.Repeat("lorem ipsum dolor sit amet ", 10)},
			false,
		},
		{
			"binary garbage",
			[]string{strings.Repeat("\x01\x02\x03\x7f\x00", 30)},
			false,
		},
		{
			"empty",
			nil,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isReadableText(tt.pages); got != tt.expected {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestExtractLines_MissingFile(t *testing.T) {
	if _, err := ExtractLines("does-not-exist.pdf"); err == nil {
		t.Error("expected error for a missing file")
	}
}
