package parser

import (
	"regexp"
	"testing"
)

func TestSegmentByAnchor(t *testing.T) {
	anchor := regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}`)

	lines := []string{
		"Kontoauszug Nr. 3/2024",
		"Preamble before the first booking",
		"01.03.2024 Kartenzahlung -12,50",
		"REWE Markt GmbH",
		"Berlin",
		"02.03.2024 Lastschrift -45,00",
		"Telekom Deutschland",
	}

	blocks := SegmentByAnchor(lines, anchor)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if len(blocks[0].Lines) != 3 {
		t.Errorf("first block: got %d lines, want 3", len(blocks[0].Lines))
	}
	if len(blocks[1].Lines) != 2 {
		t.Errorf("second block: got %d lines, want 2", len(blocks[1].Lines))
	}
	if blocks[0].Lines[0] != "01.03.2024 Kartenzahlung -12,50" {
		t.Errorf("first block opens with %q", blocks[0].Lines[0])
	}
}

func TestSegmentByAnchor_NoAnchors(t *testing.T) {
	anchor := regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}`)

	blocks := SegmentByAnchor([]string{"header", "footer"}, anchor)
	if len(blocks) != 0 {
		t.Errorf("got %d blocks, want 0", len(blocks))
	}
}

func TestBlockText(t *testing.T) {
	b := Block{Lines: []string{"  first line ", "", "second"}}
	if got := b.Text(); got != "first line second" {
		t.Errorf("got %q", got)
	}
}
