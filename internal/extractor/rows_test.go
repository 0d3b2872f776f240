package extractor

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadRows_SemicolonDelimited(t *testing.T) {
	path := writeTemp(t, "umsaetze.csv",
		"IBAN;DE33200305700000123456\n"+
			"Referenznummer;Buchungsdatum;Betrag;Beschreibung\n"+
			"REF001;15.03.2024;-89,90;AMAZON PAYMENTS\n")

	rows, err := ReadRows(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	// Metadata rows and table rows have different widths.
	if len(rows[0]) != 2 {
		t.Errorf("meta row width: got %d", len(rows[0]))
	}
	if len(rows[2]) != 4 {
		t.Errorf("table row width: got %d", len(rows[2]))
	}
	if rows[2][3] != "AMAZON PAYMENTS" {
		t.Errorf("cell: got %q", rows[2][3])
	}
}

func TestReadRows_CommaDelimited(t *testing.T) {
	path := writeTemp(t, "export.csv",
		"Referenznummer,Buchungsdatum,Betrag,Beschreibung\n"+
			"REF001,2024-03-15,\"-89.90\",\"AMAZON, PAYMENTS\"\n")

	rows, err := ReadRows(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[1][3] != "AMAZON, PAYMENTS" {
		t.Errorf("quoted cell: got %q", rows[1][3])
	}
}

func TestReadRows_MissingFile(t *testing.T) {
	if _, err := ReadRows(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Error("expected error for a missing file")
	}
}
