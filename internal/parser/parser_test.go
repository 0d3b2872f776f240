package parser

import (
	"testing"

	"github.com/finleaf/statement-ledger/internal/models"
)

func TestAutoDetect(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected models.BankType
		wantErr  bool
	}{
		{
			"dkb by full name",
			[]string{"Deutsche Kreditbank AG", "Kontoauszug"},
			models.BankDKB,
			false,
		},
		{
			"dkb wins over deutsche bank substring",
			[]string{"Deutsche Kreditbank", "Deutsche Bank"},
			models.BankDKB,
			false,
		},
		{
			"n26 by bank name",
			[]string{"N26 Bank SE", "Kontoauszug"},
			models.BankN26,
			false,
		},
		{
			"n26 by balance phrase",
			[]string{"Dein neuer Kontostand 1.856,32€"},
			models.BankN26,
			false,
		},
		{
			"n26 by bic",
			[]string{"BIC: NTSBDEB1XXX"},
			models.BankN26,
			false,
		},
		{
			"deutsche bank",
			[]string{"Deutsche Bank Privat- und Geschäftskunden AG"},
			models.BankDeutscheBank,
			false,
		},
		{
			"barclays",
			[]string{"Barclays Bank Ireland PLC"},
			models.BankBarclays,
			false,
		},
		{
			"unknown",
			[]string{"Sparkasse Musterstadt"},
			"",
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AutoDetect(tt.lines)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	for _, bank := range []models.BankType{models.BankDKB, models.BankN26, models.BankDeutscheBank} {
		if _, err := New(bank); err != nil {
			t.Errorf("New(%q): %v", bank, err)
		}
	}
	if _, err := New(models.BankBarclays); err == nil {
		t.Error("expected error for tabular-only variant")
	}
	if _, err := New("hsbc"); err == nil {
		t.Error("expected error for unknown bank")
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	p := NewDKB()

	info, err := Parse(p, []string{"Deutsche Kreditbank AG", "no bookings"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(info.Transactions) != 0 {
		t.Errorf("got %d transactions, want 0", len(info.Transactions))
	}
}
