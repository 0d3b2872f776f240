package parser

import (
	"testing"

	"github.com/finleaf/statement-ledger/internal/models"
)

func TestDeutscheBankParser_Parse(t *testing.T) {
	p := NewDeutscheBank()

	lines := []string{
		"Deutsche Bank Privat- und Geschäftskunden AG",
		"IBAN DE45 5007 0024 0012 3456 00",
		"SEPA-Dauerauftrag an 01-03- 01-03- 850.00",
		"2024 1234 Mustermann, Max",
		"SEPA-Ueberweisung 15-03- 15-03- 1,200.00",
		"2024 5678 Arbeitgeber GmbH",
		"EUR 2,340.50",
	}

	info, err := Parse(p, lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if info.Account.IBAN != "DE45500700240012345600" {
		t.Errorf("account IBAN: got %q", info.Account.IBAN)
	}
	if !info.ClosingBalance.Valid || info.ClosingBalance.Decimal.String() != "2340.5" {
		t.Errorf("closing balance: got %+v", info.ClosingBalance)
	}
	if len(info.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(info.Transactions))
	}

	standing := info.Transactions[0]
	if standing.BookingDate.Format("2006-01-02") != "2024-03-01" {
		t.Errorf("booking date: got %s", standing.BookingDate)
	}
	if standing.Amount.String() != "850" {
		t.Errorf("amount: got %s", standing.Amount)
	}
	if standing.Payee != "Mustermann, Max" {
		t.Errorf("payee: got %q", standing.Payee)
	}
	if standing.TransactionType != models.TypeStandingOrder {
		t.Errorf("type: got %q", standing.TransactionType)
	}

	transfer := info.Transactions[1]
	if transfer.Amount.String() != "1200" {
		t.Errorf("amount: got %s", transfer.Amount)
	}
	if transfer.BookingDate.Format("2006-01-02") != "2024-03-15" {
		t.Errorf("booking date: got %s", transfer.BookingDate)
	}
	if transfer.Payee != "Arbeitgeber GmbH" {
		t.Errorf("payee: got %q", transfer.Payee)
	}
}

func TestDBIsTransactionLine(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"SEPA-Dauerauftrag an 01-03- 01-03- 850.00", true},
		{"SEPA-Lastschrift 02-03- 02-03- 49.99", true},
		{"Kontostand per 31.03.2024", false},
		{"SEPA mandate text without amount", false},
		{"ends in amount 850.00", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := dbIsTransactionLine(tt.input); got != tt.expected {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}
