package parser

import (
	"testing"

	"github.com/finleaf/statement-ledger/internal/models"
)

func TestN26Parser_Parse(t *testing.T) {
	p := NewN26()

	lines := []string{
		"N26 Bank SE",
		"IBAN: DE12 3456 7890 1234 5678 90",
		"REWE MARKT GMBH 14.05.2025 -23,40€",
		"Kartenzahlung",
		"ARBEITGEBER GMBH 28.05.2025 +2.100,00€",
		"Überweisung Gehalt",
		"IBAN: DE88 1001 0010 0987 6543 21",
		"Dein neuer Kontostand 1.856,32€",
	}

	info, err := Parse(p, lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if info.Account.IBAN != "DE12345678901234567890" {
		t.Errorf("account IBAN: got %q", info.Account.IBAN)
	}
	if !info.ClosingBalance.Valid || info.ClosingBalance.Decimal.String() != "1856.32" {
		t.Errorf("closing balance: got %+v", info.ClosingBalance)
	}
	if len(info.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(info.Transactions))
	}

	card := info.Transactions[0]
	if card.Payee != "REWE MARKT GMBH" {
		t.Errorf("payee: got %q", card.Payee)
	}
	if card.BookingDate.Format("2006-01-02") != "2025-05-14" {
		t.Errorf("booking date: got %s", card.BookingDate)
	}
	if card.Amount.String() != "-23.4" {
		t.Errorf("amount: got %s", card.Amount)
	}
	if card.TransactionType != models.TypeCardPayment {
		t.Errorf("type: got %q", card.TransactionType)
	}

	salary := info.Transactions[1]
	if salary.Amount.String() != "2100" {
		t.Errorf("amount: got %s", salary.Amount)
	}
	if salary.CounterpartyIBAN != "DE88100100100987654321" {
		t.Errorf("counterparty IBAN: got %q", salary.CounterpartyIBAN)
	}
	if salary.TransactionType != models.TypeBankTransfer {
		t.Errorf("type: got %q", salary.TransactionType)
	}
}

func TestN26Parser_DetectAccount_FooterFallback(t *testing.T) {
	p := NewN26()

	// No "IBAN:" label anywhere; the footer IBAN is the holder's.
	acct := p.DetectAccount([]string{
		"N26 Bank SE",
		"DE12 3456 7890 1234 5678 90",
	})
	if acct.IBAN != "DE12345678901234567890" {
		t.Errorf("got %q", acct.IBAN)
	}
}
