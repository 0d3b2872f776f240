package parser

import (
	"strings"
	"testing"

	"github.com/finleaf/statement-ledger/internal/models"
)

func TestDKBParser_Parse(t *testing.T) {
	p := NewDKB()

	lines := []string{
		"Deutsche Kreditbank AG",
		"Kontoauszug Nr. 3/2024",
		"IBAN: DE02 1203 0000 0000 2020 51",
		"01.03.2024 01.03.2024 Kartenzahlung -12,50 RESTAURANT ABC",
		"Berlin",
		"05.03.2024 05.03.2024 Basislastschrift -49,99 Telekom Deutschland",
		"Gläubiger-ID: DE83ZZZ00000123456",
		"DE88 1001 0010 0987 6543 21",
		"28.03.2024 28.03.2024 Überweisung +2.500,00 Arbeitgeber GmbH",
		"Gehalt März",
		"Kontostand am 31.03.2024 3.412,88 EUR",
	}

	info, err := Parse(p, lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if info.Account.IBAN != "DE02120300000000202051" {
		t.Errorf("account IBAN: got %q", info.Account.IBAN)
	}
	if !info.ClosingBalance.Valid || info.ClosingBalance.Decimal.String() != "3412.88" {
		t.Errorf("closing balance: got %+v", info.ClosingBalance)
	}
	if len(info.Transactions) != 3 {
		t.Fatalf("got %d transactions, want 3", len(info.Transactions))
	}

	card := info.Transactions[0]
	if card.BookingDate.Format("2006-01-02") != "2024-03-01" {
		t.Errorf("booking date: got %s", card.BookingDate)
	}
	if card.Amount.String() != "-12.5" {
		t.Errorf("amount: got %s", card.Amount)
	}
	if card.TransactionType != models.TypeCardPayment {
		t.Errorf("type: got %q", card.TransactionType)
	}
	if card.Payee != "RESTAURANT ABC Berlin" {
		t.Errorf("payee: got %q", card.Payee)
	}
	if card.AnalyzedAmount != "Expenses" {
		t.Errorf("analyzed amount: got %q", card.AnalyzedAmount)
	}

	debit := info.Transactions[1]
	if debit.TransactionType != models.TypeDirectDebit {
		t.Errorf("type: got %q", debit.TransactionType)
	}
	if debit.CounterpartyIBAN != "DE88100100100987654321" {
		t.Errorf("counterparty IBAN: got %q", debit.CounterpartyIBAN)
	}

	salary := info.Transactions[2]
	if salary.Amount.String() != "2500" {
		t.Errorf("amount: got %s", salary.Amount)
	}
	if salary.AnalyzedAmount != "Income" {
		t.Errorf("analyzed amount: got %q", salary.AnalyzedAmount)
	}
	if salary.Payer != salary.Payee {
		t.Errorf("incoming payment should set payer, got %q", salary.Payer)
	}
}

func TestDKBParser_SingleLineBlock(t *testing.T) {
	p := NewDKB()

	info, err := Parse(p, []string{"01.03.2024 RESTAURANT ABC 12,50 Kartenzahlung"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(info.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(info.Transactions))
	}

	txn := info.Transactions[0]
	if txn.BookingDate.Format("2006-01-02") != "2024-03-01" {
		t.Errorf("booking date: got %s", txn.BookingDate)
	}
	if txn.Amount.String() != "12.5" {
		t.Errorf("amount: got %s", txn.Amount)
	}
	if !strings.Contains(txn.Purpose, "Kartenzahlung") {
		t.Errorf("purpose: got %q", txn.Purpose)
	}
	if txn.TransactionType != models.TypeCardPayment {
		t.Errorf("type: got %q", txn.TransactionType)
	}
}

func TestDKBParser_NoAccount(t *testing.T) {
	p := NewDKB()

	acct := p.DetectAccount([]string{"no iban anywhere"})
	if acct.IBAN != models.UnknownAccount {
		t.Errorf("got %q, want unknown sentinel", acct.IBAN)
	}
}

func TestDKBParser_NoClosingBalance(t *testing.T) {
	p := NewDKB()

	if bal := p.ClosingBalance([]string{"01.03.2024 Kartenzahlung -12,50"}); bal.Valid {
		t.Errorf("expected invalid balance, got %s", bal.Decimal)
	}
}
