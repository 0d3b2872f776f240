package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finleaf/statement-ledger/internal/models"
)

// N26Parser handles N26 app-export statement PDFs.
//
// Transactions are single lines of the form
//
//	REWE MARKT GMBH 14.05.2025 -23,40€
//
// with the counterparty IBAN on one of the next few lines
// ("IBAN: DE12 3456 ...").
type N26Parser struct {
	AccountName string
}

func NewN26() *N26Parser {
	return &N26Parser{AccountName: "N26"}
}

func (p *N26Parser) BankName() string {
	return "N26"
}

var (
	n26TxnPattern     = regexp.MustCompile(`^(.+?)\s+(\d{2}\.\d{2}\.\d{4})\s+([+-]?\d{1,3}(?:\.\d{3})*,\d{2})€`)
	n26IBANLabel      = regexp.MustCompile(`IBAN:\s*(DE\d{2}\s?\d{4}\s?\d{4}\s?\d{4}\s?\d{4}\s?\d{2})`)
	n26SpacedIBAN     = regexp.MustCompile(`(DE\d{2}\s?\d{4}\s?\d{4}\s?\d{4}\s?\d{4}\s?\d{2})`)
	n26ClosingBalance = regexp.MustCompile(`Dein neuer Kontostand\s*([+-]?\d{1,3}(?:\.\d{3})*,\d{2})€`)
)

// DetectAccount prefers an "IBAN:" label; failing that, the last IBAN-shaped
// token in the document (N26 prints the holder's IBAN in the footer).
func (p *N26Parser) DetectAccount(lines []string) models.ReferenceAccount {
	for _, line := range lines {
		if m := n26IBANLabel.FindStringSubmatch(line); m != nil {
			return models.ReferenceAccount{
				IBAN: strings.ReplaceAll(m[1], " ", ""),
				Name: p.AccountName,
			}
		}
	}
	for i := len(lines) - 1; i >= 0; i-- {
		if m := n26SpacedIBAN.FindStringSubmatch(lines[i]); m != nil {
			return models.ReferenceAccount{
				IBAN: strings.ReplaceAll(m[1], " ", ""),
				Name: p.AccountName,
			}
		}
	}
	return models.ReferenceAccount{IBAN: models.UnknownAccount, Name: p.AccountName}
}

func (p *N26Parser) ClosingBalance(lines []string) decimal.NullDecimal {
	for _, line := range lines {
		if m := n26ClosingBalance.FindStringSubmatch(line); m != nil {
			if d, ok := ParseGermanAmount(m[1]); ok {
				return decimal.NullDecimal{Decimal: d, Valid: true}
			}
		}
	}
	return decimal.NullDecimal{}
}

func (p *N26Parser) Segment(lines []string) []Block {
	return SegmentByAnchor(lines, n26TxnPattern)
}

func (p *N26Parser) ExtractFields(b Block, acct models.ReferenceAccount) models.Transaction {
	m := n26TxnPattern.FindStringSubmatch(b.Lines[0])
	if m == nil {
		return models.Transaction{
			ReferenceAccount:     acct.IBAN,
			ReferenceAccountName: acct.Name,
			Currency:             "EUR",
		}
	}

	payee := strings.TrimSpace(m[1])
	bookingDate, _ := time.Parse("02.01.2006", m[2])
	amount, _ := ParseGermanAmount(m[3])

	// The counterparty IBAN follows on a labeled line within the block.
	counterparty := ""
	for _, line := range b.Lines[1:] {
		if lm := n26IBANLabel.FindStringSubmatch(line); lm != nil {
			iban := strings.ReplaceAll(lm[1], " ", "")
			if iban != acct.IBAN {
				counterparty = iban
				break
			}
		}
	}

	return models.Transaction{
		BookingDate:          bookingDate,
		ReferenceAccount:     acct.IBAN,
		ReferenceAccountName: acct.Name,
		Amount:               amount,
		Currency:             "EUR",
		Payee:                payee,
		CounterpartyIBAN:     counterparty,
		Purpose:              b.Text(),
	}
}

func (p *N26Parser) Classify(purpose string) models.TransactionType {
	return ClassifyPurpose(DefaultTypeRules, purpose)
}
