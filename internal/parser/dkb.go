package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finleaf/statement-ledger/internal/models"
)

// DKBParser handles DKB (Deutsche Kreditbank) account statement PDFs.
//
// Each transaction opens with a booking-date line:
//
//	01.03.2024 01.03.2024 Kartenzahlung ... -12,50
//
// Continuation lines carry the rest of the purpose text, the counterparty
// name and, for SEPA bookings, the counterparty IBAN.
type DKBParser struct {
	AccountName string
}

func NewDKB() *DKBParser {
	return &DKBParser{AccountName: "DKB Girokonto"}
}

func (p *DKBParser) BankName() string {
	return "DKB"
}

var dkbDateAnchor = regexp.MustCompile(`^(\d{2}\.\d{2}\.\d{4})`)

// Stop words that end the payee scan: customer/reference number prefixes and
// bank jargon that follows the payee in DKB booking text.
var dkbStopWords = []string{"Kd.", "Kunden", "RG-N", "Rechnung", "Gläubiger-ID:", "KM-", "EUR", "r.F", "IBAN"}

// DetectAccount scans the first ~50 lines for an IBAN-shaped token; the
// first match is the statement holder's account.
func (p *DKBParser) DetectAccount(lines []string) models.ReferenceAccount {
	head := lines
	if len(head) > 50 {
		head = head[:50]
	}
	for _, line := range head {
		stripped := strings.Join(strings.Fields(line), "")
		if iban := ibanPattern.FindString(stripped); iban != "" {
			return models.ReferenceAccount{IBAN: iban, Name: p.AccountName}
		}
	}
	return models.ReferenceAccount{IBAN: models.UnknownAccount, Name: p.AccountName}
}

var dkbBalanceTail = regexp.MustCompile(`([\d\.,]+)\s*(?:EUR)?\s*$`)

// ClosingBalance finds the "Kontostand am ..." line closest to the end of
// the document and parses its trailing amount.
func (p *DKBParser) ClosingBalance(lines []string) decimal.NullDecimal {
	for i := len(lines) - 1; i >= 0; i-- {
		if !strings.Contains(lines[i], "Kontostand am") {
			continue
		}
		if m := dkbBalanceTail.FindStringSubmatch(lines[i]); m != nil {
			return decimal.NullDecimal{Decimal: CleanNumber(m[1]), Valid: true}
		}
		break
	}
	return decimal.NullDecimal{}
}

func (p *DKBParser) Segment(lines []string) []Block {
	return SegmentByAnchor(lines, dkbDateAnchor)
}

func (p *DKBParser) ExtractFields(b Block, acct models.ReferenceAccount) models.Transaction {
	line0 := b.Lines[0]

	var bookingDate time.Time
	dateStr := dkbDateAnchor.FindString(line0)
	if dateStr != "" {
		bookingDate, _ = time.Parse("02.01.2006", dateStr)
	}

	amount, _ := LastGermanAmount(line0)

	// Purpose = first line minus the leading date, plus all continuation
	// lines, joined into one normalized string.
	parts := []string{strings.TrimSpace(line0[len(dateStr):])}
	for _, line := range b.Lines[1:] {
		parts = append(parts, strings.TrimSpace(line))
	}
	blockText := strings.TrimSpace(strings.Join(parts, " "))

	return models.Transaction{
		BookingDate:          bookingDate,
		ReferenceAccount:     acct.IBAN,
		ReferenceAccountName: acct.Name,
		Amount:               amount,
		Currency:             "EUR",
		Payee:                ScanPayee(blockText, dkbStopWords),
		CounterpartyIBAN:     CounterpartyIBAN(blockText, acct.IBAN),
		Purpose:              blockText,
	}
}

func (p *DKBParser) Classify(purpose string) models.TransactionType {
	return ClassifyPurpose(DefaultTypeRules, purpose)
}
