package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finleaf/statement-ledger/internal/models"
)

// DeutscheBankParser handles Deutsche Bank account statement PDFs.
//
// The layout splits each SEPA booking over two lines: the first carries the
// booking text, both date fragments (day-month only) and the amount in the
// comma-thousands convention, the second opens with the year. Example:
//
//	SEPA-Dauerauftrag an 01-03- 01-03- 850.00
//	2024 1234 Mustermann, Max
type DeutscheBankParser struct {
	AccountName string
}

func NewDeutscheBank() *DeutscheBankParser {
	return &DeutscheBankParser{AccountName: "Deutsche Bank"}
}

func (p *DeutscheBankParser) BankName() string {
	return "Deutsche Bank"
}

var (
	dbAmountTail  = regexp.MustCompile(`\.\d{2}$`)
	dbDatePair    = regexp.MustCompile(`(\d{2})-(\d{2})-\s*(\d{2})-(\d{2})-`)
	dbYearPayee   = regexp.MustCompile(`^(\d{4})\s+\d{4}\s+(.+)`)
	dbBalanceLine = regexp.MustCompile(`^EUR\s*([+-]?[\d\.,]+)$`)
)

// dbIsTransactionLine reports whether a line opens a booking: with the
// whitespace stripped it ends in a two-decimal amount and mentions SEPA.
func dbIsTransactionLine(line string) bool {
	stripped := strings.Join(strings.Fields(line), "")
	return dbAmountTail.MatchString(stripped) && strings.Contains(stripped, "SEPA")
}

func (p *DeutscheBankParser) DetectAccount(lines []string) models.ReferenceAccount {
	for _, line := range lines {
		stripped := strings.Join(strings.Fields(line), "")
		if iban := ibanPattern.FindString(stripped); iban != "" {
			return models.ReferenceAccount{IBAN: iban, Name: p.AccountName}
		}
	}
	return models.ReferenceAccount{IBAN: models.UnknownAccount, Name: p.AccountName}
}

// ClosingBalance looks for the trailing "EUR <amount>" summary line. The
// amount uses the comma-thousands convention.
func (p *DeutscheBankParser) ClosingBalance(lines []string) decimal.NullDecimal {
	for i := len(lines) - 1; i >= 0; i-- {
		m := dbBalanceLine.FindStringSubmatch(strings.TrimSpace(lines[i]))
		if m == nil {
			continue
		}
		s := strings.ReplaceAll(m[1], ",", "")
		if d, err := decimal.NewFromString(s); err == nil {
			return decimal.NullDecimal{Decimal: d, Valid: true}
		}
	}
	return decimal.NullDecimal{}
}

func (p *DeutscheBankParser) Segment(lines []string) []Block {
	return SegmentFunc(lines, dbIsTransactionLine)
}

func (p *DeutscheBankParser) ExtractFields(b Block, acct models.ReferenceAccount) models.Transaction {
	line0 := b.Lines[0]

	// Parse the amount from the raw line: stripping whitespace first would
	// glue the date fragment's trailing dash onto the amount token.
	amount, _ := LastDotAmount(line0)

	// The value date's day and month sit on the booking line; the year
	// opens the continuation line together with the payee.
	var bookingDate time.Time
	payee := ""
	dateM := dbDatePair.FindStringSubmatch(line0)
	if len(b.Lines) > 1 {
		next := strings.TrimSpace(b.Lines[1])
		if ym := dbYearPayee.FindStringSubmatch(next); ym != nil && dateM != nil {
			year, _ := strconv.Atoi(ym[1])
			day, _ := strconv.Atoi(dateM[3])
			month, _ := strconv.Atoi(dateM[4])
			if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
				bookingDate = time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			}
			payee = strings.TrimSpace(ym[2])
		} else {
			payee = next
		}
	}

	return models.Transaction{
		BookingDate:          bookingDate,
		ReferenceAccount:     acct.IBAN,
		ReferenceAccountName: acct.Name,
		Amount:               amount,
		Currency:             "EUR",
		Payee:                payee,
		CounterpartyIBAN:     CounterpartyIBAN(b.Text(), acct.IBAN),
		Purpose:              b.Text(),
	}
}

func (p *DeutscheBankParser) Classify(purpose string) models.TransactionType {
	return ClassifyPurpose(DefaultTypeRules, purpose)
}
