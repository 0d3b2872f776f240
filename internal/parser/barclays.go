package parser

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finleaf/statement-ledger/internal/models"
)

// BarclaysParser handles Barclays credit-card exports, which arrive as
// spreadsheet rows rather than extracted PDF text. The sheet opens with
// metadata key/value rows (IBAN, Kontoname, Verfügungsrahmen, ...) followed
// by the transaction table, whose header row is located by the
// "Referenznummer" sentinel in the first column.
type BarclaysParser struct {
	AccountName string
}

func NewBarclays() *BarclaysParser {
	return &BarclaysParser{AccountName: "Barclays Visa"}
}

func (p *BarclaysParser) BankName() string {
	return "Barclays"
}

// ErrNoHeaderRow signals that the transaction table could not be located.
var ErrNoHeaderRow = errors.New("barclays: no 'Referenznummer' header row found")

var barclaysMetaKeys = map[string]bool{
	"IBAN":             true,
	"Kontoname":        true,
	"Kontonummer":      true,
	"Stand":            true,
	"Verfügungsrahmen": true,
}

var barclaysDateFormats = []string{
	"02.01.2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
}

func parseBarclaysDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range barclaysDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
	}
	return time.Time{}
}

// ParseRows turns the raw sheet rows into a StatementInfo. Unlike the
// line-oriented variants there is no segmentation: one table row is one
// transaction.
func (p *BarclaysParser) ParseRows(rows [][]string) (*models.StatementInfo, error) {
	meta := map[string]string{}
	headerIdx := -1

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		key := strings.TrimSpace(row[0])
		if barclaysMetaKeys[key] && len(row) > 1 {
			meta[key] = strings.TrimSpace(row[1])
		}
		if key == "Referenznummer" {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, ErrNoHeaderRow
	}

	cols := map[string]int{}
	for i, name := range rows[headerIdx] {
		cols[strings.TrimSpace(name)] = i
	}

	acct := models.ReferenceAccount{
		IBAN: meta["IBAN"],
		Name: meta["Kontoname"],
	}
	if acct.IBAN == "" {
		acct.IBAN = models.UnknownAccount
	}
	if acct.Name == "" {
		acct.Name = p.AccountName
	}

	info := &models.StatementInfo{
		Bank:    models.BankBarclays,
		Account: acct,
	}
	if raw, ok := meta["Verfügungsrahmen"]; ok {
		if d := CleanNumber(raw); !d.IsZero() {
			info.ClosingBalance = decimal.NullDecimal{Decimal: d, Valid: true}
		}
	}

	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	for _, row := range rows[headerIdx+1:] {
		date := parseBarclaysDate(cell(row, "Buchungsdatum"))
		amount := CleanNumber(cell(row, "Betrag"))
		desc := cell(row, "Beschreibung")
		if date.IsZero() && amount.IsZero() && desc == "" {
			continue
		}

		txn := models.Transaction{
			BookingDate:          date,
			ReferenceAccount:     acct.IBAN,
			ReferenceAccountName: acct.Name,
			Amount:               amount,
			Currency:             "EUR",
			Payee:                desc,
			CounterpartyIBAN:     "",
			Purpose:              desc,
			EReference:           cell(row, "Referenznummer"),
			TransactionType:      p.Classify(desc),
			AnalyzedAmount:       models.AnalyzeAmount(amount),
		}
		if txn.Amount.IsPositive() {
			txn.Payer = txn.Payee
		}
		info.Transactions = append(info.Transactions, txn)
	}

	return info, nil
}

func (p *BarclaysParser) Classify(purpose string) models.TransactionType {
	return ClassifyPurpose(DefaultTypeRules, purpose)
}
