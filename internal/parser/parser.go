package parser

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finleaf/statement-ledger/internal/models"
)

// StatementParser is the per-institution parsing capability. Each variant
// owns the layout knowledge of one statement format; the generic driver in
// Parse turns that into a StatementInfo.
type StatementParser interface {
	// BankName returns the human-readable institution name.
	BankName() string
	// DetectAccount finds the statement holder's own account. Absence is
	// not an error; the IBAN falls back to models.UnknownAccount.
	DetectAccount(lines []string) models.ReferenceAccount
	// ClosingBalance returns the balance immediately after the most recent
	// transaction, when the statement states one.
	ClosingBalance(lines []string) decimal.NullDecimal
	// Segment groups the document's raw lines into per-transaction blocks.
	// A document with no anchor lines yields zero blocks.
	Segment(lines []string) []Block
	// ExtractFields derives one transaction from a block. Fields that
	// cannot be extracted degrade to empty/zero values; a block is never
	// rejected because a single field failed.
	ExtractFields(b Block, acct models.ReferenceAccount) models.Transaction
	// Classify maps purpose text to a coarse transaction type.
	Classify(purpose string) models.TransactionType
}

// New returns the line-oriented parser for the given bank type.
// Barclays statements are tabular exports and use NewBarclays instead.
func New(bankType models.BankType) (StatementParser, error) {
	switch bankType {
	case models.BankDKB:
		return NewDKB(), nil
	case models.BankN26:
		return NewN26(), nil
	case models.BankDeutscheBank:
		return NewDeutscheBank(), nil
	default:
		return nil, fmt.Errorf("unsupported bank type: %q", bankType)
	}
}

// Parse runs the segment/extract/classify passes of one variant over a
// document's lines. This is the only place the passes are wired together,
// so every variant shares the same degradation and ordering behavior.
func Parse(p StatementParser, lines []string) (*models.StatementInfo, error) {
	acct := p.DetectAccount(lines)

	info := &models.StatementInfo{
		Account:        acct,
		ClosingBalance: p.ClosingBalance(lines),
	}

	for _, block := range p.Segment(lines) {
		txn := p.ExtractFields(block, acct)
		txn.TransactionType = p.Classify(txn.Purpose)
		txn.AnalyzedAmount = models.AnalyzeAmount(txn.Amount)
		if txn.Amount.IsPositive() {
			txn.Payer = txn.Payee
		}
		info.Transactions = append(info.Transactions, txn)
	}

	return info, nil
}

// AutoDetect identifies the institution from document content. The checks
// are ordered: "Deutsche Kreditbank" must win over the "Deutsche Bank"
// substring.
func AutoDetect(lines []string) (models.BankType, error) {
	joined := strings.ToLower(strings.Join(lines, " "))

	switch {
	case strings.Contains(joined, "deutsche kreditbank") || strings.Contains(joined, "dkb"):
		return models.BankDKB, nil
	case strings.Contains(joined, "n26 bank") || strings.Contains(joined, "dein neuer kontostand") || strings.Contains(joined, "ntsbdeb1"):
		return models.BankN26, nil
	case strings.Contains(joined, "deutsche bank"):
		return models.BankDeutscheBank, nil
	case strings.Contains(joined, "barclays"):
		return models.BankBarclays, nil
	}

	return "", fmt.Errorf("could not auto-detect bank from statement content")
}
