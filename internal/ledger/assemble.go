package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/finleaf/statement-ledger/internal/models"
)

// Assemble merges per-document transactions into the final ledger: rows are
// concatenated in document processing order, exact structural duplicates are
// dropped, a contiguous 1-based idx is reassigned over the surviving order,
// and the derived fields (calendar, analyzed amount, classifier input text)
// are recomputed. Running Assemble over its own output is a no-op.
func Assemble(docs ...[]models.Transaction) []models.Transaction {
	var out []models.Transaction
	seen := map[string]bool{}

	for _, doc := range docs {
		for _, txn := range doc {
			harmonize(&txn)
			fp := fingerprint(txn)
			if seen[fp] {
				continue
			}
			seen[fp] = true
			out = append(out, txn)
		}
	}

	for i := range out {
		out[i].Idx = i + 1
	}
	return out
}

// harmonize recomputes every derived field so rows from different extractors
// agree: the Income/Expenses bucket, the calendar fields, and the combined
// classifier input text.
func harmonize(txn *models.Transaction) {
	txn.AnalyzedAmount = models.AnalyzeAmount(txn.Amount)
	txn.Week, txn.Month, txn.Quarter, txn.Year = calendarFields(txn.BookingDate)
	txn.Text = strings.TrimSpace(txn.Payee + " " + txn.Purpose)
}

// calendarFields derives the reporting periods from a booking date.
// A zero date yields empty fields rather than bogus 0001 periods.
func calendarFields(t time.Time) (week, month, quarter string, year int) {
	if t.IsZero() {
		return "", "", "", 0
	}
	isoYear, isoWeek := t.ISOWeek()
	week = fmt.Sprintf("%d-%02d", isoYear, isoWeek)
	month = t.Format("2006-01")
	quarter = fmt.Sprintf("%d-Q%d", t.Year(), (int(t.Month())-1)/3+1)
	year = t.Year()
	return week, month, quarter, year
}

// fingerprint identifies a row by every field except idx, which is
// reassigned after the merge and must not defeat duplicate detection.
func fingerprint(t models.Transaction) string {
	balance := ""
	if t.Balance.Valid {
		balance = t.Balance.Decimal.String()
	}
	return strings.Join([]string{
		t.BookingDate.Format("2006-01-02"),
		t.ReferenceAccount,
		t.ReferenceAccountName,
		t.Amount.String(),
		balance,
		t.Currency,
		t.Payee,
		t.CounterpartyIBAN,
		t.Purpose,
		t.EReference,
		t.MandateReference,
		t.CreditorID,
		t.MainCategory,
		t.Subcategory,
		fmt.Sprintf("%t", t.Contract),
		t.ContractFrequency,
		t.ContractID,
		fmt.Sprintf("%t", t.InternalTransfer),
		fmt.Sprintf("%t", t.ExcludedFromDisposableIncome),
		string(t.TransactionType),
		t.AnalyzedAmount,
		t.Tags,
		t.Note,
		t.Payer,
		fmt.Sprintf("%t", t.NeedsManualInput),
		t.SourceFile,
	}, "\x1f")
}
