// Package writer persists the assembled ledger as CSV in the master schema.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/finleaf/statement-ledger/internal/models"
)

// MasterColumns is the stable column order of the ledger CSV. Changing the
// order breaks downstream consumers.
var MasterColumns = []string{
	"idx", "Booking Date", "Reference Account", "Reference Account Name",
	"Amount (€)", "Balance (€)", "Currency", "Payee", "IBAN", "Purpose",
	"E-Reference", "Mandate Reference", "Creditor ID", "Main Category",
	"Subcategory", "Contract", "Contract Frequency", "Contract ID",
	"Internal Transfer", "Excluded from Disposable Income", "Transaction Type",
	"Analyzed Amount", "Week", "Month", "Quarter", "Year", "Tags", "Note",
	"text", "payer", "needs_manual_input", "Source File",
}

// CSVWriter writes ledger rows in the master schema.
type CSVWriter struct{}

// WriteToFile writes the ledger to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, txns []models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, txns)
}

// Write writes the ledger in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, txns []models.Transaction) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	if err := cw.Write(MasterColumns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range txns {
		if err := cw.Write(row(txn)); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", txn.Idx, err)
		}
	}
	return cw.Error()
}

func row(t models.Transaction) []string {
	bookingDate := ""
	if !t.BookingDate.IsZero() {
		bookingDate = t.BookingDate.Format("2006-01-02 15:04:05")
	}
	balance := ""
	if t.Balance.Valid {
		balance = t.Balance.Decimal.StringFixed(2)
	}
	year := ""
	if t.Year != 0 {
		year = strconv.Itoa(t.Year)
	}
	return []string{
		strconv.Itoa(t.Idx),
		bookingDate,
		t.ReferenceAccount,
		t.ReferenceAccountName,
		t.Amount.StringFixed(2),
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
		strconv.FormatBool(t.Contract),
		t.ContractFrequency,
		t.ContractID,
		strconv.FormatBool(t.InternalTransfer),
		strconv.FormatBool(t.ExcludedFromDisposableIncome),
		string(t.TransactionType),
		t.AnalyzedAmount,
		t.Week,
		t.Month,
		t.Quarter,
		year,
		t.Tags,
		t.Note,
		t.Text,
		t.Payer,
		strconv.FormatBool(t.NeedsManualInput),
		t.SourceFile,
	}
}
