package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finleaf/statement-ledger/internal/models"
)

// ReadFromFile loads a master-schema CSV back into transactions. Columns are
// resolved by header name, so files written before a schema extension still
// load; unknown headers are ignored.
func ReadFromFile(path string) ([]models.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger file %q: %w", path, err)
	}
	defer f.Close()

	return Read(f)
}

// Read loads master-schema CSV rows from the given reader.
func Read(in io.Reader) ([]models.Transaction, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var txns []models.Transaction
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		txn := models.Transaction{
			ReferenceAccount:     field(record, "Reference Account"),
			ReferenceAccountName: field(record, "Reference Account Name"),
			Currency:             field(record, "Currency"),
			Payee:                field(record, "Payee"),
			CounterpartyIBAN:     field(record, "IBAN"),
			Purpose:              field(record, "Purpose"),
			EReference:           field(record, "E-Reference"),
			MandateReference:     field(record, "Mandate Reference"),
			CreditorID:           field(record, "Creditor ID"),
			MainCategory:         field(record, "Main Category"),
			Subcategory:          field(record, "Subcategory"),
			ContractFrequency:    field(record, "Contract Frequency"),
			ContractID:           field(record, "Contract ID"),
			TransactionType:      models.TransactionType(field(record, "Transaction Type")),
			AnalyzedAmount:       field(record, "Analyzed Amount"),
			Week:                 field(record, "Week"),
			Month:                field(record, "Month"),
			Quarter:              field(record, "Quarter"),
			Tags:                 field(record, "Tags"),
			Note:                 field(record, "Note"),
			Text:                 field(record, "text"),
			Payer:                field(record, "payer"),
			SourceFile:           field(record, "Source File"),
		}

		txn.Idx, _ = strconv.Atoi(field(record, "idx"))
		txn.Year, _ = strconv.Atoi(field(record, "Year"))
		txn.Contract, _ = strconv.ParseBool(field(record, "Contract"))
		txn.InternalTransfer, _ = strconv.ParseBool(field(record, "Internal Transfer"))
		txn.ExcludedFromDisposableIncome, _ = strconv.ParseBool(field(record, "Excluded from Disposable Income"))
		txn.NeedsManualInput, _ = strconv.ParseBool(field(record, "needs_manual_input"))

		if s := field(record, "Booking Date"); s != "" {
			if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
				txn.BookingDate = t
			}
		}
		if s := field(record, "Amount (€)"); s != "" {
			if d, err := decimal.NewFromString(s); err == nil {
				txn.Amount = d
			}
		}
		if s := field(record, "Balance (€)"); s != "" {
			if d, err := decimal.NewFromString(s); err == nil {
				txn.Balance = decimal.NullDecimal{Decimal: d, Valid: true}
			}
		}

		txns = append(txns, txn)
	}
	return txns, nil
}
