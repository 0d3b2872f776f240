package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finleaf/statement-ledger/internal/models"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func amt(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestReconcileBalances(t *testing.T) {
	txns := []models.Transaction{
		{BookingDate: date("2024-03-05"), Amount: amt("-49.99")},
		{BookingDate: date("2024-03-01"), Amount: amt("-12.50")},
		{BookingDate: date("2024-03-28"), Amount: amt("2500.00")},
	}
	closing := decimal.NullDecimal{Decimal: amt("3412.88"), Valid: true}

	ReconcileBalances(txns, closing)

	// Sorted ascending by booking date, last one carries the known balance.
	if txns[2].BookingDate != date("2024-03-28") {
		t.Fatalf("not sorted: last booking is %s", txns[2].BookingDate)
	}
	if !txns[2].Balance.Valid || txns[2].Balance.Decimal.String() != "3412.88" {
		t.Errorf("last balance: got %+v", txns[2].Balance)
	}

	// Every pair i, i+1 satisfies balance[i] + amount[i+1] = balance[i+1].
	for i := 0; i < len(txns)-1; i++ {
		want := txns[i+1].Balance.Decimal.Sub(txns[i+1].Amount)
		if !txns[i].Balance.Valid || !txns[i].Balance.Decimal.Equal(want) {
			t.Errorf("balance[%d]: got %+v, want %s", i, txns[i].Balance, want)
		}
	}

	if txns[1].Balance.Decimal.String() != "912.88" {
		t.Errorf("middle balance: got %s", txns[1].Balance.Decimal)
	}
	if txns[0].Balance.Decimal.String() != "962.87" {
		t.Errorf("first balance: got %s", txns[0].Balance.Decimal)
	}
}

func TestReconcileBalances_NoClosingBalance(t *testing.T) {
	txns := []models.Transaction{
		{BookingDate: date("2024-03-01"), Amount: amt("-12.50")},
	}

	ReconcileBalances(txns, decimal.NullDecimal{})

	if txns[0].Balance.Valid {
		t.Error("balance must stay null without a known closing balance")
	}
}

func TestReconcileBalances_StableOnEqualDates(t *testing.T) {
	txns := []models.Transaction{
		{BookingDate: date("2024-03-01"), Amount: amt("-10.00"), Payee: "first"},
		{BookingDate: date("2024-03-01"), Amount: amt("-20.00"), Payee: "second"},
	}
	closing := decimal.NullDecimal{Decimal: amt("100.00"), Valid: true}

	ReconcileBalances(txns, closing)

	if txns[0].Payee != "first" || txns[1].Payee != "second" {
		t.Error("statement order must break date ties")
	}
	if txns[1].Balance.Decimal.String() != "100" {
		t.Errorf("last balance: got %s", txns[1].Balance.Decimal)
	}
	if txns[0].Balance.Decimal.String() != "120" {
		t.Errorf("first balance: got %s", txns[0].Balance.Decimal)
	}
}
