package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finleaf/statement-ledger/internal/models"
)

// ReconcileBalances reconstructs the post-transaction balance for every
// transaction of one document, given the balance immediately after the most
// recent transaction. The slice is sorted ascending by booking date (stable,
// so statement order breaks ties), the last transaction receives the known
// balance, and the walk backward subtracts each following transaction's
// amount. Without a known balance all balances stay null; a balance is never
// fabricated.
func ReconcileBalances(txns []models.Transaction, closing decimal.NullDecimal) {
	if !closing.Valid || len(txns) == 0 {
		return
	}

	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].BookingDate.Before(txns[j].BookingDate)
	})

	txns[len(txns)-1].Balance = closing
	for i := len(txns) - 2; i >= 0; i-- {
		next := txns[i+1]
		txns[i].Balance = decimal.NullDecimal{
			Decimal: next.Balance.Decimal.Sub(next.Amount),
			Valid:   true,
		}
	}
}
