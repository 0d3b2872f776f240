package parser

import (
	"strings"

	"github.com/finleaf/statement-ledger/internal/models"
)

// TypeRule maps a keyword set to a transaction type. Rules are evaluated in
// order against the lowercased purpose text and the first match wins, so
// reordering rules changes classification outcomes and is a breaking change.
type TypeRule struct {
	Type     models.TransactionType
	Keywords []string
}

// DefaultTypeRules is the shared taxonomy for German current-account
// statements. Cash withdrawals come before the generic transfer keywords,
// and standing orders before direct debits.
var DefaultTypeRules = []TypeRule{
	{models.TypeCashWithdrawal, []string{"geldautomat"}},
	{models.TypeStandingOrder, []string{"dauerauftrag"}},
	{models.TypeBankTransfer, []string{"überweisung"}},
	{models.TypeDirectDebit, []string{"basislastschrift", "lastschrift"}},
	{models.TypeInterestFee, []string{"zins", "gebühr", "interest"}},
	{models.TypeCardPayment, []string{"karte", "kartenzahlung", "debitk"}},
	{models.TypeBankTransfer, []string{"lohn", "gehalt", "rente"}},
}

// ClassifyPurpose runs the ordered rules over the purpose text.
// No match yields TypeOther.
func ClassifyPurpose(rules []TypeRule, purpose string) models.TransactionType {
	lower := strings.ToLower(purpose)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Type
			}
		}
	}
	return models.TypeOther
}
