package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankType identifies a supported statement format.
type BankType string

const (
	BankDKB          BankType = "dkb"
	BankN26          BankType = "n26"
	BankDeutscheBank BankType = "db"
	BankBarclays     BankType = "barclays"
)

// TransactionType is the coarse type derived from the purpose text.
type TransactionType string

const (
	TypeCashWithdrawal TransactionType = "Cash Withdrawal"
	TypeStandingOrder  TransactionType = "Standing Order"
	TypeBankTransfer   TransactionType = "Bank Transfer"
	TypeDirectDebit    TransactionType = "SEPA Direct Debit"
	TypeInterestFee    TransactionType = "Interest/Fee"
	TypeCardPayment    TransactionType = "Card Payment"
	TypeOther          TransactionType = "Other"
)

// Transaction is one row of the master ledger schema. Every column of the
// final CSV has a typed field here; an absent running balance is
// distinguishable from zero via NullDecimal.
type Transaction struct {
	Idx                  int                 `json:"idx"`
	BookingDate          time.Time           `json:"bookingDate"`
	ReferenceAccount     string              `json:"referenceAccount"`
	ReferenceAccountName string              `json:"referenceAccountName"`
	Amount               decimal.Decimal     `json:"amount"`
	Balance              decimal.NullDecimal `json:"balance"`
	Currency             string              `json:"currency"`
	Payee                string              `json:"payee"`
	CounterpartyIBAN     string              `json:"iban"`
	Purpose              string              `json:"purpose"`
	EReference           string              `json:"eReference"`
	MandateReference     string              `json:"mandateReference"`
	CreditorID           string              `json:"creditorId"`

	// Enrichment fields, filled by the classifier pass.
	MainCategory                 string `json:"mainCategory"`
	Subcategory                  string `json:"subcategory"`
	Contract                     bool   `json:"contract"`
	ContractFrequency            string `json:"contractFrequency"`
	ContractID                   string `json:"contractId"`
	InternalTransfer             bool   `json:"internalTransfer"`
	ExcludedFromDisposableIncome bool   `json:"excludedFromDisposableIncome"`

	TransactionType TransactionType `json:"transactionType"`
	AnalyzedAmount  string          `json:"analyzedAmount"` // "Income" or "Expenses"

	// Calendar fields derived from BookingDate at assembly time.
	Week    string `json:"week"`    // YYYY-WW (ISO week)
	Month   string `json:"month"`   // YYYY-MM
	Quarter string `json:"quarter"` // YYYY-Qn
	Year    int    `json:"year"`

	Tags             string `json:"tags"`
	Note             string `json:"note"`
	Text             string `json:"text"` // "Payee Purpose", input to the classifier
	Payer            string `json:"payer"`
	NeedsManualInput bool   `json:"needsManualInput"`
	SourceFile       string `json:"sourceFile"`
}

// AnalyzeAmount maps an amount sign to the Income/Expenses bucket.
// Negative is Expenses, everything else (including zero) is Income.
func AnalyzeAmount(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "Expenses"
	}
	return "Income"
}

// ReferenceAccount is the statement holder's own account, detected once per
// document and excluded from counterparty IBAN searches.
type ReferenceAccount struct {
	IBAN string
	Name string
}

// UnknownAccount is the sentinel IBAN used when detection finds nothing.
const UnknownAccount = "Unknown"

// Classification is the external classifier's answer for one transaction
// text. The JSON field names are the classifier's response contract.
type Classification struct {
	MainCategory                 string `json:"Main Category"`
	Subcategory                  string `json:"Subcategory"`
	Contract                     bool   `json:"Contract"`
	ContractFrequency            string `json:"Contract Frequency"`
	ExcludedFromDisposableIncome bool   `json:"Excluded from Disposable Income"`
}

// StatementInfo holds everything extracted from one document.
type StatementInfo struct {
	Bank    BankType
	Account ReferenceAccount
	// ClosingBalance is the balance immediately after the most recent
	// transaction, when the statement states one.
	ClosingBalance decimal.NullDecimal
	Transactions   []Transaction
}
