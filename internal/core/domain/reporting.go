package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountActivity is the raw aggregation a report starts from: one account's
// posted debit/credit sums over a filtered period.
type AccountActivity struct {
	Account     Account         `json:"account"`
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
}

// PostedMovement is a movement joined with its posted transaction header,
// as consumed by the general ledger and cash flow reports.
type PostedMovement struct {
	MovementID string          `json:"movementID"`
	AccountID  string          `json:"accountID"`
	Date       time.Time       `json:"date"`
	Folio      string          `json:"folio"`
	Kind       TransactionKind `json:"kind"`
	Memo       string          `json:"memo"` // movement memo, falling back to the transaction memo
	Debit      decimal.Decimal `json:"debit"`
	Credit     decimal.Decimal `json:"credit"`
}

// TrialBalanceRow is one account's line in the trial balance.
type TrialBalanceRow struct {
	AccountCode   string          `json:"accountCode"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	DebitTotal    decimal.Decimal `json:"debitTotal"`
	CreditTotal   decimal.Decimal `json:"creditTotal"`
	DebitBalance  decimal.Decimal `json:"debitBalance"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
}

// TrialBalance lists every account with posted activity up to a cutoff date.
// Balanced must always be true over posted, balanced transactions; a false
// value indicates data corruption and is surfaced as an integrity error
// instead of being returned.
type TrialBalance struct {
	AsOf               time.Time         `json:"asOf"`
	Rows               []TrialBalanceRow `json:"rows"`
	TotalDebitBalance  decimal.Decimal   `json:"totalDebitBalance"`
	TotalCreditBalance decimal.Decimal   `json:"totalCreditBalance"`
	Balanced           bool              `json:"balanced"`
}

// AccountAmount is an account with its signed net balance, used by the income
// statement and balance sheet detail sections.
type AccountAmount struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Balance     decimal.Decimal `json:"balance"`
}

// IncomeStatement is the profit and loss report over a date range.
type IncomeStatement struct {
	From            time.Time       `json:"from"`
	To              time.Time       `json:"to"`
	Revenue         decimal.Decimal `json:"revenue"`
	Cost            decimal.Decimal `json:"cost"`
	Expense         decimal.Decimal `json:"expense"`
	GrossProfit     decimal.Decimal `json:"grossProfit"`     // revenue - cost
	OperatingProfit decimal.Decimal `json:"operatingProfit"` // gross - expense
	NetProfit       decimal.Decimal `json:"netProfit"`       // no tax adjustment modeled
	RevenueDetail   []AccountAmount `json:"revenueDetail"`
	CostDetail      []AccountAmount `json:"costDetail"`
	ExpenseDetail   []AccountAmount `json:"expenseDetail"`
}

// BalanceSheet is the statement of financial position as of a cutoff date.
// PeriodResult is the current-period profit (income statement over
// year-start..cutoff) folded into equity.
type BalanceSheet struct {
	AsOf             time.Time       `json:"asOf"`
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	CapitalBase      decimal.Decimal `json:"capitalBase"`
	PeriodResult     decimal.Decimal `json:"periodResult"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	Balanced         bool            `json:"balanced"` // assets == liabilities + total equity within 0.01
}

// LedgerLine is one movement row in an account's general ledger, with the
// running balance after applying it.
type LedgerLine struct {
	Date    time.Time       `json:"date"`
	Folio   string          `json:"folio"`
	Memo    string          `json:"memo"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
	Balance decimal.Decimal `json:"balance"`
}

// AccountLedger is the chronological detail of one account over a period.
type AccountLedger struct {
	AccountID      string          `json:"accountID"`
	AccountCode    string          `json:"accountCode"`
	AccountName    string          `json:"accountName"`
	AccountType    AccountType     `json:"accountType"`
	Nature         AccountNature   `json:"nature"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Lines          []LedgerLine    `json:"lines"`
	PeriodDebit    decimal.Decimal `json:"periodDebit"`
	PeriodCredit   decimal.Decimal `json:"periodCredit"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// GeneralLedger groups per-account ledgers for a period.
type GeneralLedger struct {
	From     time.Time       `json:"from"`
	To       time.Time       `json:"to"`
	Accounts []AccountLedger `json:"accounts"`
}

// CashFlowEntry is a single cash-account movement classified as an inflow or outflow.
type CashFlowEntry struct {
	Date        time.Time       `json:"date"`
	Folio       string          `json:"folio"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Memo        string          `json:"memo"`
	Kind        TransactionKind `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
}

// CashFlowKindTotals breaks cash movement down by transaction kind.
type CashFlowKindTotals struct {
	Inflows  decimal.Decimal `json:"inflows"`
	Outflows decimal.Decimal `json:"outflows"`
}

// CashFlow reconciles opening cash + inflows - outflows == closing cash over a
// period, across the company's cash accounts.
type CashFlow struct {
	From           time.Time                              `json:"from"`
	To             time.Time                              `json:"to"`
	CashAccounts   []Account                              `json:"cashAccounts"`
	OpeningBalance decimal.Decimal                        `json:"openingBalance"`
	Inflows        []CashFlowEntry                        `json:"inflows"`
	Outflows       []CashFlowEntry                        `json:"outflows"`
	TotalInflows   decimal.Decimal                        `json:"totalInflows"`
	TotalOutflows  decimal.Decimal                        `json:"totalOutflows"`
	NetFlow        decimal.Decimal                        `json:"netFlow"`
	ClosingBalance decimal.Decimal                        `json:"closingBalance"`
	ByKind         map[TransactionKind]CashFlowKindTotals `json:"byKind"`
}
