package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zivabsuite/contable/internal/core/domain"
)

const reportDateFormat = "2006-01-02"

// ReportPeriodParams defines the date-range query parameters shared by the
// period reports.
type ReportPeriodParams struct {
	From string `form:"from" binding:"required"` // YYYY-MM-DD
	To   string `form:"to" binding:"required"`   // YYYY-MM-DD
}

// ReportAsOfParams defines the cutoff query parameter for point-in-time reports.
type ReportAsOfParams struct {
	AsOf string `form:"asOf" binding:"required"` // YYYY-MM-DD
}

// --- Trial balance ---

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountCode   string          `json:"accountCode"`
	AccountName   string          `json:"accountName"`
	AccountType   string          `json:"accountType"`
	DebitTotal    decimal.Decimal `json:"debitTotal"`
	CreditTotal   decimal.Decimal `json:"creditTotal"`
	DebitBalance  decimal.Decimal `json:"debitBalance"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	AsOf   string                    `json:"asOf"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		DebitBalance  decimal.Decimal `json:"debitBalance"`
		CreditBalance decimal.Decimal `json:"creditBalance"`
	} `json:"totals"`
}

// ToTrialBalanceResponse converts a domain trial balance to a DTO response
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	response := TrialBalanceResponse{
		AsOf: tb.AsOf.Format(reportDateFormat),
		Rows: make([]TrialBalanceRowResponse, len(tb.Rows)),
	}
	for i, row := range tb.Rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountCode:   row.AccountCode,
			AccountName:   row.AccountName,
			AccountType:   string(row.AccountType),
			DebitTotal:    row.DebitTotal,
			CreditTotal:   row.CreditTotal,
			DebitBalance:  row.DebitBalance,
			CreditBalance: row.CreditBalance,
		}
	}
	response.Totals.DebitBalance = tb.TotalDebitBalance
	response.Totals.CreditBalance = tb.TotalCreditBalance
	return response
}

// --- Income statement ---

// AccountAmountResponse represents an account with its amount in a financial report
type AccountAmountResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
}

func toAccountAmountResponses(aas []domain.AccountAmount) []AccountAmountResponse {
	res := make([]AccountAmountResponse, len(aas))
	for i, aa := range aas {
		res[i] = AccountAmountResponse{
			AccountID:   aa.AccountID,
			AccountCode: aa.AccountCode,
			Name:        aa.AccountName,
			Amount:      aa.Balance,
		}
	}
	return res
}

// IncomeStatementResponse represents the income statement report response
type IncomeStatementResponse struct {
	FromDate string                  `json:"fromDate"`
	ToDate   string                  `json:"toDate"`
	Revenue  []AccountAmountResponse `json:"revenue"`
	Cost     []AccountAmountResponse `json:"cost"`
	Expenses []AccountAmountResponse `json:"expenses"`
	Summary  struct {
		TotalRevenue    decimal.Decimal `json:"totalRevenue"`
		TotalCost       decimal.Decimal `json:"totalCost"`
		TotalExpenses   decimal.Decimal `json:"totalExpenses"`
		GrossProfit     decimal.Decimal `json:"grossProfit"`
		OperatingProfit decimal.Decimal `json:"operatingProfit"`
		NetProfit       decimal.Decimal `json:"netProfit"`
	} `json:"summary"`
}

// ToIncomeStatementResponse converts a domain income statement to a DTO response
func ToIncomeStatementResponse(is *domain.IncomeStatement) IncomeStatementResponse {
	response := IncomeStatementResponse{
		FromDate: is.From.Format(reportDateFormat),
		ToDate:   is.To.Format(reportDateFormat),
		Revenue:  toAccountAmountResponses(is.RevenueDetail),
		Cost:     toAccountAmountResponses(is.CostDetail),
		Expenses: toAccountAmountResponses(is.ExpenseDetail),
	}
	response.Summary.TotalRevenue = is.Revenue
	response.Summary.TotalCost = is.Cost
	response.Summary.TotalExpenses = is.Expense
	response.Summary.GrossProfit = is.GrossProfit
	response.Summary.OperatingProfit = is.OperatingProfit
	response.Summary.NetProfit = is.NetProfit
	return response
}

// --- Balance sheet ---

// BalanceSheetResponse represents the balance sheet report response
type BalanceSheetResponse struct {
	AsOf        string                  `json:"asOf"`
	Assets      []AccountAmountResponse `json:"assets"`
	Liabilities []AccountAmountResponse `json:"liabilities"`
	Equity      []AccountAmountResponse `json:"equity"`
	Summary     struct {
		TotalAssets      decimal.Decimal `json:"totalAssets"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
		CapitalBase      decimal.Decimal `json:"capitalBase"`
		PeriodResult     decimal.Decimal `json:"periodResult"`
		TotalEquity      decimal.Decimal `json:"totalEquity"`
		Balanced         bool            `json:"balanced"`
	} `json:"summary"`
}

// ToBalanceSheetResponse converts a domain balance sheet to a DTO response
func ToBalanceSheetResponse(bs *domain.BalanceSheet) BalanceSheetResponse {
	response := BalanceSheetResponse{
		AsOf:        bs.AsOf.Format(reportDateFormat),
		Assets:      toAccountAmountResponses(bs.Assets),
		Liabilities: toAccountAmountResponses(bs.Liabilities),
		Equity:      toAccountAmountResponses(bs.Equity),
	}
	response.Summary.TotalAssets = bs.TotalAssets
	response.Summary.TotalLiabilities = bs.TotalLiabilities
	response.Summary.CapitalBase = bs.CapitalBase
	response.Summary.PeriodResult = bs.PeriodResult
	response.Summary.TotalEquity = bs.TotalEquity
	response.Summary.Balanced = bs.Balanced
	return response
}

// --- General ledger ---

// LedgerLineResponse represents one movement row in an account ledger response
type LedgerLineResponse struct {
	Date    string          `json:"date"`
	Folio   string          `json:"folio"`
	Memo    string          `json:"memo"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
	Balance decimal.Decimal `json:"balance"`
}

// AccountLedgerResponse represents one account's section of the general ledger response
type AccountLedgerResponse struct {
	AccountID      string               `json:"accountID"`
	AccountCode    string               `json:"accountCode"`
	AccountName    string               `json:"accountName"`
	Nature         string               `json:"nature"`
	OpeningBalance decimal.Decimal      `json:"openingBalance"`
	Lines          []LedgerLineResponse `json:"lines"`
	PeriodDebit    decimal.Decimal      `json:"periodDebit"`
	PeriodCredit   decimal.Decimal      `json:"periodCredit"`
	ClosingBalance decimal.Decimal      `json:"closingBalance"`
}

// GeneralLedgerResponse represents the general ledger report response
type GeneralLedgerResponse struct {
	FromDate string                  `json:"fromDate"`
	ToDate   string                  `json:"toDate"`
	Accounts []AccountLedgerResponse `json:"accounts"`
}

// GeneralLedgerParams defines query parameters for the general ledger report.
type GeneralLedgerParams struct {
	From       string  `form:"from" binding:"required"` // YYYY-MM-DD
	To         string  `form:"to" binding:"required"`   // YYYY-MM-DD
	AccountID  *string `form:"accountID"`               // optional single-account filter
	ActiveOnly bool    `form:"activeOnly,default=true"`
}

// ToGeneralLedgerResponse converts a domain general ledger to a DTO response
func ToGeneralLedgerResponse(gl *domain.GeneralLedger) GeneralLedgerResponse {
	response := GeneralLedgerResponse{
		FromDate: gl.From.Format(reportDateFormat),
		ToDate:   gl.To.Format(reportDateFormat),
		Accounts: make([]AccountLedgerResponse, len(gl.Accounts)),
	}
	for i, al := range gl.Accounts {
		lines := make([]LedgerLineResponse, len(al.Lines))
		for j, line := range al.Lines {
			lines[j] = LedgerLineResponse{
				Date:    line.Date.Format(reportDateFormat),
				Folio:   line.Folio,
				Memo:    line.Memo,
				Debit:   line.Debit,
				Credit:  line.Credit,
				Balance: line.Balance,
			}
		}
		response.Accounts[i] = AccountLedgerResponse{
			AccountID:      al.AccountID,
			AccountCode:    al.AccountCode,
			AccountName:    al.AccountName,
			Nature:         string(al.Nature),
			OpeningBalance: al.OpeningBalance,
			Lines:          lines,
			PeriodDebit:    al.PeriodDebit,
			PeriodCredit:   al.PeriodCredit,
			ClosingBalance: al.ClosingBalance,
		}
	}
	return response
}

// --- Cash flow ---

// CashFlowEntryResponse represents one classified cash movement in the response
type CashFlowEntryResponse struct {
	Date        string          `json:"date"`
	Folio       string          `json:"folio"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Memo        string          `json:"memo"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
}

// CashFlowKindTotalsResponse breaks cash movement down by transaction kind
type CashFlowKindTotalsResponse struct {
	Inflows  decimal.Decimal `json:"inflows"`
	Outflows decimal.Decimal `json:"outflows"`
}

// CashFlowResponse represents the cash flow report response
type CashFlowResponse struct {
	FromDate     string                                `json:"fromDate"`
	ToDate       string                                `json:"toDate"`
	CashAccounts []AccountResponse                     `json:"cashAccounts"`
	Inflows      []CashFlowEntryResponse               `json:"inflows"`
	Outflows     []CashFlowEntryResponse               `json:"outflows"`
	ByKind       map[string]CashFlowKindTotalsResponse `json:"byKind"`
	Summary      struct {
		OpeningBalance decimal.Decimal `json:"openingBalance"`
		TotalInflows   decimal.Decimal `json:"totalInflows"`
		TotalOutflows  decimal.Decimal `json:"totalOutflows"`
		NetFlow        decimal.Decimal `json:"netFlow"`
		ClosingBalance decimal.Decimal `json:"closingBalance"`
	} `json:"summary"`
}

func toCashFlowEntryResponses(entries []domain.CashFlowEntry) []CashFlowEntryResponse {
	res := make([]CashFlowEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = CashFlowEntryResponse{
			Date:        e.Date.Format(reportDateFormat),
			Folio:       e.Folio,
			AccountCode: e.AccountCode,
			AccountName: e.AccountName,
			Memo:        e.Memo,
			Kind:        string(e.Kind),
			Amount:      e.Amount,
		}
	}
	return res
}

// ToCashFlowResponse converts a domain cash flow report to a DTO response
func ToCashFlowResponse(cf *domain.CashFlow) CashFlowResponse {
	response := CashFlowResponse{
		FromDate:     cf.From.Format(reportDateFormat),
		ToDate:       cf.To.Format(reportDateFormat),
		CashAccounts: ToListAccountResponse(cf.CashAccounts),
		Inflows:      toCashFlowEntryResponses(cf.Inflows),
		Outflows:     toCashFlowEntryResponses(cf.Outflows),
		ByKind:       make(map[string]CashFlowKindTotalsResponse, len(cf.ByKind)),
	}
	for kind, totals := range cf.ByKind {
		response.ByKind[string(kind)] = CashFlowKindTotalsResponse{
			Inflows:  totals.Inflows,
			Outflows: totals.Outflows,
		}
	}
	response.Summary.OpeningBalance = cf.OpeningBalance
	response.Summary.TotalInflows = cf.TotalInflows
	response.Summary.TotalOutflows = cf.TotalOutflows
	response.Summary.NetFlow = cf.NetFlow
	response.Summary.ClosingBalance = cf.ClosingBalance
	return response
}

// ParseReportDate parses a YYYY-MM-DD query parameter.
func ParseReportDate(s string) (time.Time, error) {
	return time.Parse(reportDateFormat, s)
}
