package domain

import "fmt"

// TransactionType is a company-defined folio series for transactions,
// e.g. "ING-" + zero-padded sequence for income entries.
type TransactionType struct {
	TransactionTypeID  string `json:"transactionTypeID"`
	CompanyID          string `json:"companyID"`
	Code               string `json:"code"` // unique per company
	Name               string `json:"name"`
	Description        string `json:"description,omitempty"`
	Prefix             string `json:"prefix,omitempty"`
	Suffix             string `json:"suffix,omitempty"`
	NumberLength       int    `json:"numberLength"` // digits in the sequential part
	LastFolio          int    `json:"lastFolio"`
	RequiresValidation bool   `json:"requiresValidation"`
	AllowsEditing      bool   `json:"allowsEditing"`
	IsActive           bool   `json:"isActive"`
	AuditFields
}

// NextFolio advances the series and renders the next folio. Persisting the
// incremented LastFolio is the caller's responsibility (the repository does it
// under a row lock).
func (tt *TransactionType) NextFolio() string {
	tt.LastFolio++
	return fmt.Sprintf("%s%0*d%s", tt.Prefix, tt.NumberLength, tt.LastFolio, tt.Suffix)
}

// DefaultFolioPrefix maps built-in transaction kinds to their folio prefix,
// used when a transaction carries no custom type.
func DefaultFolioPrefix(kind TransactionKind) string {
	switch kind {
	case IncomeEntry:
		return "ING-"
	case DisbursementEntry:
		return "EGR-"
	case AdjustmentEntry:
		return "AJU-"
	default:
		return "DIA-"
	}
}
