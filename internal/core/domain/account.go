package domain

import "fmt"

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Cost      AccountType = "COST"
	Expense   AccountType = "EXPENSE"
)

// AccountNature is the side on which an account's balance grows by convention.
type AccountNature string

const (
	DebitNature  AccountNature = "DEBIT"
	CreditNature AccountNature = "CREDIT"
)

// NatureFor returns the conventional nature for an account type: assets, costs
// and expenses are debit-normal; liabilities, equity and revenue are credit-normal.
func NatureFor(t AccountType) (AccountNature, error) {
	switch t {
	case Asset, Cost, Expense:
		return DebitNature, nil
	case Liability, Equity, Revenue:
		return CreditNature, nil
	default:
		return "", fmt.Errorf("unknown account type %q", t)
	}
}

// Account is a node in a company's chart of accounts. The hierarchy is stored
// arena-style: parents are referenced by ID and resolved through the
// repository, never chased as live pointers.
type Account struct {
	AccountID       string        `json:"accountID"`
	CompanyID       string        `json:"companyID"`
	Code            string        `json:"code"` // digits separated by '.' or '-', unique per company
	Name            string        `json:"name"`
	ParentAccountID *string       `json:"parentAccountID,omitempty"`
	Level           int           `json:"level"` // 1 for top-level accounts
	AccountType     AccountType   `json:"accountType"`
	Nature          AccountNature `json:"nature"`
	Postable        bool          `json:"postable"` // whether movements may target it directly
	IsActive        bool          `json:"isActive"`
	AuditFields
}

// IsTopLevel reports whether the account sits at the root of the hierarchy.
func (a Account) IsTopLevel() bool {
	return a.ParentAccountID == nil
}

// ValidateHierarchy checks the level/parent invariants for this account given
// its resolved parent (nil for top-level accounts).
func (a Account) ValidateHierarchy(parent *Account) error {
	if parent == nil {
		if a.Level != 1 {
			return fmt.Errorf("%w: account %s has no parent but level %d", ErrAccountHierarchy, a.Code, a.Level)
		}
		return nil
	}
	if parent.CompanyID != a.CompanyID {
		return fmt.Errorf("%w: parent account %s belongs to company %s", ErrCrossCompanyReference, parent.Code, parent.CompanyID)
	}
	if a.Level != parent.Level+1 {
		return fmt.Errorf("%w: account %s has level %d but parent %s has level %d", ErrAccountHierarchy, a.Code, a.Level, parent.Code, parent.Level)
	}
	return nil
}

// CanReceiveMovements reports whether the account may be targeted by a movement.
// Non-postable accounts are aggregation nodes only.
func (a Account) CanReceiveMovements() bool {
	return a.Postable && a.IsActive
}
