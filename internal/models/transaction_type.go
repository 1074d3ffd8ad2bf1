package models

// TransactionType represents a folio series definition for a company.
type TransactionType struct {
	TransactionTypeID  string `db:"transaction_type_id"`
	CompanyID          string `db:"company_id"`
	Code               string `db:"code"`
	Name               string `db:"name"`
	Description        string `db:"description"`
	Prefix             string `db:"prefix"`
	Suffix             string `db:"suffix"`
	NumberLength       int    `db:"number_length"`
	LastFolio          int    `db:"last_folio"`
	RequiresValidation bool   `db:"requires_validation"`
	AllowsEditing      bool   `db:"allows_editing"`
	IsActive           bool   `db:"is_active"`
	AuditFields
}
