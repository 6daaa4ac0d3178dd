package models

// Account represents a money account row (bank account, cash box, card).
type Account struct {
	AccountID      string `db:"account_id"`
	OrganizationID string `db:"organization_id"`
	Name           string `db:"name"`
	AccountType    string `db:"account_type"`
	BankName       string `db:"bank_name"`
	IsActive       bool   `db:"is_active"`
	AuditFields
}

// Category classifies ledger entries for reporting.
type Category struct {
	CategoryID     string `db:"category_id"`
	OrganizationID string `db:"organization_id"`
	Name           string `db:"name"`
	Nature         string `db:"nature"`
	IsActive       bool   `db:"is_active"`
	AuditFields
}

// Counterparty is a customer, supplier or employee row.
type Counterparty struct {
	CounterpartyID string `db:"counterparty_id"`
	OrganizationID string `db:"organization_id"`
	Name           string `db:"name"`
	Kind           string `db:"kind"`
	Email          string `db:"email"`
	IsActive       bool   `db:"is_active"`
	AuditFields
}
