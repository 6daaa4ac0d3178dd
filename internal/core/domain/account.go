package domain

// AccountType distinguishes where an account's money lives.
type AccountType string

const (
	Checking AccountType = "CHECKING"
	Savings  AccountType = "SAVINGS"
	Cash     AccountType = "CASH"
	Card     AccountType = "CARD"
)

// Account represents a money account (bank account, cash box, card) within an
// organization. Ledger entries and transfer legs always reference one.
type Account struct {
	AccountID      string      `json:"accountID"` // Primary Key (UUID)
	OrganizationID string      `json:"organizationID"`
	Name           string      `json:"name"`
	AccountType    AccountType `json:"accountType"`
	BankName       string      `json:"bankName"` // Nullable user description
	IsActive       bool        `json:"isActive"` // Soft delete flag
	AuditFields
}
