package domain

// CounterpartyKind distinguishes who the other side of an entry is.
type CounterpartyKind string

const (
	Customer CounterpartyKind = "CUSTOMER"
	Supplier CounterpartyKind = "SUPPLIER"
	Employee CounterpartyKind = "EMPLOYEE"
)

// Counterparty is a customer, supplier or employee referenced by ledger
// entries and contracts.
type Counterparty struct {
	CounterpartyID string           `json:"counterpartyID"` // Primary Key (UUID)
	OrganizationID string           `json:"organizationID"`
	Name           string           `json:"name"`
	Kind           CounterpartyKind `json:"kind"`
	Email          string           `json:"email"` // Nullable
	IsActive       bool             `json:"isActive"`
	AuditFields
}
