package domain

// Category classifies ledger entries for reporting.
type Category struct {
	CategoryID     string      `json:"categoryID"` // Primary Key (UUID)
	OrganizationID string      `json:"organizationID"`
	Name           string      `json:"name"`
	Nature         EntryNature `json:"nature"` // The nature this category usually applies to
	IsActive       bool        `json:"isActive"`
	AuditFields
}
