package mapping

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:             d.EntryID,
		OrganizationID:      d.OrganizationID,
		Description:         d.Description,
		Amount:              d.Amount,
		Nature:              string(d.Nature),
		TransactionDate:     d.TransactionDate,
		DueDate:             d.DueDate,
		Status:              string(d.Status),
		SettlementDate:      nullTime(d.SettlementDate),
		AccountID:           d.AccountID,
		CounterpartyID:      nullString(d.CounterpartyID),
		CategoryID:          nullString(d.CategoryID),
		VentureID:           nullString(d.VentureID),
		PhaseID:             nullString(d.PhaseID),
		CompanyID:           nullString(d.CompanyID),
		SeriesID:            nullString(d.SeriesID),
		TransferID:          nullString(d.TransferID),
		Notes:               d.Notes,
		RecurrenceFrequency: nullString(string(d.RecurrenceFrequency)),
		RecurrenceEndDate:   nullTime(d.RecurrenceEndDate),
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:             m.EntryID,
		OrganizationID:      m.OrganizationID,
		Description:         m.Description,
		Amount:              m.Amount,
		Nature:              domain.EntryNature(m.Nature),
		TransactionDate:     m.TransactionDate,
		DueDate:             m.DueDate,
		Status:              domain.SettlementStatus(m.Status),
		SettlementDate:      fromNullTime(m.SettlementDate),
		AccountID:           m.AccountID,
		CounterpartyID:      fromNullString(m.CounterpartyID),
		CategoryID:          fromNullString(m.CategoryID),
		VentureID:           fromNullString(m.VentureID),
		PhaseID:             fromNullString(m.PhaseID),
		CompanyID:           fromNullString(m.CompanyID),
		SeriesID:            fromNullString(m.SeriesID),
		TransferID:          fromNullString(m.TransferID),
		Notes:               m.Notes,
		RecurrenceFrequency: domain.RecurrenceFrequency(fromNullString(m.RecurrenceFrequency)),
		RecurrenceEndDate:   fromNullTime(m.RecurrenceEndDate),
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of model entries to domain entries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
