package mapping

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/models"
)

// ToModelContract converts a domain Contract to a model Contract
func ToModelContract(d domain.Contract) models.Contract {
	return models.Contract{
		ContractID:     d.ContractID,
		OrganizationID: d.OrganizationID,
		CounterpartyID: d.CounterpartyID,
		Description:    d.Description,
		TotalPrice:     d.TotalPrice,
		SignedAt:       d.SignedAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainContract converts a model Contract to a domain Contract
func ToDomainContract(m models.Contract) domain.Contract {
	return domain.Contract{
		ContractID:     m.ContractID,
		OrganizationID: m.OrganizationID,
		CounterpartyID: m.CounterpartyID,
		Description:    m.Description,
		TotalPrice:     m.TotalPrice,
		SignedAt:       m.SignedAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelContractInstallment converts a domain installment to its model
func ToModelContractInstallment(d domain.ContractInstallment) models.ContractInstallment {
	return models.ContractInstallment{
		InstallmentID: d.InstallmentID,
		ContractID:    d.ContractID,
		Description:   d.Description,
		Kind:          string(d.Kind),
		DueDate:       d.DueDate,
		Amount:        d.Amount,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainContractInstallment converts a model installment to its domain form
func ToDomainContractInstallment(m models.ContractInstallment) domain.ContractInstallment {
	return domain.ContractInstallment{
		InstallmentID: m.InstallmentID,
		ContractID:    m.ContractID,
		Description:   m.Description,
		Kind:          domain.InstallmentKind(m.Kind),
		DueDate:       m.DueDate,
		Amount:        m.Amount,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainContractInstallmentSlice converts model installments to domain installments
func ToDomainContractInstallmentSlice(ms []models.ContractInstallment) []domain.ContractInstallment {
	ds := make([]domain.ContractInstallment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainContractInstallment(m)
	}
	return ds
}

// ToModelTradeInCredit converts a domain trade-in credit to its model
func ToModelTradeInCredit(d domain.TradeInCredit) models.TradeInCredit {
	return models.TradeInCredit{
		TradeInID:   d.TradeInID,
		ContractID:  d.ContractID,
		Description: d.Description,
		Date:        d.Date,
		Amount:      d.Amount,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTradeInCredit converts a model trade-in credit to its domain form
func ToDomainTradeInCredit(m models.TradeInCredit) domain.TradeInCredit {
	return domain.TradeInCredit{
		TradeInID:   m.TradeInID,
		ContractID:  m.ContractID,
		Description: m.Description,
		Date:        m.Date,
		Amount:      m.Amount,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTradeInCreditSlice converts model trade-ins to domain trade-ins
func ToDomainTradeInCreditSlice(ms []models.TradeInCredit) []domain.TradeInCredit {
	ds := make([]domain.TradeInCredit, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTradeInCredit(m)
	}
	return ds
}

// ToModelResidualInstallment converts a domain residual to its model
func ToModelResidualInstallment(d domain.ResidualInstallment) models.ResidualInstallment {
	return models.ResidualInstallment{
		ContractID:   d.ContractID,
		Description:  d.Description,
		DueDate:      d.DueDate,
		CachedAmount: d.CachedAmount,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainResidualInstallment converts a model residual to its domain form
func ToDomainResidualInstallment(m models.ResidualInstallment) domain.ResidualInstallment {
	return domain.ResidualInstallment{
		ContractID:   m.ContractID,
		Description:  m.Description,
		DueDate:      m.DueDate,
		CachedAmount: m.CachedAmount,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
