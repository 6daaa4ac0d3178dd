package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/bizledger/bizledger_app/internal/models"
	"github.com/bizledger/bizledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxContractRepository struct {
	BaseRepository
}

// newPgxContractRepository creates a new repository for contract payment-plan data.
func newPgxContractRepository(pool *pgxpool.Pool) portsrepo.ContractRepositoryFacade {
	return &PgxContractRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ContractRepositoryFacade = (*PgxContractRepository)(nil)

// SaveContract persists a new contract with its initial residual row in one
// transaction. A contract without a residual row is never observable.
func (r *PgxContractRepository) SaveContract(ctx context.Context, contract domain.Contract, residual domain.ResidualInstallment) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	mc := mapping.ToModelContract(contract)
	contractQuery := `
		INSERT INTO contracts (
			contract_id, organization_id, counterparty_id, description, total_price, signed_at,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, contractQuery,
		mc.ContractID,
		mc.OrganizationID,
		mc.CounterpartyID,
		mc.Description,
		mc.TotalPrice,
		mc.SignedAt,
		mc.CreatedAt,
		mc.CreatedBy,
		mc.LastUpdatedAt,
		mc.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert contract "+mc.ContractID, err)
	}

	mr := mapping.ToModelResidualInstallment(residual)
	residualQuery := `
		INSERT INTO residual_installments (
			contract_id, description, due_date, cached_amount,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, residualQuery,
		mr.ContractID,
		mr.Description,
		mr.DueDate,
		mr.CachedAmount,
		mr.CreatedAt,
		mr.CreatedBy,
		mr.LastUpdatedAt,
		mr.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert residual for contract "+mc.ContractID, err)
	}

	return r.Commit(ctx, tx)
}

// FindContractByID retrieves a contract scoped to an organization.
func (r *PgxContractRepository) FindContractByID(ctx context.Context, organizationID, contractID string) (*domain.Contract, error) {
	query := `
		SELECT contract_id, organization_id, counterparty_id, description, total_price, signed_at,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM contracts
		WHERE organization_id = $1 AND contract_id = $2;
	`
	var m models.Contract
	err := r.Pool.QueryRow(ctx, query, organizationID, contractID).Scan(
		&m.ContractID,
		&m.OrganizationID,
		&m.CounterpartyID,
		&m.Description,
		&m.TotalPrice,
		&m.SignedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find contract by ID "+contractID, err)
	}

	contract := mapping.ToDomainContract(m)
	return &contract, nil
}

// FindPaymentPlan retrieves a contract with its installments, trade-in
// credits and the persisted residual row. The residual amount returned is the
// raw cached copy; the service layer recomputes before anyone sees it.
func (r *PgxContractRepository) FindPaymentPlan(ctx context.Context, organizationID, contractID string) (*domain.ContractPaymentPlan, error) {
	contract, err := r.FindContractByID(ctx, organizationID, contractID)
	if err != nil {
		return nil, err
	}

	installments, err := r.findInstallments(ctx, contractID)
	if err != nil {
		return nil, err
	}

	tradeIns, err := r.findTradeIns(ctx, contractID)
	if err != nil {
		return nil, err
	}

	residual, err := r.findResidual(ctx, contractID)
	if err != nil {
		return nil, err
	}

	return &domain.ContractPaymentPlan{
		Contract:     *contract,
		Installments: installments,
		TradeIns:     tradeIns,
		Residual:     *residual,
	}, nil
}

func (r *PgxContractRepository) findInstallments(ctx context.Context, contractID string) ([]domain.ContractInstallment, error) {
	query := `
		SELECT installment_id, contract_id, description, kind, due_date, amount,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM contract_installments
		WHERE contract_id = $1
		ORDER BY due_date ASC, created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, contractID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query installments for contract "+contractID, err)
	}
	defer rows.Close()

	installments := []models.ContractInstallment{}
	for rows.Next() {
		var m models.ContractInstallment
		err := rows.Scan(
			&m.InstallmentID,
			&m.ContractID,
			&m.Description,
			&m.Kind,
			&m.DueDate,
			&m.Amount,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan installment row for contract "+contractID, err)
		}
		installments = append(installments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating installment rows for contract "+contractID, err)
	}

	return mapping.ToDomainContractInstallmentSlice(installments), nil
}

func (r *PgxContractRepository) findTradeIns(ctx context.Context, contractID string) ([]domain.TradeInCredit, error) {
	query := `
		SELECT trade_in_id, contract_id, description, date, amount,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM trade_in_credits
		WHERE contract_id = $1
		ORDER BY date ASC, created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, contractID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trade-ins for contract "+contractID, err)
	}
	defer rows.Close()

	tradeIns := []models.TradeInCredit{}
	for rows.Next() {
		var m models.TradeInCredit
		err := rows.Scan(
			&m.TradeInID,
			&m.ContractID,
			&m.Description,
			&m.Date,
			&m.Amount,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trade-in row for contract "+contractID, err)
		}
		tradeIns = append(tradeIns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trade-in rows for contract "+contractID, err)
	}

	return mapping.ToDomainTradeInCreditSlice(tradeIns), nil
}

func (r *PgxContractRepository) findResidual(ctx context.Context, contractID string) (*domain.ResidualInstallment, error) {
	query := `
		SELECT contract_id, description, due_date, cached_amount,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM residual_installments
		WHERE contract_id = $1;
	`
	var m models.ResidualInstallment
	err := r.Pool.QueryRow(ctx, query, contractID).Scan(
		&m.ContractID,
		&m.Description,
		&m.DueDate,
		&m.CachedAmount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find residual for contract "+contractID, err)
	}

	residual := mapping.ToDomainResidualInstallment(m)
	return &residual, nil
}

// ListContracts retrieves an organization's contracts with offset pagination.
func (r *PgxContractRepository) ListContracts(ctx context.Context, organizationID string, limit, offset int) ([]domain.Contract, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT contract_id, organization_id, counterparty_id, description, total_price, signed_at,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM contracts
		WHERE organization_id = $1
		ORDER BY signed_at DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query contracts for organization "+organizationID, err)
	}
	defer rows.Close()

	contracts := []domain.Contract{}
	for rows.Next() {
		var m models.Contract
		err := rows.Scan(
			&m.ContractID,
			&m.OrganizationID,
			&m.CounterpartyID,
			&m.Description,
			&m.TotalPrice,
			&m.SignedAt,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan contract row", err)
		}
		contracts = append(contracts, mapping.ToDomainContract(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating contract rows", err)
	}

	return contracts, nil
}

// UpdateContractTotal updates a contract's authoritative total price. The
// residual cache is deliberately untouched.
func (r *PgxContractRepository) UpdateContractTotal(ctx context.Context, organizationID, contractID string, total decimal.Decimal, updatedBy string) error {
	query := `
		UPDATE contracts
		SET total_price = $3, last_updated_at = $4, last_updated_by = $5
		WHERE organization_id = $1 AND contract_id = $2;
	`
	ct, err := r.Pool.Exec(ctx, query, organizationID, contractID, total, time.Now(), updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update total for contract "+contractID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveInstallment persists one explicit installment.
func (r *PgxContractRepository) SaveInstallment(ctx context.Context, installment domain.ContractInstallment) error {
	m := mapping.ToModelContractInstallment(installment)
	query := `
		INSERT INTO contract_installments (
			installment_id, contract_id, description, kind, due_date, amount,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.InstallmentID,
		m.ContractID,
		m.Description,
		m.Kind,
		m.DueDate,
		m.Amount,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert installment "+m.InstallmentID, err)
	}
	return nil
}

// UpdateInstallment updates one explicit installment.
func (r *PgxContractRepository) UpdateInstallment(ctx context.Context, installment domain.ContractInstallment) error {
	m := mapping.ToModelContractInstallment(installment)
	query := `
		UPDATE contract_installments
		SET description = $3, kind = $4, due_date = $5, amount = $6, last_updated_at = $7, last_updated_by = $8
		WHERE contract_id = $1 AND installment_id = $2;
	`
	ct, err := r.Pool.Exec(ctx, query,
		m.ContractID,
		m.InstallmentID,
		m.Description,
		m.Kind,
		m.DueDate,
		m.Amount,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update installment "+m.InstallmentID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteInstallment removes one explicit installment.
func (r *PgxContractRepository) DeleteInstallment(ctx context.Context, contractID, installmentID string) error {
	query := `DELETE FROM contract_installments WHERE contract_id = $1 AND installment_id = $2;`
	ct, err := r.Pool.Exec(ctx, query, contractID, installmentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete installment "+installmentID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveTradeIn persists one trade-in credit.
func (r *PgxContractRepository) SaveTradeIn(ctx context.Context, tradeIn domain.TradeInCredit) error {
	m := mapping.ToModelTradeInCredit(tradeIn)
	query := `
		INSERT INTO trade_in_credits (
			trade_in_id, contract_id, description, date, amount,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TradeInID,
		m.ContractID,
		m.Description,
		m.Date,
		m.Amount,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert trade-in "+m.TradeInID, err)
	}
	return nil
}

// DeleteTradeIn removes one trade-in credit.
func (r *PgxContractRepository) DeleteTradeIn(ctx context.Context, contractID, tradeInID string) error {
	query := `DELETE FROM trade_in_credits WHERE contract_id = $1 AND trade_in_id = $2;`
	ct, err := r.Pool.Exec(ctx, query, contractID, tradeInID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete trade-in "+tradeInID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateResidualCache overwrites the persisted residual copy. Only the
// explicit resync path writes here.
func (r *PgxContractRepository) UpdateResidualCache(ctx context.Context, residual domain.ResidualInstallment) error {
	m := mapping.ToModelResidualInstallment(residual)
	query := `
		UPDATE residual_installments
		SET description = $2, due_date = $3, cached_amount = $4, last_updated_at = $5, last_updated_by = $6
		WHERE contract_id = $1;
	`
	ct, err := r.Pool.Exec(ctx, query,
		m.ContractID,
		m.Description,
		m.DueDate,
		m.CachedAmount,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update residual cache for contract "+m.ContractID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
