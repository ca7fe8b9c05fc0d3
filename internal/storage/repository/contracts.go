package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/membership-engine/internal/models"
)

const contractColumns = `id, member_id, tariff_id, status, start_date, end_date, monthly_amount_cents,
	billing_cycle, payment_method, due_day_of_month, notice_period_months, minimum_term_months,
	auto_renew, renewal_period_months, cancellation_received_date, cancellation_reason,
	pause_from, pause_until, sepa_mandate_id, admission_fee_cents, version, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanContract(row scanner) (models.Contract, error) {
	var c models.Contract
	err := row.Scan(&c.ID, &c.MemberID, &c.TariffID, &c.Status, &c.StartDate, &c.EndDate, &c.MonthlyAmountCents,
		&c.BillingCycle, &c.PaymentMethod, &c.DueDayOfMonth, &c.NoticePeriodMonths, &c.MinimumTermMonths,
		&c.AutoRenew, &c.RenewalPeriodMonths, &c.CancellationReceivedDate, &c.CancellationReason,
		&c.PauseFrom, &c.PauseUntil, &c.SepaMandateID, &c.AdmissionFeeCents, &c.Version, &c.UpdatedAt)
	return c, err
}

// CreateContract сохраняет новый договор и возвращает его с присвоенными id и версией.
func (s *Storage) CreateContract(ctx context.Context, c models.Contract) (models.Contract, error) {
	const op = "storage.CreateContract"
	if err := checkCtx(ctx, op); err != nil {
		return models.Contract{}, err
	}

	query := `INSERT INTO contracts (member_id, tariff_id, status, start_date, end_date, monthly_amount_cents,
				billing_cycle, payment_method, due_day_of_month, notice_period_months, minimum_term_months,
				auto_renew, renewal_period_months, cancellation_received_date, cancellation_reason,
				pause_from, pause_until, sepa_mandate_id, admission_fee_cents)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
			  RETURNING ` + contractColumns
	row := s.DB.QueryRowContext(ctx, query,
		c.MemberID, c.TariffID, c.Status, c.StartDate, c.EndDate, c.MonthlyAmountCents,
		c.BillingCycle, c.PaymentMethod, c.DueDayOfMonth, c.NoticePeriodMonths, c.MinimumTermMonths,
		c.AutoRenew, c.RenewalPeriodMonths, c.CancellationReceivedDate, c.CancellationReason,
		c.PauseFrom, c.PauseUntil, c.SepaMandateID, c.AdmissionFeeCents)
	created, err := scanContract(row)
	if err != nil {
		return models.Contract{}, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// GetContract возвращает неархивированный договор по id.
func (s *Storage) GetContract(ctx context.Context, id int64) (models.Contract, error) {
	const op = "storage.GetContract"
	if err := checkCtx(ctx, op); err != nil {
		return models.Contract{}, err
	}

	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1 AND archived_at IS NULL`
	c, err := scanContract(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return models.Contract{}, notFound(op, err)
	}
	return c, nil
}

// GetContractsForMember возвращает неархивированные договоры участника в порядке начала действия.
func (s *Storage) GetContractsForMember(ctx context.Context, memberID int64) ([]models.Contract, error) {
	const op = "storage.GetContractsForMember"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + contractColumns + `
			  FROM contracts
			  WHERE member_id = $1 AND archived_at IS NULL
			  ORDER BY start_date, id`
	rows, err := s.DB.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]models.Contract, 0)
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateContract записывает договор, если его версия в базе совпадает с expectedVersion.
// Возвращает договор с новой версией. Устаревшая версия даёт models.ErrConcurrencyConflict.
func (s *Storage) UpdateContract(ctx context.Context, c models.Contract, expectedVersion int) (models.Contract, error) {
	const op = "storage.UpdateContract"
	if err := checkCtx(ctx, op); err != nil {
		return models.Contract{}, err
	}

	query := `UPDATE contracts
			  SET status = $3, end_date = $4, monthly_amount_cents = $5, billing_cycle = $6,
			      payment_method = $7, due_day_of_month = $8, notice_period_months = $9,
			      minimum_term_months = $10, auto_renew = $11, renewal_period_months = $12,
			      cancellation_received_date = $13, cancellation_reason = $14,
			      pause_from = $15, pause_until = $16, sepa_mandate_id = $17,
			      version = version + 1, updated_at = now()
			  WHERE id = $1 AND version = $2 AND archived_at IS NULL
			  RETURNING ` + contractColumns
	row := s.DB.QueryRowContext(ctx, query,
		c.ID, expectedVersion, c.Status, c.EndDate, c.MonthlyAmountCents, c.BillingCycle,
		c.PaymentMethod, c.DueDayOfMonth, c.NoticePeriodMonths,
		c.MinimumTermMonths, c.AutoRenew, c.RenewalPeriodMonths,
		c.CancellationReceivedDate, c.CancellationReason,
		c.PauseFrom, c.PauseUntil, c.SepaMandateID)
	updated, err := scanContract(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Contract{}, s.missOrConflict(ctx, op, c.ID)
	}
	if err != nil {
		return models.Contract{}, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// ArchiveContract сохраняет итоговое состояние договора и помечает его архивным.
// Договор никогда не удаляется физически.
func (s *Storage) ArchiveContract(ctx context.Context, c models.Contract, reason string, expectedVersion int) error {
	const op = "storage.ArchiveContract"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	query := `UPDATE contracts
			  SET status = $3, cancellation_received_date = $4, cancellation_reason = $5,
			      pause_from = $6, pause_until = $7,
			      archived_at = now(), archive_reason = $8,
			      version = version + 1, updated_at = now()
			  WHERE id = $1 AND version = $2 AND archived_at IS NULL`
	result, err := s.DB.ExecContext(ctx, query,
		c.ID, expectedVersion, c.Status, c.CancellationReceivedDate, c.CancellationReason,
		c.PauseFrom, c.PauseUntil, reason)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return s.missOrConflict(ctx, op, c.ID)
	}
	return nil
}

// missOrConflict различает отсутствующий договор и устаревшую версию после неудачного UPDATE.
func (s *Storage) missOrConflict(ctx context.Context, op string, id int64) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM contracts WHERE id = $1 AND archived_at IS NULL)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, models.ErrConcurrencyConflict)
}

// ListBillableContracts возвращает все неархивированные договоры, по которым ещё возможны списания,
// вместе с контактами участника.
func (s *Storage) ListBillableContracts(ctx context.Context) ([]models.BillableContract, error) {
	const op = "storage.ListBillableContracts"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT c.id, c.member_id, c.tariff_id, c.status, c.start_date, c.end_date, c.monthly_amount_cents,
				c.billing_cycle, c.payment_method, c.due_day_of_month, c.notice_period_months, c.minimum_term_months,
				c.auto_renew, c.renewal_period_months, c.cancellation_received_date, c.cancellation_reason,
				c.pause_from, c.pause_until, c.sepa_mandate_id, c.admission_fee_cents, c.version, c.updated_at,
				m.email, m.name
			  FROM contracts c
			  JOIN members m ON m.id = c.member_id
			  WHERE c.archived_at IS NULL AND c.status <> 'ended'
			  ORDER BY c.id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]models.BillableContract, 0)
	for rows.Next() {
		var b models.BillableContract
		c := &b.Contract
		if err := rows.Scan(&c.ID, &c.MemberID, &c.TariffID, &c.Status, &c.StartDate, &c.EndDate, &c.MonthlyAmountCents,
			&c.BillingCycle, &c.PaymentMethod, &c.DueDayOfMonth, &c.NoticePeriodMonths, &c.MinimumTermMonths,
			&c.AutoRenew, &c.RenewalPeriodMonths, &c.CancellationReceivedDate, &c.CancellationReason,
			&c.PauseFrom, &c.PauseUntil, &c.SepaMandateID, &c.AdmissionFeeCents, &c.Version, &c.UpdatedAt,
			&b.Email, &b.MemberName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
