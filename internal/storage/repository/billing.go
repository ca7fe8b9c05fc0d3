package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/membership-engine/internal/models"
)

const billingColumns = `b.id, b.contract_id, b.period_start, b.period_end, b.due_date,
	b.amount_cents, b.paid, b.payment_date, b.prorated`

func (s *Storage) queryBillingEntries(ctx context.Context, op, query string, arg int64) ([]models.BillingEntry, error) {
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]models.BillingEntry, 0)
	for rows.Next() {
		var e models.BillingEntry
		if err := rows.Scan(&e.ID, &e.ContractID, &e.PeriodStart, &e.PeriodEnd, &e.DueDate,
			&e.AmountCents, &e.Paid, &e.PaymentDate, &e.Prorated); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetBillingEntriesForMember возвращает сохранённые начисления по всем договорам участника,
// включая архивные.
func (s *Storage) GetBillingEntriesForMember(ctx context.Context, memberID int64) ([]models.BillingEntry, error) {
	const op = "storage.GetBillingEntriesForMember"
	query := `SELECT ` + billingColumns + `
			  FROM billing_entries b
			  JOIN contracts c ON c.id = b.contract_id
			  WHERE c.member_id = $1
			  ORDER BY b.due_date, b.id`
	return s.queryBillingEntries(ctx, op, query, memberID)
}

// GetBillingEntriesForContract возвращает сохранённые начисления договора.
func (s *Storage) GetBillingEntriesForContract(ctx context.Context, contractID int64) ([]models.BillingEntry, error) {
	const op = "storage.GetBillingEntriesForContract"
	query := `SELECT ` + billingColumns + `
			  FROM billing_entries b
			  WHERE b.contract_id = $1
			  ORDER BY b.due_date, b.id`
	return s.queryBillingEntries(ctx, op, query, contractID)
}

// RecordBillingEntry сохраняет фактическое начисление и возвращает его id.
// Прогнозные строки сюда не попадают.
func (s *Storage) RecordBillingEntry(ctx context.Context, e models.BillingEntry) (int64, error) {
	const op = "storage.RecordBillingEntry"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}
	if e.Generated {
		return 0, fmt.Errorf("%s: %w", op, models.NewValidationError("generated", "projected entries are never persisted"))
	}

	query := `INSERT INTO billing_entries (contract_id, period_start, period_end, due_date,
				amount_cents, paid, payment_date, prorated)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var id int64
	err := s.DB.QueryRowContext(ctx, query,
		e.ContractID, e.PeriodStart, e.PeriodEnd, e.DueDate,
		e.AmountCents, e.Paid, e.PaymentDate, e.Prorated).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}
