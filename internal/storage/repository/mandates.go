package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/membership-engine/internal/models"
)

// CreateMandate сохраняет выпущенный мандат. Участник должен существовать.
func (s *Storage) CreateMandate(ctx context.Context, m models.Mandate) error {
	const op = "storage.CreateMandate"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	var exists bool
	if err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM members WHERE id = $1)`, m.MemberID).
		Scan(&exists); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return fmt.Errorf("%s: member %d: %w", op, m.MemberID, models.ErrNotFound)
	}

	query := `INSERT INTO sepa_mandates (id, member_id, reference, account_holder, iban, bic, signed_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.DB.ExecContext(ctx, query,
		m.ID, m.MemberID, m.Reference, m.AccountHolder, m.IBAN, m.BIC, m.SignedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetMandate возвращает мандат по id.
func (s *Storage) GetMandate(ctx context.Context, id string) (models.Mandate, error) {
	const op = "storage.GetMandate"
	if err := checkCtx(ctx, op); err != nil {
		return models.Mandate{}, err
	}

	query := `SELECT id, member_id, reference, account_holder, iban, bic, signed_at, revoked_at
			  FROM sepa_mandates WHERE id = $1`
	var m models.Mandate
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.MemberID, &m.Reference,
		&m.AccountHolder, &m.IBAN, &m.BIC, &m.SignedAt, &m.RevokedAt)
	if err != nil {
		return models.Mandate{}, notFound(op, err)
	}
	return m, nil
}

// RevokeMandate проставляет дату отзыва. Повторный отзыв сохраняет первую дату.
func (s *Storage) RevokeMandate(ctx context.Context, id string, at time.Time) error {
	const op = "storage.RevokeMandate"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	result, err := s.DB.ExecContext(ctx,
		`UPDATE sepa_mandates SET revoked_at = COALESCE(revoked_at, $2) WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}

// CountContractsUsingMandate считает договоры с прямым списанием, по которым ещё будут списания:
// действующие, приостановленные и расторгнутые с датой расторжения не раньше сегодняшней.
func (s *Storage) CountContractsUsingMandate(ctx context.Context, mandateID string) (int, error) {
	const op = "storage.CountContractsUsingMandate"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	query := `SELECT COUNT(*) FROM contracts
			  WHERE sepa_mandate_id = $1
			    AND payment_method = 'direct_debit'
			    AND (status IN ('active', 'paused')
			         OR (status = 'cancelled' AND cancellation_received_date >= current_date))
			    AND archived_at IS NULL`
	var n int
	if err := s.DB.QueryRowContext(ctx, query, mandateID).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
